package cmd

import (
	"fmt"
	"slices"

	"github.com/gookit/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
)

var (
	patchFile   string
	patchOutput string
	patchColumn string
	patchValue  string
	patchYear   int
)

var patchTyresCmd = &cobra.Command{
	Use:   "patch-tyres",
	Short: "Set a column value for every row of one season",
	Long: `Patch-tyres rewrites one column of the race results CSV for all rows of a
season. By default it sets tyreManufacturerId to bridgestone for 2015 and
overwrites the results file in place.

Example:
  f1tool patch-tyres --year 2015 --value bridgestone`,
	RunE: runPatchTyres,
}

func init() {
	patchTyresCmd.Flags().StringVar(&patchFile, "file", "", "CSV file to patch (default: RESULTS_FILE in DATA_DIR)")
	patchTyresCmd.Flags().StringVar(&patchOutput, "output", "", "Where to write the result (default: overwrite --file)")
	patchTyresCmd.Flags().StringVar(&patchColumn, "column", dataset.ColTyreManufacturerID, "Column to rewrite")
	patchTyresCmd.Flags().StringVar(&patchValue, "value", "bridgestone", "New value")
	patchTyresCmd.Flags().IntVar(&patchYear, "year", 2015, "Season to patch")
	rootCmd.AddCommand(patchTyresCmd)
}

func runPatchTyres(cmd *cobra.Command, _ []string) error {
	in := patchFile
	if in == "" {
		in = appConfig.Data.Path(appConfig.Data.ResultsFile)
	}
	out := patchOutput
	if out == "" {
		out = in
	}

	updated, counts, err := patchSeason(in, out, patchColumn, patchValue, patchYear)
	if err != nil {
		return err
	}

	appLogger.Infow("Patched season", "file", out, "column", patchColumn, "year", patchYear, "rows", updated)
	cmd.Println(color.Green.Sprintf("Updated %d rows of %d: %s = %s", updated, patchYear, patchColumn, patchValue))

	values := lo.Keys(counts)
	slices.Sort(values)
	for _, v := range values {
		cmd.Printf("  %-20s %d\n", v, counts[v])
	}
	return nil
}

// patchSeason задает column = value для строк года year и пишет результат в out.
// Возвращает число измененных строк и распределение значений колонки в измененном сезоне.
func patchSeason(in, out, column, value string, year int) (int, map[string]int, error) {
	frame, err := dataset.ReadCSVFile(in)
	if err != nil {
		return 0, nil, err
	}

	inSeason := func(r dataset.Row) bool {
		y, ok := r.Int(dataset.ColYear)
		return ok && y == year
	}

	patched, updated, err := frame.Update(column, value, inSeason)
	if err != nil {
		return 0, nil, fmt.Errorf("patch %s: %w", in, err)
	}
	if err := patched.WriteCSVFile(out); err != nil {
		return 0, nil, err
	}

	counts, err := patched.Filter(inSeason).ValueCounts(column)
	if err != nil {
		return 0, nil, err
	}
	return updated, counts, nil
}
