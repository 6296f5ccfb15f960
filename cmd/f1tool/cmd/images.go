package cmd

import (
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/assets"
)

var (
	imagesDir   string
	concurrency int
	rps         float64
	timeout     time.Duration
	kindFilter  string
	threshold   uint32
)

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders",
	Short: "Create default team and driver images",
	Long: `Placeholders writes teams/default.png (100x50, "Team Logo") and
drivers/default.png (60x60, "Driver") into the images directory. The front
end shows them when a logo or headshot is missing.

Example:
  f1tool placeholders --dir static/images`,
	RunE: runPlaceholders,
}

var downloadImagesCmd = &cobra.Command{
	Use:   "download-images",
	Short: "Download team logos and driver headshots",
	Long: `Download-images fetches the known team logos and driver headshots and
saves each as <dir>/<teams|drivers>/<id>.png. Responses that do not decode as
an image are rejected. Failed downloads are reported but never stop the run.

Example:
  f1tool download-images --kind teams --rps 2`,
	RunE: runDownloadImages,
}

func init() {
	for _, c := range []*cobra.Command{placeholdersCmd, downloadImagesCmd} {
		c.Flags().StringVar(&imagesDir, "dir", "", "Images directory (default: IMAGES_DIR)")
		rootCmd.AddCommand(c)
	}

	defaults := assets.DefaultDownloaderConfig()
	downloadImagesCmd.Flags().IntVar(&concurrency, "concurrency", defaults.Concurrency, "Parallel downloads")
	downloadImagesCmd.Flags().Float64Var(&rps, "rps", defaults.RequestsPerSecond, "Requests per second, 0 for unlimited")
	downloadImagesCmd.Flags().DurationVar(&timeout, "timeout", defaults.Timeout, "Timeout of a single download")
	downloadImagesCmd.Flags().Uint32Var(&threshold, "breaker-threshold", defaults.FailureThreshold,
		"Consecutive server failures before the remaining downloads are skipped, 0 to disable")
	downloadImagesCmd.Flags().StringVar(&kindFilter, "kind", "all", "What to download: all, teams or drivers")
}

func targetDir() string {
	if imagesDir != "" {
		return imagesDir
	}
	return appConfig.ImagesDir
}

func runPlaceholders(cmd *cobra.Command, _ []string) error {
	dir := targetDir()
	for _, p := range assets.Placeholders {
		path, err := p.Write(dir)
		if err != nil {
			return err
		}
		appLogger.Infow("Created placeholder", "path", path)
		cmd.Println(color.Green.Sprintf("Created placeholder: %s", path))
	}
	return nil
}

func runDownloadImages(cmd *cobra.Command, _ []string) error {
	sources, err := selectSources(assets.Catalog(), kindFilter)
	if err != nil {
		return err
	}

	d := assets.NewDownloader(assets.DownloaderConfig{
		Concurrency:       concurrency,
		RequestsPerSecond: rps,
		Timeout:           timeout,
		FailureThreshold:  threshold,
		Cooldown:          assets.DefaultDownloaderConfig().Cooldown,
	}, appLogger)

	report, err := d.Download(cmd.Context(), targetDir(), sources)
	if err != nil {
		return fmt.Errorf("download interrupted: %w", err)
	}

	for _, f := range report.Failed {
		cmd.Println(color.Red.Sprintf("Error downloading %s/%s: %v", f.Source.Kind, f.Source.ID, f.Err))
	}
	cmd.Println(color.Green.Sprintf("%d downloaded", len(report.Downloaded)) + ", " +
		color.Red.Sprintf("%d failed", len(report.Failed)))
	return nil
}

func selectSources(sources []assets.Source, kind string) ([]assets.Source, error) {
	switch kind {
	case "", "all":
		return sources, nil
	case string(assets.KindTeam), string(assets.KindDriver):
		return lo.Filter(sources, func(s assets.Source, _ int) bool { return string(s.Kind) == kind }), nil
	default:
		return nil, fmt.Errorf("unknown kind %q: expected all, teams or drivers", kind)
	}
}
