package analytics

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

// DefaultTeamLimit - сколько команд возвращать по умолчанию
const DefaultTeamLimit = 10

// DefaultSelectedYears возвращает сезоны по умолчанию для рейтинга надежности.
func DefaultSelectedYears() []string {
	return []string{"2020", "2021", "2022", "2023", "2024"}
}

// TeamReliability считает сходы команд по выбранным сезонам.
//
// Каждая запись выбранного сезона засчитывается как сход без проверки причины:
// загруженный набор уже состоит только из записей с причиной схода.
func TeamReliability(snap *dataset.Snapshot, filters models.TeamReliabilityFilters) models.TeamReliabilityResult {
	years := lo.Uniq(filters.SelectedYears)
	if len(years) == 0 {
		years = DefaultSelectedYears()
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultTeamLimit
	}

	var order []string
	byTeam := make(map[string]*models.CountMap)
	for _, r := range snap.Records() {
		year := r.YearString()
		if !matchesFilter(filters.Season, year) || !matchesFilter(filters.Team, r.ConstructorID) {
			continue
		}
		if !lo.Contains(years, year) {
			continue
		}

		counts, ok := byTeam[r.ConstructorID]
		if !ok {
			counts = models.NewCountMap()
			for _, y := range years {
				counts.Set(y, 0)
			}
			byTeam[r.ConstructorID] = counts
			order = append(order, r.ConstructorID)
		}
		counts.Inc(year, 1)
	}

	teams := make([]models.TeamReliability, 0, len(order))
	for _, team := range order {
		counts := byTeam[team]
		total := counts.Sum()
		teams = append(teams, models.TeamReliability{
			Team:           team,
			Years:          counts,
			Total:          total,
			AvgDNFsPerYear: round1(float64(total) / float64(len(years))),
		})
	}

	slices.SortStableFunc(teams, func(a, b models.TeamReliability) int {
		return cmp.Compare(b.Total, a.Total)
	})
	if len(teams) > limit {
		teams = teams[:limit]
	}

	totalDNFs := lo.SumBy(teams, func(t models.TeamReliability) int { return t.Total })
	avgPerTeam := 0.0
	if len(teams) > 0 {
		avgPerTeam = round1(float64(totalDNFs) / float64(len(teams)))
	}

	return models.TeamReliabilityResult{
		Teams: teams,
		Statistics: models.TeamReliabilityStatistics{
			TotalDNFs:      totalDNFs,
			AvgDNFsPerTeam: avgPerTeam,
			TotalTeams:     len(teams),
			SelectedYears:  years,
		},
	}
}
