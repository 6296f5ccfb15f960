package analytics

import (
	"slices"

	"github.com/samber/lo"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

// DefaultMinDriverDNFs - минимум сходов, чтобы пилот попал в выборку опыта
const DefaultMinDriverDNFs = 3

// DNFsOverTime считает записи по сезонам и самую частую причину схода в каждом сезоне.
func DNFsOverTime(snap *dataset.Snapshot) []models.YearDNFs {
	counts := make(map[int]int)
	reasons := make(map[int]*models.CountMap)
	for _, r := range snap.Records() {
		counts[r.Year]++
		if _, ok := reasons[r.Year]; !ok {
			reasons[r.Year] = models.NewCountMap()
		}
		if r.ReasonRetired != "" {
			reasons[r.Year].Inc(r.ReasonRetired, 1)
		}
	}

	years := lo.Keys(counts)
	slices.Sort(years)

	return lo.Map(years, func(year int, _ int) models.YearDNFs {
		return models.YearDNFs{
			Year:      year,
			Count:     counts[year],
			TopReason: topReason(reasons[year]),
		}
	})
}

type driverAcc struct {
	team       string
	races      int
	totalRaces int
	reasons    *models.CountMap
}

// DriverExperience сопоставляет число сходов пилота с общим числом его стартов.
// Команда пилота берется из первой его записи; фильтр по команде применяется к ней.
func DriverExperience(snap *dataset.Snapshot, filter models.DriverExperienceFilter) []models.DriverExperience {
	var order []string
	drivers := make(map[string]*driverAcc)
	for _, r := range snap.Records() {
		if r.DriverID == "" {
			continue
		}
		acc, ok := drivers[r.DriverID]
		if !ok {
			acc = &driverAcc{team: r.ConstructorID, reasons: models.NewCountMap()}
			if r.TotalRaceStarts != nil {
				acc.totalRaces = *r.TotalRaceStarts
			}
			drivers[r.DriverID] = acc
			order = append(order, r.DriverID)
		}
		acc.races++
		if r.ReasonRetired != "" {
			acc.reasons.Inc(r.ReasonRetired, 1)
		}
	}

	result := make([]models.DriverExperience, 0, len(order))
	for _, id := range order {
		acc := drivers[id]
		if acc.races < filter.MinDNFs || !matchesFilter(filter.Team, acc.team) {
			continue
		}
		ratio := 0.0
		if acc.totalRaces > 0 {
			ratio = float64(acc.races) / float64(acc.totalRaces)
		}
		result = append(result, models.DriverExperience{
			DriverID:   id,
			Team:       acc.team,
			DNFRaces:   acc.races,
			TopReason:  topReason(acc.reasons),
			TotalRaces: acc.totalRaces,
			DNFRatio:   ratio,
		})
	}
	return result
}
