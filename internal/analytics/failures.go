package analytics

import (
	"strings"

	"github.com/samber/lo"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

// DefaultManufacturerLimit - сколько производителей возвращать в разбивке отказов
const DefaultManufacturerLimit = 8

var (
	tyreFailureKeywords   = []string{"tyre", "tire", "puncture", "wheel", "suspension"}
	engineFailureKeywords = []string{"engine", "power", "turbo", "electrical", "hydraulics", "fuel", "oil", "water"}
)

// ProjectPCP проецирует каждую запись в строку графика параллельных координат.
// Порядок и количество строк совпадают с исходными записями.
func ProjectPCP(snap *dataset.Snapshot) []models.PCPRow {
	records := snap.Records()
	if len(records) == 0 {
		return []models.PCPRow{}
	}
	return lo.Map(records, func(r models.RaceResult, _ int) models.PCPRow {
		return models.PCPRow{
			Year:          r.Year,
			CircuitID:     orUnknown(r.CircuitID),
			CircuitType:   orUnknown(r.CircuitType),
			Grid:          r.GridPositionNumber,
			Laps:          r.Laps,
			ReasonRetired: orUnknown(r.ReasonRetired),
			Constructor:   orUnknown(r.ConstructorID),
			Engine:        orUnknown(r.EngineManufacturerID),
			Tyre:          orUnknown(r.TyreManufacturerID),
			Country:       orUnknown(r.CountryID),
		}
	})
}

// FailureCauses считает доли причин схода с учетом фильтров сезона и трассы.
func FailureCauses(snap *dataset.Snapshot, filter models.FailureCauseFilter) []models.FailureCause {
	records := lo.Filter(snap.Records(), func(r models.RaceResult, _ int) bool {
		return matchesFilter(filter.Season, r.YearString()) && matchesFilter(filter.CircuitID, r.CircuitID)
	})

	counts := models.NewCountMap()
	for _, r := range records {
		if r.ReasonRetired != "" {
			counts.Inc(r.ReasonRetired, 1)
		}
	}
	total := counts.Sum()

	return lo.Map(sortedByCount(counts), func(p models.ReasonCount, _ int) models.FailureCause {
		return models.FailureCause{
			Reason:     p.Reason,
			Count:      p.Count,
			Percentage: round1(percentage(p.Count, total)),
		}
	})
}

// TyreVsEngine классифицирует причины схода по ключевым словам и считает отказы шин
// по поставщику шин, а отказы двигателя по производителю двигателя.
func TyreVsEngine(snap *dataset.Snapshot, limit int) models.TyreEngineFailures {
	if limit <= 0 {
		limit = DefaultManufacturerLimit
	}

	tyre := models.NewCountMap()
	engine := models.NewCountMap()
	for _, r := range snap.Records() {
		reason := strings.ToLower(r.ReasonRetired)
		if reason == "" {
			continue
		}
		if containsAny(reason, tyreFailureKeywords) {
			tyre.Inc(orUnknown(r.TyreManufacturerID), 1)
		}
		if containsAny(reason, engineFailureKeywords) {
			engine.Inc(orUnknown(r.EngineManufacturerID), 1)
		}
	}

	return models.TyreEngineFailures{
		Tyre:   topManufacturers(tyre, limit),
		Engine: topManufacturers(engine, limit),
	}
}

func containsAny(s string, keywords []string) bool {
	return lo.SomeBy(keywords, func(k string) bool { return strings.Contains(s, k) })
}

func topManufacturers(counts *models.CountMap, limit int) []models.ManufacturerFailures {
	pairs := sortedByCount(counts)
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return lo.Map(pairs, func(p models.ReasonCount, _ int) models.ManufacturerFailures {
		return models.ManufacturerFailures{Manufacturer: p.Reason, Count: p.Count}
	})
}
