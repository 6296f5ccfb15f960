// Package analytics содержит агрегации над снимком результатов гонок.
// Все функции чистые: результат зависит только от снимка и параметров запроса.
package analytics

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

const (
	// Unknown подставляется вместо пустых категориальных значений
	Unknown = "Unknown"
	// AllFilter отключает фильтр запроса
	AllFilter = "all"
)

// matchesFilter возвращает true, если фильтр пустой, равен "all" или совпадает со значением.
func matchesFilter(filter, value string) bool {
	return filter == "" || filter == AllFilter || filter == value
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}

// round1 округляет до одного знака после запятой.
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// percentage возвращает part/total*100, либо 0 при нулевом total.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// sortedByCount возвращает пары по убыванию количества. При равенстве сохраняется
// порядок первого появления.
func sortedByCount(counts *models.CountMap) []models.ReasonCount {
	pairs := counts.Pairs()
	slices.SortStableFunc(pairs, func(a, b models.ReasonCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return pairs
}

// topReason возвращает самую частую причину; при равенстве побеждает встреченная раньше.
func topReason(counts *models.CountMap) string {
	best, bestCount := "", 0
	for _, pair := range counts.Pairs() {
		if pair.Count > bestCount {
			best, bestCount = pair.Reason, pair.Count
		}
	}
	return best
}
