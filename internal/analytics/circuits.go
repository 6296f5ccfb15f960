package analytics

import (
	"fmt"
	"strconv"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

const (
	// DefaultStartersPerRace - предполагаемое число стартующих в одной гонке
	DefaultStartersPerRace = 20
	topReasonsLimit        = 3
)

// CircuitOptions - эвристики расчета процента сходов по трассе.
type CircuitOptions struct {
	// StartersPerRace умножается на число гонок Гран-при в знаменателе процента
	StartersPerRace int
	// DNFPositionText, если задан, требует совпадения positionText для засчитывания схода
	DNFPositionText string
}

// DefaultCircuitOptions возвращает настройки по умолчанию.
func DefaultCircuitOptions() CircuitOptions {
	return CircuitOptions{StartersPerRace: DefaultStartersPerRace}
}

// CircuitDNF группирует записи по трассам и считает сходы, их причины и процент.
//
// Процент считается как dnfCount / (гонок Гран-при * StartersPerRace) * 100.
// Если Гран-при трассы нет в справочнике, используется dnfCount / totalRaces * 100.
// Некорректные координаты приводят к ошибке всего запроса.
func CircuitDNF(snap *dataset.Snapshot, opts CircuitOptions) ([]models.CircuitSummary, error) {
	if opts.StartersPerRace <= 0 {
		opts.StartersPerRace = DefaultStartersPerRace
	}

	var order []string
	circuits := make(map[string]*models.CircuitSummary)

	for _, r := range snap.Records() {
		c, ok := circuits[r.CircuitID]
		if !ok {
			lat, err := parseCoordinate(r.Latitude)
			if err != nil {
				return nil, fmt.Errorf("circuit %s: invalid latitude: %w", r.CircuitID, err)
			}
			lng, err := parseCoordinate(r.Longitude)
			if err != nil {
				return nil, fmt.Errorf("circuit %s: invalid longitude: %w", r.CircuitID, err)
			}

			name := r.CircuitName
			if name == "" {
				name = r.CircuitID
			}
			c = &models.CircuitSummary{
				CircuitID:   r.CircuitID,
				CircuitName: name,
				Lat:         lat,
				Lng:         lng,
				Country:     r.GrandPrixID,
				CircuitType: orUnknown(r.CircuitType),
				DNFReasons:  models.NewCountMap(),
			}
			circuits[r.CircuitID] = c
			order = append(order, r.CircuitID)
		}

		c.TotalRaces++
		if isDNF(r, opts) {
			c.DNFCount++
			c.DNFReasons.Inc(r.ReasonRetired, 1)
		}
	}

	summaries := make([]models.CircuitSummary, 0, len(order))
	for _, id := range order {
		c := circuits[id]
		c.DNFPercentage = dnfPercentage(snap, c, opts.StartersPerRace)

		top := sortedByCount(c.DNFReasons)
		if len(top) > topReasonsLimit {
			top = top[:topReasonsLimit]
		}
		c.TopReasons = top

		summaries = append(summaries, *c)
	}
	return summaries, nil
}

func isDNF(r models.RaceResult, opts CircuitOptions) bool {
	if r.ReasonRetired == "" {
		return false
	}
	return opts.DNFPositionText == "" || r.PositionText == opts.DNFPositionText
}

func dnfPercentage(snap *dataset.Snapshot, c *models.CircuitSummary, startersPerRace int) float64 {
	if races, ok := snap.RaceCount(c.Country); ok && races > 0 {
		return percentage(c.DNFCount, races*startersPerRace)
	}
	return percentage(c.DNFCount, c.TotalRaces)
}

// parseCoordinate возвращает nil для пустого значения и ошибку для нечислового.
func parseCoordinate(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
