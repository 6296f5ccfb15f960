package dataset

import (
	"maps"
	"slices"
	"time"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

// Snapshot - неизменяемый набор записей и счетчиков гонок Гран-при.
// Создается один раз при старте и передается в обработчики.
type Snapshot struct {
	records         []models.RaceResult
	grandPrixCounts map[string]int
	loadedAt        time.Time
}

// NewSnapshot копирует входные данные, чтобы вызывающий код не мог их изменить.
func NewSnapshot(records []models.RaceResult, grandPrixCounts map[string]int) *Snapshot {
	return &Snapshot{
		records:         slices.Clone(records),
		grandPrixCounts: maps.Clone(grandPrixCounts),
		loadedAt:        time.Now(),
	}
}

// Empty возвращает пустой снимок, с которым сервер работает после ошибки загрузки.
func Empty() *Snapshot {
	return &Snapshot{grandPrixCounts: map[string]int{}, loadedAt: time.Now()}
}

// Records возвращает копию записей.
func (s *Snapshot) Records() []models.RaceResult {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records)
}

// Len - число записей.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// RaceCount возвращает число гонок Гран-при в диапазоне лет.
func (s *Snapshot) RaceCount(grandPrixID string) (int, bool) {
	if s == nil {
		return 0, false
	}
	count, ok := s.grandPrixCounts[grandPrixID]
	return count, ok
}

// GrandPrixCount - число Гран-при в справочнике.
func (s *Snapshot) GrandPrixCount() int {
	if s == nil {
		return 0
	}
	return len(s.grandPrixCounts)
}

// LoadedAt - момент создания снимка.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}
