// Package dataset загружает CSV файлы с результатами гонок в неизменяемый снимок в памяти.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/config"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

// Имена колонок исходных CSV файлов
const (
	ColRaceID               = "raceId"
	ColYear                 = "year"
	ColCircuitID            = "circuitId"
	ColGrandPrixID          = "grandPrixId"
	ColDriverID             = "driverId"
	ColConstructorID        = "constructorId"
	ColEngineManufacturerID = "engineManufacturerId"
	ColTyreManufacturerID   = "tyreManufacturerId"
	ColGridPositionNumber   = "gridPositionNumber"
	ColLaps                 = "laps"
	ColPositionText         = "positionText"
	ColReasonRetired        = "reasonRetired"
	ColLatitude             = "latitude"
	ColLongitude            = "longitude"
	ColCircuitType          = "type"
	ColCircuitName          = "name"
	ColCountryID            = "countryId"
	ColTotalRaceStarts      = "totalRaceStarts"
	colID                   = "id"
)

// Loader собирает Snapshot из CSV файлов согласно DataConfig.
type Loader struct {
	cfg config.DataConfig
	log *logger.Logger
}

// NewLoader создает загрузчик.
func NewLoader(cfg config.DataConfig, log *logger.Logger) *Loader {
	return &Loader{cfg: cfg, log: log.WithComponent("dataset")}
}

// LoadOrEmpty загружает данные, а при ошибке логирует её и возвращает пустой снимок.
// Сервер продолжает работать и отдает пустые агрегаты.
func (l *Loader) LoadOrEmpty(ctx context.Context) *Snapshot {
	snap, err := l.Load(ctx)
	if err != nil {
		l.log.Errorw("Error loading datasets, serving empty data", "error", err)
		return Empty()
	}
	return snap
}

// Load читает результаты гонок, фильтрует их, присоединяет справочники гонок, трасс
// и пилотов и возвращает снимок вместе со счетчиками гонок Гран-при.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	results, err := ReadCSVFile(l.cfg.Path(l.cfg.ResultsFile))
	if err != nil {
		return nil, err
	}
	l.log.Infow("Race results read", "rows", results.Len())

	results, err = results.DropMissing(ColReasonRetired)
	if err != nil {
		return nil, fmt.Errorf("race results: %w", err)
	}

	if !results.HasColumn(ColYear) {
		return nil, fmt.Errorf("race results: column %q not found", ColYear)
	}
	results = results.Filter(l.inYearRange)

	results, dropped := results.DropIncompleteColumns()
	if len(dropped) > 0 {
		l.log.Debugw("Dropped incomplete columns", "columns", dropped)
	}
	l.log.Infow("Race results filtered",
		"rows", results.Len(),
		"min_year", l.cfg.MinYear,
		"max_year", l.cfg.MaxYear,
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	races, err := ReadCSVFile(l.cfg.Path(l.cfg.RacesFile))
	if err != nil {
		return nil, err
	}
	racesKey := keyColumn(races, ColRaceID)
	joined, err := results.LeftJoin(races, ColRaceID, racesKey, []string{ColCircuitID, ColGrandPrixID})
	if err != nil {
		return nil, fmt.Errorf("join races: %w", err)
	}

	grandPrixCounts, err := races.Filter(l.inYearRange).ValueCounts(ColGrandPrixID)
	if err != nil {
		return nil, fmt.Errorf("grand prix counts: %w", err)
	}

	circuits, err := ReadCSVFile(l.cfg.Path(l.cfg.CircuitsFile))
	if err != nil {
		return nil, err
	}
	circuitColumns := []string{ColLatitude, ColLongitude, ColCircuitType}
	circuitColumns = append(circuitColumns, presentColumns(circuits, ColCountryID, ColCircuitName)...)
	joined, err = joined.LeftJoin(circuits, ColCircuitID, keyColumn(circuits, ColCircuitID), circuitColumns)
	if err != nil {
		return nil, fmt.Errorf("join circuits: %w", err)
	}

	joined, err = l.joinDrivers(joined)
	if err != nil {
		return nil, fmt.Errorf("join drivers: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.writeSampled(joined)

	records := make([]models.RaceResult, 0, joined.Len())
	for i := 0; i < joined.Len(); i++ {
		records = append(records, toRecord(joined.Row(i)))
	}

	l.log.Infow("Datasets loaded",
		"records", len(records),
		"grand_prix", len(grandPrixCounts),
	)
	return NewSnapshot(records, grandPrixCounts), nil
}

// joinDrivers присоединяет число стартов пилота. Отсутствующий файл не является ошибкой.
func (l *Loader) joinDrivers(joined *Frame) (*Frame, error) {
	if l.cfg.DriversFile == "" || !joined.HasColumn(ColDriverID) {
		return joined, nil
	}

	path := l.cfg.Path(l.cfg.DriversFile)
	drivers, err := ReadCSVFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.log.Warnw("Drivers file not found, skipping driver metadata", "path", path)
			return joined, nil
		}
		return nil, err
	}
	return joined.LeftJoin(drivers, ColDriverID, keyColumn(drivers, ColDriverID), []string{ColTotalRaceStarts})
}

// writeSampled сохраняет объединенную таблицу для отладки. Ошибки только логируются.
func (l *Loader) writeSampled(joined *Frame) {
	if l.cfg.SampledFile == "" {
		return
	}
	path := l.cfg.Path(l.cfg.SampledFile)
	if err := joined.WriteCSVFile(path); err != nil {
		l.log.Warnw("Could not write sampled data", "path", path, "error", err)
		return
	}
	l.log.Infow("Data saved", "path", path, "rows", joined.Len())
}

func (l *Loader) inYearRange(r Row) bool {
	year, ok := r.Int(ColYear)
	return ok && year >= l.cfg.MinYear && year <= l.cfg.MaxYear
}

// keyColumn возвращает preferred, если колонка есть, иначе "id" (формат f1db).
func keyColumn(f *Frame, preferred string) string {
	if f.HasColumn(preferred) {
		return preferred
	}
	return colID
}

func presentColumns(f *Frame, columns ...string) []string {
	present := make([]string, 0, len(columns))
	for _, c := range columns {
		if f.HasColumn(c) {
			present = append(present, c)
		}
	}
	return present
}

func toRecord(r Row) models.RaceResult {
	year, _ := r.Int(ColYear)
	return models.RaceResult{
		RaceID:               r.Get(ColRaceID),
		Year:                 year,
		CircuitID:            r.Get(ColCircuitID),
		CircuitName:          r.Get(ColCircuitName),
		CircuitType:          r.Get(ColCircuitType),
		GrandPrixID:          r.Get(ColGrandPrixID),
		CountryID:            r.Get(ColCountryID),
		Latitude:             strings.TrimSpace(r.Get(ColLatitude)),
		Longitude:            strings.TrimSpace(r.Get(ColLongitude)),
		DriverID:             r.Get(ColDriverID),
		ConstructorID:        r.Get(ColConstructorID),
		EngineManufacturerID: r.Get(ColEngineManufacturerID),
		TyreManufacturerID:   r.Get(ColTyreManufacturerID),
		GridPositionNumber:   optionalInt(r.Get(ColGridPositionNumber)),
		Laps:                 optionalInt(r.Get(ColLaps)),
		PositionText:         r.Get(ColPositionText),
		ReasonRetired:        r.Get(ColReasonRetired),
		TotalRaceStarts:      optionalInt(r.Get(ColTotalRaceStarts)),
	}
}

// parseInt понимает и "12", и "12.0": целые колонки с пропусками часто выгружаются как float.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func optionalInt(s string) *int {
	v, ok := parseInt(s)
	if !ok {
		return nil
	}
	return &v
}
