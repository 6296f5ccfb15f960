package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// RaceResult представляет одну запись "пилот в гонке" после всех join'ов
type RaceResult struct {
	RaceID               string `json:"raceId"`
	Year                 int    `json:"year"`
	CircuitID            string `json:"circuitId"`
	CircuitName          string `json:"circuitName,omitempty"`
	CircuitType          string `json:"circuitType,omitempty"`
	GrandPrixID          string `json:"grandPrixId"`
	CountryID            string `json:"countryId,omitempty"`
	Latitude             string `json:"latitude,omitempty"`  // сырое значение, парсится при запросе
	Longitude            string `json:"longitude,omitempty"` // сырое значение, парсится при запросе
	DriverID             string `json:"driverId"`
	ConstructorID        string `json:"constructorId"`
	EngineManufacturerID string `json:"engineManufacturerId,omitempty"`
	TyreManufacturerID   string `json:"tyreManufacturerId,omitempty"`
	GridPositionNumber   *int   `json:"gridPositionNumber,omitempty"`
	Laps                 *int   `json:"laps,omitempty"`
	PositionText         string `json:"positionText,omitempty"`
	ReasonRetired        string `json:"reasonRetired,omitempty"`
	TotalRaceStarts      *int   `json:"totalRaceStarts,omitempty"`
}

// YearString возвращает год в строковом виде для сравнения с фильтрами запроса
func (r RaceResult) YearString() string {
	return strconv.Itoa(r.Year)
}

// ReasonCount пара "причина схода - количество".
// Сериализуется как JSON массив [reason, count].
type ReasonCount struct {
	Reason string
	Count  int
}

// MarshalJSON кодирует пару как двухэлементный массив
func (rc ReasonCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{rc.Reason, rc.Count})
}

// UnmarshalJSON декодирует двухэлементный массив
func (rc *ReasonCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("reason count: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &rc.Reason); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &rc.Count)
}

// CircuitSummary агрегат по трассе
type CircuitSummary struct {
	CircuitID     string        `json:"circuitId"`
	CircuitName   string        `json:"circuitName"`
	Lat           *float64      `json:"lat"`
	Lng           *float64      `json:"lng"`
	Country       string        `json:"country"`
	CircuitType   string        `json:"circuitType"`
	TotalRaces    int           `json:"totalRaces"`
	DNFCount      int           `json:"dnfCount"`
	DNFReasons    *CountMap     `json:"dnfReasons"`
	DNFPercentage float64       `json:"dnfPercentage"`
	TopReasons    []ReasonCount `json:"topReasons"`
}

// PCPRow строка для графика параллельных координат
type PCPRow struct {
	Year          int    `json:"year"`
	CircuitID     string `json:"circuitId"`
	CircuitType   string `json:"circuitType"`
	Grid          *int   `json:"grid"`
	Laps          *int   `json:"laps"`
	ReasonRetired string `json:"reasonRetired"`
	Constructor   string `json:"constructor"`
	Engine        string `json:"engine"`
	Tyre          string `json:"tyre"`
	Country       string `json:"country"`
}

// FailureCause доля причины схода
type FailureCause struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FailureCauseFilter фильтры запроса разбивки причин
type FailureCauseFilter struct {
	Season    string `validate:"omitempty,max=16"`
	CircuitID string `validate:"omitempty,max=64"`
}

// TeamReliabilityFilters фильтры из тела запроса надежности команд
type TeamReliabilityFilters struct {
	Season        string   `json:"season" validate:"omitempty,max=16"`
	Team          string   `json:"team" validate:"omitempty,max=64"`
	SelectedYears []string `json:"selectedYears" validate:"omitempty,max=100,dive,numeric"`
	Limit         int      `json:"limit" validate:"gte=0"`
}

// TeamReliabilityRequest тело POST /api/team-reliability
type TeamReliabilityRequest struct {
	Filters TeamReliabilityFilters `json:"filters"`
}

// TeamReliability сходы команды по выбранным годам.
// Поля по годам сериализуются как отдельные ключи объекта.
type TeamReliability struct {
	Team           string
	Years          *CountMap
	Total          int
	AvgDNFsPerYear float64
}

// MarshalJSON раскладывает годы на верхний уровень объекта: {"team":..,"2020":3,..,"total":..}
func (t TeamReliability) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, "team", t.Team)
	if t.Years != nil {
		for _, year := range t.Years.Keys() {
			count, _ := t.Years.Get(year)
			buf.WriteByte(',')
			writeField(&buf, year, count)
		}
	}
	buf.WriteByte(',')
	writeField(&buf, "total", t.Total)
	buf.WriteByte(',')
	writeField(&buf, "avgDNFsPerYear", t.AvgDNFsPerYear)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, value any) {
	k, _ := json.Marshal(key)
	v, _ := json.Marshal(value)
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
}

// TeamReliabilityStatistics сводная статистика по возвращенным командам
type TeamReliabilityStatistics struct {
	TotalDNFs      int      `json:"totalDNFs"`
	AvgDNFsPerTeam float64  `json:"avgDNFsPerTeam"`
	TotalTeams     int      `json:"totalTeams"`
	SelectedYears  []string `json:"selectedYears"`
}

// TeamReliabilityResult ответ надежности команд
type TeamReliabilityResult struct {
	Teams      []TeamReliability         `json:"teams"`
	Statistics TeamReliabilityStatistics `json:"statistics"`
}

// YearDNFs число сходов за сезон и самая частая причина
type YearDNFs struct {
	Year      int    `json:"year"`
	Count     int    `json:"count"`
	TopReason string `json:"topReason"`
}

// DriverExperience опыт пилота против числа сходов
type DriverExperience struct {
	DriverID   string  `json:"driverId"`
	Team       string  `json:"team"`
	DNFRaces   int     `json:"dnfRaces"`
	TopReason  string  `json:"topReason"`
	TotalRaces int     `json:"totalRaces"`
	DNFRatio   float64 `json:"dnfRatio"`
}

// DriverExperienceFilter фильтры запроса опыта пилотов
type DriverExperienceFilter struct {
	Team    string `validate:"omitempty,max=64"`
	MinDNFs int    `validate:"gte=0"`
}

// ManufacturerFailures число отказов по производителю
type ManufacturerFailures struct {
	Manufacturer string `json:"manufacturer"`
	Count        int    `json:"count"`
}

// TyreEngineFailures отказы шин и двигателей по производителям
type TyreEngineFailures struct {
	Tyre   []ManufacturerFailures `json:"tyre"`
	Engine []ManufacturerFailures `json:"engine"`
}

// Response конверт успешного ответа API
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// ErrorResponse конверт ошибки API
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
