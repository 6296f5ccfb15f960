package analytics

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

func intPtr(v int) *int { return &v }

func record(year int, circuit, team, reason string) models.RaceResult {
	return models.RaceResult{
		Year:          year,
		CircuitID:     circuit,
		GrandPrixID:   circuit + "-gp",
		ConstructorID: team,
		ReasonRetired: reason,
	}
}

func monzaSnapshot() *dataset.Snapshot {
	records := []models.RaceResult{
		{CircuitID: "monza", GrandPrixID: "italian-gp", Latitude: "45.62", Longitude: "9.28", CircuitType: "RACE", ReasonRetired: "engine"},
		{CircuitID: "monza", GrandPrixID: "italian-gp", Latitude: "45.62", Longitude: "9.28", CircuitType: "RACE", ReasonRetired: "engine"},
		{CircuitID: "monza", GrandPrixID: "italian-gp", Latitude: "45.62", Longitude: "9.28", CircuitType: "RACE"},
	}
	return dataset.NewSnapshot(records, map[string]int{"italian-gp": 1})
}

func TestCircuitDNF_Monza(t *testing.T) {
	summaries, err := CircuitDNF(monzaSnapshot(), DefaultCircuitOptions())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	monza := summaries[0]
	assert.Equal(t, "monza", monza.CircuitID)
	assert.Equal(t, "monza", monza.CircuitName)
	assert.Equal(t, "italian-gp", monza.Country)
	assert.Equal(t, "RACE", monza.CircuitType)
	assert.Equal(t, 3, monza.TotalRaces)
	assert.Equal(t, 2, monza.DNFCount)
	assert.InDelta(t, 10.0, monza.DNFPercentage, 1e-9)
	assert.Equal(t, []models.ReasonCount{{Reason: "engine", Count: 2}}, monza.TopReasons)
	require.NotNil(t, monza.Lat)
	assert.InDelta(t, 45.62, *monza.Lat, 1e-9)
	require.NotNil(t, monza.Lng)
	assert.InDelta(t, 9.28, *monza.Lng, 1e-9)

	body, err := json.Marshal(monza)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"topReasons":[["engine",2]]`)
	assert.Contains(t, string(body), `"dnfReasons":{"engine":2}`)
}

func TestCircuitDNF_Invariants(t *testing.T) {
	records := []models.RaceResult{
		record(2020, "monza", "ferrari", "engine"),
		record(2020, "spa", "ferrari", "gearbox"),
		record(2021, "monza", "mclaren", "brakes"),
		record(2021, "monza", "mclaren", "accident"),
		record(2021, "monza", "mclaren", "engine"),
		record(2022, "monza", "mclaren", "hydraulics"),
		record(2022, "spa", "mclaren", ""),
	}
	summaries, err := CircuitDNF(dataset.NewSnapshot(records, map[string]int{"monza-gp": 2}), DefaultCircuitOptions())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	for _, s := range summaries {
		assert.LessOrEqual(t, s.DNFCount, s.TotalRaces)
		assert.Equal(t, s.DNFCount, s.DNFReasons.Sum())
		assert.LessOrEqual(t, len(s.TopReasons), 3)
		for i := 1; i < len(s.TopReasons); i++ {
			assert.GreaterOrEqual(t, s.TopReasons[i-1].Count, s.TopReasons[i].Count)
		}
	}

	monza := summaries[0]
	assert.Equal(t, "monza", monza.CircuitID)
	assert.Equal(t, 5, monza.DNFCount)
	assert.InDelta(t, 12.5, monza.DNFPercentage, 1e-9)
	assert.Equal(t, []models.ReasonCount{
		{Reason: "engine", Count: 2},
		{Reason: "brakes", Count: 1},
		{Reason: "accident", Count: 1},
	}, monza.TopReasons)

	spa := summaries[1]
	assert.Equal(t, 2, spa.TotalRaces)
	assert.Equal(t, 1, spa.DNFCount)
	// Гран-при нет в справочнике: процент от записей трассы
	assert.InDelta(t, 50.0, spa.DNFPercentage, 1e-9)
	assert.Nil(t, spa.Lat)
	assert.Nil(t, spa.Lng)
	assert.Equal(t, Unknown, spa.CircuitType)
}

func TestCircuitDNF_PositionTextPredicate(t *testing.T) {
	records := []models.RaceResult{
		{CircuitID: "monza", ReasonRetired: "engine", PositionText: "DNF"},
		{CircuitID: "monza", ReasonRetired: "disqualified", PositionText: "DSQ"},
	}
	summaries, err := CircuitDNF(dataset.NewSnapshot(records, nil), CircuitOptions{DNFPositionText: "DNF"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].DNFCount)
	assert.Equal(t, 2, summaries[0].TotalRaces)
}

func TestCircuitDNF_InvalidCoordinate(t *testing.T) {
	records := []models.RaceResult{{CircuitID: "monza", Latitude: "north", ReasonRetired: "engine"}}
	_, err := CircuitDNF(dataset.NewSnapshot(records, nil), DefaultCircuitOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monza")
}

func TestProjectPCP(t *testing.T) {
	records := []models.RaceResult{
		{Year: 2020, CircuitID: "monza", CircuitType: "RACE", GridPositionNumber: intPtr(3), Laps: intPtr(10),
			ReasonRetired: "engine", ConstructorID: "ferrari", EngineManufacturerID: "ferrari", TyreManufacturerID: "pirelli", CountryID: "italy"},
		{Year: 2021, CircuitID: "spa"},
	}
	rows := ProjectPCP(dataset.NewSnapshot(records, nil))
	require.Len(t, rows, 2)

	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, 3, *rows[0].Grid)
	assert.Equal(t, "pirelli", rows[0].Tyre)
	assert.Equal(t, "italy", rows[0].Country)

	assert.Nil(t, rows[1].Grid)
	assert.Nil(t, rows[1].Laps)
	assert.Equal(t, Unknown, rows[1].CircuitType)
	assert.Equal(t, Unknown, rows[1].ReasonRetired)
	assert.Equal(t, Unknown, rows[1].Constructor)
	assert.Equal(t, Unknown, rows[1].Engine)
	assert.Equal(t, Unknown, rows[1].Tyre)
	assert.Equal(t, Unknown, rows[1].Country)

	body, err := json.Marshal(rows[1])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"grid":null`)
}

func TestFailureCauses(t *testing.T) {
	records := []models.RaceResult{
		record(2020, "monza", "ferrari", "engine"),
		record(2020, "monza", "ferrari", "engine"),
		record(2020, "monza", "ferrari", "gearbox"),
		record(2020, "monza", "ferrari", ""),
	}
	causes := FailureCauses(dataset.NewSnapshot(records, nil), models.FailureCauseFilter{})
	assert.Equal(t, []models.FailureCause{
		{Reason: "engine", Count: 2, Percentage: 66.7},
		{Reason: "gearbox", Count: 1, Percentage: 33.3},
	}, causes)
}

func TestFailureCauses_Filters(t *testing.T) {
	snap := dataset.NewSnapshot([]models.RaceResult{
		record(2020, "monza", "ferrari", "engine"),
		record(2021, "monza", "ferrari", "gearbox"),
		record(2021, "spa", "ferrari", "brakes"),
	}, nil)

	tests := []struct {
		name    string
		filter  models.FailureCauseFilter
		reasons []string
	}{
		{"no filter", models.FailureCauseFilter{}, []string{"engine", "gearbox", "brakes"}},
		{"all disables filters", models.FailureCauseFilter{Season: "all", CircuitID: "all"}, []string{"engine", "gearbox", "brakes"}},
		{"season", models.FailureCauseFilter{Season: "2021"}, []string{"gearbox", "brakes"}},
		{"season and circuit", models.FailureCauseFilter{Season: "2021", CircuitID: "spa"}, []string{"brakes"}},
		{"no match", models.FailureCauseFilter{Season: "1999"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			causes := FailureCauses(snap, tt.filter)
			reasons := make([]string, 0, len(causes))
			total := 0.0
			for _, c := range causes {
				reasons = append(reasons, c.Reason)
				total += c.Percentage
			}
			assert.ElementsMatch(t, tt.reasons, reasons)
			if len(causes) > 0 {
				assert.InDelta(t, 100, total, 0.5)
			}
		})
	}
}

func TestTeamReliability(t *testing.T) {
	var records []models.RaceResult
	for i := 0; i < 3; i++ {
		records = append(records, record(2020, "monza", "mercedes", "engine"))
	}
	for i := 0; i < 2; i++ {
		records = append(records, record(2021, "monza", "mercedes", "gearbox"))
	}
	for i := 0; i < 3; i++ {
		records = append(records, record(2022, "spa", "ferrari", "brakes"))
	}
	records = append(records, record(2019, "spa", "ferrari", "brakes"))
	snap := dataset.NewSnapshot(records, nil)

	result := TeamReliability(snap, models.TeamReliabilityFilters{})
	require.Len(t, result.Teams, 2)

	mercedes := result.Teams[0]
	assert.Equal(t, "mercedes", mercedes.Team)
	assert.Equal(t, 5, mercedes.Total)
	assert.Equal(t, 1.0, mercedes.AvgDNFsPerYear)
	assert.Equal(t, []string{"2020", "2021", "2022", "2023", "2024"}, mercedes.Years.Keys())
	assert.Equal(t, mercedes.Total, mercedes.Years.Sum())

	ferrari := result.Teams[1]
	assert.Equal(t, 3, ferrari.Total)
	assert.Equal(t, 0.6, ferrari.AvgDNFsPerYear)

	assert.Equal(t, models.TeamReliabilityStatistics{
		TotalDNFs:      8,
		AvgDNFsPerTeam: 4.0,
		TotalTeams:     2,
		SelectedYears:  DefaultSelectedYears(),
	}, result.Statistics)

	body, err := json.Marshal(mercedes)
	require.NoError(t, err)
	assert.JSONEq(t, `{"team":"mercedes","2020":3,"2021":2,"2022":0,"2023":0,"2024":0,"total":5,"avgDNFsPerYear":1}`, string(body))
}

func TestTeamReliability_Limit(t *testing.T) {
	var records []models.RaceResult
	for i := 0; i < 3; i++ {
		records = append(records, record(2020, "monza", "ferrari", "engine"))
	}
	for i := 0; i < 5; i++ {
		records = append(records, record(2020, "monza", "mercedes", "engine"))
	}

	result := TeamReliability(dataset.NewSnapshot(records, nil), models.TeamReliabilityFilters{
		SelectedYears: []string{"2020"},
		Limit:         1,
	})
	require.Len(t, result.Teams, 1)
	assert.Equal(t, "mercedes", result.Teams[0].Team)
	assert.Equal(t, 5, result.Teams[0].Total)
	assert.Equal(t, 1, result.Statistics.TotalTeams)
	assert.Equal(t, 5, result.Statistics.TotalDNFs)
	assert.Equal(t, 5.0, result.Statistics.AvgDNFsPerTeam)
}

func TestTeamReliability_Filters(t *testing.T) {
	snap := dataset.NewSnapshot([]models.RaceResult{
		record(2020, "monza", "ferrari", "engine"),
		record(2021, "monza", "ferrari", "engine"),
		record(2021, "monza", "mercedes", "engine"),
	}, nil)

	result := TeamReliability(snap, models.TeamReliabilityFilters{Season: "2021", Team: "ferrari", SelectedYears: []string{"2020", "2021"}})
	require.Len(t, result.Teams, 1)
	assert.Equal(t, 1, result.Teams[0].Total)
	c2020, _ := result.Teams[0].Years.Get("2020")
	assert.Equal(t, 0, c2020)
	assert.Equal(t, 0.5, result.Teams[0].AvgDNFsPerYear)
}

func TestDNFsOverTime(t *testing.T) {
	snap := dataset.NewSnapshot([]models.RaceResult{
		record(2021, "monza", "ferrari", "gearbox"),
		record(2020, "monza", "ferrari", "engine"),
		record(2021, "spa", "ferrari", "brakes"),
		record(2021, "spa", "ferrari", "brakes"),
	}, nil)

	assert.Equal(t, []models.YearDNFs{
		{Year: 2020, Count: 1, TopReason: "engine"},
		{Year: 2021, Count: 3, TopReason: "brakes"},
	}, DNFsOverTime(snap))
}

func TestDriverExperience(t *testing.T) {
	withDriver := func(driver, team, reason string, starts *int) models.RaceResult {
		r := record(2020, "monza", team, reason)
		r.DriverID = driver
		r.TotalRaceStarts = starts
		return r
	}
	snap := dataset.NewSnapshot([]models.RaceResult{
		withDriver("alonso", "renault", "engine", intPtr(100)),
		withDriver("alonso", "mclaren", "engine", intPtr(100)),
		withDriver("alonso", "mclaren", "gearbox", intPtr(100)),
		withDriver("rookie", "haas", "accident", nil),
		withDriver("", "haas", "accident", nil),
	}, nil)

	all := DriverExperience(snap, models.DriverExperienceFilter{})
	require.Len(t, all, 2)
	assert.Equal(t, models.DriverExperience{
		DriverID: "alonso", Team: "renault", DNFRaces: 3, TopReason: "engine", TotalRaces: 100, DNFRatio: 0.03,
	}, all[0])
	assert.Equal(t, 0, all[1].TotalRaces)
	assert.Equal(t, 0.0, all[1].DNFRatio)

	experienced := DriverExperience(snap, models.DriverExperienceFilter{MinDNFs: DefaultMinDriverDNFs})
	require.Len(t, experienced, 1)
	assert.Equal(t, "alonso", experienced[0].DriverID)

	assert.Empty(t, DriverExperience(snap, models.DriverExperienceFilter{Team: "mclaren"}))
}

func TestTyreVsEngine(t *testing.T) {
	withSuppliers := func(reason, tyre, engine string) models.RaceResult {
		r := record(2020, "monza", "team", reason)
		r.TyreManufacturerID = tyre
		r.EngineManufacturerID = engine
		return r
	}
	snap := dataset.NewSnapshot([]models.RaceResult{
		withSuppliers("Puncture", "pirelli", "honda"),
		withSuppliers("Wheel", "pirelli", "honda"),
		withSuppliers("Tyre", "", "honda"),
		withSuppliers("Engine", "pirelli", "renault"),
		withSuppliers("Oil leak", "pirelli", "renault"),
		withSuppliers("Power Unit", "pirelli", ""),
		withSuppliers("Accident", "pirelli", "honda"),
	}, nil)

	failures := TyreVsEngine(snap, 0)
	assert.Equal(t, []models.ManufacturerFailures{
		{Manufacturer: "pirelli", Count: 2},
		{Manufacturer: Unknown, Count: 1},
	}, failures.Tyre)
	assert.Equal(t, []models.ManufacturerFailures{
		{Manufacturer: "renault", Count: 2},
		{Manufacturer: Unknown, Count: 1},
	}, failures.Engine)

	limited := TyreVsEngine(snap, 1)
	assert.Len(t, limited.Tyre, 1)
	assert.Len(t, limited.Engine, 1)
}

func TestEmptySnapshot(t *testing.T) {
	snap := dataset.Empty()

	circuits, err := CircuitDNF(snap, DefaultCircuitOptions())
	require.NoError(t, err)
	assert.Empty(t, circuits)
	assert.NotNil(t, circuits)

	assert.Empty(t, ProjectPCP(snap))
	assert.Empty(t, FailureCauses(snap, models.FailureCauseFilter{}))
	assert.Empty(t, DNFsOverTime(snap))
	assert.Empty(t, DriverExperience(snap, models.DriverExperienceFilter{}))

	failures := TyreVsEngine(snap, 0)
	assert.Empty(t, failures.Tyre)
	assert.Empty(t, failures.Engine)

	result := TeamReliability(snap, models.TeamReliabilityFilters{})
	assert.Empty(t, result.Teams)
	assert.Equal(t, 0, result.Statistics.TotalTeams)
	assert.Equal(t, 0.0, result.Statistics.AvgDNFsPerTeam)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"teams":[]`)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 66.7, round1(200.0/3))
	assert.Equal(t, 33.3, round1(100.0/3))
	assert.Equal(t, 0.0, round1(0))
}
