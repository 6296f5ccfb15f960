package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, data string) *Frame {
	t.Helper()
	f, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	return f
}

func TestReadCSV(t *testing.T) {
	f := mustFrame(t, "\ufeffraceId,year\n1,2020\n2,2021\n")

	assert.Equal(t, []string{"raceId", "year"}, f.Columns())
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, "2021", f.Row(1).Get("year"))
	assert.Equal(t, "", f.Row(1).Get("missing"))
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

func TestDropMissing(t *testing.T) {
	f := mustFrame(t, "driverId,reasonRetired\na,engine\nb,\nc,  \nd,gearbox\n")

	out, err := f.DropMissing("reasonRetired")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, "d", out.Row(1).Get("driverId"))
	assert.Equal(t, 4, f.Len(), "source frame must stay untouched")

	_, err = f.DropMissing("nope")
	assert.Error(t, err)
}

func TestDropIncompleteColumns(t *testing.T) {
	f := mustFrame(t, "a,b,c\n1,,x\n2,5,y\n")

	out, dropped := f.DropIncompleteColumns()
	assert.Equal(t, []string{"a", "c"}, out.Columns())
	assert.Equal(t, []string{"b"}, dropped)
	assert.Equal(t, "y", out.Row(1).Get("c"))
}

func TestLeftJoin(t *testing.T) {
	left := mustFrame(t, "raceId,driverId\n1,a\n2,b\n3,c\n")
	right := mustFrame(t, "id,circuitId,grandPrixId\n1,monza,italy\n2,spa,belgium\n1,dup,dup\n")

	out, err := left.LeftJoin(right, "raceId", "id", []string{"circuitId", "grandPrixId"})
	require.NoError(t, err)

	assert.Equal(t, []string{"raceId", "driverId", "circuitId", "grandPrixId"}, out.Columns())
	assert.Equal(t, "monza", out.Row(0).Get("circuitId"), "first duplicate wins")
	assert.Equal(t, "belgium", out.Row(1).Get("grandPrixId"))
	assert.Equal(t, "", out.Row(2).Get("circuitId"), "unmatched rows get empty values")
}

func TestLeftJoin_ExistingColumnsKept(t *testing.T) {
	left := mustFrame(t, "raceId,circuitId\n1,own\n")
	right := mustFrame(t, "raceId,circuitId\n1,theirs\n")

	out, err := left.LeftJoin(right, "raceId", "raceId", []string{"circuitId"})
	require.NoError(t, err)
	assert.Equal(t, []string{"raceId", "circuitId"}, out.Columns())
	assert.Equal(t, "own", out.Row(0).Get("circuitId"))
}

func TestLeftJoin_KeyMismatch(t *testing.T) {
	left := mustFrame(t, "raceId\n1\n")
	right := mustFrame(t, "id,circuitId\n1,monza\n")

	_, err := left.LeftJoin(right, "circuitId", "id", []string{"circuitId"})
	assert.Error(t, err)

	_, err = left.LeftJoin(right, "raceId", "raceId", []string{"circuitId"})
	assert.Error(t, err)

	_, err = left.LeftJoin(right, "raceId", "id", []string{"latitude"})
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	f := mustFrame(t, "year,tyreManufacturerId\n2014,pirelli\n2015,pirelli\n2015,\n")

	out, changed, err := f.Update("tyreManufacturerId", "bridgestone", func(r Row) bool {
		return r.Get("year") == "2015"
	})
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, "pirelli", out.Row(0).Get("tyreManufacturerId"))
	assert.Equal(t, "bridgestone", out.Row(2).Get("tyreManufacturerId"))
	assert.Equal(t, "pirelli", f.Row(1).Get("tyreManufacturerId"), "source frame must stay untouched")

	_, _, err = f.Update("nope", "x", func(Row) bool { return true })
	assert.Error(t, err)
}

func TestValueCounts(t *testing.T) {
	f := mustFrame(t, "grandPrixId\nitaly\nitaly\nbelgium\n\n")

	counts, err := f.ValueCounts("grandPrixId")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"italy": 2, "belgium": 1}, counts)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	f := mustFrame(t, "a,b\n1,\"x,y\"\n")

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())
}
