package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/logger"
)

const patehRaw = `{"data": [
  {"id": "p-1", "depart": [{"origin": "THR", "destination": "KIH", "flight_datetime": "2025-12-20 06:15:00",
    "arrival_datetime": "2025-12-20 08:10:00", "flight_no": "TKN3102", "available_seat_quantity": 4,
    "airline_info": {"name_en": "Taftan"}}],
   "finance": {"adult": {"fare": 31000000}}},
  {"id": "p-2", "depart": [{"origin": "THR", "destination": "KIH", "flight_datetime": "2025-12-20 09:00:00",
    "flight_no": "TKN3104", "available_seat_quantity": 0, "airline_info": {"name_en": "Taftan"}}],
   "finance": {"adult": {"fare": 31000000}}}
]}`

func writeInput(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_WritesValidRecords(t *testing.T) {
	in := writeInput(t, patehRaw)
	out := filepath.Join(t.TempDir(), "unified.json")
	var stdout bytes.Buffer

	require.NoError(t, run([]string{"-provider", "pateh", "-in", in, "-out", out}, &stdout, logger.NewNopLogger()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var records []entity.UnifiedFlight
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "THRKIH20251220FK31020615", records[0].BaseFlightID)
	assert.Equal(t, entity.ProviderPateh, records[0].ProviderSource)

	assert.Contains(t, stdout.String(), "pateh: 2 raw, 2 converted, 0 skipped, 1 dropped, 1 written")
}

func TestRun_Errors(t *testing.T) {
	in := writeInput(t, `{"data": []}`)
	var stdout bytes.Buffer

	err := run([]string{"-provider", "kayak", "-in", in}, &stdout, logger.NewNopLogger())
	assert.ErrorIs(t, err, converter.ErrUnknownProvider)

	err = run([]string{"-in", in}, &stdout, logger.NewNopLogger())
	assert.Error(t, err)

	err = run([]string{"-provider", "pateh", "-in", writeInput(t, "{")}, &stdout, logger.NewNopLogger())
	assert.Error(t, err)
}
