package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-unifier-service/pkg/flightid"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OFFER_INDEX_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.OfferIndexTTL)
	assert.Equal(t, "flights.raw_batches", cfg.RawBatchQueue)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("READ_TIMEOUT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}

func TestParseTables_MergesOverDefaults(t *testing.T) {
	tables, err := ParseTables([]byte("airline_aliases:\n  qb: ir\ncabin_codes:\n  comfort: p\n"))
	require.NoError(t, err)

	n := flightid.NewNormalizer(tables)
	assert.Equal(t, "IR", n.AirlineCode("QB"))
	assert.Equal(t, "FK", n.AirlineCode("TKN"))
	assert.Equal(t, flightid.CabinPremiumEconomy, n.CabinCode("Comfort"))
}

func TestParseTables_Invalid(t *testing.T) {
	_, err := ParseTables([]byte("airline_aliases: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.Equal(t, flightid.DefaultTables(), tables)

	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("airline_aliases:\n  XX: W5\n"), 0o600))
	tables, err = LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, "W5", tables.AirlineAliases["XX"])

	_, err = LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
