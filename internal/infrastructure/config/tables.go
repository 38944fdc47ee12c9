package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"flight-unifier-service/pkg/flightid"
)

// LoadTables returns the built-in normalization tables, with the YAML file
// at path layered on top when path is set.
//
//	airline_aliases:
//	  TKN: FK
//	cabin_codes:
//	  ECONOMY: E
func LoadTables(path string) (flightid.Tables, error) {
	tables := flightid.DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("read tables file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables merges YAML table data over the built-in tables
func ParseTables(data []byte) (flightid.Tables, error) {
	tables := flightid.DefaultTables()

	var override flightid.Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tables, fmt.Errorf("parse tables: %w", err)
	}
	return tables.Merge(override), nil
}
