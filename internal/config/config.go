package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"mediaplan/internal"
)

type Config struct {
	DBPath    string
	OutputDir string

	// HeaderMinCells is the minimum count of populated cells a row needs to
	// be declared the header row. Empirically tuned, kept overridable.
	HeaderMinCells int

	AdvertisingTax float64
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		HeaderMinCells: getEnvInt("HEADER_MIN_CELLS", 9),
		AdvertisingTax: getEnvFloat("ADVERTISING_TAX", 0.03),
	}

	return cfg, nil
}

type groupRules struct {
	Keywords []string `json:"keywords"`
	Priority []string `json:"priority"`
	Avoid    []string `json:"avoid"`
}

// LoadGroups reads the field-spec configuration. Output column order follows
// configuration order, so the JSON object is walked token by token instead of
// decoding into a map.
func LoadGroups(path string) ([]internal.FieldSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open groups config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse groups config: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("groups config: expected top-level object")
	}

	specs := []internal.FieldSpec{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse groups config: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("groups config: unexpected key %v", keyTok)
		}
		var rules groupRules
		if err := dec.Decode(&rules); err != nil {
			return nil, fmt.Errorf("groups config: field %q: %w", name, err)
		}
		specs = append(specs, internal.FieldSpec{
			Name:     name,
			Keywords: rules.Keywords,
			Priority: rules.Priority,
			Avoid:    rules.Avoid,
		})
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("groups config: no fields defined")
	}
	return specs, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
