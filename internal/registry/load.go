package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// catalogueFile is the on-disk override format. With replace=false (default),
// entries are merged over the built-in table by key; with replace=true the
// built-in table is discarded entirely.
type catalogueFile struct {
	Replace   bool           `json:"replace"`
	Nutrients []NutrientSpec `json:"nutrients"`
}

// Load builds a registry, optionally applying a JSON catalogue override file.
// An empty path returns the built-in registry.
func Load(path string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return New(logger)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue %s: %w", path, err)
	}
	if err := ValidateJSONAgainstSchema(BuildCatalogueJSONSchema(), data); err != nil {
		return nil, fmt.Errorf("validate catalogue %s: %w", path, err)
	}
	var cf catalogueFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalogue %s: %w", path, err)
	}

	specs := cf.Nutrients
	if !cf.Replace {
		specs = mergeSpecs(builtinSpecs(), cf.Nutrients)
	}
	logger.Info("loaded nutrient catalogue", "path", path, "replace", cf.Replace, "entries", len(specs))
	return NewFromSpecs(specs, logger)
}

// mergeSpecs overlays overrides onto base by key, appending new keys in order.
func mergeSpecs(base, overrides []NutrientSpec) []NutrientSpec {
	byKey := make(map[string]int, len(base))
	out := make([]NutrientSpec, len(base))
	copy(out, base)
	for i, s := range out {
		byKey[s.Key] = i
	}
	for _, o := range overrides {
		if i, ok := byKey[o.Key]; ok {
			out[i] = o
			continue
		}
		byKey[o.Key] = len(out)
		out = append(out, o)
	}
	return out
}
