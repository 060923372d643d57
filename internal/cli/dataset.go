package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDataset reads a dataset file: a YAML (or JSON, which YAML subsumes)
// list of records. An empty file yields an empty dataset.
func LoadDataset(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return records, nil
}
