package evaluation

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var defaultDataset []byte

// Item is one question with its reference answer.
type Item struct {
	Question    string `yaml:"question"`
	GroundTruth string `yaml:"ground_truth"`
}

type datasetFile struct {
	Items []Item `yaml:"items"`
}

// DefaultDataset returns the built-in financial guide question set.
func DefaultDataset() ([]Item, error) {
	return ParseDataset(defaultDataset)
}

// LoadDataset reads a YAML dataset from path, or the built-in set when path
// is empty.
func LoadDataset(path string) ([]Item, error) {
	if path == "" {
		return DefaultDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset decodes a YAML document with a top-level items list. Every item
// needs a question.
func ParseDataset(data []byte) ([]Item, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("parse dataset: no items")
	}
	for i, item := range file.Items {
		if strings.TrimSpace(item.Question) == "" {
			return nil, fmt.Errorf("parse dataset: item %d has no question", i+1)
		}
	}
	return file.Items, nil
}
