package catalog

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/insurehub/insurehub/internal/domain"
)

//go:embed data/plans.yaml
var defaultData embed.FS

// catalogFile is the YAML structure for a catalog file
type catalogFile struct {
	Plans []domain.Plan `yaml:"plans"`
}

// Load reads a catalog from the YAML file at path. An empty path loads the
// embedded default dataset.
func Load(path string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = defaultData.ReadFile("data/plans.yaml")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	seen := make(map[int]bool, len(file.Plans))
	for _, p := range file.Plans {
		if p.ID <= 0 {
			return nil, fmt.Errorf("plan %q has invalid id %d", p.Provider, p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate plan id %d", p.ID)
		}
		seen[p.ID] = true
	}

	return New(file.Plans), nil
}
