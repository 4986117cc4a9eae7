package infrastructure

import (
	"fmt"
	"os"

	"adsplanner/internal/domain"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Lists []domain.NegativeKeywordList `yaml:"lists"`
}

// LoadNegativeLists reads seed lists from a YAML file. An empty path yields
// the built-in universal lists; a named file must exist. Lists without an id
// get a generated one.
func LoadNegativeLists(path string) ([]domain.NegativeKeywordList, error) {
	if path == "" {
		return domain.DefaultNegativeLists(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read negative lists: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse negative lists: %v", domain.ErrInvalidInput, err)
	}

	seen := make(map[string]bool, len(seed.Lists))
	for i := range seed.Lists {
		list := &seed.Lists[i]
		if list.Name == "" {
			return nil, fmt.Errorf("%w: negative list %d has no name", domain.ErrInvalidInput, i+1)
		}
		if list.ID == "" {
			list.ID = uuid.NewString()
		}
		if seen[list.ID] {
			return nil, fmt.Errorf("%w: duplicate negative list id %q", domain.ErrInvalidInput, list.ID)
		}
		seen[list.ID] = true
	}
	return seed.Lists, nil
}
