package vertical

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// tableFile is the on-disk shape of a keyword table override. Entry order in
// the file defines resolution order.
type tableFile struct {
	Verticals []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"verticals"`
}

// LoadTable reads an ordered keyword table from a YAML file. An unreadable
// or malformed file is a configuration error.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vertical table: %w", err)
	}

	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing vertical table: %w", err)
	}

	if len(f.Verticals) == 0 {
		return nil, fmt.Errorf("vertical table %s defines no verticals", path)
	}

	t := &Table{Keywords: make(map[roster.Vertical][]string, len(f.Verticals))}
	for _, entry := range f.Verticals {
		v := roster.Vertical(entry.Name)
		t.Order = append(t.Order, v)
		t.Keywords[v] = entry.Keywords
	}
	return t, nil
}
