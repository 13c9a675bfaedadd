package dataset

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifest []byte

// Meta describes one benchmark dataset.
type Meta struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	// Columns are the zero-based CSV column indices to load.
	Columns []int `yaml:"columns"`
	// Discrete holds indices within Columns that hold categorical values.
	Discrete []int `yaml:"discrete"`
	// Missing lists cell values to treat as missing, on top of '?' and ''.
	Missing []string `yaml:"missing"`
}

type registry struct {
	Datasets []Meta `yaml:"datasets"`
}

var datasets map[string]Meta

func init() {
	var reg registry
	if err := yaml.Unmarshal(manifest, &reg); err != nil {
		panic(fmt.Sprintf("could not parse dataset manifest: %v", err))
	}
	datasets = make(map[string]Meta, len(reg.Datasets))
	for _, meta := range reg.Datasets {
		datasets[meta.Name] = meta
	}
}

// Lookup returns the metadata for the given dataset name.
func Lookup(name string) (Meta, error) {
	meta, ok := datasets[name]
	if !ok {
		return Meta{}, fmt.Errorf("unknown dataset %q, expected one of %v", name, Names())
	}
	return meta, nil
}

// Names returns the sorted names of all supported datasets.
func Names() []string {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDiscrete reports whether the i-th loaded column is categorical.
func (m Meta) IsDiscrete(i int) bool {
	for _, d := range m.Discrete {
		if d == i {
			return true
		}
	}
	return false
}
