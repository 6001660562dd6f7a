package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/mpmap/mpath"
)

// File is the content of a mapping file.
type File struct {
	Mappings []FileMapping `yaml:"mappings" json:"mappings"`
}

type FileMapping struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Load reads a YAML or JSON mapping file and compiles its mappings,
// using c for the source queries. c may be nil.
func Load(data []byte, c *mpath.Cache) ([]Mapping, error) {
	f := &File{}
	if err := yaml.UnmarshalWithOptions(data, f, yaml.Strict()); err != nil {
		return nil, err
	}
	if len(f.Mappings) == 0 {
		return nil, errNoMappings
	}
	res := make([]Mapping, 0, len(f.Mappings))
	for i, fm := range f.Mappings {
		m, err := NewCached(c, fm.Source, fm.Target)
		if err != nil {
			return nil, fmt.Errorf("mapping %d: %w", i, err)
		}
		res = append(res, m)
	}
	return res, nil
}

// Parse parses a mapping written as source=target, for example
// "$.a.b=$.c".
func Parse(s string, c *mpath.Cache) (Mapping, error) {
	var err error
	for i := 0; ; i++ {
		j := strings.Index(s[i:], "=$")
		if j == -1 {
			break
		}
		i += j
		var m Mapping
		m, err = NewCached(c, s[:i], s[i+1:])
		if err == nil {
			return m, nil
		}
	}
	if err == nil {
		err = errors.New("expected <source>=<target>")
	}
	return Mapping{}, fmt.Errorf("%w: %q: %w", ErrInvalidArgument, s, err)
}

// Marshal returns the mapping file content listing mappings.
func Marshal(mappings []Mapping) ([]byte, error) {
	if len(mappings) == 0 {
		return nil, errNoMappings
	}
	f := &File{Mappings: make([]FileMapping, len(mappings))}
	for i, m := range mappings {
		if m.source == nil {
			return nil, fmt.Errorf("%w: mapping %d has no source query", ErrInvalidArgument, i)
		}
		f.Mappings[i] = FileMapping{Source: m.source.String(), Target: m.target.String()}
	}
	return yaml.Marshal(f)
}
