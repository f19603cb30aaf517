// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/onestroke/internal/games/onestroke/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     int               `yaml:"size"`
	Rows     []string          `yaml:"rows"`
	Solution [][]int           `yaml:"solution,omitempty,flow"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Pattern  *core.Pattern
	Solution []core.Coord // Optional known stroke; nil when the file has none
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	pattern, err := core.ParseRows(yl.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}
	if yl.Size != 0 && yl.Size != pattern.Size() {
		return Level{}, fmt.Errorf("level %s: size %d does not match %d rows", yl.ID, yl.Size, pattern.Size())
	}

	var solution []core.Coord
	if len(yl.Solution) > 0 {
		solution = make([]core.Coord, 0, len(yl.Solution))
		for i, pair := range yl.Solution {
			if len(pair) != 2 {
				return Level{}, fmt.Errorf("level %s: solution step %d is not [x, y]", yl.ID, i+1)
			}
			solution = append(solution, core.C(pair[0], pair[1]))
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:       yl.ID,
		Name:     name,
		Pattern:  pattern,
		Solution: solution,
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML encodes a level in the format ParseYAML reads.
func MarshalYAML(l Level) ([]byte, error) {
	if l.Pattern == nil {
		return nil, fmt.Errorf("level %s has no pattern", l.ID)
	}
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Size:     l.Pattern.Size(),
		Rows:     l.Pattern.Rows(),
		Metadata: l.Metadata,
	}
	for _, c := range l.Solution {
		yl.Solution = append(yl.Solution, []int{c.X, c.Y})
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
