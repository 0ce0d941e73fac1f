package benchmarks

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sprinflow/indices/internal/domain/model"
)

// entry mirrors one benchmark document in the YAML file.
type entry struct {
	ExerciseID   string  `koanf:"exercise_id"`
	Name         string  `koanf:"name"`
	Category     string  `koanf:"category"`
	Direction    string  `koanf:"direction"`
	Intermediate float64 `koanf:"intermediate"`
	Advanced     float64 `koanf:"advanced"`
	Elite        float64 `koanf:"elite"`
}

// Load reads a benchmark table from a YAML file of the form:
//
//	benchmarks:
//	  - exercise_id: back_squat
//	    name: Squat arrière
//	    category: muscu_bas
//	    intermediate: 1.5
//	    advanced: 2.0
//	    elite: 2.5
//
// Entries failing tier validation are excluded and returned for logging;
// only a file-level failure is an error.
func Load(path string) (*Table, []Invalid, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}

	var doc struct {
		Benchmarks []entry `koanf:"benchmarks"`
	}
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}
	if len(doc.Benchmarks) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: no benchmarks", ErrLoadTable, path)
	}

	entries := make([]model.Benchmark, 0, len(doc.Benchmarks))
	for _, e := range doc.Benchmarks {
		entries = append(entries, model.Benchmark{
			ExerciseID:   e.ExerciseID,
			Name:         e.Name,
			Category:     model.Category(e.Category),
			Direction:    model.Direction(e.Direction),
			Intermediate: e.Intermediate,
			Advanced:     e.Advanced,
			Elite:        e.Elite,
		})
	}

	table, rejected := NewTable(entries)
	return table, rejected, nil
}
