// Package scenario loads declarative evidence scenarios from TOML files and
// compiles them into a frame, mass functions, and an inference engine.
//
// A scenario names the slots of the hypothesis space, the witnesses (each a
// list of weighted claims over those slots), the combination method, and a
// set of named queries to evaluate.
package scenario

import (
	"github.com/spf13/viper"

	"github.com/opensift/credence/errors"
	"github.com/opensift/credence/frame"
	"github.com/opensift/credence/fuse"
	"github.com/opensift/credence/mass"
)

// Scenario is the top-level document shape of a scenario file.
type Scenario struct {
	Method    string    `mapstructure:"method"`
	Slots     []Slot    `mapstructure:"slots"`
	Witnesses []Witness `mapstructure:"witnesses"`
	Queries   []Query   `mapstructure:"queries"`
}

// Slot declares one attribute of the hypothesis space and its alphabet.
type Slot struct {
	Name    string   `mapstructure:"name"`
	Options []string `mapstructure:"options"`
}

// Witness is one evidence source: a list of weighted claims that must sum
// to 1.
type Witness struct {
	Name   string  `mapstructure:"name"`
	Claims []Claim `mapstructure:"claims"`
}

// Claim is one focal element of a witness: a weight plus, per slot name, the
// allowed options. A claim with no allow table commits its weight to total
// ignorance.
type Claim struct {
	Weight float64             `mapstructure:"weight"`
	Allow  map[string][]string `mapstructure:"allow"`
}

// Query names a constraint to evaluate against the combined evidence.
type Query struct {
	Name  string              `mapstructure:"name"`
	Allow map[string][]string `mapstructure:"allow"`
}

// Load reads a scenario file from disk.
func Load(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	return &s, nil
}

// Compiled is a scenario bound to concrete engine types, ready to query.
type Compiled struct {
	Frame   *frame.Frame
	Engine  *fuse.Engine
	Queries []CompiledQuery
}

// CompiledQuery pairs a query name with its constraint.
type CompiledQuery struct {
	Name       string
	Constraint frame.Constraint
}

// SlotIndex returns the index of the named slot, or an error when the
// scenario declares no such slot.
func (s *Scenario) SlotIndex(name string) (int, error) {
	for i, slot := range s.Slots {
		if slot.Name == name {
			return i, nil
		}
	}
	return 0, errors.Configurationf("unknown slot %q", name)
}

// Build compiles the scenario: the frame from the slot declarations, one
// validated mass function per witness, and an engine with the declared
// combination method. Engine options (seed, workers, logger) pass through.
func (s *Scenario) Build(opts ...fuse.Option) (*Compiled, error) {
	if len(s.Slots) == 0 {
		return nil, errors.Configurationf("scenario declares no slots")
	}
	names := make(map[string]bool, len(s.Slots))
	alphabets := make([][]string, len(s.Slots))
	for i, slot := range s.Slots {
		if slot.Name == "" {
			return nil, errors.Configurationf("slot %d has no name", i)
		}
		if names[slot.Name] {
			return nil, errors.Configurationf("duplicate slot %q", slot.Name)
		}
		names[slot.Name] = true
		alphabets[i] = slot.Options
	}

	f, err := frame.New(alphabets...)
	if err != nil {
		return nil, err
	}

	method, err := fuse.ParseMethod(s.Method)
	if err != nil {
		return nil, err
	}
	engine, err := fuse.New(method, opts...)
	if err != nil {
		return nil, err
	}

	for _, w := range s.Witnesses {
		m := mass.New()
		for _, claim := range w.Claims {
			c, err := s.constraint(f, claim.Allow)
			if err != nil {
				return nil, errors.Wrapf(err, "witness %q", w.Name)
			}
			if err := m.Add(c, claim.Weight); err != nil {
				return nil, errors.Wrapf(err, "witness %q", w.Name)
			}
		}
		if err := engine.AddMass(m); err != nil {
			return nil, errors.Wrapf(err, "witness %q", w.Name)
		}
	}

	compiled := &Compiled{Frame: f, Engine: engine}
	for _, q := range s.Queries {
		c, err := s.constraint(f, q.Allow)
		if err != nil {
			return nil, errors.Wrapf(err, "query %q", q.Name)
		}
		compiled.Queries = append(compiled.Queries, CompiledQuery{Name: q.Name, Constraint: c})
	}
	return compiled, nil
}

// constraint translates a slot-name → allowed-options table into a frame
// constraint. An empty table yields the universal constraint.
func (s *Scenario) constraint(f *frame.Frame, allow map[string][]string) (frame.Constraint, error) {
	terms := make([]frame.Term, 0, len(allow))
	// Iterate declared slots, not the map, for deterministic error order.
	for i, slot := range s.Slots {
		labels, ok := allow[slot.Name]
		if !ok {
			continue
		}
		terms = append(terms, frame.Allow(i, labels...))
	}
	for name := range allow {
		if _, err := s.SlotIndex(name); err != nil {
			return frame.Constraint{}, err
		}
	}
	return f.NewConstraint(terms...)
}
