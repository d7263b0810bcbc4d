// Package scenario replays scripted editor steps against a session.
//
// A scenario is a YAML document naming an alphabet size and a list of steps. Each
// step is what the interactive editor would do: add a state, draw a transition,
// toggle acceptance, test a word. States are referred to by label. A scenario
// never describes a saved automaton; it only replays edits.
//
//	alphabet: 2
//	steps:
//	  - {op: state, label: s}
//	  - {op: state, label: f}
//	  - {op: final, state: f}
//	  - {op: transition, from: s, to: f, symbol: a}
//	  - {op: test, word: a, expect: accept}
//	  - {op: expression, text: "(a+b)*", expect: valid}
package scenario

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Scenario is a decoded script.
type Scenario struct {
	Name     string
	Alphabet int
	Steps    []Step
}

type file struct {
	Name     string           `yaml:"name"`
	Alphabet int              `yaml:"alphabet"`
	Steps    []map[string]any `yaml:"steps"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Read parses a scenario from r.
func Read(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	sc := &Scenario{Name: f.Name, Alphabet: f.Alphabet, Steps: make([]Step, 0, len(f.Steps))}
	for i, raw := range f.Steps {
		step, err := decodeStep(raw)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		sc.Steps = append(sc.Steps, step)
	}
	return sc, nil
}

func decodeStep(raw map[string]any) (Step, error) {
	op, _ := raw["op"].(string)
	newStep, ok := registry[op]
	if !ok {
		return nil, fmt.Errorf("unknown op %q", op)
	}

	step := newStep()
	args := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "op" {
			args[k] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           step,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(args); err != nil {
		return nil, fmt.Errorf("op %q: %w", op, err)
	}
	if v, ok := step.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("op %q: %w", op, err)
		}
	}
	return step, nil
}
