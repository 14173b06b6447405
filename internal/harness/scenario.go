// Package harness provides a scenario runner for expansion conformance
// tests.
//
// A scenario pairs a stimulus config with its expected outcome - either
// the exact trace (as hex lines, the on-disk format) or a terminal
// error code. Scenarios can be declared inline in Go or loaded from
// YAML files, and traces can additionally be pinned with golden files.
package harness

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/hdlkit/vecgen/internal/compiler"
	"github.com/hdlkit/vecgen/internal/engine"
	"github.com/hdlkit/vecgen/internal/ir"
)

// Scenario defines one conformance test case.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named
	// after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Config is the raw stimulus config document, exactly as a user
	// would write it (sequence plus optional vector_size). It is
	// compiled through the standard schema/compile pipeline.
	Config map[string]any `yaml:"config,omitempty"`

	// Events is the pre-compiled form, used by scenarios declared in
	// Go. Ignored when Config is set.
	Events []ir.Event `yaml:"-"`

	// VectorSize pairs with Events; zero means the default width.
	VectorSize int `yaml:"-"`

	// Want holds the expected trace as lowercase hex lines.
	Want []string `yaml:"want,omitempty"`

	// WantError is the expected expansion error code (SEQUENCE_ORDER
	// or TIME_ORDER). Mutually exclusive with Want.
	WantError string `yaml:"want_error,omitempty"`
}

// Result captures a scenario execution.
type Result struct {
	Trace *engine.Trace
	Err   error
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("load scenario %s: name is required", path)
	}
	return &s, nil
}

// Run compiles the scenario's config (if any) and expands it. The
// expansion outcome, success or failure, lands in the Result; only
// scenario-level problems (an uncompilable config for a scenario that
// expected a trace) are returned as errors.
func Run(s *Scenario) (*Result, error) {
	events := s.Events
	vectorSize := s.VectorSize
	if vectorSize == 0 {
		vectorSize = compiler.DefaultVectorSize
	}

	if s.Config != nil {
		cfg, err := compileScenarioConfig(s.Config)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		events = cfg.Events
		vectorSize = cfg.VectorSize
	}

	trace, err := engine.Expand(events, vectorSize)
	return &Result{Trace: trace, Err: err}, nil
}

// compileScenarioConfig routes an in-memory config document through
// the same schema validation a config file gets.
func compileScenarioConfig(doc map[string]any) (*compiler.Config, error) {
	ctx := cuecontext.New()
	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return compiler.CompileConfig(v)
}
