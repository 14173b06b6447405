package compiler

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/hdlkit/vecgen/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// DefaultVectorSize is the advisory vector width used when a config
// does not specify one.
const DefaultVectorSize = 32

// Config is a compiled stimulus configuration: the typed event
// sequence plus the advisory vector width.
type Config struct {
	Events     []ir.Event
	VectorSize int
}

// Schema compiles the embedded config schema in the given context and
// returns the #Config definition.
func Schema(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return cue.Value{}, fmt.Errorf("compile schema: #Config not found")
	}
	return def, nil
}

// CompileConfig validates a raw config document against the schema and
// compiles it into typed events. All validation errors are collected
// and returned together as a ValidationErrors value; a nil error means
// the config is fully valid.
func CompileConfig(v cue.Value) (*Config, error) {
	if errs := validateSchema(v); len(errs) > 0 {
		return nil, errs
	}

	var errs ValidationErrors
	cfg := &Config{VectorSize: DefaultVectorSize}

	if vs := v.LookupPath(cue.ParsePath("vector_size")); vs.Exists() {
		size, err := vs.Int64()
		if err != nil || size <= 0 {
			errs = append(errs, ValidationError{
				Field:   "vector_size",
				Message: "must be a positive integer",
				Code:    ErrConfigVectorSize,
			})
		} else {
			cfg.VectorSize = int(size)
		}
	}

	seq := v.LookupPath(cue.ParsePath("sequence"))
	if !seq.Exists() {
		errs = append(errs, ValidationError{
			Field:   "sequence",
			Message: "sequence is required",
			Code:    ErrConfigNoSequence,
		})
		return nil, errs
	}

	iter, err := seq.List()
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   "sequence",
			Message: "sequence must be a list of events",
			Code:    ErrConfigNoSequence,
		})
		return nil, errs
	}

	idx := 0
	for iter.Next() {
		ev, evErrs := compileEvent(iter.Value(), idx)
		if len(evErrs) > 0 {
			errs = append(errs, evErrs...)
		} else {
			cfg.Events = append(cfg.Events, ev)
		}
		idx++
	}

	if idx == 0 {
		errs = append(errs, ValidationError{
			Field:   "sequence",
			Message: "sequence must not be empty",
			Code:    ErrConfigNoSequence,
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// validateSchema unifies the document with the embedded schema and
// converts any unification failures into validation errors.
func validateSchema(v cue.Value) ValidationErrors {
	schema, err := Schema(v.Context())
	if err != nil {
		return ValidationErrors{{
			Field:   "config",
			Message: err.Error(),
			Code:    ErrConfigSchema,
		}}
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			field := strings.Join(cueerrors.Path(e), ".")
			if field == "" {
				field = "config"
			}
			errs = append(errs, ValidationError{
				Field:   field,
				Message: e.Error(),
				Code:    ErrConfigSchema,
			})
		}
		return errs
	}
	return nil
}

// compileEvent extracts one typed event from a validated list element.
// The schema has already rejected malformed shapes; the checks here
// produce precise field-level errors if extraction still fails.
func compileEvent(v cue.Value, idx int) (ir.Event, ValidationErrors) {
	field := func(name string) string {
		return fmt.Sprintf("sequence[%d].%s", idx, name)
	}

	kindVal := v.LookupPath(cue.ParsePath("event"))
	kind, err := kindVal.String()
	if err != nil {
		return nil, ValidationErrors{{
			Field:   field("event"),
			Message: "event kind must be a string",
			Code:    ErrUnknownEventKind,
		}}
	}

	switch ir.EventKind(kind) {
	case ir.KindInitial:
		value, ok := uintField(v, "value")
		if !ok {
			return nil, ValidationErrors{{
				Field:   field("value"),
				Message: "initial event requires a non-negative value",
				Code:    ErrMissingValue,
			}}
		}
		return ir.Initial{Value: value}, nil

	case ir.KindSet, ir.KindClear, ir.KindToggle:
		var errs ValidationErrors

		mask, ok := uintField(v, "mask")
		if !ok {
			errs = append(errs, ValidationError{
				Field:   field("mask"),
				Message: fmt.Sprintf("%s event requires a non-negative mask", kind),
				Code:    ErrMissingMask,
			})
		}

		t, timeErrs := compileTime(v.LookupPath(cue.ParsePath("time")), idx, kind)
		errs = append(errs, timeErrs...)

		if len(errs) > 0 {
			return nil, errs
		}

		switch ir.EventKind(kind) {
		case ir.KindSet:
			return ir.Set{Mask: mask, Time: t}, nil
		case ir.KindClear:
			return ir.Clear{Mask: mask, Time: t}, nil
		default:
			return ir.Toggle{Mask: mask, Time: t}, nil
		}

	default:
		return nil, ValidationErrors{{
			Field:   field("event"),
			Message: fmt.Sprintf("unknown event kind %q", kind),
			Code:    ErrUnknownEventKind,
		}}
	}
}

// compileTime extracts a time specification from a mutation event.
func compileTime(v cue.Value, idx int, kind string) (ir.Time, ValidationErrors) {
	field := func(name string) string {
		return fmt.Sprintf("sequence[%d].time.%s", idx, name)
	}

	if !v.Exists() {
		return nil, ValidationErrors{{
			Field:   fmt.Sprintf("sequence[%d].time", idx),
			Message: fmt.Sprintf("%s event requires a time", kind),
			Code:    ErrMissingTime,
		}}
	}

	mode, err := v.LookupPath(cue.ParsePath("mode")).String()
	if err != nil {
		return nil, ValidationErrors{{
			Field:   field("mode"),
			Message: `time mode must be "rel" or "abs"`,
			Code:    ErrUnknownTimeMode,
		}}
	}

	switch mode {
	case "rel":
		delta, ok := uintField(v, "delta")
		if !ok || delta < 1 {
			return nil, ValidationErrors{{
				Field:   field("delta"),
				Message: "relative delta must be an integer >= 1",
				Code:    ErrInvalidDelta,
			}}
		}
		return ir.Relative{Delta: delta}, nil

	case "abs":
		cycle, ok := uintField(v, "time")
		if !ok {
			return nil, ValidationErrors{{
				Field:   field("time"),
				Message: "absolute time must be an integer >= 0",
				Code:    ErrInvalidAbsTime,
			}}
		}
		return ir.Absolute{Cycle: cycle}, nil

	default:
		return nil, ValidationErrors{{
			Field:   field("mode"),
			Message: fmt.Sprintf("unknown time mode %q", mode),
			Code:    ErrUnknownTimeMode,
		}}
	}
}

// uintField reads a non-negative integer field, reporting presence and
// validity in one result.
func uintField(v cue.Value, name string) (uint64, bool) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return 0, false
	}
	u, err := f.Uint64()
	if err != nil {
		return 0, false
	}
	return u, true
}
