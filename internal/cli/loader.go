package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/hdlkit/vecgen/internal/compiler"
	"github.com/hdlkit/vecgen/internal/engine"
)

// LoadError represents an error that occurred before compilation:
// an unreadable config source or an undecodable document.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadConfig reads a config document from a file path, or from stdin
// when path is "-", and compiles it into typed events. YAML is chosen
// by file extension (.yaml/.yml); everything else decodes as JSON, and
// stdin is always JSON.
//
// Errors are either *LoadError (unreadable source, decode failure) or
// compiler.ValidationErrors (schema/compile failure); the two kinds
// are never conflated.
func LoadConfig(path string, stdin io.Reader) (*compiler.Config, error) {
	var (
		data []byte
		err  error
		name = path
	)

	if path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("cannot read standard input: %v", err)}
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "cannot open configuration file"}
		}
	}

	return CompileConfigBytes(name, data)
}

// CompileConfigBytes decodes a raw config document and compiles it.
// The document name selects the decoder by extension and labels
// positions in decode errors.
func CompileConfigBytes(name string, data []byte) (*compiler.Config, error) {
	ctx := cuecontext.New()

	var v cue.Value
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		file, err := cueyaml.Extract(name, data)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("yaml decode error: %v", err)}
		}
		v = ctx.BuildFile(file)
	default:
		expr, err := cuejson.Extract(name, data)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("json decode error: %v", err)}
		}
		v = ctx.BuildExpr(expr)
	}
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("cannot build config value: %v", err)}
	}

	return compiler.CompileConfig(v)
}

// reportConfigError prints a loading or validation failure through the
// formatter and converts it to an ExitError. Collaborator errors keep
// their own codes; they are never presented as expansion errors.
func reportConfigError(f *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = f.Error(loadErr.Code, loadErr.Message, nil)
		return NewExitError(ExitFailure, loadErr.Message)
	}

	var verrs compiler.ValidationErrors
	if errors.As(err, &verrs) {
		_ = f.Error(ErrCodeInvalid, fmt.Sprintf("configuration error: '%s'", verrs.Error()), verrs)
		return NewExitError(ExitFailure, verrs.Error())
	}

	_ = f.Error(ErrCodeGeneric, err.Error(), nil)
	return NewExitError(ExitFailure, err.Error())
}

// reportExpandError prints a terminal expansion error through the
// formatter and converts it to an ExitError. The engine's error code
// (SEQUENCE_ORDER or TIME_ORDER) passes through unchanged.
func reportExpandError(f *OutputFormatter, err error) error {
	var ee *engine.ExpandError
	if errors.As(err, &ee) {
		_ = f.Fatal(string(ee.Code), fmt.Sprintf("in event %d: %s", ee.EventIndex, ee.Message), nil)
		return NewExitError(ExitFailure, ee.Error())
	}

	_ = f.Fatal(ErrCodeGeneric, err.Error(), nil)
	return NewExitError(ExitFailure, err.Error())
}
