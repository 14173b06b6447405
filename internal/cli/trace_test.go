package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_TextMatchesGenerateOutput(t *testing.T) {
	cfgPath := writeConfig(t, "stim.json", `{
		"sequence": [
			{"event": "initial", "value": 15},
			{"event": "toggle", "mask": 255, "time": {"mode": "rel", "delta": 1}}
		]
	}`)

	out, _, err := execute(t, "", "trace", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "f\nf0\n", out)
}

func TestTrace_JSONCarriesValues(t *testing.T) {
	cfgPath := writeConfig(t, "stim.json", validJSONConfig)

	out, _, err := execute(t, "", "--format", "json", "trace", cfgPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(3), data["cycles"])
	assert.Equal(t, float64(8), data["vector_size"])
	assert.Equal(t, []any{float64(0), float64(0), float64(1)}, data["values"])
}

func TestTrace_ExpansionErrorIsFatal(t *testing.T) {
	cfgPath := writeConfig(t, "stim.json", `{
		"sequence": [
			{"event": "initial", "value": 0},
			{"event": "set", "mask": 1, "time": {"mode": "abs", "time": 0}}
		]
	}`)

	out, _, err := execute(t, "", "trace", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FATAL: [TIME_ORDER] in event 1:")
}
