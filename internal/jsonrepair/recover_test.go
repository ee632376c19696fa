package jsonrepair

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_FencedBlock(t *testing.T) {
	v, err := Recover("```json\n{\"a\":1}\n```")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)
}

func TestRecover_FencedBlockWithProse(t *testing.T) {
	text := "Here you go:\n```\n{\"questions\": []}\n```\nand a second block ```json\n{\"b\":2}\n```"
	v, err := Recover(text)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"questions": []any{}}, v)
}

func TestRecover_PlainJSONWithWhitespace(t *testing.T) {
	v, err := Recover("  \n{\"ok\": true}\n ")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, v)
}

func TestRecover_RepairsInvalidEscapes(t *testing.T) {
	// \s is not a valid JSON escape; the repair pass keeps \n as a newline.
	text := `{"q": "Compute $\sqrt{x}$\nthen stop"}`
	v, err := Recover(text)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Compute $\\sqrt{x}$\nthen stop", m["q"])
}

func TestRecover_RepairsOverEscapedNewline(t *testing.T) {
	text := `{"q": "a\\nb \alpha"}`
	v, err := Recover(text)
	require.NoError(t, err)

	m := v.(map[string]any)
	s, ok := m["q"].(string)
	require.True(t, ok)
	assert.True(t, strings.Contains(s, "\n"), "expected a newline in %q", s)
}

func TestRecover_NoJSON(t *testing.T) {
	_, err := Recover("Sorry, I cannot help with that.")
	require.Error(t, err)

	var mr *MalformedResponseError
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, "Sorry, I cannot help with that.", mr.Content)
}

func TestRepair(t *testing.T) {
	assert.Equal(t, `\\frac\n\t\"`, Repair(`\frac\n\t\"`))
}

func TestRecoverInto(t *testing.T) {
	var out struct {
		Problems []struct {
			Problem string `json:"problem"`
		} `json:"problems"`
	}
	err := RecoverInto("```json\n{\"problems\":[{\"problem\":\"1+1\"}]}\n```", &out)
	require.NoError(t, err)
	require.Len(t, out.Problems, 1)
	assert.Equal(t, "1+1", out.Problems[0].Problem)
}
