package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	out, err := ExtractJSON(`{"uiPresent": true}`)
	require.NoError(t, err)
	assert.Equal(t, `{"uiPresent": true}`, out)
}

func TestExtractJSON_SurroundedByProse(t *testing.T) {
	out, err := ExtractJSON("Here's my analysis:\n{\"uiPresent\": false, \"reason\": \"no dialog visible\"}\nLet me know if you need more.")
	require.NoError(t, err)
	assert.Equal(t, `{"uiPresent": false, "reason": "no dialog visible"}`, out)
}

func TestExtractJSON_BraceInsideStringDoesNotBreakBalance(t *testing.T) {
	out, err := ExtractJSON(`{"note": "contains a { brace } inside a string", "ok": true}`)
	require.NoError(t, err)
	assert.Equal(t, `{"note": "contains a { brace } inside a string", "ok": true}`, out)
}

func TestExtractJSON_NoObjectIsError(t *testing.T) {
	_, err := ExtractJSON("no json here at all")
	assert.Error(t, err)
}

func TestMockService_CyclesThroughFixturesAndRepeatsLast(t *testing.T) {
	m := NewMockService(`{"uiPresent": true}`, `{"uiPresent": false}`)
	first, err := m.Analyze(nil, nil, "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"uiPresent": true}`, first)

	second, _ := m.Analyze(nil, nil, "prompt")
	assert.Equal(t, `{"uiPresent": false}`, second)

	third, _ := m.Analyze(nil, nil, "prompt")
	assert.Equal(t, `{"uiPresent": false}`, third, "mock repeats its last fixture once exhausted")
	assert.Equal(t, 3, m.Calls())
}
