package goquery

import (
	"testing"

	"github.com/fwojciec/adlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChain_FirstSuccessWins(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument("<html></html>")
	require.NoError(t, err)

	tiers := []strategy[string]{
		{"miss", func(*Document) (string, bool) { return "", false }},
		{"hit", func(*Document) (string, bool) { return "value", true }},
		{"never_reached", func(*Document) (string, bool) { t.Fatal("tier after success was evaluated"); return "", false }},
	}

	result := runChain(doc, "https://example.com", "field", tiers, nil)
	assert.True(t, result.Found())
	assert.Equal(t, "value", result.Value)
	assert.Equal(t, "hit", result.Strategy)
}

func TestRunChain_PanicDemotedToNonMatch(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument("<html></html>")
	require.NoError(t, err)

	tiers := []strategy[string]{
		{"panics", func(*Document) (string, bool) { panic("selector blew up") }},
		{"recovers", func(*Document) (string, bool) { return "fallback", true }},
	}

	var events []adlib.StrategyEvent
	result := runChain(doc, "https://example.com", "field", tiers, func(ev adlib.StrategyEvent) {
		events = append(events, ev)
	})

	assert.Equal(t, "fallback", result.Value)
	assert.Equal(t, "recovers", result.Strategy)

	require.Len(t, events, 2)
	assert.False(t, events[0].Matched)
	assert.True(t, events[1].Matched)
}

func TestRunChain_ExhaustedChainIsAbsent(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument("<html></html>")
	require.NoError(t, err)

	tiers := []strategy[int]{
		{"miss", func(*Document) (int, bool) { return 0, false }},
	}

	result := runChain(doc, "https://example.com", "field", tiers, nil)
	assert.False(t, result.Found())
	assert.Zero(t, result.Value)
	assert.Empty(t, result.Strategy)
}
