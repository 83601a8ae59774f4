package textnorm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello!", []string{"hello"}},
		{"café,", []string{"café"}},
		{"2024", nil},
		{"foo_bar", []string{"foo", "bar"}},
		{"l'abeille", []string{"l", "abeille"}},
		{"ÉTÉ", []string{"été"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanTokens(tt.in), "cleanTokens(%q)", tt.in)
	}
}

func TestIsAllUpper(t *testing.T) {
	assert.True(t, isAllUpper("NASA"))
	assert.True(t, isAllUpper("UN"))
	assert.False(t, isAllUpper("NaSA"))
	assert.False(t, isAllUpper("hello"))
	assert.False(t, isAllUpper("123"))
}

func TestRuleBasedNormalizer(t *testing.T) {
	n := NewRuleBasedNormalizer([]string{"en"}, nil)

	out, err := n.Normalize(context.Background(), "The mountain rises above the river valley")
	require.NoError(t, err)

	tokens := strings.Fields(out)
	assert.Contains(t, tokens, "mountain")
	assert.Contains(t, tokens, "river")
	assert.Contains(t, tokens, "valley")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "above")
}

func TestRuleBasedNormalizerKeepsAcronyms(t *testing.T) {
	n := NewRuleBasedNormalizer([]string{"en"}, []string{"kpi"})

	out, err := n.Normalize(context.Background(), "ai models track kpi numbers")
	require.NoError(t, err)

	tokens := strings.Fields(out)
	assert.Contains(t, tokens, "ai")
	assert.Contains(t, tokens, "kpi")
}

func TestRuleBasedNormalizerKeepsUppercaseShorts(t *testing.T) {
	n := NewRuleBasedNormalizer([]string{"en"}, nil)

	out, err := n.Normalize(context.Background(), "report from HQ headquarters")
	require.NoError(t, err)

	assert.Contains(t, strings.Fields(out), "hq")
}

func TestRuleBasedNormalizerSplitsPunctuationJoinedWords(t *testing.T) {
	n := NewRuleBasedNormalizer([]string{"fr"}, nil)

	out, err := n.Normalize(context.Background(), "l'abeille butine")
	require.NoError(t, err)

	tokens := strings.Fields(out)
	assert.Contains(t, tokens, "abeille")
	assert.Contains(t, tokens, "butine")
	assert.NotContains(t, tokens, "labeille")
}

func TestRuleBasedNormalizerUnionsStopwordLanguages(t *testing.T) {
	n := NewRuleBasedNormalizer([]string{"en", "fr"}, nil)

	out, err := n.Normalize(context.Background(), "dans mountain avec river")
	require.NoError(t, err)

	tokens := strings.Fields(out)
	assert.Contains(t, tokens, "mountain")
	assert.Contains(t, tokens, "river")
	// French stopwords drop even though English is also configured.
	assert.NotContains(t, tokens, "dans")
	assert.NotContains(t, tokens, "avec")
}

func TestNewResourcesRejectsUnknownLanguage(t *testing.T) {
	_, err := NewResources([]string{"xx"}, "xx", nil)
	assert.Error(t, err)
}

func TestNewResourcesRejectsDefaultOutsideSet(t *testing.T) {
	_, err := NewResources([]string{"en"}, "fr", nil)
	assert.Error(t, err)
}

func TestModelBackedNormalizer(t *testing.T) {
	res, err := NewResources([]string{"en", "fr"}, "en", nil)
	require.NoError(t, err)

	n := NewModelBackedNormalizer(res)
	out, err := n.Normalize(context.Background(), "The dogs chased several cats across the garden")
	require.NoError(t, err)

	tokens := strings.Fields(out)
	assert.Contains(t, tokens, "dog")
	assert.Contains(t, tokens, "cat")
	assert.NotContains(t, tokens, "the")
}

func TestDetectLanguage(t *testing.T) {
	res, err := NewResources([]string{"en", "fr"}, "en", nil)
	require.NoError(t, err)

	assert.Equal(t, "fr", res.DetectLanguage("Bonjour, je voudrais acheter une baguette et du fromage"))
	assert.Equal(t, "en", res.DetectLanguage("Hello, I would like to buy some bread and cheese"))
}

func TestNormalizeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewRuleBasedNormalizer([]string{"en"}, nil)
	_, err := n.Normalize(ctx, "anything")
	assert.Error(t, err)
}
