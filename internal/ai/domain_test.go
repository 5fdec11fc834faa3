package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSelectableExcludesDisabled(t *testing.T) {
	got := ListSelectable()
	assert.Equal(t, []Provider{ProviderDeepSeek, ProviderEden}, got)
	assert.NotContains(t, got, ProviderDisabled)
}

func TestListSelectableReturnsCopy(t *testing.T) {
	got := ListSelectable()
	got[0] = ProviderDisabled
	assert.Equal(t, ProviderDeepSeek, ListSelectable()[0])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "DeepSeek", DisplayName(ProviderDeepSeek))
	assert.Equal(t, "Eden", DisplayName(ProviderEden))
	assert.Equal(t, "Dummy Mode", DisplayName(ProviderDisabled))
	assert.Equal(t, "Unknown", DisplayName(Provider(99)))
}

func TestParseProvider(t *testing.T) {
	p, ok := ParseProvider("DeepSeek")
	require.True(t, ok)
	assert.Equal(t, ProviderDeepSeek, p)

	p, ok = ParseProvider("  eden ")
	require.True(t, ok)
	assert.Equal(t, ProviderEden, p)

	_, ok = ParseProvider("dummy")
	assert.False(t, ok)
	_, ok = ParseProvider("")
	assert.False(t, ok)
}

func TestCommandNameRoundTrip(t *testing.T) {
	for _, p := range ListSelectable() {
		name := CommandName(p)
		require.NotEmpty(t, name)
		got, ok := ParseProvider(name)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
	assert.Empty(t, CommandName(ProviderDisabled))
}
