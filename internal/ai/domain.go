package ai

import "strings"

// Provider identifies which AI backend serves a user's messages.
type Provider int

const (
	// ProviderDisabled is the dummy-mode sentinel: no backend is consulted.
	ProviderDisabled Provider = iota
	ProviderDeepSeek
	ProviderEden
)

// selectable lists every provider a user may switch to. Declaration order
// is listing order only; it carries no precedence.
var selectable = []Provider{
	ProviderDeepSeek,
	ProviderEden,
}

var displayNames = map[Provider]string{
	ProviderDisabled: "Dummy Mode",
	ProviderDeepSeek: "DeepSeek",
	ProviderEden:     "Eden",
}

var commandNames = map[string]Provider{
	"deepseek": ProviderDeepSeek,
	"eden":     ProviderEden,
}

// ListSelectable returns all providers except ProviderDisabled.
func ListSelectable() []Provider {
	out := make([]Provider, len(selectable))
	copy(out, selectable)
	return out
}

// DisplayName returns the human-readable label for a provider.
func DisplayName(p Provider) string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return "Unknown"
}

// CommandName returns the lowercase token users type to select a provider.
func CommandName(p Provider) string {
	for name, candidate := range commandNames {
		if candidate == p {
			return name
		}
	}
	return ""
}

// ParseProvider resolves a user-supplied provider name, case-insensitively.
func ParseProvider(name string) (Provider, bool) {
	p, ok := commandNames[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}
