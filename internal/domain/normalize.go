package domain

import (
	"sort"
	"strings"
)

// Clamp limits for backend search parameters. Backends apply these before
// executing a query; the transport layer only substitutes zero-value defaults.
const (
	MinTopK         = 1
	MaxTopK         = 20
	MinSnippetChars = 50
	MaxSnippetChars = 1000
)

// ClampTopK bounds topK to [MinTopK, MaxTopK].
func ClampTopK(topK int32) int32 {
	return clamp(topK, MinTopK, MaxTopK)
}

// ClampSnippetChars bounds snippetChars to [MinSnippetChars, MaxSnippetChars].
func ClampSnippetChars(snippetChars int32) int32 {
	return clamp(snippetChars, MinSnippetChars, MaxSnippetChars)
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TruncateSnippet cuts s to at most maxChars bytes, replacing the tail with a
// "..." marker when it cuts. Both backends share these semantics.
func TruncateSnippet(s string, maxChars int32) string {
	n := int(maxChars)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// BuildScope serializes a filter map into the engine scope expression:
// "key:value" pairs joined by spaces. Keys are sorted so the expression is
// stable for logging and cache keys. Returns "" for an empty map.
func BuildScope(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+filters[k])
	}
	return strings.Join(pairs, " ")
}
