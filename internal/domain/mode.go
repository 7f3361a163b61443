package domain

// AskMode selects the backend retrieval strategy.
type AskMode int

const (
	// ModeHybrid combines lexical and semantic retrieval.
	ModeHybrid AskMode = iota
	// ModeSemantic uses vector retrieval only.
	ModeSemantic
	// ModeLexical uses keyword retrieval only.
	ModeLexical
)

// String returns the mode name for logging.
func (m AskMode) String() string {
	switch m {
	case ModeSemantic:
		return "semantic"
	case ModeLexical:
		return "lexical"
	default:
		return "hybrid"
	}
}
