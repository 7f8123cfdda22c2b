package loam

// EntryMetadata is the frontmatter of a catalog document.
// The Markdown body, when present, becomes the entry description.
type EntryMetadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	Title       string   `json:"title" mapstructure:"title"`
	Description string   `json:"description" mapstructure:"description"`
	Kind        string   `json:"kind" mapstructure:"kind"`
	Tags        []string `json:"tags" mapstructure:"tags"`

	// Regex is set for regex entries.
	Regex string `json:"regex" mapstructure:"regex"`

	// Automaton holds the wire form of an NFA or DFA, decoded with domain.DecodeSpec.
	Automaton map[string]any `json:"automaton" mapstructure:"automaton"`
}
