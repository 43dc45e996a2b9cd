package loam

// CommandMetadata is the frontmatter of a catalog document.
// A document with steps declares a flow; any other document declares a command.
type CommandMetadata struct {
	ID          string         `json:"id" mapstructure:"id"`
	Kind        string         `json:"kind" mapstructure:"kind"`
	Description string         `json:"description" mapstructure:"description"`
	Config      map[string]any `json:"config" mapstructure:"config"`
	Steps       []string       `json:"steps" mapstructure:"steps"`
}
