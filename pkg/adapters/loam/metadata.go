package loam

// ProgramMetadata represents the front matter of a program document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ProgramMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`

	// Expect is the exact output the program must print, when set.
	Expect *string `json:"expect,omitempty" mapstructure:"expect"`

	// Limits is decoded leniently into ProgramLimits, so "max_steps: '1000'" works too.
	Limits map[string]any `json:"limits,omitempty" mapstructure:"limits"`
}

// ProgramLimits bounds a library run.
type ProgramLimits struct {
	MaxSteps uint64 `mapstructure:"max_steps"`
}
