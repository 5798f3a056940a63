package domain

// Program is an entry of the program library.
type Program struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Source is the Unlambda text of the program.
	Source string `json:"source"`

	// Expect, when set, is the exact output the program must print.
	Expect *string `json:"expect,omitempty"`

	// MaxSteps overrides the engine step limit for this program (0 = default).
	MaxSteps uint64 `json:"max_steps,omitempty"`
}
