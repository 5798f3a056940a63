package ports

import (
	"context"

	"github.com/aretw0/unabs/pkg/domain"
)

// ProgramLoader resolves programs from a library.
type ProgramLoader interface {
	// GetProgram returns the program with the given ID.
	// Returns domain.ErrProgramNotFound if it does not exist.
	GetProgram(ctx context.Context, id string) (*domain.Program, error)

	// ListPrograms returns the IDs of all programs, sorted.
	ListPrograms(ctx context.Context) ([]string, error)
}
