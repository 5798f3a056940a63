package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/unabs/pkg/domain"
)

// Loader implements ports.ProgramLoader using an in-memory map.
type Loader struct {
	programs map[string]domain.Program
}

// NewLoader creates a Loader from raw sources keyed by program ID.
func NewLoader(sources map[string]string) *Loader {
	programs := make(map[string]domain.Program, len(sources))
	for id, src := range sources {
		programs[id] = domain.Program{ID: id, Source: src}
	}
	return &Loader{programs: programs}
}

// NewFromPrograms creates a Loader from domain programs.
func NewFromPrograms(programs ...domain.Program) (*Loader, error) {
	m := make(map[string]domain.Program, len(programs))
	for _, p := range programs {
		if p.ID == "" {
			return nil, fmt.Errorf("program missing ID")
		}
		if _, dup := m[p.ID]; dup {
			return nil, fmt.Errorf("duplicate program ID: %s", p.ID)
		}
		m[p.ID] = p
	}
	return &Loader{programs: m}, nil
}

// GetProgram returns a copy of the program with the given ID.
func (l *Loader) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	p, ok := l.programs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, id)
	}
	return &p, nil
}

// ListPrograms returns all program IDs.
func (l *Loader) ListPrograms(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(l.programs))
	for id := range l.programs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
