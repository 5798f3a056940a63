package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/unabs/pkg/adapters/memory"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/term"
)

// Builder manages the library construction.
type Builder struct {
	programs map[string]*ProgramBuilder
}

// New creates a new library builder.
func New() *Builder {
	return &Builder{
		programs: make(map[string]*ProgramBuilder),
	}
}

// Add creates a new program in the library.
// If the program already exists, it returns the existing builder.
func (b *Builder) Add(id string) *ProgramBuilder {
	if pb, ok := b.programs[id]; ok {
		return pb
	}
	pb := &ProgramBuilder{
		program: domain.Program{
			ID: id,
		},
	}
	b.programs[id] = pb
	return pb
}

// Build checks every program and compiles the library into a memory.Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	ids := make([]string, 0, len(b.programs))
	for id := range b.programs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	programs := make([]domain.Program, 0, len(ids))
	for _, id := range ids {
		p := b.programs[id].program
		if p.Source == "" {
			return nil, fmt.Errorf("program %s: no source", id)
		}
		if _, err := term.Parse(p.Source); err != nil {
			return nil, fmt.Errorf("program %s: %w", id, err)
		}
		programs = append(programs, p)
	}

	loader, err := memory.NewFromPrograms(programs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
