package dsl

import (
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/term"
)

// ProgramBuilder provides a fluent API for configuring a library program.
type ProgramBuilder struct {
	program domain.Program
}

// Title sets the human readable name.
func (p *ProgramBuilder) Title(title string) *ProgramBuilder {
	p.program.Title = title
	return p
}

// Describe sets the description.
func (p *ProgramBuilder) Describe(description string) *ProgramBuilder {
	p.program.Description = description
	return p
}

// Source sets the program text. It is checked by Build.
func (p *ProgramBuilder) Source(src string) *ProgramBuilder {
	p.program.Source = src
	return p
}

// Term sets the program from a term built in Go.
func (p *ProgramBuilder) Term(t term.Term) *ProgramBuilder {
	p.program.Source = t.String()
	return p
}

// Expect declares the exact output the program must print.
func (p *ProgramBuilder) Expect(output string) *ProgramBuilder {
	p.program.Expect = &output
	return p
}

// MaxSteps bounds runs of this program.
func (p *ProgramBuilder) MaxSteps(n uint64) *ProgramBuilder {
	p.program.MaxSteps = n
	return p
}
