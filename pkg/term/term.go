package term

import (
	"fmt"
	"strings"
)

// Term is a node of the program tree.
// Dispatch uses type switches over *Atom, *Put and *App.
type Term interface {
	fmt.Stringer
	term()
}

// Kind identifies an atomic combinator.
type Kind uint8

const (
	I Kind = iota
	S
	K
	V
	D
	C
	R
)

var kindNames = [...]string{I: "i", S: "s", K: "k", V: "v", D: "d", C: "c", R: "r"}

// String returns the source letter of the combinator.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Atom is a bare combinator.
type Atom struct {
	Kind Kind
}

// Put prints Char when applied.
type Put struct {
	Char rune
}

// App applies Left to Right.
type App struct {
	Left  Term
	Right Term
}

func (*Atom) term() {}
func (*Put) term()  {}
func (*App) term()  {}

// NewAtom returns a fresh atom node.
func NewAtom(k Kind) *Atom { return &Atom{Kind: k} }

// NewPut returns a fresh print node.
func NewPut(c rune) *Put { return &Put{Char: c} }

// NewApp returns a fresh application node.
func NewApp(left, right Term) *App { return &App{Left: left, Right: right} }

func (a *Atom) String() string { return a.Kind.String() }

func (p *Put) String() string { return PutString(p.Char) }

func (a *App) String() string {
	var sb strings.Builder
	Write(&sb, a)
	return sb.String()
}

// PutString renders a print action: r for newline, .x otherwise.
func PutString(c rune) string {
	if c == '\n' {
		return "r"
	}
	return "." + string(c)
}

// Write renders t in prefix notation into sb.
func Write(sb *strings.Builder, t Term) {
	stack := []Term{t}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := top.(type) {
		case *App:
			sb.WriteByte('`')
			stack = append(stack, n.Right, n.Left)
		case *Atom:
			sb.WriteString(n.Kind.String())
		case *Put:
			sb.WriteString(PutString(n.Char))
		default:
			panic(fmt.Sprintf("term: unknown node %T", top))
		}
	}
}

// Size counts the nodes of t.
func Size(t Term) int {
	n := 0
	stack := []Term{t}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		if app, ok := top.(*App); ok {
			stack = append(stack, app.Right, app.Left)
		}
	}
	return n
}
