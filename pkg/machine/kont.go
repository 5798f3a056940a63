package machine

import (
	"fmt"

	"github.com/aretw0/unabs/pkg/term"
)

// Kont is one frame of a continuation together with everything below it.
// The empty continuation is nil.
type Kont interface {
	fmt.Stringer
	kont()
	next() Kont
}

// BindT waits for a function value to apply to the pending term T.
type BindT struct {
	T    term.Term
	Next Kont
}

// BindV waits for an argument value to pass to the known function F.
type BindV struct {
	F    Value
	Next Kont
}

// BindW waits for a function value to apply to the known argument X.
// It is pushed when a delayed term is forced.
type BindW struct {
	X    Value
	Next Kont
}

// SWait holds the second half of an s expansion: once the first branch
// yields a value, F is applied to X and the result is applied to that value.
type SWait struct {
	F, X Value
	Next Kont
}

func (*BindT) kont() {}
func (*BindV) kont() {}
func (*BindW) kont() {}
func (*SWait) kont() {}

func (k *BindT) next() Kont { return k.Next }
func (k *BindV) next() Kont { return k.Next }
func (k *BindW) next() Kont { return k.Next }
func (k *SWait) next() Kont { return k.Next }

func (k *BindT) String() string { return KontString(k) }
func (k *BindV) String() string { return KontString(k) }
func (k *BindW) String() string { return KontString(k) }
func (k *SWait) String() string { return KontString(k) }

// KontString renders k as the program context it represents, with () marking
// the hole that receives the value. The innermost frame wraps the hole first.
// The text is cut at DefaultRenderLimit.
func KontString(k Kont) string {
	return RenderKont(k, DefaultRenderLimit)
}

// Depth counts the frames of k.
func Depth(k Kont) int {
	n := 0
	for ; k != nil; k = k.next() {
		n++
	}
	return n
}
