package machine

import (
	"errors"
	"fmt"
)

// ErrStepLimit is returned by Run when the step budget is exhausted before the
// program halts. The accompanying Result carries the State to resume from.
var ErrStepLimit = errors.New("step limit reached")

// ContractViolation reports a variant the machine does not know how to handle.
// It is raised with panic and signals a bug in the caller or in this package,
// never a property of the program being run.
type ContractViolation struct {
	Where string
	Got   any
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("machine: contract violation in %s: unexpected %T", e.Where, e.Got)
}

func violation(where string, got any) {
	panic(&ContractViolation{Where: where, Got: got})
}
