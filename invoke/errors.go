package invoke

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrIllegalAccess    = errors.New("illegal access")
	ErrInvocationFailed = errors.New("invocation failed")
)

// MemberNotFoundError reports that no member of the owner accepts the name
// and arguments.
type MemberNotFoundError struct {
	Owner       string
	Name        string
	Args        []reflect.Type // nil entries for untyped nil arguments
	Suggestions []string
}

func (e *MemberNotFoundError) Error() string {
	args := make([]string, len(e.Args))
	for i, t := range e.Args {
		if t == nil {
			args[i] = "nil"
			continue
		}

		args[i] = t.String()
	}

	msg := fmt.Sprintf("%s: %s.%s(%s)", ErrMemberNotFound, e.Owner, e.Name, strings.Join(args, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return msg
}

func (e *MemberNotFoundError) Is(target error) bool { return target == ErrMemberNotFound }

// IllegalAccessError reports a member that cannot be called on the owner.
type IllegalAccessError struct {
	Owner  string
	Name   string
	Reason string
}

func (e *IllegalAccessError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", ErrIllegalAccess, e.Owner, e.Name, e.Reason)
}

func (e *IllegalAccessError) Is(target error) bool { return target == ErrIllegalAccess }

// InvocationError wraps a panic of the callee, or the error it returned.
type InvocationError struct {
	Member string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvocationFailed, e.Member, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func (e *InvocationError) Is(target error) bool { return target == ErrInvocationFailed }
