package bridge

import (
	"context"
	"errors"
	"fmt"
)

// Invoker runs one backend command. args is marshalled to JSON; when out is
// non-nil the command result is decoded into it.
type Invoker interface {
	Invoke(ctx context.Context, command string, args any, out any) error
}

// Func adapts an ordinary function to Invoker.
type Func func(ctx context.Context, command string, args any, out any) error

func (f Func) Invoke(ctx context.Context, command string, args any, out any) error {
	return f(ctx, command, args, out)
}

// CommandError is a rejection returned by the backend itself, as opposed to a
// transport failure.
type CommandError struct {
	Command string
	Status  int
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// Reason returns the backend's own message for err when it is a
// CommandError, and err.Error() otherwise.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Message
	}
	return err.Error()
}
