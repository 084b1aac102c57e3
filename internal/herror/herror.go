// Package herror provides the error values used throughout gethash. Every
// error captures a stack trace at construction time; the trace is only shown
// when the tool runs in debug mode.
package herror

import (
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 50

type Interface interface {
	error
	Herror(debug bool) string
}

type base struct {
	stackTrace string
}

func newBase() base {
	stackBuf := make([]uintptr, maxStackDepth)
	length := runtime.Callers(3, stackBuf[:])
	frames := runtime.CallersFrames(stackBuf[:length])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		fn := frame.Function
		if fn == "" {
			fn = "???"
		}
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", fn, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return base{b.String()}
}

// A silent error indicates a failure that has already been reported to the
// user through some other channel, so the top level should not print anything
// more (but should still exit with a failing status).
type silent struct {
	base
}

func (s *silent) Error() string {
	return ""
}

func (s *silent) Herror(debug bool) string {
	if !debug {
		return ""
	}
	return fmt.Sprintf("<silent error>\n--------\n%s--------\n", s.stackTrace)
}

func Silent() Interface {
	return &silent{base: newBase()}
}

func IsSilent(e Interface) bool {
	_, ok := e.(*silent)
	return ok
}

// A user error is caused by bad input, like a nonexistent path or an invalid
// flag combination.
type user struct {
	base
	err     error
	message string
}

func (u *user) Error() string {
	if u.err != nil {
		return fmt.Sprintf("%s (%s)", u.message, u.err.Error())
	}
	return u.message
}

func (u *user) Herror(debug bool) string {
	var b strings.Builder
	b.WriteString(u.message)
	if u.err != nil {
		fmt.Fprintf(&b, " (%s)", u.err.Error())
	}
	b.WriteString("\n")
	if debug {
		fmt.Fprintf(&b, "--------\n%s--------\n", u.stackTrace)
	}
	return b.String()
}

func User(err error, message string) Interface {
	return &user{base: newBase(), err: err, message: strings.TrimSpace(message)}
}

func UserF(err error, message string, a ...interface{}) Interface {
	return User(err, fmt.Sprintf(message, a...))
}

// An unlikely error is an environmental failure that shouldn't happen under
// normal operation but has a plausible remedy the user can apply, such as an
// unwritable cache directory. The long message explains the remedy.
type unlikely struct {
	base
	err   error
	short string
	long  string
}

func (u *unlikely) Error() string {
	if u.err != nil {
		return fmt.Sprintf("%s (%s)", u.short, u.err.Error())
	}
	return u.short
}

func (u *unlikely) Herror(debug bool) string {
	var b strings.Builder
	b.WriteString(u.short)
	if u.err != nil {
		fmt.Fprintf(&b, " (%s)", u.err.Error())
	}
	b.WriteString("\n")
	if len(u.long) > 0 {
		fmt.Fprintf(&b, "\n%s\n", u.long)
	}
	if debug {
		fmt.Fprintf(&b, "--------\n%s--------\n", u.stackTrace)
	}
	return b.String()
}

func Unlikely(err error, short string, long string) Interface {
	return &unlikely{base: newBase(), err: err, short: strings.TrimSpace(short), long: strings.TrimSpace(long)}
}

// An internal error is a bug in gethash.
type internal struct {
	base
	err     error
	message string
}

func (i *internal) Error() string {
	if i.message != "" {
		return fmt.Sprintf("%s (%s)", i.message, i.err.Error())
	}
	return i.err.Error()
}

func (i *internal) Herror(debug bool) string {
	var b strings.Builder
	b.WriteString("internal error: ")
	if i.message != "" {
		fmt.Fprintf(&b, "%s (%s)\n", i.message, i.err.Error())
	} else {
		fmt.Fprintf(&b, "%s\n", i.err.Error())
	}
	if !debug {
		b.WriteString("\nThis might be a bug in gethash.\n\nRun with --debug to see a stack trace, and please consider opening a GitHub issue to report this occurrence.\n")
	} else {
		fmt.Fprintf(&b, "--------\n%s--------\n", i.stackTrace)
	}
	return b.String()
}

func Internal(err error, message string) Interface {
	return &internal{base: newBase(), err: err, message: strings.TrimSpace(message)}
}
