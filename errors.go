// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// Kind classifies the origin of an [Error].
//
// KindInternal covers precondition violations raised by this package
// (invalid constructor arguments, allocator-hook failures). KindFile and KindSyntax exist so that callers wiring
// this core alongside file-backed or XML-parsing layers outside this
// package's scope can classify errors from a single taxonomy; this
// package itself never produces them.
type Kind int

const (
	// KindInternal reports a violated precondition: NewSPQueue called
	// with n <= 1 or elementSize <= 0, or an allocator hook returning an
	// error from NewSPQueue or CList.Append. Nil handles and Remove or
	// MoveAfter called outside an iteration are not detected.
	KindInternal Kind = iota + 1
	// KindFile reports an I/O open/read failure. Reserved for layers
	// outside this package's scope; never produced here.
	KindFile
	// KindSyntax reports malformed input. Reserved for layers outside
	// this package's scope; never produced here.
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindFile:
		return "file"
	case KindSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// Error is the typed error sum returned at this package's boundary.
//
// There is no KindOk: success is a nil error, the idiomatic Go form, so
// callers never switch on Kind along the success path.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("simcore: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("simcore: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// errInternal builds a KindInternal *Error for operation op.
func errInternal(op string, cause error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: cause}
}

// IsInternal reports whether err is (or wraps) a KindInternal [Error].
func IsInternal(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindInternal
	}
	return false
}

// ErrWouldBlock is returned by an allocator hook (see [AllocFunc]) that
// wants to signal transient exhaustion rather than a hard failure.
// It is an alias of [iox.ErrWouldBlock] for ecosystem consistency with
// code.hybscloud.com/lfq and the rest of the hybscloud.com stack.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates a transient, retryable
// condition. Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
