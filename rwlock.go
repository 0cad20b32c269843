// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

import "sync"

// SXLock is a shared/exclusive (reader-writer) lock: many readers XOR
// one writer, with exclusive-writer preference once a writer is
// enqueued. A pending writer blocks new readers from entering, but never
// preempts readers already in flight.
//
// There is no atomic read-to-write upgrade. A caller holding read that
// wants write must AcquireRead→ReleaseRead→AcquireWrite explicitly; the
// protected structure may change in that gap (the "upgrade gap"), and
// the caller must re-validate any state it cached across it. [CList]'s
// Remove and MoveAfter follow exactly this protocol.
//
// Destroying a held lock, or releasing a lock not held, is undefined
// behavior: SXLock performs no bookkeeping to detect either.
type SXLock interface {
	AcquireRead()
	ReleaseRead()
	AcquireWrite()
	ReleaseWrite()
	Destroy()
}

// sxLockOptions configures NewSXLock.
type sxLockOptions struct {
	counterScheme bool
}

// SXLockOption configures a [SXLock] at construction time.
type SXLockOption func(*sxLockOptions)

// WithCounterScheme selects the reference counter-scheme backend
// instead of the platform-native sync.RWMutex backend. This exists for
// documentation and for tests that need to observe the exact counter
// invariants directly; production code should use the default native
// backend.
func WithCounterScheme() SXLockOption {
	return func(o *sxLockOptions) { o.counterScheme = true }
}

// NewSXLock creates a SXLock. The default backend delegates to the
// platform-native sync.RWMutex, which already provides writer-preference
// semantics (a pending writer blocks subsequent readers, since Go 1.9).
// Pass [WithCounterScheme] to select the reference counter-scheme
// backend used for this package's own invariant tests.
func NewSXLock(opts ...SXLockOption) SXLock {
	var o sxLockOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.counterScheme {
		return newCounterSXLock()
	}
	return &nativeSXLock{}
}

// nativeSXLock wraps sync.RWMutex, which already implements the
// exclusion and writer-preference semantics SXLock requires.
type nativeSXLock struct {
	mu sync.RWMutex
}

func (l *nativeSXLock) AcquireRead()  { l.mu.RLock() }
func (l *nativeSXLock) ReleaseRead()  { l.mu.RUnlock() }
func (l *nativeSXLock) AcquireWrite() { l.mu.Lock() }
func (l *nativeSXLock) ReleaseWrite() { l.mu.Unlock() }
func (l *nativeSXLock) Destroy()      {}
