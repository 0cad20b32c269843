// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

// Entry is a single link node of a [CList]: prev/next siblings plus an
// opaque payload. The list owns the node; the payload's pointee remains
// the caller's to manage.
type Entry struct {
	prev, next *Entry
	payload    any
}

// CList is a doubly-linked list of opaque payloads. With multithreaded
// construction it is guarded by a [SXLock]: First/Last/Next/Prev hold
// the read lock across an iterator's steps, Append/Remove/MoveAfter
// take the write lock. See the package doc for the iterator protocol.
type CList struct {
	lock        SXLock // nil in single-threaded mode
	first, last *Entry
	hook        allocHook
}

// NewCList creates an empty list. When multithreaded is false, all
// operations degenerate to direct pointer manipulation with no locking
// at all, and the caller is then responsible for not sharing the list
// across goroutines. This mode exists to eliminate lock overhead for
// read-only catalogues.
func NewCList(multithreaded bool, opts ...ListOption) *CList {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	l := &CList{hook: o.hook}
	if multithreaded {
		l.lock = NewSXLock()
	}
	return l
}

// Append adds payload at the tail and returns its Entry. O(1).
//
// If the list was constructed with [WithListAllocator] and the hook
// reports exhaustion, Append returns a nil Entry and a KindInternal
// error instead of silently proceeding; it never dereferences a failed
// allocation.
//
// The node itself is still a Go-managed *Entry, not bytes carved out of
// the hook's buffer: placing a linked-list node inside caller-owned
// memory would need unsafe pointer arithmetic the rest of this package
// doesn't use, and the GC already owns the node's lifetime once Append
// returns. WithListAllocator's buffer stands in for whatever backing
// store the caller's pool manages, and its probe here is what lets a
// pool-backed list refuse growth under the same exhaustion signal
// [SPQueue] uses for its one real buffer.
func (l *CList) Append(payload any) (*Entry, error) {
	if l.hook.alloc != nil {
		if _, err := l.hook.allocate(0); err != nil {
			return nil, errInternal("CList.Append", err)
		}
	}

	if l.lock != nil {
		l.lock.AcquireWrite()
		defer l.lock.ReleaseWrite()
	}

	e := &Entry{prev: l.last, payload: payload}
	if l.last != nil {
		l.last.next = e
	}
	l.last = e
	if l.first == nil {
		l.first = e
	}
	return e, nil
}

// First acquires the read lock and returns the head entry, or nil if
// the list is empty (read lock already released in that case). A
// non-nil result holds the read lock; release it via Next/Prev walking
// to nil, or via Stop if the caller breaks out early.
func (l *CList) First() *Entry {
	if l.lock != nil {
		l.lock.AcquireRead()
		if l.first == nil {
			l.lock.ReleaseRead()
			return nil
		}
		return l.first
	}
	return l.first
}

// Last is First's mirror, starting iteration from the tail.
func (l *CList) Last() *Entry {
	if l.lock != nil {
		l.lock.AcquireRead()
		if l.last == nil {
			l.lock.ReleaseRead()
			return nil
		}
		return l.last
	}
	return l.last
}

// Next returns entry's successor, or nil after releasing the read lock
// when entry is the tail.
func (l *CList) Next(entry *Entry) *Entry {
	if l.lock != nil {
		next := entry.next
		if next == nil {
			l.lock.ReleaseRead()
		}
		return next
	}
	return entry.next
}

// Prev returns entry's predecessor, or nil after releasing the read
// lock when entry is the head.
func (l *CList) Prev(entry *Entry) *Entry {
	if l.lock != nil {
		prev := entry.prev
		if prev == nil {
			l.lock.ReleaseRead()
		}
		return prev
	}
	return entry.prev
}

// Payload returns the data stored in entry. entry must not be nil.
func (l *CList) Payload(entry *Entry) any {
	return entry.payload
}

// Stop releases the read lock held by an in-progress iteration iff
// entry is non-nil. Callers that iterate to completion (Next/Prev
// returning nil) never need to call Stop; callers that break out of an
// iteration early before reaching nil must call it.
func (l *CList) Stop(entry *Entry) {
	if l.lock != nil && entry != nil {
		l.lock.ReleaseRead()
	}
}

// Remove deletes entry from the list. It must be called with entry
// discovered via an in-progress iterator (First/Next/Last/Prev): Remove
// releases the read lock, acquires write (the "upgrade gap": the
// structure may change in between, tolerated by this protocol),
// performs the unlink, and releases write. The caller's iteration ends
// here; restart from First if more work remains.
func (l *CList) Remove(entry *Entry) {
	if l.lock != nil {
		l.lock.ReleaseRead()
		l.lock.AcquireWrite()
		defer l.lock.ReleaseWrite()
	}

	if entry.prev != nil {
		entry.prev.next = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	}
	if l.first == entry {
		l.first = entry.next
	}
	if l.last == entry {
		l.last = entry.prev
	}
	entry.prev, entry.next, entry.payload = nil, nil, nil
}

// MoveAfter moves dest so that it sits immediately after source,
// unlinking it from its current position first. source == nil means
// "move dest to the front of the list". Like Remove, this must be
// called from inside an iterator: it releases read, upgrades to write,
// performs the move, releases write, and ends the caller's iteration.
func (l *CList) MoveAfter(dest, source *Entry) {
	if dest == source {
		if l.lock != nil {
			l.lock.ReleaseRead()
		}
		return
	}

	if l.lock != nil {
		l.lock.ReleaseRead()
		l.lock.AcquireWrite()
		defer l.lock.ReleaseWrite()
	}

	// Unlink dest from its current position.
	if dest.prev != nil {
		dest.prev.next = dest.next
	}
	if dest.next != nil {
		dest.next.prev = dest.prev
	}
	if l.last == dest {
		l.last = dest.prev
	}
	if l.first == dest {
		l.first = dest.next
	}

	if source != nil {
		dest.next = source.next
		if source.next != nil {
			source.next.prev = dest
		}
		source.next = dest
		dest.prev = source
		if l.last == source {
			l.last = dest
		}
	} else {
		if l.first != nil {
			l.first.prev = dest
		}
		dest.next = l.first
		l.first = dest
		if l.last == nil {
			l.last = dest
		}
		dest.prev = nil
	}
}

// Destroy releases the list's lock resources. Only the link nodes are
// reclaimed; payloads remain the caller's responsibility. Calling
// Destroy while an iterator is in progress, or while any other
// goroutine holds the list, is undefined.
func (l *CList) Destroy() {
	if l.lock != nil {
		l.lock.AcquireWrite()
		defer l.lock.ReleaseWrite()
		l.lock.Destroy()
	}
	l.first, l.last = nil, nil
}
