// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

import (
	"fmt"

	"code.hybscloud.com/atomix"
)

// pad is cache line padding to prevent false sharing between the
// producer-owned and consumer-owned index fields, following the layout
// convention used throughout code.hybscloud.com/lfq.
type pad [64]byte

// SPQueue is a single-producer/single-consumer bounded ring of
// fixed-size byte records. The read and write cursors are tracked as
// slot indices rather than raw pointers into the backing slice, since a
// live Go pointer can't safely be handed across goroutines the way a raw
// pointer into a fixed buffer can in languages without a moving GC. It
// uses the cached-counterpart, explicit release/acquire discipline of a
// classic Lamport ring buffer.
//
// Exactly one goroutine may call the write methods (BeginWrite,
// CommitWrite) and exactly one may call the read methods (BeginRead,
// PeekRead, CommitRead, SkipRead). The two roles may be the same
// goroutine. Violating the single-role constraint is undefined
// behavior; SPQueue carries no mutex by design.
type SPQueue struct {
	_              pad
	writeIdx       atomix.Uint64 // producer writes here
	_              pad
	cachedReadIdx  uint64 // producer's cached view of readIdx
	_              pad
	readIdx        atomix.Uint64 // consumer reads from here
	_              pad
	cachedWriteIdx uint64 // consumer's cached view of writeIdx
	_              pad
	buffer         []byte
	elementSize    int
	capacity       uint64 // N; usable capacity is N-1 (one slot stays empty)
	hook           allocHook
}

// NewSPQueue creates a queue of n slots of elementSize bytes each.
// Usable capacity is n-1: one slot is always kept empty to distinguish
// full from empty. Returns a KindInternal error if n <= 1 or
// elementSize <= 0.
func NewSPQueue(n, elementSize int, opts ...QueueOption) (*SPQueue, error) {
	if n <= 1 {
		return nil, errInternal("NewSPQueue", fmt.Errorf("capacity must be > 1, got %d", n))
	}
	if elementSize <= 0 {
		return nil, errInternal("NewSPQueue", fmt.Errorf("element size must be > 0, got %d", elementSize))
	}

	var o queueOptions
	for _, opt := range opts {
		opt(&o)
	}
	buf, err := o.hook.allocate(n * elementSize)
	if err != nil {
		return nil, errInternal("NewSPQueue", err)
	}

	return &SPQueue{
		buffer:      buf,
		elementSize: elementSize,
		capacity:    uint64(n),
		hook:        o.hook,
	}, nil
}

func (q *SPQueue) slot(idx uint64) []byte {
	off := int(idx) * q.elementSize
	return q.buffer[off : off+q.elementSize]
}

func (q *SPQueue) nextIdx(idx uint64) uint64 {
	idx++
	if idx == q.capacity {
		return 0
	}
	return idx
}

// BeginWrite returns the slot at the current write position for the
// producer to fill in place. The write is not visible to the consumer
// until CommitWrite succeeds.
func (q *SPQueue) BeginWrite() []byte {
	return q.slot(q.writeIdx.LoadRelaxed())
}

// CommitWrite publishes the slot written via BeginWrite. It returns
// false, and does not advance, if doing so would make the write
// position equal the read position: the queue is full and the producer
// must retry later. The StoreRelease here pairs with BeginRead/PeekRead's
// LoadAcquire, guaranteeing the record's bytes are visible to the
// consumer before the slot becomes reachable.
func (q *SPQueue) CommitWrite() bool {
	idx := q.writeIdx.LoadRelaxed()
	next := q.nextIdx(idx)

	if next == q.cachedReadIdx {
		q.cachedReadIdx = q.readIdx.LoadAcquire()
		if next == q.cachedReadIdx {
			return false
		}
	}

	q.writeIdx.StoreRelease(next)
	return true
}

// BeginRead reports the slot at the current read position without
// advancing it. ok is false (slot nil) if the queue is empty. The
// consumer reads the slot in place, then calls CommitRead to advance.
func (q *SPQueue) BeginRead() (slot []byte, ok bool) {
	idx := q.readIdx.LoadRelaxed()
	if idx == q.cachedWriteIdx {
		q.cachedWriteIdx = q.writeIdx.LoadAcquire()
		if idx == q.cachedWriteIdx {
			return nil, false
		}
	}
	return q.slot(idx), true
}

// PeekRead is BeginRead without any intent to commit: it inspects the
// head slot and never advances the read position itself. A CommitRead
// after it advances past that slot exactly as after BeginRead.
func (q *SPQueue) PeekRead() (slot []byte, ok bool) {
	return q.BeginRead()
}

// CommitRead advances the read position past the slot most recently
// returned by BeginRead. The LoadAcquire implied by a subsequent
// CommitWrite's cached-index refresh pairs with this store, so the
// producer never reuses a slot before the consumer has finished with
// it.
func (q *SPQueue) CommitRead() {
	idx := q.readIdx.LoadRelaxed()
	q.readIdx.StoreRelease(q.nextIdx(idx))
}

// SkipRead is the "no slot pointer" convenience form: it reports whether
// a record was available and, if so, discards it by advancing the read
// position immediately, combining BeginRead and CommitRead into one call
// for consumers that don't need the payload.
func (q *SPQueue) SkipRead() bool {
	_, ok := q.BeginRead()
	if !ok {
		return false
	}
	q.CommitRead()
	return true
}

// Clear resets both positions to the base of the buffer. It must only
// be called when no other goroutine is mid-cycle on this queue;
// otherwise undefined.
func (q *SPQueue) Clear() {
	q.writeIdx.StoreRelease(0)
	q.readIdx.StoreRelease(0)
	q.cachedReadIdx = 0
	q.cachedWriteIdx = 0
}

// State reports an approximate snapshot of free and used slot counts.
// Under concurrent producer/consumer activity the two numbers may be
// observed as a torn view; used is computed as
// (write-read)/1 slot-units when read <= write, or
// (capacity-(read-write)) otherwise, clamped to 0 when the positions
// coincide.
func (q *SPQueue) State() (free, used int) {
	w := q.writeIdx.LoadAcquire()
	r := q.readIdx.LoadAcquire()

	var u uint64
	switch {
	case r == w:
		u = 0
	case r < w:
		u = w - r
	default:
		u = q.capacity - (r - w)
	}

	used = int(u)
	free = int(q.capacity) - used
	return free, used
}

// Destroy releases the queue's backing buffer via its allocator hook,
// if one was configured.
func (q *SPQueue) Destroy() {
	q.hook.release(q.buffer)
}
