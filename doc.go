// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package simcore provides the concurrency substrate for a simulator
// core: a shared/exclusive lock, a concurrent intrusive list built on
// top of it, and a single-producer/single-consumer bounded ring queue.
//
// # Components
//
//   - SXLock: many readers XOR one writer, with explicit read-to-write
//     upgrade (release then re-acquire, never atomic).
//   - CList: a doubly-linked list of opaque payloads whose iterator
//     holds SXLock's read lock across Next/Prev steps, and upgrades to
//     write for Remove/MoveAfter.
//   - SPQueue: a fixed-capacity byte ring exchanging fixed-size records
//     between exactly one producer and one consumer goroutine, with no
//     mutex, only atomix-ordered index writes.
//
// # Quick Start
//
//	lst := simcore.NewCList(true) // multithreaded
//	e, _ := lst.Append("payload")
//
//	for it := lst.First(); it != nil; it = lst.Next(it) {
//	    fmt.Println(lst.Payload(it))
//	}
//
//	q, _ := simcore.NewSPQueue(64, 8) // 64 slots of 8 bytes
//	slot := q.BeginWrite()
//	binary.LittleEndian.PutUint64(slot, 42)
//	q.CommitWrite()
//
//	slot, ok := q.PeekRead()
//	if ok {
//	    v := binary.LittleEndian.Uint64(slot)
//	    q.CommitRead()
//	}
//
// # Iterator protocol
//
// First/Last acquire SXLock's read lock and return either a live *Entry
// (lock still held) or nil (lock already released, list empty). Next/Prev
// likewise return a live *Entry or nil after releasing read. Stop releases
// read iff its argument is non-nil. A caller iterating to completion never
// calls Stop; a caller breaking out early must.
//
// Remove and MoveAfter may only be called on an entry discovered via
// First/Next/Last/Prev. They release read, acquire write, perform the
// edit, release write, and the caller's iteration ends there. Any
// previously held entry pointer may be stale the moment read is
// released, so the caller restarts from First if more work remains.
//
// # Thread safety
//
//   - SXLock: concurrent readers, serialized writers, writer-preference
//     once a writer is pending.
//   - CList: inherits SXLock's model; single-threaded lists
//     (NewCList(false)) omit the lock entirely and are not safe to share
//     across goroutines.
//   - SPQueue: exactly one producer goroutine, exactly one consumer
//     goroutine. No other synchronization is provided; violating the
//     single-role constraint is undefined behavior by design, matching
//     a classic Lamport ring buffer.
//
// # Error handling
//
// Invalid constructor arguments (capacity < 2, element size < 1) and
// allocator-hook failures surface as a *Error with Kind KindInternal.
// Nil handles are not checked. SPQueue full/empty are not errors:
// CommitWrite/PeekRead/BeginRead/SkipRead report them as a bool.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// backoff in the counter-scheme SXLock's spin loops, and
// [code.hybscloud.com/iox] for semantic/control-flow error classification,
// matching the conventions of the wider code.hybscloud.com concurrency
// primitives lineup (see [code.hybscloud.com/lfq]).
package simcore
