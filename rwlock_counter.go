// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// threshold bounds the subtraction a writer applies to s while draining
// readers. It must be chosen larger than any expected reader count.
const threshold = 0xFFFF

// counterSXLock is a reference counter-scheme SXLock: a single signed
// counter s, plus an inner mutex W serializing writers.
//
//	acquire_read:  atomically increment s; proceed if result >= 0, else
//	               decrement back and spin.
//	release_read:  decrement s.
//	acquire_write: take W; subtract threshold from s; spin until
//	               s == -threshold (all prior readers drained).
//	release_write: spin until s == -threshold (misuse guard); add
//	               threshold back; release W.
type counterSXLock struct {
	s atomix.Int64
	w sync.Mutex
}

func newCounterSXLock() *counterSXLock {
	return &counterSXLock{}
}

func (l *counterSXLock) AcquireRead() {
	sw := spin.Wait{}
	for {
		v := l.s.AddAcqRel(1)
		if v >= 0 {
			return
		}
		l.s.AddAcqRel(-1)
		sw.Once()
	}
}

func (l *counterSXLock) ReleaseRead() {
	l.s.AddAcqRel(-1)
}

func (l *counterSXLock) AcquireWrite() {
	l.w.Lock()
	l.s.AddAcqRel(-threshold)
	sw := spin.Wait{}
	for l.s.LoadAcquire() != -threshold {
		sw.Once()
	}
}

func (l *counterSXLock) ReleaseWrite() {
	sw := spin.Wait{}
	for l.s.LoadAcquire() != -threshold {
		sw.Once()
	}
	l.s.AddAcqRel(threshold)
	l.w.Unlock()
}

func (l *counterSXLock) Destroy() {}
