// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

import "code.hybscloud.com/atomix"

// threadRefCount tracks how many subsystems have called ThreadInit
// without a matching ThreadDeinit: multiple independent callers may each
// init/deinit safely, and only the last deinit tears bookkeeping down.
var threadRefCount atomix.Int64

// ThreadInit registers the calling subsystem as a user of this
// package's process-wide bookkeeping. It is reference-counted: each
// call must be paired with a later ThreadDeinit. Returns the new
// reference count.
//
// This package does not expose a forced-termination ("kill thread")
// operation: such an operation is fundamentally incompatible with any
// lock holder (SXLock, and by extension CList) and has no safe
// replacement beyond cooperative shutdown. Long-running workers should
// accept a context.Context and check ctx.Done() between operations
// instead.
func ThreadInit() int64 {
	return threadRefCount.AddAcqRel(1)
}

// ThreadDeinit unregisters one ThreadInit call. When the reference
// count reaches zero, bookkeeping is considered torn down; a
// subsequent ThreadInit starts it fresh. Returns the new reference
// count.
func ThreadDeinit() int64 {
	return threadRefCount.AddAcqRel(-1)
}
