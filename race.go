// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package simcore

// RaceEnabled is true when the race detector is active. Stress tests
// read it to shrink their run size under the detector's
// instrumentation overhead.
const RaceEnabled = true
