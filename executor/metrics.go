// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/rcrowley/go-metrics"
)

var (
	txOkCounter     = metrics.GetOrRegisterCounter("executor.tx.ok", metrics.DefaultRegistry)
	txFailedCounter = metrics.GetOrRegisterCounter("executor.tx.failed", metrics.DefaultRegistry)
	subMsgCounter   = metrics.GetOrRegisterCounter("executor.submsg", metrics.DefaultRegistry)
	txTimer         = metrics.GetOrRegisterTimer("executor.tx.time", metrics.DefaultRegistry)
)
