// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"

	"github.com/yoctoalex/xcctl/pkg/stats"
)

// ResultErrorFromStats takes a stats object and returns either a ResultError or
// nil depending on whether the stats reports that objects failed or never
// became ready.
func ResultErrorFromStats(s stats.Stats) error {
	if s.FailedActuationSum() > 0 || s.FailedReconciliationSum() > 0 {
		return &ResultError{
			Stats: s,
		}
	}
	return nil
}

// ResultError is returned from printers when a run completed, but one or
// more objects either failed or did not become ready in time.
type ResultError struct {
	Stats stats.Stats
}

func (a *ResultError) Error() string {
	switch {
	case a.Stats.FailedActuationSum() > 0 && a.Stats.FailedReconciliationSum() > 0:
		return fmt.Sprintf("%d objects failed, %d objects were not ready before timeout",
			a.Stats.FailedActuationSum(), a.Stats.FailedReconciliationSum())
	case a.Stats.FailedActuationSum() > 0:
		return fmt.Sprintf("%d objects failed", a.Stats.FailedActuationSum())
	case a.Stats.FailedReconciliationSum() > 0:
		return fmt.Sprintf("%d objects were not ready before timeout",
			a.Stats.FailedReconciliationSum())
	default:
		// Should not happen as this error is only used when at least one
		// object failed.
		return "unknown error"
	}
}
