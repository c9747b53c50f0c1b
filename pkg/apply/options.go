// Copyright 2021 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"time"

	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

// RunOptions tunes a run of the Applier, Destroyer or Fetcher.
type RunOptions struct {
	// WaitAttempts is the number of readiness polls after a create.
	// Zero means the reconciler default.
	WaitAttempts int

	// WaitInterval is the spacing between readiness polls. Zero means
	// the reconciler default.
	WaitInterval time.Duration

	// ExhaustionPolicy applies when an object never became ready.
	ExhaustionPolicy reconcile.ExhaustionPolicy

	// EmitWaitEvents defines whether a WaitEvent is sent for every
	// readiness poll.
	EmitWaitEvents bool
}

func (o RunOptions) reconcileOptions() reconcile.Options {
	return reconcile.Options{
		WaitAttempts:     o.WaitAttempts,
		WaitInterval:     o.WaitInterval,
		ExhaustionPolicy: o.ExhaustionPolicy,
	}
}
