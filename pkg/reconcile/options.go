// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"fmt"
	"time"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
)

const (
	DefaultWaitAttempts = 100
	DefaultWaitInterval = 15 * time.Second
)

// ExhaustionPolicy decides what happens when the wait budget runs out
// before the object becomes ready.
type ExhaustionPolicy string

const (
	// ExhaustionError fails the reconciliation with a TimeoutError.
	ExhaustionError ExhaustionPolicy = "error"
	// ExhaustionReturnLast reports the last polled document as the result.
	ExhaustionReturnLast ExhaustionPolicy = "return-last"
)

// ExhaustionPolicies lists the accepted policy names.
var ExhaustionPolicies = []string{string(ExhaustionError), string(ExhaustionReturnLast)}

// ParseExhaustionPolicy converts a flag value into a policy.
func ParseExhaustionPolicy(s string) (ExhaustionPolicy, error) {
	switch p := ExhaustionPolicy(s); p {
	case ExhaustionError, ExhaustionReturnLast:
		return p, nil
	case "":
		return ExhaustionError, nil
	}
	return "", fmt.Errorf("invalid wait exhaustion policy %q, must be one of %v", s, ExhaustionPolicies)
}

// Options tunes a Reconciler. The zero value is usable.
type Options struct {
	// WaitAttempts is the number of readiness polls after a create.
	WaitAttempts int
	// WaitInterval is the fixed spacing between polls.
	WaitInterval time.Duration
	// ExhaustionPolicy applies when no poll saw the object ready.
	ExhaustionPolicy ExhaustionPolicy
	// EventSink receives progress events. It may be nil.
	EventSink event.Sink
}

func (o Options) withDefaults() Options {
	if o.WaitAttempts <= 0 {
		o.WaitAttempts = DefaultWaitAttempts
	}
	if o.WaitInterval <= 0 {
		o.WaitInterval = DefaultWaitInterval
	}
	if o.ExhaustionPolicy == "" {
		o.ExhaustionPolicy = ExhaustionError
	}
	return o
}
