// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/object"
)

// RemoteError is returned when the API answers a call with a status
// outside the success set, or the call never reached it. Its message is
// the raw response body.
type RemoteError struct {
	Identifier object.Identity
	// Action is one of read, create, replace or delete.
	Action     string
	StatusCode int
	Body       []byte
	Err        error
}

func newRemoteError(id object.Identity, action string, resp *gateway.Response) *RemoteError {
	return &RemoteError{
		Identifier: id,
		Action:     action,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Err:        resp.Err,
	}
}

func (e *RemoteError) Error() string {
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s failed before reaching the server", e.Action, e.Identifier)
	}
	return fmt.Sprintf("%s %s failed with status %d", e.Action, e.Identifier, e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when a freshly created object did not become
// ready within the wait budget.
type TimeoutError struct {
	Identifier object.Identity
	Attempts   int
	Interval   time.Duration
	// LastObserved is the document returned by the final poll.
	LastObserved object.Document
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s not ready after %d attempts %s apart", e.Identifier, e.Attempts, e.Interval)
}

// IsTimeoutError checks whether err is, or wraps, a TimeoutError.
func IsTimeoutError(err error) (*TimeoutError, bool) {
	var e *TimeoutError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// UnsupportedStateError is returned when a kind does not accept the
// requested target state.
type UnsupportedStateError struct {
	Kind  string
	State kind.State
}

func (e *UnsupportedStateError) Error() string {
	return fmt.Sprintf("state %q is not supported by kind %s", e.State, e.Kind)
}
