// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"fmt"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// Type determines the type of events that are available.
type Type int

const (
	InitType Type = iota
	ErrorType
	ApplyType
	DeleteType
	FetchType
	WaitType
)

// Event is the type of the objects that will be returned through
// the channel that is returned from a call to Run. It contains
// information about progress and errors encountered while reconciling
// a set of manifests.
type Event struct {
	// Type is the type of event.
	Type Type

	// InitEvent contains information about which objects will be
	// processed.
	InitEvent InitEvent

	// ErrorEvent contains information about any errors encountered.
	ErrorEvent ErrorEvent

	// ApplyEvent contains information about progress pertaining to
	// bringing an object to the present state.
	ApplyEvent ApplyEvent

	// DeleteEvent contains information about objects that have been
	// deleted.
	DeleteEvent DeleteEvent

	// FetchEvent contains the result of a read-only reconciliation.
	FetchEvent FetchEvent

	// WaitEvent reports one readiness poll of a freshly created object.
	WaitEvent WaitEvent
}

// Sink receives events as they happen.
type Sink func(Event)

type InitEvent struct {
	Action      ResourceAction
	Identifiers []object.Identity
}

type ResourceAction int

const (
	ApplyAction ResourceAction = iota
	DeleteAction
	FetchAction
)

type ErrorEvent struct {
	Err error
}

type ApplyEventType int

const (
	ApplyEventResourceUpdate ApplyEventType = iota
	ApplyEventCompleted
)

type ApplyEventOperation int

const (
	Created ApplyEventOperation = iota
	Configured
	Unchanged
	Failed
)

type ApplyEvent struct {
	Type       ApplyEventType
	Operation  ApplyEventOperation
	Object     object.Document
	Identifier object.Identity
	Error      error
}

type DeleteEventType int

const (
	DeleteEventResourceUpdate DeleteEventType = iota
	DeleteEventCompleted
	DeleteEventFailed
)

type DeleteEventOperation int

const (
	Deleted DeleteEventOperation = iota
	DeleteSkipped
)

type DeleteEvent struct {
	Type       DeleteEventType
	Operation  DeleteEventOperation
	Identifier object.Identity
	Error      error
}

type FetchEventType int

const (
	FetchEventResourceUpdate FetchEventType = iota
	FetchEventCompleted
	FetchEventFailed
)

type FetchEvent struct {
	Type       FetchEventType
	Found      bool
	Object     object.Document
	Identifier object.Identity
	Error      error
}

// WaitEvent is sent after every readiness poll.
type WaitEvent struct {
	Identifier object.Identity
	Attempt    int
	Attempts   int
	Ready      bool
}

func (t Type) String() string {
	switch t {
	case InitType:
		return "InitType"
	case ErrorType:
		return "ErrorType"
	case ApplyType:
		return "ApplyType"
	case DeleteType:
		return "DeleteType"
	case FetchType:
		return "FetchType"
	case WaitType:
		return "WaitType"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (a ResourceAction) String() string {
	switch a {
	case ApplyAction:
		return "ApplyAction"
	case DeleteAction:
		return "DeleteAction"
	case FetchAction:
		return "FetchAction"
	}
	return fmt.Sprintf("ResourceAction(%d)", int(a))
}

func (o ApplyEventOperation) String() string {
	switch o {
	case Created:
		return "Created"
	case Configured:
		return "Configured"
	case Unchanged:
		return "Unchanged"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("ApplyEventOperation(%d)", int(o))
}

func (o DeleteEventOperation) String() string {
	switch o {
	case Deleted:
		return "Deleted"
	case DeleteSkipped:
		return "DeleteSkipped"
	}
	return fmt.Sprintf("DeleteEventOperation(%d)", int(o))
}
