// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/object"
)

// ExpEvent is the comparable part of an event.Event. Returned documents
// are left out; tests that care about them read the events directly.
type ExpEvent struct {
	EventType event.Type

	InitEvent   *ExpInitEvent
	ErrorEvent  *ExpErrorEvent
	ApplyEvent  *ExpApplyEvent
	DeleteEvent *ExpDeleteEvent
	FetchEvent  *ExpFetchEvent
	WaitEvent   *ExpWaitEvent
}

type ExpInitEvent struct {
	Action      event.ResourceAction
	Identifiers []object.Identity
}

type ExpErrorEvent struct {
	Err error
}

type ExpApplyEvent struct {
	Type       event.ApplyEventType
	Operation  event.ApplyEventOperation
	Identifier object.Identity
	Error      error
}

type ExpDeleteEvent struct {
	Type       event.DeleteEventType
	Operation  event.DeleteEventOperation
	Identifier object.Identity
	Error      error
}

type ExpFetchEvent struct {
	Type       event.FetchEventType
	Found      bool
	Identifier object.Identity
	Error      error
}

type ExpWaitEvent struct {
	Identifier object.Identity
	Attempt    int
	Ready      bool
}

// Collect drains ch.
func Collect(ch <-chan event.Event) []event.Event {
	var events []event.Event
	for e := range ch {
		events = append(events, e)
	}
	return events
}

func EventsToExpEvents(events []event.Event) []ExpEvent {
	result := make([]ExpEvent, 0, len(events))
	for _, event := range events {
		result = append(result, EventToExpEvent(event))
	}
	return result
}

func EventToExpEvent(e event.Event) ExpEvent {
	switch e.Type {
	case event.InitType:
		return ExpEvent{
			EventType: event.InitType,
			InitEvent: &ExpInitEvent{
				Action:      e.InitEvent.Action,
				Identifiers: e.InitEvent.Identifiers,
			},
		}

	case event.ErrorType:
		return ExpEvent{
			EventType:  event.ErrorType,
			ErrorEvent: &ExpErrorEvent{Err: e.ErrorEvent.Err},
		}

	case event.ApplyType:
		return ExpEvent{
			EventType: event.ApplyType,
			ApplyEvent: &ExpApplyEvent{
				Type:       e.ApplyEvent.Type,
				Operation:  e.ApplyEvent.Operation,
				Identifier: e.ApplyEvent.Identifier,
				Error:      e.ApplyEvent.Error,
			},
		}

	case event.DeleteType:
		return ExpEvent{
			EventType: event.DeleteType,
			DeleteEvent: &ExpDeleteEvent{
				Type:       e.DeleteEvent.Type,
				Operation:  e.DeleteEvent.Operation,
				Identifier: e.DeleteEvent.Identifier,
				Error:      e.DeleteEvent.Error,
			},
		}

	case event.FetchType:
		return ExpEvent{
			EventType: event.FetchType,
			FetchEvent: &ExpFetchEvent{
				Type:       e.FetchEvent.Type,
				Found:      e.FetchEvent.Found,
				Identifier: e.FetchEvent.Identifier,
				Error:      e.FetchEvent.Error,
			},
		}

	case event.WaitType:
		return ExpEvent{
			EventType: event.WaitType,
			WaitEvent: &ExpWaitEvent{
				Identifier: e.WaitEvent.Identifier,
				Attempt:    e.WaitEvent.Attempt,
				Ready:      e.WaitEvent.Ready,
			},
		}
	}
	return ExpEvent{}
}
