// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	printcommon "github.com/yoctoalex/xcctl/pkg/print/common"
	"github.com/yoctoalex/xcctl/pkg/stats"
)

func TestPrint(t *testing.T) {
	testCases := map[string]struct {
		events            []event.Event
		expectedErr       error
		expectedApply     int
		expectedCompleted []event.ResourceAction
	}{
		"successful apply": {
			events: []event.Event{
				{Type: event.InitType},
				{Type: event.ApplyType, ApplyEvent: event.ApplyEvent{Operation: event.Created}},
				{Type: event.ApplyType, ApplyEvent: event.ApplyEvent{Operation: event.Unchanged}},
				{Type: event.ApplyType, ApplyEvent: event.ApplyEvent{Type: event.ApplyEventCompleted}},
			},
			expectedApply:     2,
			expectedCompleted: []event.ResourceAction{event.ApplyAction},
		},
		"failed apply": {
			events: []event.Event{
				{Type: event.InitType},
				{Type: event.ApplyType, ApplyEvent: event.ApplyEvent{
					Operation: event.Failed,
					Error:     fmt.Errorf("forbidden"),
				}},
				{Type: event.ErrorType, ErrorEvent: event.ErrorEvent{Err: fmt.Errorf("forbidden")}},
			},
			expectedErr:   fmt.Errorf("forbidden"),
			expectedApply: 1,
		},
		"failed delete without error event": {
			events: []event.Event{
				{Type: event.DeleteType, DeleteEvent: event.DeleteEvent{
					Type:  event.DeleteEventFailed,
					Error: fmt.Errorf("boom"),
				}},
				{Type: event.DeleteType, DeleteEvent: event.DeleteEvent{Type: event.DeleteEventCompleted}},
			},
			expectedErr: &printcommon.ResultError{
				Stats: stats.Stats{DeleteStats: stats.DeleteStats{Failed: 1}},
			},
			expectedCompleted: []event.ResourceAction{event.DeleteAction},
		},
		"fetch": {
			events: []event.Event{
				{Type: event.FetchType, FetchEvent: event.FetchEvent{Found: true}},
				{Type: event.FetchType, FetchEvent: event.FetchEvent{Type: event.FetchEventCompleted}},
			},
			expectedCompleted: []event.ResourceAction{event.FetchAction},
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			formatter := newCountingFormatter()
			p := &BaseListPrinter{
				FormatterFactory: func() Formatter {
					return formatter
				},
			}

			ch := make(chan event.Event)
			go func() {
				defer close(ch)
				for _, e := range tc.events {
					ch <- e
				}
			}()

			err := p.Print(ch)
			assert.Equal(t, tc.expectedErr, err)
			assert.Len(t, formatter.applyEvents, tc.expectedApply)
			assert.Equal(t, tc.expectedCompleted, formatter.completed)
		})
	}
}

func newCountingFormatter() *countingFormatter {
	return &countingFormatter{}
}

type countingFormatter struct {
	initEvents   []event.InitEvent
	applyEvents  []event.ApplyEvent
	deleteEvents []event.DeleteEvent
	fetchEvents  []event.FetchEvent
	waitEvents   []event.WaitEvent
	errorEvent   event.ErrorEvent
	completed    []event.ResourceAction
}

func (c *countingFormatter) FormatInitEvent(e event.InitEvent) error {
	c.initEvents = append(c.initEvents, e)
	return nil
}

func (c *countingFormatter) FormatApplyEvent(e event.ApplyEvent) error {
	c.applyEvents = append(c.applyEvents, e)
	return nil
}

func (c *countingFormatter) FormatDeleteEvent(e event.DeleteEvent) error {
	c.deleteEvents = append(c.deleteEvents, e)
	return nil
}

func (c *countingFormatter) FormatFetchEvent(e event.FetchEvent) error {
	c.fetchEvents = append(c.fetchEvents, e)
	return nil
}

func (c *countingFormatter) FormatWaitEvent(e event.WaitEvent) error {
	c.waitEvents = append(c.waitEvents, e)
	return nil
}

func (c *countingFormatter) FormatErrorEvent(e event.ErrorEvent) error {
	c.errorEvent = e
	return nil
}

func (c *countingFormatter) FormatCompletedEvent(action event.ResourceAction, _ stats.Stats) error {
	c.completed = append(c.completed, action)
	return nil
}
