// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"github.com/yoctoalex/xcctl/pkg/apply/event"
	printcommon "github.com/yoctoalex/xcctl/pkg/print/common"
	"github.com/yoctoalex/xcctl/pkg/stats"
)

// Formatter renders single events. Completed events are passed to
// FormatCompletedEvent together with the stats collected so far.
type Formatter interface {
	FormatInitEvent(ie event.InitEvent) error
	FormatApplyEvent(ae event.ApplyEvent) error
	FormatDeleteEvent(de event.DeleteEvent) error
	FormatFetchEvent(fe event.FetchEvent) error
	FormatWaitEvent(we event.WaitEvent) error
	FormatErrorEvent(ee event.ErrorEvent) error
	FormatCompletedEvent(action event.ResourceAction, s stats.Stats) error
}

type FormatterFactory func() Formatter

type BaseListPrinter struct {
	FormatterFactory FormatterFactory
}

// Print outputs the events from the provided channel using the
// formatter from the factory. It blocks until the channel is closed,
// and returns the error of an ErrorEvent or a ResultError when any
// object failed.
func (b *BaseListPrinter) Print(ch <-chan event.Event) error {
	var s stats.Stats
	formatter := b.FormatterFactory()
	for e := range ch {
		s.Handle(e)
		var err error
		switch e.Type {
		case event.InitType:
			err = formatter.FormatInitEvent(e.InitEvent)
		case event.ErrorType:
			_ = formatter.FormatErrorEvent(e.ErrorEvent)
			// Drain the channel so the sender is not blocked.
			for range ch {
			}
			return e.ErrorEvent.Err
		case event.ApplyType:
			if e.ApplyEvent.Type == event.ApplyEventCompleted {
				err = formatter.FormatCompletedEvent(event.ApplyAction, s)
			} else {
				err = formatter.FormatApplyEvent(e.ApplyEvent)
			}
		case event.DeleteType:
			if e.DeleteEvent.Type == event.DeleteEventCompleted {
				err = formatter.FormatCompletedEvent(event.DeleteAction, s)
			} else {
				err = formatter.FormatDeleteEvent(e.DeleteEvent)
			}
		case event.FetchType:
			if e.FetchEvent.Type == event.FetchEventCompleted {
				err = formatter.FormatCompletedEvent(event.FetchAction, s)
			} else {
				err = formatter.FormatFetchEvent(e.FetchEvent)
			}
		case event.WaitType:
			err = formatter.FormatWaitEvent(e.WaitEvent)
		}
		if err != nil {
			for range ch {
			}
			return err
		}
	}
	return printcommon.ResultErrorFromStats(s)
}
