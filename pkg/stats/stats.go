// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"errors"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

// Collector counts the events that pass through it.
type Collector struct {
	Stats Stats
}

func NewCollector() *Collector {
	return &Collector{}
}

// Collect forwards every event from eventChannel to the returned channel
// and updates c.Stats on the way. c.Stats is complete once the returned
// channel is closed.
func (c *Collector) Collect(eventChannel <-chan event.Event) <-chan event.Event {
	outChannel := make(chan event.Event)
	go func() {
		defer close(outChannel)
		for ev := range eventChannel {
			c.Stats.Handle(ev)
			outChannel <- ev
		}
	}()
	return outChannel
}

// Stats captures the summarized numbers from a run.
type Stats struct {
	ApplyStats  ApplyStats
	DeleteStats DeleteStats
	FetchStats  FetchStats
	WaitStats   WaitStats
}

// FailedActuationSum returns the number of objects that failed.
func (s *Stats) FailedActuationSum() int {
	return s.ApplyStats.Failed + s.DeleteStats.Failed + s.FetchStats.Failed
}

// FailedReconciliationSum returns the number of objects that never became
// ready.
func (s *Stats) FailedReconciliationSum() int {
	return s.WaitStats.Timeout
}

// Handle updates the stats based on an event. Completed events are not
// counted.
func (s *Stats) Handle(e event.Event) {
	switch e.Type {
	case event.ApplyType:
		if e.ApplyEvent.Type != event.ApplyEventResourceUpdate {
			return
		}
		if err := e.ApplyEvent.Error; err != nil {
			var timeout *reconcile.TimeoutError
			if errors.As(err, &timeout) {
				s.WaitStats.Timeout++
				return
			}
			s.ApplyStats.incFailed()
			return
		}
		s.ApplyStats.inc(e.ApplyEvent.Operation)
	case event.DeleteType:
		switch e.DeleteEvent.Type {
		case event.DeleteEventResourceUpdate:
			s.DeleteStats.inc(e.DeleteEvent.Operation)
		case event.DeleteEventFailed:
			s.DeleteStats.incFailed()
		}
	case event.FetchType:
		switch e.FetchEvent.Type {
		case event.FetchEventResourceUpdate:
			s.FetchStats.inc(e.FetchEvent.Found)
		case event.FetchEventFailed:
			s.FetchStats.incFailed()
		}
	case event.WaitType:
		s.WaitStats.inc(e.WaitEvent)
	}
}

type ApplyStats struct {
	Created    int
	Unchanged  int
	Configured int
	Failed     int
}

func (a *ApplyStats) inc(op event.ApplyEventOperation) {
	switch op {
	case event.Created:
		a.Created++
	case event.Unchanged:
		a.Unchanged++
	case event.Configured:
		a.Configured++
	case event.Failed:
		a.Failed++
	}
}

func (a *ApplyStats) incFailed() {
	a.Failed++
}

func (a *ApplyStats) Sum() int {
	return a.Created + a.Unchanged + a.Configured + a.Failed
}

type DeleteStats struct {
	Deleted int
	Skipped int
	Failed  int
}

func (d *DeleteStats) inc(op event.DeleteEventOperation) {
	switch op {
	case event.Deleted:
		d.Deleted++
	case event.DeleteSkipped:
		d.Skipped++
	}
}

func (d *DeleteStats) incFailed() {
	d.Failed++
}

func (d *DeleteStats) Sum() int {
	return d.Deleted + d.Skipped + d.Failed
}

type FetchStats struct {
	Found    int
	NotFound int
	Failed   int
}

func (f *FetchStats) inc(found bool) {
	if found {
		f.Found++
		return
	}
	f.NotFound++
}

func (f *FetchStats) incFailed() {
	f.Failed++
}

func (f *FetchStats) Sum() int {
	return f.Found + f.NotFound + f.Failed
}

// WaitStats counts readiness polls. Timeout is derived from the apply
// failures caused by an exhausted wait budget.
type WaitStats struct {
	Polls   int
	Ready   int
	Timeout int
}

func (w *WaitStats) inc(we event.WaitEvent) {
	w.Polls++
	if we.Ready {
		w.Ready++
	}
}
