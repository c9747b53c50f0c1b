// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/manifestreader"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

// runner reconciles manifests one at a time and reports progress on a
// channel. The first failure stops the run.
type runner struct {
	gateway gateway.Interface
	action  event.ResourceAction
	// state overrides the state of every manifest when set.
	state kind.State
}

func (r *runner) run(ctx context.Context, manifests []manifestreader.Manifest, opts RunOptions, ch chan<- event.Event) {
	klog.V(4).Infof("%s run for %d manifests", r.action, len(manifests))

	var selected []manifestreader.Manifest
	var ids []object.Identity
	var validator object.Validator
	for _, m := range manifests {
		if r.state != "" && !m.Kind.Supports(r.state) {
			klog.V(2).Infof("skipping %s manifest from %s: state %s not supported", m.Kind.Name, m.Source, r.state)
			continue
		}
		// Resolve every identity before anything is changed remotely.
		id, err := identity(m)
		if err != nil {
			validator.Add(m.Kind.Name, m.Source, err)
			continue
		}
		selected = append(selected, m)
		ids = append(ids, id)
	}
	if err := validator.Err(); err != nil {
		sendErrorEvent(ch, err)
		return
	}

	ch <- event.Event{
		Type: event.InitType,
		InitEvent: event.InitEvent{
			Action:      r.action,
			Identifiers: ids,
		},
	}

	reconcileOpts := opts.reconcileOptions()
	reconcileOpts.EventSink = func(e event.Event) {
		if e.Type == event.WaitType && !opts.EmitWaitEvents {
			return
		}
		ch <- e
	}
	reconciler := reconcile.NewReconciler(r.gateway, reconcileOpts)

	for i, m := range selected {
		if err := ctx.Err(); err != nil {
			sendErrorEvent(ch, err)
			return
		}
		state := m.State
		if r.state != "" {
			state = r.state
		}
		_, err := reconciler.Reconcile(ctx, reconcile.Request{
			Kind:   m.Kind,
			State:  state,
			Params: m.Params,
			Patch:  m.Patch,
			Wait:   m.Wait,
		})
		if err != nil {
			ch <- failureEvent(state, ids[i], err)
			sendErrorEvent(ch, err)
			return
		}
	}

	ch <- completedEvent(r.action)
}

func identity(m manifestreader.Manifest) (object.Identity, error) {
	desired, err := object.NewParameters(m.Params, m.Kind.Schema)
	if err != nil {
		return object.Identity{}, err
	}
	return m.Kind.Identity(desired)
}

func failureEvent(state kind.State, id object.Identity, err error) event.Event {
	switch state {
	case kind.Absent:
		return event.Event{
			Type: event.DeleteType,
			DeleteEvent: event.DeleteEvent{
				Type:       event.DeleteEventFailed,
				Identifier: id,
				Error:      err,
			},
		}
	case kind.Fetch:
		return event.Event{
			Type: event.FetchType,
			FetchEvent: event.FetchEvent{
				Type:       event.FetchEventFailed,
				Identifier: id,
				Error:      err,
			},
		}
	}
	return event.Event{
		Type: event.ApplyType,
		ApplyEvent: event.ApplyEvent{
			Type:       event.ApplyEventResourceUpdate,
			Operation:  event.Failed,
			Identifier: id,
			Error:      err,
		},
	}
}

func completedEvent(action event.ResourceAction) event.Event {
	switch action {
	case event.DeleteAction:
		return event.Event{
			Type:        event.DeleteType,
			DeleteEvent: event.DeleteEvent{Type: event.DeleteEventCompleted},
		}
	case event.FetchAction:
		return event.Event{
			Type:       event.FetchType,
			FetchEvent: event.FetchEvent{Type: event.FetchEventCompleted},
		}
	}
	return event.Event{
		Type:       event.ApplyType,
		ApplyEvent: event.ApplyEvent{Type: event.ApplyEventCompleted},
	}
}

func sendErrorEvent(ch chan<- event.Event, err error) {
	ch <- event.Event{
		Type: event.ErrorType,
		ErrorEvent: event.ErrorEvent{
			Err: err,
		},
	}
}
