// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile brings one remote object to a target lifecycle state.
// A reconciliation probes whether the object exists and then creates,
// replaces, deletes or merely reads it, optionally polling a freshly
// created object until its server-side initialization has settled.
package reconcile

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/klog/v2"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/object"
)

// Request describes one reconciliation.
type Request struct {
	Kind *kind.Kind
	// State is the target state. Empty means the kind's default.
	State kind.State
	// Params is the desired parameter mapping of the object.
	Params object.Document
	// Patch merges the desired fields over the observed ones on update
	// instead of replacing the whole document.
	Patch bool
	// Wait polls a freshly created object until it is ready.
	Wait bool
}

// Operation is what a reconciliation did to the object.
type Operation string

const (
	OperationCreated   Operation = "created"
	OperationUpdated   Operation = "updated"
	OperationDeleted   Operation = "deleted"
	OperationUnchanged Operation = "unchanged"
	OperationFetched   Operation = "fetched"
	OperationNotFound  Operation = "not-found"
)

// Result is the outcome of a successful reconciliation.
type Result struct {
	Identifier object.Identity
	Changed    bool
	Operation  Operation
	// Object is the returnable view of the final observed state.
	Object object.Document
	// Phases is the sequence of phases the reconciliation went through.
	Phases []string
}

// Reconciler drives objects of any registered kind to their target state
// through a gateway.
type Reconciler struct {
	gateway gateway.Interface
	opts    Options
}

// NewReconciler returns a Reconciler that talks through gw.
func NewReconciler(gw gateway.Interface, opts Options) *Reconciler {
	return &Reconciler{gateway: gw, opts: opts.withDefaults()}
}

// Reconcile runs one reconciliation. Every failure aborts it and no
// partial result is returned.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (Result, error) {
	k := req.Kind
	if k == nil {
		return Result{}, fmt.Errorf("request has no kind")
	}
	state := req.State
	if state == "" {
		state = k.DefaultState()
	}
	if !k.Supports(state) {
		return Result{}, &UnsupportedStateError{Kind: k.Name, State: state}
	}

	desired, err := object.NewParameters(req.Params, k.Schema)
	if err != nil {
		return Result{}, err
	}
	id, err := k.Identity(desired)
	if err != nil {
		return Result{}, err
	}

	wantWait := req.Wait
	if wantWait && k.Ready == nil {
		klog.Warningf("%s: kind %s does not support waiting, ignoring wait", id, k.Name)
		wantWait = false
	}

	t := &task{
		Reconciler: r,
		kind:       k,
		id:         id,
		desired:    desired,
		observed:   object.NewObserved(k.Schema),
		patch:      req.Patch,
		wait:       wantWait,
		phases:     newPhaseTracker(id),
	}

	var op Operation
	switch state {
	case kind.Present:
		op, err = t.present(ctx)
	case kind.Absent:
		op, err = t.absent(ctx)
	case kind.Fetch:
		op, err = t.fetch(ctx)
	}
	if err != nil {
		return Result{}, err
	}
	if err := t.phases.transition(ctx, transitionFinish); err != nil {
		return Result{}, err
	}

	result := Result{
		Identifier: id,
		Changed:    op == OperationCreated || op == OperationUpdated || op == OperationDeleted,
		Operation:  op,
		Object:     t.observed.Params().ToReturn(),
		Phases:     t.phases.trail,
	}
	r.emit(resultEvent(state, result))
	return result, nil
}

func (r *Reconciler) emit(e event.Event) {
	if r.opts.EventSink != nil {
		r.opts.EventSink(e)
	}
}

func resultEvent(state kind.State, res Result) event.Event {
	switch res.Operation {
	case OperationCreated, OperationUpdated, OperationUnchanged:
		if state == kind.Absent {
			break
		}
		op := event.Unchanged
		if res.Operation == OperationCreated {
			op = event.Created
		} else if res.Operation == OperationUpdated {
			op = event.Configured
		}
		return event.Event{
			Type: event.ApplyType,
			ApplyEvent: event.ApplyEvent{
				Type:       event.ApplyEventResourceUpdate,
				Operation:  op,
				Object:     res.Object,
				Identifier: res.Identifier,
			},
		}
	case OperationDeleted:
		return event.Event{
			Type: event.DeleteType,
			DeleteEvent: event.DeleteEvent{
				Type:       event.DeleteEventResourceUpdate,
				Operation:  event.Deleted,
				Identifier: res.Identifier,
			},
		}
	case OperationFetched:
		return event.Event{
			Type: event.FetchType,
			FetchEvent: event.FetchEvent{
				Type:       event.FetchEventResourceUpdate,
				Found:      true,
				Object:     res.Object,
				Identifier: res.Identifier,
			},
		}
	case OperationNotFound:
		return event.Event{
			Type: event.FetchType,
			FetchEvent: event.FetchEvent{
				Type:       event.FetchEventResourceUpdate,
				Object:     res.Object,
				Identifier: res.Identifier,
			},
		}
	}
	// absent on a missing object
	return event.Event{
		Type: event.DeleteType,
		DeleteEvent: event.DeleteEvent{
			Type:       event.DeleteEventResourceUpdate,
			Operation:  event.DeleteSkipped,
			Identifier: res.Identifier,
		},
	}
}

// task holds the desired and observed snapshots of one reconciliation.
type task struct {
	*Reconciler
	kind     *kind.Kind
	id       object.Identity
	desired  *object.Parameters
	observed *object.Observed
	patch    bool
	wait     bool
	phases   *phaseTracker
}

func (t *task) present(ctx context.Context) (Operation, error) {
	if t.kind.Endpoints.Read == nil {
		// Create is an upsert for kinds that cannot be read back.
		return t.create(ctx)
	}
	found, err := t.exists(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return t.create(ctx)
	}
	if t.kind.Endpoints.Replace == nil {
		klog.V(2).Infof("%s: kind %s cannot be replaced, leaving it unchanged", t.id, t.kind.Name)
		return OperationUnchanged, t.phases.transition(ctx, transitionSkip)
	}
	return t.update(ctx)
}

func (t *task) absent(ctx context.Context) (Operation, error) {
	if t.kind.Endpoints.Read != nil {
		found, err := t.exists(ctx)
		if err != nil {
			return "", err
		}
		if !found {
			return OperationUnchanged, t.phases.transition(ctx, transitionSkip)
		}
	}
	return t.remove(ctx)
}

func (t *task) fetch(ctx context.Context) (Operation, error) {
	found, err := t.exists(ctx)
	if err != nil {
		return "", err
	}
	if err := t.phases.transition(ctx, transitionFetch); err != nil {
		return "", err
	}
	if !found {
		return OperationNotFound, nil
	}
	return OperationFetched, nil
}

// exists reads the object by identity. The observed state is only
// populated when the response carries the kind's marker field.
func (t *task) exists(ctx context.Context) (bool, error) {
	ep := t.kind.Endpoints.Read
	if ep == nil {
		return false, fmt.Errorf("kind %s cannot be read", t.kind.Name)
	}
	resp := t.gateway.Do(ctx, ep.Method, ep.Path(t.id), nil)
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if !isSuccess(resp.StatusCode) {
		return false, newRemoteError(t.id, "read", resp)
	}
	doc, err := resp.JSON()
	if err != nil {
		return false, newRemoteError(t.id, "read", resp)
	}
	if !t.kind.HasMarker(doc) {
		return false, nil
	}
	if err := t.observed.Set(doc); err != nil {
		return false, err
	}
	return true, t.phases.transition(ctx, transitionObserve)
}

func (t *task) create(ctx context.Context) (Operation, error) {
	ep := t.kind.Endpoints.Create
	if ep == nil {
		return "", fmt.Errorf("kind %s cannot be created", t.kind.Name)
	}
	payload := object.PruneNulls(t.desired.ToUpdate())
	resp := t.gateway.Do(ctx, ep.Method, ep.Path(t.id), payload)
	if !isSuccess(resp.StatusCode) {
		return "", newRemoteError(t.id, "create", resp)
	}

	observed := payload
	doc, err := resp.JSON()
	switch {
	case err != nil:
		klog.V(2).Infof("%s: create response is not a JSON object, keeping the request payload: %v", t.id, err)
	case len(doc) > 0:
		observed = doc
	}
	if err := t.observed.Set(observed); err != nil {
		return "", err
	}
	if err := t.phases.transition(ctx, transitionCreate); err != nil {
		return "", err
	}

	if t.wait {
		if err := t.waitReady(ctx); err != nil {
			return "", err
		}
	}
	return OperationCreated, nil
}

func (t *task) update(ctx context.Context) (Operation, error) {
	ep := t.kind.Endpoints.Replace
	payload := t.desired.ToUpdate()
	if t.patch {
		merged, err := object.Merge(t.observed.Params().ToUpdate(), payload)
		if err != nil {
			return "", err
		}
		payload = merged
	}
	payload = object.PruneNulls(payload)

	resp := t.gateway.Do(ctx, ep.Method, ep.Path(t.id), payload)
	if !isSuccess(resp.StatusCode) {
		return "", newRemoteError(t.id, "replace", resp)
	}
	if err := t.observed.Set(payload); err != nil {
		return "", err
	}
	return OperationUpdated, t.phases.transition(ctx, transitionUpdate)
}

func (t *task) remove(ctx context.Context) (Operation, error) {
	ep := t.kind.Endpoints.Delete
	if ep == nil {
		return "", fmt.Errorf("kind %s cannot be deleted", t.kind.Name)
	}
	resp := t.gateway.Do(ctx, ep.Method, ep.Path(t.id), nil)
	if resp.StatusCode == http.StatusNotFound {
		return OperationUnchanged, t.phases.transition(ctx, transitionSkip)
	}
	if !isSuccess(resp.StatusCode) {
		return "", newRemoteError(t.id, "delete", resp)
	}
	return OperationDeleted, t.phases.transition(ctx, transitionDelete)
}

// waitReady polls the object at a fixed interval until the kind reports
// it ready or the attempt budget is spent.
func (t *task) waitReady(ctx context.Context) error {
	if err := t.phases.transition(ctx, transitionWait); err != nil {
		return err
	}
	ep := t.kind.Endpoints.Read
	attempt := 0
	var last object.Document

	backoff := wait.Backoff{
		Duration: t.opts.WaitInterval,
		Factor:   1,
		Steps:    t.opts.WaitAttempts,
	}
	err := wait.ExponentialBackoffWithContext(ctx, backoff, func(ctx context.Context) (bool, error) {
		attempt++
		resp := t.gateway.Do(ctx, ep.Method, ep.Path(t.id), nil)
		if !isSuccess(resp.StatusCode) {
			return false, newRemoteError(t.id, "read", resp)
		}
		doc, err := resp.JSON()
		if err != nil {
			return false, newRemoteError(t.id, "read", resp)
		}
		last = doc
		ready, err := t.kind.Ready(doc)
		if err != nil {
			return false, fmt.Errorf("checking readiness of %s: %w", t.id, err)
		}
		klog.V(4).Infof("%s: readiness poll %d/%d: ready=%t", t.id, attempt, t.opts.WaitAttempts, ready)
		t.emit(event.Event{
			Type: event.WaitType,
			WaitEvent: event.WaitEvent{
				Identifier: t.id,
				Attempt:    attempt,
				Attempts:   t.opts.WaitAttempts,
				Ready:      ready,
			},
		})
		return ready, nil
	})

	switch {
	case err == nil:
		if err := t.observed.Set(last); err != nil {
			return err
		}
		return t.phases.transition(ctx, transitionSettle)
	case ctx.Err() != nil:
		return ctx.Err()
	case !wait.Interrupted(err):
		return err
	}

	if t.opts.ExhaustionPolicy == ExhaustionReturnLast {
		klog.Warningf("%s: not ready after %d attempts, returning the last observed document", t.id, attempt)
		if last != nil {
			return t.observed.Set(last)
		}
		return nil
	}
	return &TimeoutError{
		Identifier:   t.id,
		Attempts:     attempt,
		Interval:     t.opts.WaitInterval,
		LastObserved: last,
	}
}

func isSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated || status == http.StatusAccepted
}
