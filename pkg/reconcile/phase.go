// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"k8s.io/klog/v2"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// Phases of one reconciliation.
const (
	PhasePending   = "pending"
	PhaseObserved  = "observed"
	PhaseCreated   = "created"
	PhaseUpdated   = "updated"
	PhaseDeleted   = "deleted"
	PhaseUnchanged = "unchanged"
	PhaseFetched   = "fetched"
	PhaseWaiting   = "waiting"
	PhaseReady     = "ready"
	PhaseDone      = "done"
)

// Transitions between phases.
const (
	transitionObserve = "observe"
	transitionCreate  = "create"
	transitionUpdate  = "update"
	transitionDelete  = "delete"
	transitionSkip    = "skip"
	transitionFetch   = "fetch"
	transitionWait    = "wait"
	transitionSettle  = "settle"
	transitionFinish  = "finish"
)

var phaseTransitions = fsm.Events{
	{Name: transitionObserve, Src: []string{PhasePending}, Dst: PhaseObserved},
	{Name: transitionCreate, Src: []string{PhasePending, PhaseObserved}, Dst: PhaseCreated},
	{Name: transitionUpdate, Src: []string{PhaseObserved}, Dst: PhaseUpdated},
	{Name: transitionDelete, Src: []string{PhasePending, PhaseObserved}, Dst: PhaseDeleted},
	{Name: transitionSkip, Src: []string{PhasePending, PhaseObserved}, Dst: PhaseUnchanged},
	{Name: transitionFetch, Src: []string{PhasePending, PhaseObserved}, Dst: PhaseFetched},
	{Name: transitionWait, Src: []string{PhaseCreated}, Dst: PhaseWaiting},
	{Name: transitionSettle, Src: []string{PhaseWaiting}, Dst: PhaseReady},
	{Name: transitionFinish, Src: []string{
		PhaseCreated, PhaseUpdated, PhaseDeleted, PhaseUnchanged, PhaseFetched, PhaseWaiting, PhaseReady,
	}, Dst: PhaseDone},
}

// phaseTracker records the path a reconciliation takes and rejects
// transitions the engine must never make.
type phaseTracker struct {
	fsm   *fsm.FSM
	trail []string
}

func newPhaseTracker(id object.Identity) *phaseTracker {
	p := &phaseTracker{trail: []string{PhasePending}}
	p.fsm = fsm.NewFSM(
		PhasePending,
		phaseTransitions,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				klog.V(2).Infof("%s: %s -> %s", id, e.Src, e.Dst)
				p.trail = append(p.trail, e.Dst)
			},
		},
	)
	return p
}

func (p *phaseTracker) transition(ctx context.Context, name string) error {
	if err := p.fsm.Event(ctx, name); err != nil {
		return fmt.Errorf("illegal phase transition %q from %q: %w", name, p.fsm.Current(), err)
	}
	return nil
}

func (p *phaseTracker) current() string {
	return p.fsm.Current()
}
