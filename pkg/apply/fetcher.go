// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"context"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/manifestreader"
)

// NewFetcher returns a new Fetcher that talks to the API through gw.
func NewFetcher(gw gateway.Interface) *Fetcher {
	return &Fetcher{gateway: gw}
}

// Fetcher reads every object described by a set of manifests without
// changing anything.
type Fetcher struct {
	gateway gateway.Interface
}

// Run reads the objects in order. Kinds that cannot be read are skipped.
// Each result is reported as a FetchEvent on the returned channel.
func (f *Fetcher) Run(ctx context.Context, manifests []manifestreader.Manifest, opts RunOptions) <-chan event.Event {
	ch := make(chan event.Event)
	go func() {
		defer close(ch)
		r := &runner{gateway: f.gateway, action: event.FetchAction, state: kind.Fetch}
		r.run(ctx, manifests, opts, ch)
	}()
	return ch
}
