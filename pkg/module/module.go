// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package module implements the invocation contract of a host automation
// tool: a JSON argument blob goes in, a JSON result comes out. Every
// call reconciles exactly one object.
package module

import (
	"context"

	"github.com/goccy/go-json"
	"k8s.io/klog/v2"

	"github.com/yoctoalex/xcctl/pkg/config"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

// GatewayFactory builds the gateway for a resolved configuration.
type GatewayFactory func(cfg gateway.Config) (gateway.Interface, error)

// Options tunes a module call.
type Options struct {
	// Gateway is the template for the client configuration. Tenant and
	// APIToken are always taken from the resolved provider.
	Gateway gateway.Config

	Reconcile reconcile.Options

	// NewGateway replaces gateway.NewClient.
	NewGateway GatewayFactory
}

// Output is the result reported to the host.
type Output struct {
	Changed bool
	Failed  bool
	Msg     string
	// Object is the returnable view of the object. It is empty when the
	// call failed.
	Object object.Document
}

// MarshalJSON flattens Object into the top level next to changed, and
// adds failed and msg on failure.
func (o Output) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(o.Object)+3)
	if !o.Failed {
		for key, val := range o.Object {
			m[key] = val
		}
	}
	m["changed"] = o.Changed
	if o.Failed {
		m["failed"] = true
		m["msg"] = o.Msg
	}
	return json.Marshal(m)
}

// FailedError is returned by callers that have already reported a failed
// Output and only need a non-zero exit.
type FailedError struct {
	Msg string
}

func (e *FailedError) Error() string {
	return e.Msg
}

// Failure returns the Output reported for a fatal error.
func Failure(err error) Output {
	return Output{Failed: true, Msg: err.Error()}
}

// Run reconciles one object of the named kind from the host argument
// blob. Provider settings missing from the arguments are looked up with
// lookup. Failures are reported in the Output and never partially.
func Run(ctx context.Context, kindName string, blob []byte, lookup config.LookupFunc, opts Options) Output {
	k, err := kind.Lookup(kindName)
	if err != nil {
		return Failure(err)
	}
	args, err := ParseArgs(k, blob)
	if err != nil {
		return Failure(err)
	}
	provider, err := config.ResolveProvider(args.Provider, lookup)
	if err != nil {
		return Failure(err)
	}

	gwConfig := opts.Gateway
	gwConfig.Tenant = provider.Tenant
	gwConfig.APIToken = provider.APIToken
	newGateway := opts.NewGateway
	if newGateway == nil {
		newGateway = func(cfg gateway.Config) (gateway.Interface, error) {
			return gateway.NewClient(cfg)
		}
	}
	gw, err := newGateway(gwConfig)
	if err != nil {
		return Failure(err)
	}

	klog.V(2).Infof("module %s: state=%s patch=%t wait=%t", k.Name, args.State, args.Patch, args.Wait)
	res, err := reconcile.NewReconciler(gw, opts.Reconcile).Reconcile(ctx, reconcile.Request{
		Kind:   k,
		State:  args.State,
		Params: args.Params,
		Patch:  args.Patch,
		Wait:   args.Wait,
	})
	if err != nil {
		return Failure(err)
	}
	return Output{
		Changed: res.Changed,
		Object:  res.Object,
	}
}
