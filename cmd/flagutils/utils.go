// Copyright 2021 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package flagutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/yoctoalex/xcctl/pkg/config"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/manifestreader"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

const (
	TenantFlag          = "tenant"
	APITokenFlag        = "api-token"
	OnWaitExhaustedFlag = "on-wait-exhausted"
)

// GatewayFactory returns the gateway a command talks through.
type GatewayFactory func() (gateway.Interface, error)

// ClientFlags are the persistent flags that configure the API client.
type ClientFlags struct {
	Tenant                string
	APIToken              string
	InsecureSkipTLSVerify bool
	RequestTimeout        time.Duration
	Retries               int

	// Lookup resolves settings that were not passed as flags.
	Lookup config.LookupFunc
}

func NewClientFlags(lookup config.LookupFunc) *ClientFlags {
	return &ClientFlags{
		RequestTimeout: gateway.DefaultTimeout,
		Lookup:         lookup,
	}
}

func (f *ClientFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.Tenant, TenantFlag, f.Tenant,
		fmt.Sprintf("Tenant API host. Defaults to $%s.", config.EnvTenant))
	flags.StringVar(&f.APIToken, APITokenFlag, f.APIToken,
		fmt.Sprintf("API token. Defaults to $%s.", config.EnvAPIToken))
	flags.BoolVar(&f.InsecureSkipTLSVerify, "insecure-skip-tls-verify", f.InsecureSkipTLSVerify,
		"If true, the server's certificate will not be checked for validity.")
	flags.DurationVar(&f.RequestTimeout, "request-timeout", f.RequestTimeout,
		"How long to wait for a single API call.")
	flags.IntVar(&f.Retries, "retries", f.Retries,
		"Number of retries after a connection failure. HTTP errors are never retried.")
}

// BaseConfig returns the client configuration without credentials.
func (f *ClientFlags) BaseConfig() gateway.Config {
	return gateway.Config{
		Timeout:            f.RequestTimeout,
		RetryMax:           f.Retries,
		InsecureSkipVerify: f.InsecureSkipTLSVerify,
	}
}

// ToGatewayConfig resolves the credentials, flags first, then the
// environment.
func (f *ClientFlags) ToGatewayConfig() (gateway.Config, error) {
	p, err := config.ResolveProvider(config.Provider{
		APIToken: f.APIToken,
		Tenant:   f.Tenant,
	}, f.Lookup)
	if err != nil {
		return gateway.Config{}, err
	}
	cfg := f.BaseConfig()
	cfg.Tenant = p.Tenant
	cfg.APIToken = p.APIToken
	return cfg, nil
}

func (f *ClientFlags) NewGateway() (gateway.Interface, error) {
	cfg, err := f.ToGatewayConfig()
	if err != nil {
		return nil, err
	}
	return gateway.NewClient(cfg)
}

// ManifestFlags select how manifests are read.
type ManifestFlags struct {
	Namespace        string
	EnforceNamespace bool
}

func (f *ManifestFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Namespace, "namespace", "n", f.Namespace,
		"Namespace set on namespaced objects that do not carry one.")
	flags.BoolVar(&f.EnforceNamespace, "enforce-namespace", f.EnforceNamespace,
		"If true, fail on objects in a namespace other than --namespace.")
}

func (f *ManifestFlags) ToLoader() manifestreader.ManifestLoader {
	return manifestreader.NewManifestLoader(f.Namespace, f.EnforceNamespace)
}

// WaitFlags tune the readiness polls after a create.
type WaitFlags struct {
	Attempts        int
	Interval        time.Duration
	OnWaitExhausted string
	Events          bool
}

func (f *WaitFlags) AddFlags(flags *pflag.FlagSet) {
	flags.IntVar(&f.Attempts, "wait-attempts", reconcile.DefaultWaitAttempts,
		"Number of readiness polls after creating an object that asks to be waited for.")
	flags.DurationVar(&f.Interval, "wait-interval", reconcile.DefaultWaitInterval,
		"Time between readiness polls.")
	flags.StringVar(&f.OnWaitExhausted, OnWaitExhaustedFlag, string(reconcile.ExhaustionError),
		fmt.Sprintf("What to do when an object is not ready after all polls. One of %s.",
			strings.Join(exhaustionPolicyNames(), ", ")))
	flags.BoolVar(&f.Events, "wait-events", f.Events,
		"If true, print an event for every readiness poll.")
}

func exhaustionPolicyNames() []string {
	names := make([]string, len(reconcile.ExhaustionPolicies))
	for i, p := range reconcile.ExhaustionPolicies {
		names[i] = fmt.Sprintf("%q", p)
	}
	return names
}

// ConvertExhaustionPolicy validates the value of --on-wait-exhausted.
func ConvertExhaustionPolicy(policy string) (reconcile.ExhaustionPolicy, error) {
	p, err := reconcile.ParseExhaustionPolicy(policy)
	if err != nil {
		return reconcile.ExhaustionError, fmt.Errorf(
			"%s must be one of %s", OnWaitExhaustedFlag, strings.Join(exhaustionPolicyNames(), ", "))
	}
	return p, nil
}

// PathFromArgs returns the path which is a positional arg from args list
// returns "-" if there is length of args is 0, which implies stdin
func PathFromArgs(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
