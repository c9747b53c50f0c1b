// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// EnvAPIToken holds the API token when none is configured explicitly.
	EnvAPIToken = "XC_API_TOKEN"
	// EnvTenant holds the tenant host when none is configured explicitly.
	EnvTenant = "XC_TENANT"
)

// LookupFunc returns the value of a setting from the environment.
type LookupFunc func(key string) (string, bool)

// OSLookup reads the process environment. It is only meant to be passed
// in from the process entry points.
var OSLookup LookupFunc = os.LookupEnv

// MapLookup returns a LookupFunc backed by a map.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		val, found := env[key]
		return val, found
	}
}

// Provider contains the settings needed to reach the tenant API.
type Provider struct {
	APIToken string
	Tenant   string
}

// MissingSettingError is returned when a provider setting is neither
// configured explicitly nor present in the environment.
type MissingSettingError struct {
	Setting string
	EnvVar  string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s is not set; configure it explicitly or set %s", e.Setting, e.EnvVar)
}

// Resolve returns explicit when it is non-empty, and otherwise the value
// of key from lookup. An empty environment value counts as unset.
func Resolve(explicit, key string, lookup LookupFunc) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if lookup == nil {
		return ""
	}
	if val, found := lookup(key); found && strings.TrimSpace(val) != "" {
		return val
	}
	return ""
}

// ResolveProvider completes p from the environment and fails when a
// setting is still missing afterwards.
func ResolveProvider(p Provider, lookup LookupFunc) (Provider, error) {
	resolved := Provider{
		APIToken: Resolve(p.APIToken, EnvAPIToken, lookup),
		Tenant:   Resolve(p.Tenant, EnvTenant, lookup),
	}
	if resolved.APIToken == "" {
		return Provider{}, &MissingSettingError{Setting: "api_token", EnvVar: EnvAPIToken}
	}
	if resolved.Tenant == "" {
		return Provider{}, &MissingSettingError{Setting: "tenant", EnvVar: EnvTenant}
	}
	return resolved, nil
}
