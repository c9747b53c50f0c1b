// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yoctoalex/xcctl/pkg/config"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/object"
)

const (
	argsWrapperKey   = "ANSIBLE_MODULE_ARGS"
	internalArgsPref = "_ansible_"

	argState    = "state"
	argPatch    = "patch"
	argWait     = "wait"
	argProvider = "provider"
)

// Args are the module arguments sent by the host, split into the control
// arguments and the parameters of the object.
type Args struct {
	State    kind.State
	Patch    bool
	Wait     bool
	Provider config.Provider
	// Params holds every other argument with the kind's defaults applied.
	Params object.Document
}

// ArgsError is returned for arguments that cannot be used.
type ArgsError struct {
	Arg    string
	Reason string
}

func (e *ArgsError) Error() string {
	return fmt.Sprintf("argument %s: %s", e.Arg, e.Reason)
}

// ParseArgs decodes the JSON argument blob of a module call for kind k.
// The blob is either the bare argument mapping or the mapping wrapped in
// an ANSIBLE_MODULE_ARGS key. Host internal arguments are ignored.
func ParseArgs(k *kind.Kind, blob []byte) (Args, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Args{}, fmt.Errorf("failed to decode module arguments: %w", err)
	}
	if wrapped, ok := raw[argsWrapperKey].(map[string]interface{}); ok {
		raw = wrapped
	}

	args := Args{
		State:  k.DefaultState(),
		Params: object.Document{},
	}
	for key, val := range raw {
		switch {
		case strings.HasPrefix(key, internalArgsPref):
			// host internals
		case key == argState:
			if val == nil {
				continue
			}
			s, ok := val.(string)
			if !ok || !k.Supports(kind.State(s)) {
				return Args{}, &ArgsError{
					Arg:    argState,
					Reason: fmt.Sprintf("value must be one of: %s, got: %v", joinStates(k.States), val),
				}
			}
			args.State = kind.State(s)
		case key == argPatch:
			b, err := toBool(argPatch, val)
			if err != nil {
				return Args{}, err
			}
			args.Patch = b
		case key == argWait:
			b, err := toBool(argWait, val)
			if err != nil {
				return Args{}, err
			}
			args.Wait = b
		case key == argProvider:
			p, err := toProvider(val)
			if err != nil {
				return Args{}, err
			}
			args.Provider = p
		default:
			args.Params[key] = val
		}
	}

	params, err := k.ApplyDefaults(args.Params)
	if err != nil {
		return Args{}, err
	}
	args.Params = params
	return args, nil
}

// toBool accepts the boolean spellings the host accepts.
func toBool(arg string, val interface{}) (bool, error) {
	switch v := val.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "yes", "on", "y":
			return true, nil
		case "no", "off", "n":
			return false, nil
		}
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	}
	return false, &ArgsError{Arg: arg, Reason: fmt.Sprintf("%v is not a valid boolean", val)}
}

func toProvider(val interface{}) (config.Provider, error) {
	if val == nil {
		return config.Provider{}, nil
	}
	m, ok := val.(map[string]interface{})
	if !ok {
		return config.Provider{}, &ArgsError{Arg: argProvider, Reason: "must be a mapping"}
	}
	var p config.Provider
	for key, dst := range map[string]*string{"api_token": &p.APIToken, "tenant": &p.Tenant} {
		v, found := m[key]
		if !found || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return config.Provider{}, &ArgsError{Arg: argProvider + "." + key, Reason: "must be a string"}
		}
		*dst = s
	}
	return p, nil
}

func joinStates(states []kind.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
