// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package kind

import (
	"github.com/yoctoalex/xcctl/pkg/object"
)

// TenantSettings is the read-only settings document of the tenant.
var TenantSettings = &Kind{
	Name:        "tenant_settings",
	Description: "read-only tenant settings",
	Schema: object.Schema{
		Returnable: []string{
			"active_plan_transition_id",
			"company_name",
			"domain",
			"max_credentials_expiry",
			"name",
			"otp_enabled",
			"otp_status",
			"sso_enabled",
			"state",
		},
	},
	States: []State{Fetch},
	Identity: func(*object.Parameters) (object.Identity, error) {
		return object.Identity{Kind: "tenant_settings"}, nil
	},
	Marker: "name",
	Endpoints: Endpoints{
		Read: get(func(object.Identity) string {
			return "/api/web/namespaces/system/tenant/settings"
		}),
	},
}

//nolint:gochecknoinits
func init() {
	Register(TenantSettings)
}
