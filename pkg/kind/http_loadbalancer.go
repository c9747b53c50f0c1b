// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package kind

import (
	"fmt"
	"net/url"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// HTTPLoadBalancer is a namespaced HTTP/HTTPS load balancer.
var HTTPLoadBalancer = &Kind{
	Name:        "http_loadbalancer",
	Description: "HTTP/HTTPS load balancer with routing, WAF and rate limiting",
	Schema: object.Schema{
		Updatable:  []string{"metadata", "spec"},
		Returnable: []string{"metadata", "spec"},
	},
	States:        []State{Present, Absent, Fetch},
	Identity:      namespacedIdentity("http_loadbalancer"),
	NamespacePath: []string{"metadata", "namespace"},
	Marker:        "metadata",
	Endpoints: Endpoints{
		Read:    get(loadBalancerPath),
		Create:  post(func(id object.Identity) string { return loadBalancerCollection(id.Namespace) }),
		Replace: put(loadBalancerPath),
		Delete:  del(loadBalancerPath),
	},
	SpecFields: []string{
		"active_service_policies",
		"add_location",
		"advertise_custom",
		"advertise_on_public",
		"advertise_on_public_default_vip",
		"api_definition",
		"api_protection_rules",
		"api_rate_limit",
		"app_firewall",
		"blocked_clients",
		"captcha_challenge",
		"cookie_stickiness",
		"cors_policy",
		"data_guard_rules",
		"ddos_mitigation_rules",
		"default_route_pools",
		"disable_api_definition",
		"disable_ip_reputation",
		"disable_rate_limit",
		"disable_waf",
		"do_not_advertise",
		"domains",
		"enable_ip_reputation",
		"http",
		"https",
		"https_auto_cert",
		"js_challenge",
		"least_active",
		"more_option",
		"multi_lb_app",
		"no_challenge",
		"no_service_policies",
		"policy_based_challenge",
		"random",
		"rate_limit",
		"ring_hash",
		"round_robin",
		"routes",
		"service_policies_from_namespace",
		"single_lb_app",
		"source_ip_stickiness",
		"trusted_clients",
		"user_id_client_ip",
		"user_identification",
		"waf_exclusion_rules",
	},
}

func loadBalancerCollection(namespace string) string {
	return fmt.Sprintf("/api/config/namespaces/%s/http_loadbalancers", url.PathEscape(namespace))
}

func loadBalancerPath(id object.Identity) string {
	return fmt.Sprintf("%s/%s", loadBalancerCollection(id.Namespace), url.PathEscape(id.Name))
}

// namespacedIdentity reads metadata.namespace and metadata.name.
func namespacedIdentity(kindName string) IdentityFunc {
	return func(desired *object.Parameters) (object.Identity, error) {
		namespace, err := desired.NestedString("metadata", "namespace")
		if err != nil {
			return object.Identity{}, err
		}
		if namespace == "" {
			return object.Identity{}, fmt.Errorf("empty namespace for %s object", kindName)
		}
		name, err := desired.NestedString("metadata", "name")
		if err != nil {
			return object.Identity{}, err
		}
		return object.CreateIdentity(kindName, namespace, "", name)
	}
}

//nolint:gochecknoinits
func init() {
	Register(HTTPLoadBalancer)
}
