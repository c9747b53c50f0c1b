// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package module_test

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/h2non/gock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yoctoalex/xcctl/pkg/config"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/module"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
	"github.com/yoctoalex/xcctl/pkg/testutil"
)

const tenant = "https://acme.console.ves.volterra.io"

var _ = Describe("Run", func() {
	var (
		httpClient *http.Client
		opts       module.Options
		env        config.LookupFunc
	)

	BeforeEach(func() {
		httpClient = &http.Client{}
		gock.InterceptClient(httpClient)
		opts = module.Options{
			Gateway: gateway.Config{HTTPClient: httpClient},
			Reconcile: reconcile.Options{
				WaitAttempts: 3,
				WaitInterval: time.Millisecond,
			},
		}
		env = config.MapLookup(map[string]string{
			config.EnvAPIToken: "env-token",
			config.EnvTenant:   tenant,
		})
	})

	AfterEach(func() {
		gock.RestoreClient(httpClient)
		gock.OffAll()
	})

	run := func(kindName, blob string) map[string]interface{} {
		out := module.Run(context.Background(), kindName, []byte(blob), env, opts)
		b, err := json.Marshal(out)
		Expect(err).NotTo(HaveOccurred())
		var m map[string]interface{}
		Expect(json.Unmarshal(b, &m)).To(Succeed())
		return m
	}

	Context("namespace", func() {
		It("creates a missing namespace and waits for it", func() {
			gock.New(tenant).
				Get("/api/web/namespaces/ns1").
				MatchHeader("Authorization", "^APIToken env-token$").
				Reply(404)
			gock.New(tenant).
				Post("/api/web/namespaces").
				JSON(map[string]interface{}{
					"metadata": map[string]interface{}{"name": "ns1"},
				}).
				Reply(200).
				JSON(map[string]interface{}{"metadata": map[string]interface{}{"name": "ns1"}})
			gock.New(tenant).
				Get("/api/web/namespaces/ns1").
				Reply(200).
				JSON(map[string]interface{}{
					"metadata": map[string]interface{}{"name": "ns1", "uid": "9a"},
					"spec":     map[string]interface{}{},
					"system_metadata": map[string]interface{}{
						"initializers": map[string]interface{}{"pending": []interface{}{}},
					},
				})

			result := run("namespace", `{"metadata": {"name": "ns1"}, "wait": true}`)

			Expect(gock.IsDone()).To(BeTrue(), "pending mocks: %v", gock.Pending())
			Expect(result).To(testutil.Equal(map[string]interface{}{
				"changed":  true,
				"metadata": map[string]interface{}{"name": "ns1", "uid": "9a"},
				"spec":     map[string]interface{}{},
			}))
		})

		It("leaves an existing namespace alone", func() {
			gock.New(tenant).
				Get("/api/web/namespaces/ns1").
				Reply(200).
				JSON(map[string]interface{}{"metadata": map[string]interface{}{"name": "ns1"}})

			result := run("namespace", `{"metadata": {"name": "ns1"}}`)

			Expect(gock.IsDone()).To(BeTrue())
			Expect(result).To(HaveKeyWithValue("changed", false))
			Expect(result).To(HaveKey("metadata"))
		})

		It("reports the response body of a failed delete", func() {
			gock.New(tenant).
				Get("/api/web/namespaces/ns1").
				Reply(200).
				JSON(map[string]interface{}{"metadata": map[string]interface{}{"name": "ns1"}})
			gock.New(tenant).
				Post("/api/web/namespaces/ns1/cascade_delete").
				Reply(403).
				BodyString(`{"code":7,"message":"denied"}`)

			result := run("namespace", `{"metadata": {"name": "ns1"}, "state": "absent"}`)

			Expect(result).To(testutil.Equal(map[string]interface{}{
				"changed": false,
				"failed":  true,
				"msg":     `{"code":7,"message":"denied"}`,
			}))
		})
	})

	Context("tenant settings", func() {
		It("fetches the settings with the provider credentials", func() {
			gock.New("https://other.console.ves.volterra.io").
				Get("/api/web/namespaces/system/tenant/settings").
				MatchHeader("Authorization", "^APIToken arg-token$").
				Reply(200).
				JSON(map[string]interface{}{
					"name":         "acme",
					"company_name": "Acme Corp",
					"otp_enabled":  true,
					"internal":     "dropped",
				})

			result := run("tenant_settings", `{"provider": {
				"api_token": "arg-token",
				"tenant": "https://other.console.ves.volterra.io"
			}}`)

			Expect(gock.IsDone()).To(BeTrue(), "pending mocks: %v", gock.Pending())
			Expect(result).To(testutil.Equal(map[string]interface{}{
				"changed":      false,
				"name":         "acme",
				"company_name": "Acme Corp",
				"otp_enabled":  true,
			}))
		})
	})

	Context("failures before any call", func() {
		It("rejects an unknown kind", func() {
			result := run("virtual_site", `{}`)
			Expect(result).To(HaveKeyWithValue("failed", true))
			Expect(result["msg"]).To(ContainSubstring("virtual_site"))
		})

		It("requires a token", func() {
			env = config.MapLookup(map[string]string{config.EnvTenant: tenant})
			result := run("namespace", `{"metadata": {"name": "ns1"}}`)
			Expect(result).To(HaveKeyWithValue("failed", true))
			Expect(result["msg"]).To(ContainSubstring(config.EnvAPIToken))
		})

		It("requires the identity fields", func() {
			result := run("http_loadbalancer", `{"metadata": {"name": "lb1"}}`)
			Expect(result).To(HaveKeyWithValue("failed", true))
		})
	})
})
