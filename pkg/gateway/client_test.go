// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoctoalex/xcctl/pkg/object"
)

const testTenant = "https://acme.console.ves.volterra.io"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)
	t.Cleanup(func() {
		gock.RestoreClient(httpClient)
		gock.OffAll()
	})
	c, err := NewClient(Config{
		Tenant:     testTenant,
		APIToken:   "secret",
		HTTPClient: httpClient,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	testCases := map[string]struct {
		cfg     Config
		baseURL string
		isError bool
	}{
		"bare host gets https": {
			cfg:     Config{Tenant: "acme.console.ves.volterra.io", APIToken: "t"},
			baseURL: "https://acme.console.ves.volterra.io",
		},
		"scheme kept": {
			cfg:     Config{Tenant: "http://127.0.0.1:8080/", APIToken: "t"},
			baseURL: "http://127.0.0.1:8080",
		},
		"missing tenant": {
			cfg:     Config{APIToken: "t"},
			isError: true,
		},
		"missing token": {
			cfg:     Config{Tenant: "acme"},
			isError: true,
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			c, err := NewClient(tc.cfg)
			if tc.isError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.baseURL, c.BaseURL())
		})
	}
}

func TestNewClientLeavesCallerClientAlone(t *testing.T) {
	shared := &http.Client{}
	c, err := NewClient(Config{
		Tenant:     testTenant,
		APIToken:   "t",
		Timeout:    5 * time.Second,
		HTTPClient: shared,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), shared.Timeout)
	assert.Equal(t, 5*time.Second, c.retry.HTTPClient.Timeout)
	assert.NotSame(t, shared, c.retry.HTTPClient)
}

func TestClientHeaders(t *testing.T) {
	c := newTestClient(t)
	gock.New(testTenant).
		Get("/api/web/namespaces/ns1").
		MatchHeader("Authorization", "^APIToken secret$").
		MatchHeader("Accept", "application/json").
		MatchHeader("X-Request-Id", ".+").
		Reply(200).
		JSON(map[string]interface{}{"metadata": map[string]interface{}{"name": "ns1"}})

	resp := c.Get(context.Background(), "/api/web/namespaces/ns1")
	require.NoError(t, resp.Err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.OK())

	doc, err := resp.JSON()
	require.NoError(t, err)
	name, found, err := object.NestedString(doc, "metadata", "name")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ns1", name)
	assert.True(t, gock.IsDone())
}

func TestClientSendsBody(t *testing.T) {
	c := newTestClient(t)
	gock.New(testTenant).
		Post("/api/web/namespaces").
		MatchType("json").
		JSON(map[string]interface{}{"metadata": map[string]interface{}{"name": "ns1"}}).
		Reply(200).
		JSON(map[string]interface{}{})

	resp := c.Post(context.Background(), "/api/web/namespaces",
		object.Document{"metadata": map[string]interface{}{"name": "ns1"}})
	require.NoError(t, resp.Err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, gock.IsDone())
}

func TestClientErrorStatus(t *testing.T) {
	c := newTestClient(t)
	gock.New(testTenant).
		Put("/api/config/namespaces/default/http_loadbalancers/lb1").
		Reply(409).
		BodyString(`{"code":9,"message":"conflict"}`)

	resp := c.Put(context.Background(), "/api/config/namespaces/default/http_loadbalancers/lb1", object.Document{})
	require.NoError(t, resp.Err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, `{"code":9,"message":"conflict"}`, resp.Message())
}

func TestClientTransportFailure(t *testing.T) {
	c := newTestClient(t)
	gock.New(testTenant).
		Delete("/api/config/namespaces/default/http_loadbalancers/lb1").
		ReplyError(errors.New("connection refused"))

	resp := c.Delete(context.Background(), "/api/config/namespaces/default/http_loadbalancers/lb1")
	require.Error(t, resp.Err)
	assert.Equal(t, 0, resp.StatusCode)
	assert.Contains(t, resp.Message(), "connection refused")
	assert.False(t, resp.OK())
}

func TestRetryConnectionErrors(t *testing.T) {
	ctx := context.Background()

	retry, err := retryConnectionErrors(ctx, &http.Response{StatusCode: 503}, nil)
	assert.NoError(t, err)
	assert.False(t, retry, "http statuses are not retried")

	retry, err = retryConnectionErrors(ctx, nil, errors.New("connection reset by peer"))
	assert.NoError(t, err)
	assert.True(t, retry)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err = retryConnectionErrors(canceled, nil, errors.New("connection reset by peer"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, retry)
}
