// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package gateway is the REST boundary of the reconciler. Every call
// returns a Response, including calls that never reached the server, so
// callers can branch on the status code alone.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// Interface is the set of calls the reconciler makes against the API.
type Interface interface {
	Do(ctx context.Context, method, path string, body object.Document) *Response
	Get(ctx context.Context, path string) *Response
	Post(ctx context.Context, path string, body object.Document) *Response
	Put(ctx context.Context, path string, body object.Document) *Response
	Patch(ctx context.Context, path string, body object.Document) *Response
	Delete(ctx context.Context, path string) *Response
}

// Response is the normalized result of one call.
type Response struct {
	// StatusCode is zero when the server could not be reached.
	StatusCode int
	Header     http.Header
	Body       []byte
	// Err is set when the call failed below HTTP.
	Err error
}

// TransportFailure builds the response for a call that failed below HTTP.
// The error text becomes the body.
func TransportFailure(err error) *Response {
	return &Response{Body: []byte(err.Error()), Err: err}
}

// JSON decodes the body as a JSON object. An empty body decodes to nil.
// Numbers are kept as json.Number so they survive a round trip unchanged.
func (r *Response) JSON() (object.Document, error) {
	if len(r.Body) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	return doc, nil
}

// OK reports whether the call succeeded. A body with a numeric code of
// 400 or above marks the call failed even when the status does not.
func (r *Response) OK() bool {
	if r.Err != nil || r.StatusCode == 0 || r.StatusCode >= http.StatusBadRequest {
		return false
	}
	var probe struct {
		Code *float64 `json:"code"`
	}
	if err := json.Unmarshal(r.Body, &probe); err == nil && probe.Code != nil &&
		*probe.Code >= http.StatusBadRequest {
		return false
	}
	return true
}

// Message returns the text reported to the operator for a failed call.
func (r *Response) Message() string {
	if len(r.Body) > 0 {
		return string(r.Body)
	}
	if r.StatusCode == 0 {
		return "request failed before reaching the server"
	}
	return fmt.Sprintf("request failed with status %d %s", r.StatusCode, http.StatusText(r.StatusCode))
}
