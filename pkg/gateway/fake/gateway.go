// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package fake provides a scripted gateway for unit tests.
package fake

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"

	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/object"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Body   object.Document
}

// Reply is one scripted response. Body is encoded as JSON unless it is
// a string, which is sent verbatim. A non-nil Err produces a transport
// failure.
type Reply struct {
	Status int
	Body   interface{}
	Err    error
}

// Gateway replays scripted replies keyed by method and path. Replies for
// a key are consumed in order and the last one repeats. Unscripted calls
// get a 404.
type Gateway struct {
	mu      sync.Mutex
	replies map[string][]Reply
	calls   []Call
}

var _ gateway.Interface = &Gateway{}

// New returns an empty Gateway.
func New() *Gateway {
	return &Gateway{replies: make(map[string][]Reply)}
}

// On appends replies for method and path.
func (g *Gateway) On(method, path string, replies ...Reply) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := method + " " + path
	g.replies[key] = append(g.replies[key], replies...)
	return g
}

// Calls returns the recorded requests in order.
func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// Methods returns "METHOD path" for every recorded request.
func (g *Gateway) Methods() []string {
	var out []string
	for _, c := range g.Calls() {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func (g *Gateway) Do(_ context.Context, method, path string, body object.Document) *gateway.Response {
	g.mu.Lock()
	defer g.mu.Unlock()

	var recorded object.Document
	if body != nil {
		cp, err := object.DeepCopy(body)
		if err != nil {
			return gateway.TransportFailure(err)
		}
		recorded = cp
	}
	g.calls = append(g.calls, Call{Method: method, Path: path, Body: recorded})

	key := method + " " + path
	queue := g.replies[key]
	if len(queue) == 0 {
		return &gateway.Response{StatusCode: http.StatusNotFound, Body: []byte(`{"code":5,"message":"not found"}`)}
	}
	reply := queue[0]
	if len(queue) > 1 {
		g.replies[key] = queue[1:]
	}

	if reply.Err != nil {
		return gateway.TransportFailure(reply.Err)
	}
	var raw []byte
	switch b := reply.Body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			panic(fmt.Errorf("fake gateway: encoding reply for %s: %w", key, err))
		}
		raw = encoded
	}
	return &gateway.Response{StatusCode: reply.Status, Header: http.Header{}, Body: raw}
}

func (g *Gateway) Get(ctx context.Context, path string) *gateway.Response {
	return g.Do(ctx, http.MethodGet, path, nil)
}

func (g *Gateway) Post(ctx context.Context, path string, body object.Document) *gateway.Response {
	return g.Do(ctx, http.MethodPost, path, body)
}

func (g *Gateway) Put(ctx context.Context, path string, body object.Document) *gateway.Response {
	return g.Do(ctx, http.MethodPut, path, body)
}

func (g *Gateway) Patch(ctx context.Context, path string, body object.Document) *gateway.Response {
	return g.Do(ctx, http.MethodPatch, path, body)
}

func (g *Gateway) Delete(ctx context.Context, path string) *gateway.Response {
	return g.Do(ctx, http.MethodDelete, path, nil)
}
