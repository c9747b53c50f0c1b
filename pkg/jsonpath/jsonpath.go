// Copyright 2021 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package jsonpath evaluates JSONPath expressions against documents.
package jsonpath

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spyzhov/ajson"
	"k8s.io/klog/v2"
)

// Get evaluates the JSONPath expression against obj and returns the
// matching values, in document order. Numbers are returned as float64.
// A path that matches nothing returns an empty slice and no error.
func Get(obj map[string]interface{}, expression string) ([]interface{}, error) {
	// format input object as json for input into jsonpath library
	jsonBytes, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input to json: %w", err)
	}

	klog.V(7).Infof("jsonpath.Get input as json:\n%s", jsonBytes)

	// parse json into an ajson node
	root, err := ajson.Unmarshal(jsonBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal input json: %w", err)
	}

	// find nodes that match the expression
	nodes, err := root.JSONPath(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate jsonpath expression (%s): %w", expression, err)
	}

	result := make([]interface{}, len(nodes))
	for i, node := range nodes {
		value, err := node.Unpack()
		if err != nil {
			return nil, fmt.Errorf("failed to unpack jsonpath result: %w", err)
		}
		result[i] = value
	}
	return result, nil
}
