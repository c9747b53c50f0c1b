// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package json provides a printer that outputs the eventstream in json
// format. Each event is printed as a json object, so the output will
// appear as a stream of json objects, each representing a single event.
//
// Every event will contain the following properties:
//   - timestamp: RFC3339-formatted timestamp describing when the event happened.
//   - type: Describes the type of the operation which the event is related to.
//     Type values include:
//   - init - InitEvent
//   - error - ErrorEvent
//   - apply - ApplyEvent
//   - delete - DeleteEvent
//   - fetch - FetchEvent
//   - wait - WaitEvent
//   - eventType: Describes what happened, for example resourceApplied or
//     completed.
//
// Operation events (apply, delete, fetch and wait) correspond to a single
// object. The kind, namespace, objectType and name fields identify the
// object. Fields that do not apply to the object's kind are empty.
//
// Apply events have the following additional fields:
// * operation (string) - One of "Created", "Configured" or "Unchanged".
// * object (object, optional) - The returnable view of the object.
// * error (string, optional) - Set on resourceFailed events.
//
// Delete events have the following additional fields:
// * operation (string) - One of "Deleted" or "DeleteSkipped".
// * error (string, optional) - Set on resourceFailed events.
//
// Fetch events have the following additional fields:
// * found (bool)
// * object (object, optional) - The returnable view of the object.
//
// Wait events have the following additional fields:
// * attempt (number), attempts (number), ready (bool)
//
// Completed events are sent once per run and summarize the counts
// collected from the other events.
package json
