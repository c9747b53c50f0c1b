// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/print/list"
	"github.com/yoctoalex/xcctl/pkg/stats"
)

func NewFormatter(ioStreams genericiooptions.IOStreams) list.Formatter {
	return &formatter{
		ioStreams: ioStreams,
		now:       time.Now,
	}
}

type formatter struct {
	ioStreams genericiooptions.IOStreams
	now       func() time.Time
}

func (jf *formatter) FormatInitEvent(ie event.InitEvent) error {
	objects := make([]interface{}, len(ie.Identifiers))
	for i, id := range ie.Identifiers {
		objects[i] = jf.baseResourceEvent(id)
	}
	return jf.printEvent("init", "init", map[string]interface{}{
		"action":  ie.Action.String(),
		"objects": objects,
	})
}

func (jf *formatter) FormatApplyEvent(ae event.ApplyEvent) error {
	eventInfo := jf.baseResourceEvent(ae.Identifier)
	if ae.Error != nil {
		eventInfo["error"] = ae.Error.Error()
		return jf.printEvent("apply", "resourceFailed", eventInfo)
	}
	eventInfo["operation"] = ae.Operation.String()
	if len(ae.Object) > 0 {
		eventInfo["object"] = ae.Object
	}
	return jf.printEvent("apply", "resourceApplied", eventInfo)
}

func (jf *formatter) FormatDeleteEvent(de event.DeleteEvent) error {
	eventInfo := jf.baseResourceEvent(de.Identifier)
	if de.Error != nil {
		eventInfo["error"] = de.Error.Error()
		return jf.printEvent("delete", "resourceFailed", eventInfo)
	}
	eventInfo["operation"] = de.Operation.String()
	return jf.printEvent("delete", "resourceDeleted", eventInfo)
}

func (jf *formatter) FormatFetchEvent(fe event.FetchEvent) error {
	eventInfo := jf.baseResourceEvent(fe.Identifier)
	if fe.Error != nil {
		eventInfo["error"] = fe.Error.Error()
		return jf.printEvent("fetch", "resourceFailed", eventInfo)
	}
	eventInfo["found"] = fe.Found
	if len(fe.Object) > 0 {
		eventInfo["object"] = fe.Object
	}
	return jf.printEvent("fetch", "resourceFetched", eventInfo)
}

func (jf *formatter) FormatWaitEvent(we event.WaitEvent) error {
	eventInfo := jf.baseResourceEvent(we.Identifier)
	eventInfo["attempt"] = we.Attempt
	eventInfo["attempts"] = we.Attempts
	eventInfo["ready"] = we.Ready
	return jf.printEvent("wait", "resourcePolled", eventInfo)
}

func (jf *formatter) FormatErrorEvent(ee event.ErrorEvent) error {
	return jf.printEvent("error", "error", map[string]interface{}{
		"error": ee.Err.Error(),
	})
}

func (jf *formatter) FormatCompletedEvent(action event.ResourceAction, s stats.Stats) error {
	switch action {
	case event.ApplyAction:
		as := s.ApplyStats
		return jf.printEvent("apply", "completed", map[string]interface{}{
			"count":           as.Sum(),
			"createdCount":    as.Created,
			"unchangedCount":  as.Unchanged,
			"configuredCount": as.Configured,
			"failedCount":     as.Failed,
			"timeoutCount":    s.WaitStats.Timeout,
		})
	case event.DeleteAction:
		ds := s.DeleteStats
		return jf.printEvent("delete", "completed", map[string]interface{}{
			"deleted": ds.Deleted,
			"skipped": ds.Skipped,
			"failed":  ds.Failed,
		})
	case event.FetchAction:
		fs := s.FetchStats
		return jf.printEvent("fetch", "completed", map[string]interface{}{
			"found":    fs.Found,
			"notFound": fs.NotFound,
			"failed":   fs.Failed,
		})
	}
	return nil
}

func (jf *formatter) baseResourceEvent(identifier object.Identity) map[string]interface{} {
	return map[string]interface{}{
		"kind":       identifier.Kind,
		"namespace":  identifier.Namespace,
		"objectType": identifier.ObjectType,
		"name":       identifier.Name,
	}
}

func (jf *formatter) printEvent(t, eventType string, content map[string]interface{}) error {
	m := make(map[string]interface{})
	m["timestamp"] = jf.now().UTC().Format(time.RFC3339)
	m["type"] = t
	m["eventType"] = eventType
	for key, val := range content {
		m[key] = val
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(jf.ioStreams.Out, string(b)+"\n")
	return err
}
