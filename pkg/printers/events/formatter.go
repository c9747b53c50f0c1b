// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"fmt"
	"strings"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/print/list"
	"github.com/yoctoalex/xcctl/pkg/stats"
)

func NewFormatter(ioStreams genericiooptions.IOStreams) list.Formatter {
	return &formatter{
		ioStreams: ioStreams,
	}
}

type formatter struct {
	ioStreams genericiooptions.IOStreams
}

func (ef *formatter) FormatInitEvent(_ event.InitEvent) error {
	return nil
}

func (ef *formatter) FormatApplyEvent(ae event.ApplyEvent) error {
	if ae.Error != nil {
		ef.print("%s apply failed: %s", identityToString(ae.Identifier),
			ae.Error.Error())
		return nil
	}
	ef.print("%s %s", identityToString(ae.Identifier),
		strings.ToLower(ae.Operation.String()))
	return nil
}

func (ef *formatter) FormatDeleteEvent(de event.DeleteEvent) error {
	id := identityToString(de.Identifier)
	if de.Error != nil {
		ef.print("%s deletion failed: %s", id, de.Error.Error())
		return nil
	}

	switch de.Operation {
	case event.Deleted:
		ef.print("%s deleted", id)
	case event.DeleteSkipped:
		ef.print("%s delete skipped", id)
	}
	return nil
}

func (ef *formatter) FormatFetchEvent(fe event.FetchEvent) error {
	id := identityToString(fe.Identifier)
	switch {
	case fe.Error != nil:
		ef.print("%s fetch failed: %s", id, fe.Error.Error())
	case fe.Found:
		ef.print("%s found", id)
	default:
		ef.print("%s not found", id)
	}
	return nil
}

func (ef *formatter) FormatWaitEvent(we event.WaitEvent) error {
	id := identityToString(we.Identifier)
	if we.Ready {
		ef.print("%s ready", id)
		return nil
	}
	ef.print("%s not ready (attempt %d/%d)", id, we.Attempt, we.Attempts)
	return nil
}

func (ef *formatter) FormatErrorEvent(_ event.ErrorEvent) error {
	return nil
}

func (ef *formatter) FormatCompletedEvent(action event.ResourceAction, s stats.Stats) error {
	switch action {
	case event.ApplyAction:
		as := s.ApplyStats
		output := fmt.Sprintf("%d object(s) applied. %d created, %d unchanged, %d configured, %d failed",
			as.Sum(), as.Created, as.Unchanged, as.Configured, as.Failed)
		// Only mention readiness if something was waited for.
		if ws := s.WaitStats; ws.Polls > 0 || ws.Timeout > 0 {
			output += fmt.Sprintf(", %d timed out", ws.Timeout)
		}
		ef.print(output)
	case event.DeleteAction:
		ds := s.DeleteStats
		ef.print("%d object(s) deleted, %d skipped, %d failed to delete", ds.Deleted, ds.Skipped, ds.Failed)
	case event.FetchAction:
		fs := s.FetchStats
		ef.print("%d object(s) fetched. %d found, %d not found, %d failed", fs.Sum(), fs.Found, fs.NotFound, fs.Failed)
	}
	return nil
}

func (ef *formatter) print(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(ef.ioStreams.Out, format+"\n", a...)
}

// identityToString returns the lower case string representation of an
// identity.
func identityToString(id object.Identity) string {
	return strings.ToLower(id.String())
}
