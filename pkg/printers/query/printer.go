// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package query provides a printer that evaluates a JSONPath expression
// against every object reported by apply and fetch events and prints the
// matches, one per line. Strings are printed as is, everything else as
// compact JSON.
package query

import (
	"fmt"

	"github.com/goccy/go-json"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/jsonpath"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/print/list"
	"github.com/yoctoalex/xcctl/pkg/printers/printer"
	"github.com/yoctoalex/xcctl/pkg/stats"
)

func NewPrinter(ioStreams genericiooptions.IOStreams, expression string) printer.Printer {
	return &list.BaseListPrinter{
		FormatterFactory: func() list.Formatter {
			return &formatter{
				ioStreams:  ioStreams,
				expression: expression,
			}
		},
	}
}

type formatter struct {
	ioStreams  genericiooptions.IOStreams
	expression string
}

func (qf *formatter) FormatInitEvent(_ event.InitEvent) error {
	return nil
}

func (qf *formatter) FormatApplyEvent(ae event.ApplyEvent) error {
	if ae.Error != nil {
		return nil
	}
	return qf.printMatches(ae.Object)
}

func (qf *formatter) FormatDeleteEvent(_ event.DeleteEvent) error {
	return nil
}

func (qf *formatter) FormatFetchEvent(fe event.FetchEvent) error {
	if fe.Error != nil || !fe.Found {
		return nil
	}
	return qf.printMatches(fe.Object)
}

func (qf *formatter) FormatWaitEvent(_ event.WaitEvent) error {
	return nil
}

func (qf *formatter) FormatErrorEvent(_ event.ErrorEvent) error {
	return nil
}

func (qf *formatter) FormatCompletedEvent(_ event.ResourceAction, _ stats.Stats) error {
	return nil
}

func (qf *formatter) printMatches(doc object.Document) error {
	values, err := jsonpath.Get(doc, qf.expression)
	if err != nil {
		return err
	}
	for _, v := range values {
		if s, ok := v.(string); ok {
			if _, err := fmt.Fprintln(qf.ioStreams.Out, s); err != nil {
				return err
			}
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(qf.ioStreams.Out, string(b)); err != nil {
			return err
		}
	}
	return nil
}
