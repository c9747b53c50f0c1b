// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package yaml provides a printer that outputs the objects reported by
// apply and fetch events as a stream of YAML documents. All other events
// are dropped.
package yaml

import (
	"fmt"

	"gopkg.in/yaml.v3"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/print/list"
	"github.com/yoctoalex/xcctl/pkg/printers/printer"
	"github.com/yoctoalex/xcctl/pkg/stats"
)

func NewPrinter(ioStreams genericiooptions.IOStreams) printer.Printer {
	return &list.BaseListPrinter{
		FormatterFactory: func() list.Formatter {
			return NewFormatter(ioStreams)
		},
	}
}

func NewFormatter(ioStreams genericiooptions.IOStreams) list.Formatter {
	return &formatter{
		ioStreams: ioStreams,
	}
}

type formatter struct {
	ioStreams genericiooptions.IOStreams
	printed   int
}

func (yf *formatter) FormatInitEvent(_ event.InitEvent) error {
	return nil
}

func (yf *formatter) FormatApplyEvent(ae event.ApplyEvent) error {
	if ae.Error != nil {
		return nil
	}
	return yf.printObject(ae.Object)
}

func (yf *formatter) FormatDeleteEvent(_ event.DeleteEvent) error {
	return nil
}

func (yf *formatter) FormatFetchEvent(fe event.FetchEvent) error {
	if fe.Error != nil || !fe.Found {
		return nil
	}
	return yf.printObject(fe.Object)
}

func (yf *formatter) FormatWaitEvent(_ event.WaitEvent) error {
	return nil
}

func (yf *formatter) FormatErrorEvent(_ event.ErrorEvent) error {
	return nil
}

func (yf *formatter) FormatCompletedEvent(_ event.ResourceAction, _ stats.Stats) error {
	return nil
}

// printObject writes doc as one YAML document. Documents after the first
// are preceded by a separator.
func (yf *formatter) printObject(doc object.Document) error {
	if doc == nil {
		doc = object.Document{}
	}
	b, err := yaml.Marshal(map[string]interface{}(doc))
	if err != nil {
		return err
	}
	if yf.printed > 0 {
		if _, err := fmt.Fprint(yf.ioStreams.Out, "---\n"); err != nil {
			return err
		}
	}
	yf.printed++
	_, err = yf.ioStreams.Out.Write(b)
	return err
}
