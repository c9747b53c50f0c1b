// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package printers

import (
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/yoctoalex/xcctl/pkg/printers/events"
	"github.com/yoctoalex/xcctl/pkg/printers/json"
	"github.com/yoctoalex/xcctl/pkg/printers/printer"
	"github.com/yoctoalex/xcctl/pkg/printers/yaml"
)

const (
	EventsPrinter = "events"
	JSONPrinter   = "json"
	YAMLPrinter   = "yaml"
)

func GetPrinter(printerType string, ioStreams genericiooptions.IOStreams) printer.Printer {
	switch printerType {
	case JSONPrinter:
		return json.NewPrinter(ioStreams)
	case YAMLPrinter:
		return yaml.NewPrinter(ioStreams)
	default:
		return events.NewPrinter(ioStreams)
	}
}

func SupportedPrinters() []string {
	return []string{EventsPrinter, JSONPrinter, YAMLPrinter}
}

func DefaultPrinter() string {
	return EventsPrinter
}

func ValidatePrinterType(printerType string) bool {
	for _, p := range SupportedPrinters() {
		if printerType == p {
			return true
		}
	}
	return false
}
