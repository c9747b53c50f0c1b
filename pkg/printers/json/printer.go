// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/yoctoalex/xcctl/pkg/print/list"
	"github.com/yoctoalex/xcctl/pkg/printers/printer"
)

func NewPrinter(ioStreams genericiooptions.IOStreams) printer.Printer {
	return &list.BaseListPrinter{
		FormatterFactory: func() list.Formatter {
			return NewFormatter(ioStreams)
		},
	}
}
