// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/i18n"

	"github.com/yoctoalex/xcctl/cmd/flagutils"
	"github.com/yoctoalex/xcctl/pkg/apply"
	"github.com/yoctoalex/xcctl/pkg/printers"
	"github.com/yoctoalex/xcctl/pkg/printers/printer"
	"github.com/yoctoalex/xcctl/pkg/printers/query"
)

// GetRunner creates and returns the Runner which stores the cobra command.
func GetRunner(newGateway flagutils.GatewayFactory, ioStreams genericiooptions.IOStreams) *Runner {
	r := &Runner{
		ioStreams:  ioStreams,
		newGateway: newGateway,
	}
	cmd := &cobra.Command{
		Use:                   "fetch (FILE | DIRECTORY | -)",
		DisableFlagsInUseLine: true,
		Short:                 i18n.T("Read the current state of the objects declared in manifests"),
		Example: `  # Print the tenant settings as YAML
  echo 'kind: tenant_settings' | xcctl fetch --output=yaml

  # Print the domains of every load balancer in a directory
  xcctl fetch ./manifests --jsonpath='$.spec.domains[*]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.RunE,
	}

	cmd.Flags().StringVar(&r.output, "output", printers.DefaultPrinter(),
		fmt.Sprintf("Output format, must be one of %s", strings.Join(printers.SupportedPrinters(), ",")))
	cmd.Flags().StringVar(&r.jsonPath, "jsonpath", "",
		"JSONPath expression evaluated against every object found. Overrides --output.")
	cmd.Flags().DurationVar(&r.timeout, "timeout", 0,
		"How long to wait before exiting")
	r.manifestFlags.AddFlags(cmd.Flags())

	r.Command = cmd
	return r
}

// Command creates the Runner, returning the cobra command associated with it.
func Command(newGateway flagutils.GatewayFactory, ioStreams genericiooptions.IOStreams) *cobra.Command {
	return GetRunner(newGateway, ioStreams).Command
}

// Runner encapsulates data necessary to run the fetch command.
type Runner struct {
	Command    *cobra.Command
	ioStreams  genericiooptions.IOStreams
	newGateway flagutils.GatewayFactory

	manifestFlags flagutils.ManifestFlags
	output        string
	jsonPath      string
	timeout       time.Duration
}

func (r *Runner) RunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if r.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var p printer.Printer
	switch {
	case r.jsonPath != "":
		p = query.NewPrinter(r.ioStreams, r.jsonPath)
	case printers.ValidatePrinterType(r.output):
		p = printers.GetPrinter(r.output, r.ioStreams)
	default:
		return fmt.Errorf("unknown output type %q", r.output)
	}

	reader, err := r.manifestFlags.ToLoader().ManifestReader(cmd.InOrStdin(), flagutils.PathFromArgs(args))
	if err != nil {
		return err
	}
	manifests, err := reader.Read()
	if err != nil {
		return err
	}

	gw, err := r.newGateway()
	if err != nil {
		return err
	}

	ch := apply.NewFetcher(gw).Run(ctx, manifests, apply.RunOptions{})
	return p.Print(ch)
}
