// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package destroy

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
)

// GetRunner creates and returns the Runner which stores the cobra command.
func GetRunner(newGateway flagutils.GatewayFactory, ioStreams genericiooptions.IOStreams) *Runner {
	r := &Runner{
		ioStreams:  ioStreams,
		newGateway: newGateway,
	}
	cmd := &cobra.Command{
		Use:                   "destroy (FILE | DIRECTORY | -)",
		DisableFlagsInUseLine: true,
		Short:                 i18n.T("Delete all the objects declared in manifests"),
		Args:                  cobra.MaximumNArgs(1),
		RunE:                  r.RunE,
	}

	cmd.Flags().StringVar(&r.output, "output", printers.DefaultPrinter(),
		fmt.Sprintf("Output format, must be one of %s", strings.Join(printers.SupportedPrinters(), ",")))
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

// Runner encapsulates data necessary to run the destroy command.
type Runner struct {
	Command    *cobra.Command
	ioStreams  genericiooptions.IOStreams
	newGateway flagutils.GatewayFactory

	manifestFlags flagutils.ManifestFlags
	output        string
	timeout       time.Duration
}

func (r *Runner) RunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// If specified, cancel with timeout.
	if r.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if found := printers.ValidatePrinterType(r.output); !found {
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

	// Run the destroyer. It will return a channel where we can receive updates
	// to keep track of progress and any issues.
	ch := apply.NewDestroyer(gw).Run(ctx, manifests, apply.RunOptions{})

	// The printer will print updates from the channel. It will block
	// until the channel is closed.
	printer := printers.GetPrinter(r.output, r.ioStreams)
	return printer.Print(ch)
}
