// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/i18n"

	"github.com/yoctoalex/xcctl/cmd/flagutils"
	"github.com/yoctoalex/xcctl/pkg/module"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

// GetRunner creates and returns the Runner which stores the cobra command.
func GetRunner(clientFlags *flagutils.ClientFlags, ioStreams genericiooptions.IOStreams) *Runner {
	r := &Runner{
		ioStreams:   ioStreams,
		clientFlags: clientFlags,
	}
	cmd := &cobra.Command{
		Use:                   "module KIND (ARGS_FILE | -)",
		DisableFlagsInUseLine: true,
		Short:                 i18n.T("Reconcile one object from a JSON argument file and print the result as JSON"),
		Long: i18n.T(`Reconcile one object from a JSON argument file and print the result as JSON.

The argument file holds the parameters of the object together with state,
patch, wait and provider. It may be wrapped in ANSIBLE_MODULE_ARGS. On
failure the result carries failed and msg and the exit status is 1.`),
		Args: cobra.ExactArgs(2),
		RunE: r.RunE,
	}
	r.waitFlags.AddFlags(cmd.Flags())

	r.Command = cmd
	return r
}

// Command creates the Runner, returning the cobra command associated with it.
func Command(clientFlags *flagutils.ClientFlags, ioStreams genericiooptions.IOStreams) *cobra.Command {
	return GetRunner(clientFlags, ioStreams).Command
}

// Runner encapsulates data necessary to run the module command.
type Runner struct {
	Command     *cobra.Command
	ioStreams   genericiooptions.IOStreams
	clientFlags *flagutils.ClientFlags
	waitFlags   flagutils.WaitFlags

	// NewGateway replaces the HTTP client in tests.
	NewGateway module.GatewayFactory
}

func (r *Runner) RunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	policy, err := flagutils.ConvertExhaustionPolicy(r.waitFlags.OnWaitExhausted)
	if err != nil {
		return err
	}
	blob, err := readArgs(cmd.InOrStdin(), args[1])
	if err != nil {
		return err
	}

	out := module.Run(ctx, args[0], blob, r.clientFlags.Lookup, module.Options{
		Gateway: r.clientFlags.BaseConfig(),
		Reconcile: reconcile.Options{
			WaitAttempts:     r.waitFlags.Attempts,
			WaitInterval:     r.waitFlags.Interval,
			ExhaustionPolicy: policy,
		},
		NewGateway: r.NewGateway,
	})
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.ioStreams.Out, string(b))
	if out.Failed {
		return &module.FailedError{Msg: out.Msg}
	}
	return nil
}

func readArgs(in io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}
