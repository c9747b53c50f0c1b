// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/component-base/cli"

	"github.com/yoctoalex/xcctl/cmd/apply"
	"github.com/yoctoalex/xcctl/cmd/destroy"
	"github.com/yoctoalex/xcctl/cmd/fetch"
	"github.com/yoctoalex/xcctl/cmd/flagutils"
	"github.com/yoctoalex/xcctl/cmd/kinds"
	"github.com/yoctoalex/xcctl/cmd/module"
	"github.com/yoctoalex/xcctl/pkg/config"
	"github.com/yoctoalex/xcctl/pkg/errors"
)

const cmdNameBase = "xcctl"

func main() {
	cmd := &cobra.Command{
		Use:   cmdNameBase,
		Short: "Reconcile F5 Distributed Cloud objects with declarative configuration",
		Long:  "Reconcile F5 Distributed Cloud objects with declarative configuration",
		// We silence error reporting from Cobra here since we want to improve
		// the error messages coming from the commands.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.PersistentFlags()
	clientFlags := flagutils.NewClientFlags(config.OSLookup)
	clientFlags.AddFlags(flags)
	flags.AddGoFlagSet(flag.CommandLine)

	ioStreams := genericiooptions.IOStreams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}

	subCmds := []*cobra.Command{
		apply.Command(clientFlags.NewGateway, ioStreams),
		destroy.Command(clientFlags.NewGateway, ioStreams),
		fetch.Command(clientFlags.NewGateway, ioStreams),
		module.Command(clientFlags, ioStreams),
		kinds.Command(ioStreams),
	}
	for _, subCmd := range subCmds {
		checkErrors(subCmd, ioStreams)
		cmd.AddCommand(subCmd)
	}

	code := cli.Run(cmd)
	os.Exit(code)
}

// checkErrors routes the errors of c through errors.CheckErr so known
// errors get a friendly message and their own exit status.
func checkErrors(c *cobra.Command, ioStreams genericiooptions.IOStreams) {
	runE := c.RunE
	c.RunE = func(cmd *cobra.Command, args []string) error {
		errors.CheckErr(ioStreams.ErrOut, runE(cmd, args), cmdNameBase)
		return nil
	}
}
