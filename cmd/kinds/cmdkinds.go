// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package kinds

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/kubectl/pkg/util/i18n"

	"github.com/yoctoalex/xcctl/pkg/kind"
)

// Command returns the command that lists the known object kinds.
func Command(ioStreams genericiooptions.IOStreams) *cobra.Command {
	var wide bool
	cmd := &cobra.Command{
		Use:                   "kinds",
		DisableFlagsInUseLine: true,
		Short:                 i18n.T("List the object kinds that can be reconciled"),
		Args:                  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printKinds(ioStreams, wide)
		},
	}
	cmd.Flags().BoolVar(&wide, "wide", false, "If true, also print the updatable and spec fields.")
	return cmd
}

func printKinds(ioStreams genericiooptions.IOStreams, wide bool) error {
	w := printers.GetNewTabWriter(ioStreams.Out)
	header := "KIND\tSTATES\tNAMESPACED\tDESCRIPTION"
	if wide {
		header += "\tUPDATABLE\tSPEC"
	}
	fmt.Fprintln(w, header)
	for _, k := range kind.All() {
		states := make([]string, len(k.States))
		for i, s := range k.States {
			states[i] = string(s)
		}
		row := fmt.Sprintf("%s\t%s\t%t\t%s", k.Name, strings.Join(states, ","), k.Namespaced(), k.Description)
		if wide {
			row += fmt.Sprintf("\t%s\t%s", orNone(k.Schema.Updatable), orNone(k.SpecFields))
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

func orNone(fields []string) string {
	if len(fields) == 0 {
		return "<none>"
	}
	return strings.Join(fields, ",")
}
