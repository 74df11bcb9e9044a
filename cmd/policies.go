package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	sim "github.com/schedsim/schedsim/sim"
)

// policiesCmd lists the recognized scheduling policies.
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the available scheduling policies",
	Run: func(cmd *cobra.Command, args []string) {
		printPolicies(cmd.OutOrStdout())
	},
}

func printPolicies(w io.Writer) {
	for _, name := range sim.ValidPolicyNames() {
		kind := "non-preemptive"
		if sim.IsPreemptive(name) {
			kind = "preemptive"
		}
		fmt.Fprintf(w, "%-20s %s\n", name, kind)
	}
}
