package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "feedsim",
		Short:        "Simulate opinion dynamics under content-ranking policies",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newJobCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
