package main

import (
	"fmt"
	"strings"

	sway "github.com/driftkit/sway"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sway",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sway version %s\n", strings.TrimSpace(sway.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
