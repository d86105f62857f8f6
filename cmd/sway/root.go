package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sway",
	Short: "Sway animates collection transitions in the terminal",
	Long:  `Sway tracks items entering, updating, and leaving a collection and animates each lifecycle phase with spring physics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", "memory", "Snapshot store backend: memory, file, or redis")
	rootCmd.PersistentFlags().String("dir", "", "Base directory for the file store")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis store")
	rootCmd.PersistentFlags().String("encrypt-key", "", "Hex-encoded 32-byte key for snapshot encryption at rest")
	rootCmd.PersistentFlags().StringSlice("redact", nil, "Regexps for item labels to mask before persistence")
}
