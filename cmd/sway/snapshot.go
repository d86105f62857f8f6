package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftkit/sway/internal/cli"
	"github.com/driftkit/sway/pkg/ports"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect recorded snapshots",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups with a recorded snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SnapshotStore) error {
			ids, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		})
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <group>",
	Short: "Print the latest snapshot of a group as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SnapshotStore) error {
			snap, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		})
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <group>",
	Short: "Delete the recorded snapshot of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SnapshotStore) error {
			return store.Delete(cmd.Context(), args[0])
		})
	},
}

func withStore(cmd *cobra.Command, fn func(ports.SnapshotStore) error) error {
	opts, err := storeOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	store, closer, err := cli.BuildStore(opts)
	if err != nil {
		return err
	}
	defer closer()

	return fn(store)
}

func init() {
	snapshotCmd.AddCommand(snapshotListCmd, snapshotShowCmd, snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}
