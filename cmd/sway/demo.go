package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/driftkit/sway/internal/cli"
	"github.com/driftkit/sway/internal/logging"
	"github.com/driftkit/sway/internal/presentation/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play an animated list scene in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")
		serve, _ := cmd.Flags().GetString("serve")
		groupID, _ := cmd.Flags().GetString("group")
		recordFlag, _ := cmd.Flags().GetBool("record")
		debug, _ := cmd.Flags().GetBool("debug")

		logger := logging.NewNop()
		if debug {
			logger = logging.New(slog.LevelDebug)
		}

		opts := cli.DemoOptions{
			ScenePath: scenePath,
			GroupID:   groupID,
			Serve:     serve,
			Logger:    logger,
		}
		if recordFlag {
			storeOpts, err := storeOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			opts.Store = &storeOpts
		}

		tui.PrintBanner()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cli.RunDemo(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().String("scene", "", "Scene file (YAML or JSON); omit for the built-in scene")
	demoCmd.Flags().String("group", "", "Group ID (defaults to the scene name)")
	demoCmd.Flags().String("serve", "", "Start the debug HTTP server on this address (e.g. :8089)")
	demoCmd.Flags().Bool("record", false, "Record snapshots to the configured store")
	demoCmd.Flags().Bool("debug", false, "Enable debug logging")
	rootCmd.AddCommand(demoCmd)
}

func storeOptionsFromFlags(cmd *cobra.Command) (cli.StoreOptions, error) {
	backend, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("dir")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	encryptKey, _ := cmd.Flags().GetString("encrypt-key")
	redact, _ := cmd.Flags().GetStringSlice("redact")

	return cli.StoreOptions{
		Backend:        backend,
		Dir:            dir,
		Redis:          redisAddr,
		EncryptionKey:  encryptKey,
		RedactPatterns: redact,
	}, nil
}
