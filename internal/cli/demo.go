package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	sway "github.com/driftkit/sway"
	"github.com/driftkit/sway/internal/logging"
	"github.com/driftkit/sway/internal/presentation/tui"
	httpadapter "github.com/driftkit/sway/pkg/adapters/http"
	"github.com/driftkit/sway/pkg/observability"
	"github.com/driftkit/sway/pkg/record"
)

// DemoOptions configures the scripted demo run.
type DemoOptions struct {
	ScenePath string
	GroupID   string

	// Serve, when non-empty, starts the debug HTTP server on this address.
	Serve string

	// Store enables snapshot recording when non-nil.
	Store *StoreOptions

	Logger *slog.Logger
}

// RunDemo plays a scene: items enter, shuffle, and leave as an animated
// terminal list.
func RunDemo(ctx context.Context, opts DemoOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	scene, err := LoadScene(opts.ScenePath)
	if err != nil {
		return err
	}

	groupID := opts.GroupID
	if groupID == "" {
		groupID = scene.Name
	}

	groupOpts := []sway.Option[string]{
		sway.WithGroupID[string](groupID),
		sway.WithLogger[string](logger),
		sway.WithTrail[string](time.Duration(scene.Trail)),
		sway.WithExpires[string](0),
		sway.WithFrom[string](sway.Static[string](sway.Target{"opacity": 0.0, "x": 8.0})),
		sway.WithEnter[string](sway.Static[string](sway.Target{"opacity": 1.0, "x": 0.0})),
		sway.WithUpdate[string](sway.Static[string](sway.Target{"opacity": 1.0, "x": 0.0})),
		sway.WithLeave[string](sway.Static[string](sway.Target{"opacity": 0.0, "x": 8.0})),
	}
	if s := scene.Spring; s != nil {
		groupOpts = append(groupOpts, sway.WithConfig[string](sway.StaticConfig[string](sway.Config{
			Tension:   s.Tension,
			Friction:  s.Friction,
			Mass:      s.Mass,
			Precision: s.Precision,
		})))
	}

	reg := prometheus.NewRegistry()
	if opts.Serve != "" {
		metrics := observability.NewMetrics(reg, groupID)
		groupOpts = append(groupOpts, sway.WithHooks[string](metrics.Hooks()))
	}

	var rec *record.Recorder
	var closeStore func() error
	if opts.Store != nil {
		store, closer, err := BuildStore(*opts.Store)
		if err != nil {
			return err
		}
		closeStore = closer
		rec = record.New(store, record.WithLogger(logger))
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("failed to close snapshot store", "err", err)
			}
		}()
	}
	if rec != nil {
		groupOpts = append(groupOpts, sway.WithRecorder[string](rec.Sink(groupID)))
	}

	g := sway.New[string](groupOpts...)
	defer g.Close()

	if opts.Serve != "" {
		httpOpts := []httpadapter.Option{
			httpadapter.WithMetrics(reg),
			httpadapter.WithLogger(logger),
		}
		if rec != nil {
			httpOpts = append(httpOpts, httpadapter.WithStore(rec.Store()))
		}
		debug := httpadapter.New(httpOpts...)
		debug.Register(groupID, g)

		server := &http.Server{Addr: opts.Serve, Handler: debug.Handler()}
		go func() {
			logger.Info("debug server listening", "addr", opts.Serve)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("debug server failed", "err", err)
			}
		}()
		defer server.Shutdown(context.Background())
	}

	renderer := tui.NewRenderer(terminalWidth())
	ticker := time.NewTicker(time.Duration(scene.Tick))
	defer ticker.Stop()

	prevLines := 0
	drawFrame := func() {
		views := g.Views()
		rows := make([]tui.Row, len(views))
		for i, v := range views {
			rows[i] = tui.Row{Label: v.Item, Phase: v.Phase, Values: v.Values}
		}
		fmt.Print(tui.ClearLines(prevLines))
		fmt.Print(renderer.Frame(rows))
		prevLines = len(rows)
	}

	for _, step := range scene.Steps {
		if err := g.Update(step.Items); err != nil {
			return fmt.Errorf("scene step failed: %w", err)
		}

		deadline := time.After(time.Duration(step.Dwell))
	dwell:
		for {
			select {
			case <-ctx.Done():
				fmt.Println()
				return ctx.Err()
			case <-deadline:
				break dwell
			case <-ticker.C:
				drawFrame()
			}
		}
	}

	// Let trailing leave animations drain before tearing down.
	drain := time.After(2 * time.Second)
	for g.Len() > 0 {
		select {
		case <-ctx.Done():
			fmt.Println()
			return ctx.Err()
		case <-drain:
			fmt.Println()
			return nil
		case <-ticker.C:
			drawFrame()
		}
	}

	drawFrame()
	fmt.Println()
	return nil
}

func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
