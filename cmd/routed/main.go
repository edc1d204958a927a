// Command routed serves the routing engine over HTTP: it loads a graph
// directory written by graph2turngraph/geojson2charger (or any other
// store.SaveGraph producer), precomputes the ALT landmark potential,
// and listens until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wattpath/evroute/charge"
	"github.com/wattpath/evroute/config"
	"github.com/wattpath/evroute/fxp"
	"github.com/wattpath/evroute/httpapi"
	"github.com/wattpath/evroute/potential"
	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing"
	"github.com/wattpath/evroute/stats"
	"github.com/wattpath/evroute/store"
)

func main() {
	root := &cobra.Command{
		Use:   "routed",
		Short: "Serve fastest/Pareto/charging-aware EV routes over HTTP",
		RunE:  run,
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	graph, err := store.LoadGraph(cfg.Graph.Dir, logger)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}
	coords, err := store.LoadCoordinates(cfg.Graph.Dir)
	if err != nil {
		logger.Warn("no coordinates file, /nearest will be unavailable", zap.Error(err))
		coords = nil
	}
	heights, err := store.LoadHeights(cfg.Graph.Dir)
	if err != nil {
		logger.Warn("no heights file, consumption falls back to a duration-only estimate", zap.Error(err))
		heights = make([]int32, graph.NumNodes())
	}
	rates, err := store.LoadChargers(cfg.Graph.Dir)
	if err != nil {
		logger.Warn("no charger file, charging-aware algorithms will be unavailable", zap.Error(err))
		rates = nil
	}

	const whPerSecond = 0.01  // baseline draw, roughly city-driving average power
	const whPerMetreClimb = 0.003
	consumption := rgraph.ConsumptionFromHeights(graph, heights, whPerSecond, whPerMetreClimb)
	mcGraph := routing.NewDualGraph(graph, consumption)

	capacityFxp := int64(cfg.Charge.BatteryCapacityWh * float64(fxp.Scale))

	var chargers *charge.Registry
	var envelopes *charge.EnvelopeRegistry
	if len(rates) > 0 {
		chargers, err = charge.NewRegistry(rates, cfg.Charge.BatteryCapacityWh, cfg.Charge.StopPenaltySec)
		if err != nil {
			return fmt.Errorf("building charge registry: %w", err)
		}
		envelopes, err = charge.NewEnvelopeRegistry(chargers, cfg.Charge.BatteryCapacityWh, cfg.Charge.TargetSoCFractions)
		if err != nil {
			return fmt.Errorf("building envelope registry: %w", err)
		}
	}

	landmarks := pickLandmarks(graph.NumNodes(), cfg.Graph.LandmarkCount)
	potentials := potential.NewLandmark(graph, landmarks)

	sink := stats.NewSinkFromEnv(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, prometheus.DefaultRegisterer)

	epsilons := routing.Epsilons{
		EpsX:          0.1,
		EpsY:          0.001,
		ChargePenalty: cfg.Charge.StopPenaltySec,
	}

	srv := httpapi.NewServer(httpapi.Config{
		Graph:      graph,
		MCGraph:    mcGraph,
		Chargers:   chargers,
		Envelopes:  envelopes,
		Coords:     coords,
		Potentials: potentials,
		Epsilons:   epsilons,
		Capacity:   capacityFxp,
		Sink:       sink,
		Logger:     logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}

// pickLandmarks selects up to count node ids evenly spaced across
// [0, numNodes), a deterministic stand-in for the farthest-point
// heuristics some ALT implementations use; good enough for a fixed
// landmark count chosen at deploy time rather than tuned per graph.
func pickLandmarks(numNodes, count int) []int {
	if count <= 0 || numNodes == 0 {
		return nil
	}
	if count > numNodes {
		count = numNodes
	}
	landmarks := make([]int, count)
	stride := numNodes / count
	if stride == 0 {
		stride = 1
	}
	for i := range landmarks {
		landmarks[i] = (i * stride) % numNodes
	}
	return landmarks
}
