package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/evhjem/hubdrive/internal/config"
	"codeberg.org/evhjem/hubdrive/internal/control"
	"codeberg.org/evhjem/hubdrive/internal/errors"
	"codeberg.org/evhjem/hubdrive/internal/hub"
	"codeberg.org/evhjem/hubdrive/internal/input"
	"codeberg.org/evhjem/hubdrive/internal/logger"
	"codeberg.org/evhjem/hubdrive/internal/pid"
	"codeberg.org/evhjem/hubdrive/internal/status"
	"codeberg.org/evhjem/hubdrive/internal/stream"
	"codeberg.org/evhjem/hubdrive/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsDebug(), cfg.IsVerbose(), logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	errFactory := errors.New()

	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove PID file")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx); err != nil {
		logger.ErrorWithCode(errFactory.Wrap(errors.ErrControlLoop, err)).Send()
		os.Exit(1)
	}
	logger.Info().Msg("Exiting...")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

// feedback adapts the gamepad's rumble capability to the gear shift
// actuator.
type feedback struct {
	pad input.Provider
}

func (f feedback) Pulse(low, high float64, duration time.Duration) {
	f.pad.Rumble(low, high, duration)
}

func run(ctx context.Context) error {
	// No controller is fatal: the loop cannot run without input.
	pad, err := input.Open()
	if err != nil {
		return err
	}
	defer pad.Close()

	// Likewise a dead transport: abort before entering the loop.
	var transport hub.Transport
	if cfg.Simulate {
		logger.Warn().Msg("=== SIMULATION MODE: hub not connected ===")
		transport = hub.NewSimTransport()
	} else {
		transport, err = hub.Connect(cfg.DeviceName)
		if err != nil {
			return err
		}
	}

	writer := hub.NewWriter(transport, 0)
	defer func() {
		// Drains the queue and sends the final stop frame.
		if err := writer.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release hub transport")
		}
	}()

	if err := writer.Calibrate(); err != nil {
		return err
	}

	recorder, err := telemetry.NewRecorder(telemetry.Config{
		Enabled: cfg.Telemetry,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		return err
	}
	defer recorder.Close()

	// Wait runs before the recorder close above, so the final session
	// state always lands in storage.
	pump := telemetry.StartPump(ctx, recorder)
	defer pump.Wait()

	wsHub := stream.NewHub(logger.Default(), stream.HubConfig{})
	go wsHub.Run(ctx)

	server := stream.NewServer(cfg.ListenAddr, wsHub, logger.Default())
	go server.Run(ctx)

	renderer := status.NewRenderer(time.Second)
	go renderer.Run(ctx)

	pipeline := control.NewPipeline(control.Config{
		StickDeadzone:   cfg.StickDeadzone,
		TriggerDeadzone: cfg.TriggerDeadzone,
		SteeringLimit:   cfg.SteeringLimit,
	}, feedback{pad: pad})

	aggregator := telemetry.NewAggregator(time.Duration(cfg.WindowSeconds) * time.Second)

	return loop(ctx, pad, writer, pipeline, aggregator, pump, server, renderer)
}

func loop(
	ctx context.Context,
	pad input.Provider,
	writer *hub.Writer,
	pipeline *control.Pipeline,
	aggregator *telemetry.Aggregator,
	pump *telemetry.Pump,
	server *stream.Server,
	renderer *status.Renderer,
) error {
	interval := time.Second / time.Duration(cfg.Rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			raw := pad.Sample()
			frame, cmd, emit := pipeline.Tick(raw)
			if emit {
				writer.Drive(cmd)
			}

			avgFull, avgWindow := aggregator.Add(raw.CapturedAt, pipeline.SmoothedPower())
			snapshot := buildSnapshot(frame, avgFull, avgWindow)

			// Fan-out is best-effort and never blocks the loop.
			server.BroadcastSnapshot(snapshot)
			renderer.Offer(status.State{
				Snapshot:  snapshot,
				Connected: !cfg.Simulate,
				Simulated: cfg.Simulate,
			})
			pump.Offer(snapshot)

			logFrame(frame, emit)
		}
	}
}

func buildSnapshot(frame control.Frame, avgFull, avgWindow float64) *telemetry.Snapshot {
	return &telemetry.Snapshot{
		Power:           frame.Power,
		InstantPower:    frame.AdjustedSpeed,
		AvgPowerFull:    avgFull,
		AvgPowerWindow:  avgWindow,
		Gear:            frame.Gear.String(),
		Mode:            frame.Mode.String(),
		RawLeftTrigger:  int(math.Round(frame.Sample.LeftTrigger)),
		RawRightTrigger: int(math.Round(frame.Sample.RightTrigger)),
		Angle:           frame.Steering,
		Braking:         frame.FullBrake,
		LightsEnabled:   frame.LightsEnabled,
		Buttons:         frame.Sample.Buttons,
		Timestamp:       frame.Sample.CapturedAt,
	}
}

func logFrame(frame control.Frame, emitted bool) {
	if !cfg.IsDebug() {
		return
	}

	logger.Debug().
		Int("left_x", frame.Sample.LeftX).
		Float64("left_trigger", frame.Sample.LeftTrigger).
		Float64("right_trigger", frame.Sample.RightTrigger).
		Float64("raw_throttle", frame.RawThrottle).
		Float64("adjusted_speed", frame.AdjustedSpeed).
		Int("power", frame.Power).
		Int("angle", frame.Steering).
		Str("gear", frame.Gear.String()).
		Str("mode", frame.Mode.String()).
		Bool("brake", frame.FullBrake).
		Bool("emitted", emitted).
		Msg("")
}
