package cmd

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/xrinput/controller"
	"github.com/Alia5/xrinput/interaction"
	"github.com/Alia5/xrinput/recording"
)

var ErrProfileMismatch = errors.New("recording was captured with a different profile")

type Replay struct {
	File     string        `arg:"" name:"file" help:"Recording to replay" type:"existingfile"`
	Profile  string        `help:"Interaction profile file; the built-in profile is used when empty" env:"XRINPUT_REPLAY_PROFILE"`
	Hand     string        `help:"Hand of the built-in profile when --profile is empty" enum:"left,right" default:"right" env:"XRINPUT_REPLAY_HAND"`
	Interval time.Duration `help:"Delay between frames; 0 replays as fast as possible" default:"0s" env:"XRINPUT_REPLAY_INTERVAL"`
	Force    bool          `help:"Replay even if the recording was captured with another profile"`
	Source   uint32        `help:"Replay only this source; 0 replays every source through its own controller" default:"0"`
}

// ReplayStats summarizes a replay.
type ReplayStats struct {
	Sources int
	Frames  uint64
	Events  int
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := r.Play(ctx, logger, controller.NewLogDispatcher(logger))
	if err != nil {
		return err
	}
	logger.Info("Replay finished", "file", r.File, "sources", stats.Sources, "frames", stats.Frames, "events", stats.Events)
	return nil
}

// Play runs the frames of every recorded source through a controller of its
// own and sends the raised events to d. It stops early when ctx is done.
func (r *Replay) Play(ctx context.Context, logger *slog.Logger, d controller.Dispatcher) (ReplayStats, error) {
	var stats ReplayStats

	prof, err := loadProfile(r.Profile, r.Hand)
	if err != nil {
		return stats, err
	}
	f, err := os.Open(r.File)
	if err != nil {
		return stats, err
	}
	defer f.Close()

	rd, err := recording.NewReader(f)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", r.File, err)
	}
	if got, want := rd.Digest(), prof.Digest(); got != want {
		if !r.Force {
			return stats, fmt.Errorf("%w: recorded %s, profile %q is %s (use --force to replay anyway)",
				ErrProfileMismatch, hex.EncodeToString(got[:8]), prof.Name, hex.EncodeToString(want[:8]))
		}
		logger.Warn("Recording profile differs, replaying anyway", "profile", prof.Name)
	}

	controllers := map[uint32]*controller.Controller{}
	controllerFor := func(id uint32) (*controller.Controller, error) {
		if c, ok := controllers[id]; ok {
			return c, nil
		}
		mappings, err := prof.Build(interaction.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		src := controller.Source{ID: id, Name: r.File, Handedness: prof.Handedness}
		c, err := controller.New(src, mappings, d, logger)
		if err != nil {
			return nil, err
		}
		controllers[id] = c
		stats.Sources = len(controllers)
		return c, nil
	}

	var tick <-chan time.Time
	if r.Interval > 0 {
		t := time.NewTicker(r.Interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		frame, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("frame %d: %w", stats.Frames+1, err)
		}
		if r.Source != 0 && frame.Source != r.Source {
			continue
		}
		ctrl, err := controllerFor(frame.Source)
		if err != nil {
			return stats, err
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Events += ctrl.Update(frame.State)
		stats.Frames++
	}
}
