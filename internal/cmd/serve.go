package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/xrinput/interaction"
	"github.com/Alia5/xrinput/internal/log"
	"github.com/Alia5/xrinput/internal/server"
	"github.com/Alia5/xrinput/profile"
)

type Serve struct {
	server.ServerConfig `embed:""`
	Hand                string `help:"Hand of the built-in profile when --profile is empty" enum:"left,right" default:"right" env:"XRINPUT_SERVE_HAND"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	prof, err := loadProfile(s.Profile, s.Hand)
	if err != nil {
		return err
	}
	logger.Info("Starting xrinput controller server", "addr", s.Addr, "profile", prof.Name, "mappings", len(prof.Mappings))

	srv := server.New(s.ServerConfig, prof, logger, rawLogger)
	if err := srv.Serve(ctx); err != nil {
		return err
	}
	logger.Info("Controller server stopped", "frames", srv.Frames())
	return nil
}

// loadProfile reads path, or returns the built-in profile for hand when path is empty.
func loadProfile(path, hand string) (*profile.Profile, error) {
	if path == "" {
		h, err := interaction.ParseHandedness(hand)
		if err != nil {
			return nil, err
		}
		return profile.WindowsMixedReality(h), nil
	}
	p, err := profile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}
	return p, nil
}
