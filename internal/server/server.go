// Package server accepts controller streams over TCP. Every connection is
// one controller: the client writes fixed-size controller.SourceState frames
// and the server runs them through the profile's mappings.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alia5/xrinput/controller"
	"github.com/Alia5/xrinput/interaction"
	"github.com/Alia5/xrinput/internal/log"
	"github.com/Alia5/xrinput/profile"
	"github.com/Alia5/xrinput/recording"
)

// DispatcherFactory returns the dispatcher for a newly connected source.
type DispatcherFactory func(src controller.Source) controller.Dispatcher

type Option func(*Server)

// WithDispatcherFactory replaces the default log dispatcher.
func WithDispatcherFactory(f DispatcherFactory) Option {
	return func(s *Server) { s.newDispatcher = f }
}

// WithRecorder records every frame to w instead of the configured file.
func WithRecorder(w io.Writer) Option {
	return func(s *Server) { s.recordTo = w }
}

type Server struct {
	config    ServerConfig
	profile   *profile.Profile
	logger    *slog.Logger
	rawLogger log.RawLogger

	newDispatcher DispatcherFactory
	recordTo      io.Writer

	ln       net.Listener
	addr     atomic.Value
	nextID   atomic.Uint32
	conns    sync.WaitGroup
	recMu    sync.Mutex
	rec      *recording.Writer
	recFile  *os.File
	frames   atomic.Uint64
	closeMu  sync.Mutex
	closed   bool
	open     map[net.Conn]struct{}
	serveErr chan error
}

// New creates a server for prof. Call Start to begin accepting.
func New(config ServerConfig, prof *profile.Profile, logger *slog.Logger, rawLogger log.RawLogger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	s := &Server{
		config:    config,
		profile:   prof,
		logger:    logger,
		rawLogger: rawLogger,
		serveErr:  make(chan error, 1),
		open:      map[net.Conn]struct{}{},
	}
	s.newDispatcher = func(controller.Source) controller.Dispatcher {
		return controller.NewLogDispatcher(logger)
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Config() ServerConfig { return s.config }

// Addr returns the listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	a, _ := s.addr.Load().(net.Addr)
	return a
}

// Frames returns the number of frames received over all connections.
func (s *Server) Frames() uint64 { return s.frames.Load() }

// Start validates the profile, opens the recording if any, and starts
// accepting connections.
func (s *Server) Start() error {
	if s.profile == nil {
		return errors.New("server: nil profile")
	}
	if err := s.profile.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := s.openRecording(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		s.closeRecording()
		return err
	}
	s.ln = ln
	s.addr.Store(ln.Addr())
	s.logger.Info("Controller stream listening", "addr", ln.Addr().String(), "profile", s.profile.Name)
	go s.serve()
	return nil
}

// Serve runs Start and blocks until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return s.Close()
	case err := <-s.serveErr:
		_ = s.Close()
		return err
	}
}

// Close stops accepting, waits for open connections to end and flushes
// the recording.
func (s *Server) Close() error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return nil
	}
	s.closed = true
	for c := range s.open {
		_ = c.Close()
	}
	s.closeMu.Unlock()

	if s.ln != nil {
		_ = s.ln.Close()
	}
	s.conns.Wait()
	return s.closeRecording()
}

func (s *Server) openRecording() error {
	w := s.recordTo
	if w == nil && s.config.Record != "" {
		f, err := os.OpenFile(s.config.Record, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open recording: %w", err)
		}
		s.recFile = f
		w = f
	}
	if w == nil {
		return nil
	}
	rec, err := recording.NewWriter(w, s.profile.Digest())
	if err != nil {
		return fmt.Errorf("write recording header: %w", err)
	}
	s.rec = rec
	s.logger.Info("Recording frames", "file", s.config.Record)
	return nil
}

func (s *Server) closeRecording() error {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	var err error
	if s.rec != nil {
		err = s.rec.Flush()
		s.rec = nil
	}
	if s.recFile != nil {
		err = errors.Join(err, s.recFile.Close())
		s.recFile = nil
	}
	return err
}

func (s *Server) record(source uint32, tick uint64, state controller.SourceState) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	if s.rec == nil {
		return
	}
	if err := s.rec.WriteFrame(source, tick, state); err != nil {
		s.logger.Error("failed to record frame", "error", err)
	}
}

func (s *Server) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				s.logger.Info("Controller stream stopped")
				s.serveErr <- nil
				return
			}
			s.logger.Error("accept error", "error", err)
			s.serveErr <- err
			return
		}
		if !s.track(c) {
			_ = c.Close()
			continue
		}
		go func() {
			defer s.untrack(c)
			s.handleConn(c)
		}()
	}
}

func (s *Server) track(c net.Conn) bool {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return false
	}
	s.open[c] = struct{}{}
	s.conns.Add(1)
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.closeMu.Lock()
	delete(s.open, c)
	s.closeMu.Unlock()
	s.conns.Done()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	src := controller.Source{
		ID:         s.nextID.Add(1),
		Name:       conn.RemoteAddr().String(),
		Handedness: s.profile.Handedness,
	}
	connLogger := s.logger.With("remote", src.Name, "source", src.ID)

	mappings, err := s.profile.Build(interaction.WithLogger(connLogger))
	if err != nil {
		connLogger.Error("failed to build mappings", "error", err)
		return
	}
	ctrl, err := controller.New(src, mappings, s.newDispatcher(src), s.logger)
	if err != nil {
		connLogger.Error("failed to create controller", "error", err)
		return
	}
	connLogger.Info("controller connected")

	if err := s.stream(conn, ctrl, connLogger); err != nil {
		connLogger.Error("controller stream failed", "error", err, "ticks", ctrl.Ticks())
		return
	}
	connLogger.Info("controller disconnected", "ticks", ctrl.Ticks())
}

func (s *Server) stream(conn net.Conn, ctrl *controller.Controller, logger *slog.Logger) error {
	buf := make([]byte, controller.SourceStateSize)
	for {
		if s.config.ConnectionTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.config.ConnectionTimeout))
		}
		if _, err := io.ReadFull(conn, buf); err != nil {
			if err == io.EOF || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read source state: %w", err)
		}
		s.frames.Add(1)
		s.rawLogger.Log(ctrl.Source().ID, ctrl.Ticks()+1, buf)

		var state controller.SourceState
		if err := state.UnmarshalBinary(buf); err != nil {
			return fmt.Errorf("unmarshal source state: %w", err)
		}
		events := ctrl.Update(state)
		s.record(ctrl.Source().ID, ctrl.Ticks(), state)
		if events > 0 {
			logger.Log(context.Background(), log.LevelTrace, "tick", "tick", ctrl.Ticks(), "events", events)
		}
	}
}
