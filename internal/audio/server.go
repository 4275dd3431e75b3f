package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/hermes/internal/hermes"
	"github.com/jmylchreest/hermes/internal/ontology"
)

// ErrQueueFull is reported when PlayBytes messages arrive faster than they
// can be played.
var ErrQueueFull = errors.New("playback queue is full")

// ServerOptions configures a Server.
type ServerOptions struct {
	// SiteID is the site whose PlayBytes messages are played. Empty means
	// every site.
	SiteID string
	// Version answers version requests.
	Version string
	// QueueSize bounds the number of pending sounds.
	QueueSize int
}

// Server is an audio server backend. Sounds are played one at a time in
// arrival order; each one is followed by a PlayFinished message, also when
// it could not be played.
type Server struct {
	opts     ServerOptions
	player   *Player
	logger   *slog.Logger
	backend  *hermes.AudioServerBackendFacade
	feedback *hermes.SoundFeedbackBackendFacade

	queue  chan *ontology.PlayBytesMessage
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewServer creates a server using facades of h.
func NewServer(h *hermes.Handler, player *Player, opts ServerOptions, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts:     opts,
		player:   player,
		logger:   logger.With("site", opts.SiteID),
		backend:  h.AudioServerBackendFacade(),
		feedback: h.SoundFeedbackBackendFacade(),
		queue:    make(chan *ontology.PlayBytesMessage, opts.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start subscribes to the audio server and sound feedback topics and
// starts the playback loop.
func (s *Server) Start() error {
	var err error
	if s.opts.SiteID == "" {
		err = s.backend.SubscribeAllPlayBytes(s.enqueue)
	} else {
		err = s.backend.SubscribePlayBytes(s.opts.SiteID, s.enqueue)
	}
	if err != nil {
		return fmt.Errorf("failed to subscribe to play bytes: %w", err)
	}

	if err := s.feedback.SubscribeToggleOn(func(m *ontology.SiteMessage) {
		if s.forSite(m.SiteID) {
			s.player.SetMuted(false)
		}
	}); err != nil {
		return fmt.Errorf("failed to subscribe to toggle on: %w", err)
	}
	if err := s.feedback.SubscribeToggleOff(func(m *ontology.SiteMessage) {
		if s.forSite(m.SiteID) {
			s.player.SetMuted(true)
		}
	}); err != nil {
		return fmt.Errorf("failed to subscribe to toggle off: %w", err)
	}

	if err := s.backend.SubscribeVersionRequest(func() {
		if err := s.backend.PublishVersion(&ontology.VersionMessage{Version: s.opts.Version}); err != nil {
			s.logger.Warn("failed to publish version", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to subscribe to version requests: %w", err)
	}

	s.wg.Add(1)
	go s.run()

	s.logger.Info("audio server started")
	return nil
}

func (s *Server) forSite(site string) bool {
	return s.opts.SiteID == "" || site == s.opts.SiteID
}

func (s *Server) enqueue(m *ontology.PlayBytesMessage) {
	select {
	case s.queue <- m:
	default:
		s.logger.Warn("dropping sound", "id", m.ID, "error", ErrQueueFull)
		s.reportError(m, ErrQueueFull)
		s.finished(m)
	}
}

func (s *Server) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case m := <-s.queue:
			s.play(m)
		}
	}
}

func (s *Server) play(m *ontology.PlayBytesMessage) {
	length, err := s.player.PlayWAV(s.ctx, m.WavBytes)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		s.logger.Warn("failed to play sound", "id", m.ID, "error", err)
		s.reportError(m, err)
	default:
		s.logger.Debug("sound played", "id", m.ID, "length", length)
	}
	s.finished(m)
}

func (s *Server) finished(m *ontology.PlayBytesMessage) {
	if err := s.backend.PublishPlayFinished(&ontology.PlayFinishedMessage{ID: m.ID, SiteID: m.SiteID}); err != nil {
		s.logger.Warn("failed to publish play finished", "id", m.ID, "error", err)
	}
}

func (s *Server) reportError(m *ontology.PlayBytesMessage, cause error) {
	err := s.backend.PublishError(&ontology.ErrorMessage{
		Error:   cause.Error(),
		Context: m.ID,
	})
	if err != nil {
		s.logger.Warn("failed to publish error", "id", m.ID, "error", err)
	}
}

// Close stops playback and ends the server's subscriptions.
func (s *Server) Close() error {
	var err error
	s.once.Do(func() {
		err = errors.Join(s.backend.Close(), s.feedback.Close())
		s.cancel()
		s.wg.Wait()
		s.logger.Info("audio server stopped")
	})
	return err
}
