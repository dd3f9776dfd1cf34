package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// LiveReloadService coordinates file watching with viewer notifications.
// A change only triggers a reload once the document parses again.
type LiveReloadService struct {
	watcher      ports.FileWatcher
	notifier     ports.ClientNotifier
	presenter    ports.PresentationService
	logger       *slog.Logger
	mu           sync.Mutex
	watching     bool
	watchCancel  context.CancelFunc
	documentPath string
}

// NewLiveReloadService creates a new live reload service
func NewLiveReloadService(
	watcher ports.FileWatcher,
	notifier ports.ClientNotifier,
	presenter ports.PresentationService,
	logger *slog.Logger,
) *LiveReloadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveReloadService{
		watcher:   watcher,
		notifier:  notifier,
		presenter: presenter,
		logger:    logger.With("service", "live_reload"),
	}
}

// Start watches the document at path until ctx is done or Stop is called
func (s *LiveReloadService) Start(ctx context.Context, path string) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.watching = true
	s.watchCancel = cancel
	s.documentPath = path
	s.mu.Unlock()

	events, err := s.watcher.Watch(watchCtx, path)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.watching = false
		s.watchCancel = nil
		s.mu.Unlock()
		return fmt.Errorf("starting watcher: %w", err)
	}

	go s.handleEvents(watchCtx, events)

	return nil
}

// Stop cancels the watch and stops the file watcher
func (s *LiveReloadService) Stop() error {
	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return nil
	}

	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	s.watching = false
	s.mu.Unlock()

	if err := s.watcher.Stop(); err != nil {
		return fmt.Errorf("stopping watcher: %w", err)
	}

	return nil
}

// IsWatching returns whether the service is currently watching
func (s *LiveReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// handleEvents turns file change events into client notifications
func (s *LiveReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Info("File change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
			)

			s.notify(s.buildUpdate(ctx, event))
		}
	}
}

// buildUpdate re-parses the document and describes the outcome for clients
func (s *LiveReloadService) buildUpdate(ctx context.Context, event ports.FileChangeEvent) ports.UpdateEvent {
	update := ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: event.Timestamp,
	}

	if event.Type == ports.Deleted {
		update.Type = ports.EventTypeError
		update.Data = map[string]interface{}{
			"file":    event.Path,
			"type":    event.Type.String(),
			"message": "presentation file was removed",
		}
		return update
	}

	s.mu.Lock()
	path := s.documentPath
	s.mu.Unlock()

	export, err := s.presenter.Export(ctx, path)
	if err != nil {
		s.logger.Error("Failed to reload presentation",
			slog.String("error", err.Error()),
			slog.String("path", path),
		)
		update.Type = ports.EventTypeError
		update.Data = map[string]interface{}{
			"file":    event.Path,
			"type":    event.Type.String(),
			"message": err.Error(),
		}
		return update
	}

	update.Data = map[string]interface{}{
		"file":  event.Path,
		"type":  event.Type.String(),
		"total": export.Total,
		"title": export.Title,
	}
	return update
}

// notify pushes update to every connected viewer
func (s *LiveReloadService) notify(update ports.UpdateEvent) {
	if err := s.notifier.NotifyClients(update); err != nil {
		s.logger.Warn("Failed to notify WebSocket clients",
			slog.String("error", err.Error()),
			slog.String("event_type", update.Type),
		)
		return
	}

	s.logger.Debug("WebSocket clients notified", slog.String("event_type", update.Type))
}

// Ensure LiveReloadService implements ports.LiveReload
var _ ports.LiveReload = (*LiveReloadService)(nil)
