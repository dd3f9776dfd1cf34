package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// PollingWatcher implements file watching using polling
type PollingWatcher struct {
	interval  time.Duration
	debounce  time.Duration
	logger    *slog.Logger
	fileInfos map[string]FileInfo
	events    chan ports.FileChangeEvent
	mu        sync.RWMutex
	wg        sync.WaitGroup
	stopped   bool
	stopCh    chan struct{}
}

// FileInfo stores information about a file
type FileInfo struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewPollingWatcher creates a new polling-based file watcher
func NewPollingWatcher(interval, debounce time.Duration) *PollingWatcher {
	return &PollingWatcher{
		interval:  interval,
		debounce:  debounce,
		logger:    slog.Default().With("component", "watcher"),
		fileInfos: make(map[string]FileInfo),
		events:    make(chan ports.FileChangeEvent, 10),
		stopCh:    make(chan struct{}),
	}
}

// Watch starts watching a file for changes
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	w.mu.RLock()
	stopped := w.stopped
	w.mu.RUnlock()
	if stopped {
		return nil, errors.New("watcher stopped")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if err := w.scanFile(absPath); err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop stops the file watcher and closes the event channel
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)

	return nil
}

// scanFile scans a file and stores its info
func (w *PollingWatcher) scanFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	w.mu.Lock()
	w.fileInfos[path] = FileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}
	w.mu.Unlock()

	return nil
}

// pollLoop polls for changes. The first change in a quiet period is sent
// at once; changes inside the debounce window are coalesced into one
// event sent when the window closes.
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		lastEventTime time.Time
		pending       bool
		pendingType   ports.ChangeType
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changeType, changed, err := w.checkForChanges(path)
			if err != nil {
				w.logger.Warn("Watch error", slog.String("path", path), slog.Any("error", err))
				continue
			}

			if changed {
				pending = true
				pendingType = changeType
			}

			if !pending || time.Since(lastEventTime) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{
				Path:      path,
				Type:      pendingType,
				Timestamp: time.Now(),
			}

			select {
			case w.events <- event:
				lastEventTime = time.Now()
				pending = false
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// checkForChanges reports whether the file changed since the last check and how
func (w *PollingWatcher) checkForChanges(path string) (ports.ChangeType, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.mu.Lock()
			_, existed := w.fileInfos[path]
			delete(w.fileInfos, path)
			w.mu.Unlock()
			return ports.Deleted, existed, nil
		}
		return ports.Modified, false, fmt.Errorf("stat file: %w", err)
	}

	w.mu.RLock()
	oldInfo, exists := w.fileInfos[path]
	w.mu.RUnlock()

	// Skip the checksum when size and modification time are unchanged
	if exists && oldInfo.Size == info.Size() && oldInfo.ModTime.Equal(info.ModTime()) {
		return ports.Modified, false, nil
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return ports.Modified, false, fmt.Errorf("calculate checksum: %w", err)
	}

	w.mu.Lock()
	w.fileInfos[path] = FileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}
	w.mu.Unlock()

	// Only a deleted file loses its entry
	if !exists {
		return ports.Created, true, nil
	}

	// Editors that save by rename can leave identical content behind
	return ports.Modified, oldInfo.Checksum != checksum, nil
}

// calculateChecksum calculates SHA256 checksum of a file
func (w *PollingWatcher) calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is the watched presentation
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)
