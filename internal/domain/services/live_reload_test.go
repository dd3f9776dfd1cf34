package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// Mock implementations
type MockFileWatcher struct {
	mock.Mock
}

func (m *MockFileWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	args := m.Called(ctx, path)
	if ch := args.Get(0); ch != nil {
		return ch.(<-chan ports.FileChangeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileWatcher) Stop() error {
	args := m.Called()
	return args.Error(0)
}

// recordingNotifier collects every event it is asked to send
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.UpdateEvent
	err    error
}

func (n *recordingNotifier) NotifyClients(event ports.UpdateEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) received() []ports.UpdateEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.UpdateEvent(nil), n.events...)
}

type MockPresentationService struct {
	mock.Mock
}

func (m *MockPresentationService) Parse(ctx context.Context, path string) (*entities.Presentation, error) {
	args := m.Called(ctx, path)
	if p := args.Get(0); p != nil {
		return p.(*entities.Presentation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPresentationService) Title(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockPresentationService) Export(ctx context.Context, path string) (*entities.Export, error) {
	args := m.Called(ctx, path)
	if e := args.Get(0); e != nil {
		return e.(*entities.Export), args.Error(1)
	}
	return nil, args.Error(1)
}

func startWatching(t *testing.T, presenter *MockPresentationService, notifier *recordingNotifier) (chan ports.FileChangeEvent, *LiveReloadService) {
	t.Helper()

	events := make(chan ports.FileChangeEvent, 1)
	watcher := &MockFileWatcher{}
	watcher.On("Watch", mock.Anything, "talk.md").Return((<-chan ports.FileChangeEvent)(events), nil)
	watcher.On("Stop").Return(nil)

	service := NewLiveReloadService(watcher, notifier, presenter, nil)
	require.NoError(t, service.Start(context.Background(), "talk.md"))
	t.Cleanup(func() { _ = service.Stop() })

	return events, service
}

func TestNewLiveReloadService(t *testing.T) {
	watcher := &MockFileWatcher{}
	notifier := &recordingNotifier{}
	presenter := &MockPresentationService{}

	service := NewLiveReloadService(watcher, notifier, presenter, nil)
	assert.NotNil(t, service)
	assert.Equal(t, watcher, service.watcher)
	assert.Equal(t, presenter, service.presenter)
	assert.False(t, service.IsWatching())
}

func TestLiveReloadService_Start(t *testing.T) {
	t.Run("successful start", func(t *testing.T) {
		_, service := startWatching(t, &MockPresentationService{}, &recordingNotifier{})
		assert.True(t, service.IsWatching())
	})

	t.Run("second start fails", func(t *testing.T) {
		_, service := startWatching(t, &MockPresentationService{}, &recordingNotifier{})

		err := service.Start(context.Background(), "talk.md")
		assert.EqualError(t, err, "already watching")
	})

	t.Run("watcher error resets state", func(t *testing.T) {
		watcher := &MockFileWatcher{}
		watcher.On("Watch", mock.Anything, "talk.md").Return(nil, errors.New("no such file"))

		service := NewLiveReloadService(watcher, &recordingNotifier{}, &MockPresentationService{}, nil)

		err := service.Start(context.Background(), "talk.md")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "starting watcher")
		assert.False(t, service.IsWatching())
	})
}

func TestLiveReloadService_Stop(t *testing.T) {
	t.Run("stops the watcher once", func(t *testing.T) {
		_, service := startWatching(t, &MockPresentationService{}, &recordingNotifier{})

		require.NoError(t, service.Stop())
		assert.False(t, service.IsWatching())
		assert.NoError(t, service.Stop(), "stopping twice is harmless")

		watcher := service.watcher.(*MockFileWatcher)
		watcher.AssertNumberOfCalls(t, "Stop", 1)
	})

	t.Run("watcher failure is reported", func(t *testing.T) {
		events := make(chan ports.FileChangeEvent)
		watcher := &MockFileWatcher{}
		watcher.On("Watch", mock.Anything, "talk.md").Return((<-chan ports.FileChangeEvent)(events), nil)
		watcher.On("Stop").Return(errors.New("busy"))

		service := NewLiveReloadService(watcher, &recordingNotifier{}, &MockPresentationService{}, nil)
		require.NoError(t, service.Start(context.Background(), "talk.md"))

		err := service.Stop()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stopping watcher")
		assert.False(t, service.IsWatching())
	})
}

func TestLiveReloadService_Events(t *testing.T) {
	t.Run("modified document sends reload", func(t *testing.T) {
		presenter := &MockPresentationService{}
		presenter.On("Export", mock.Anything, "talk.md").Return(&entities.Export{Total: 3, Title: "Talk"}, nil)
		notifier := &recordingNotifier{}

		events, _ := startWatching(t, presenter, notifier)
		events <- ports.FileChangeEvent{Path: "/abs/talk.md", Type: ports.Modified, Timestamp: time.Now()}

		require.Eventually(t, func() bool { return len(notifier.received()) == 1 }, time.Second, 10*time.Millisecond)

		event := notifier.received()[0]
		assert.Equal(t, ports.EventTypeReload, event.Type)
		data := event.Data.(map[string]interface{})
		assert.Equal(t, 3, data["total"])
		assert.Equal(t, "Talk", data["title"])
	})

	t.Run("parse failure sends error", func(t *testing.T) {
		presenter := &MockPresentationService{}
		presenter.On("Export", mock.Anything, "talk.md").Return(nil, errors.New("permission denied"))
		notifier := &recordingNotifier{}

		events, _ := startWatching(t, presenter, notifier)
		events <- ports.FileChangeEvent{Path: "/abs/talk.md", Type: ports.Modified, Timestamp: time.Now()}

		require.Eventually(t, func() bool { return len(notifier.received()) == 1 }, time.Second, 10*time.Millisecond)

		event := notifier.received()[0]
		assert.Equal(t, ports.EventTypeError, event.Type)
		assert.Equal(t, "permission denied", event.Data.(map[string]interface{})["message"])
	})

	t.Run("deleted document sends error without parsing", func(t *testing.T) {
		presenter := &MockPresentationService{}
		notifier := &recordingNotifier{}

		events, _ := startWatching(t, presenter, notifier)
		events <- ports.FileChangeEvent{Path: "/abs/talk.md", Type: ports.Deleted, Timestamp: time.Now()}

		require.Eventually(t, func() bool { return len(notifier.received()) == 1 }, time.Second, 10*time.Millisecond)

		assert.Equal(t, ports.EventTypeError, notifier.received()[0].Type)
		presenter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
	})

	t.Run("recreated document sends reload", func(t *testing.T) {
		presenter := &MockPresentationService{}
		presenter.On("Export", mock.Anything, "talk.md").Return(&entities.Export{Total: 1, Title: "Back"}, nil)
		notifier := &recordingNotifier{}

		events, _ := startWatching(t, presenter, notifier)
		events <- ports.FileChangeEvent{Path: "/abs/talk.md", Type: ports.Created, Timestamp: time.Now()}

		require.Eventually(t, func() bool { return len(notifier.received()) == 1 }, time.Second, 10*time.Millisecond)

		event := notifier.received()[0]
		assert.Equal(t, ports.EventTypeReload, event.Type)
		assert.Equal(t, "created", event.Data.(map[string]interface{})["type"])
	})

	t.Run("notifier failure keeps watching", func(t *testing.T) {
		presenter := &MockPresentationService{}
		presenter.On("Export", mock.Anything, "talk.md").Return(&entities.Export{}, nil)
		notifier := &recordingNotifier{err: errors.New("no clients")}

		events, service := startWatching(t, presenter, notifier)
		events <- ports.FileChangeEvent{Path: "talk.md", Type: ports.Modified, Timestamp: time.Now()}
		events <- ports.FileChangeEvent{Path: "talk.md", Type: ports.Modified, Timestamp: time.Now()}

		require.Eventually(t, func() bool { return len(notifier.received()) == 2 }, time.Second, 10*time.Millisecond)
		assert.True(t, service.IsWatching())
	})
}
