// Package notify polls the backend for notifications and owns the
// local notification list state. All read/delete actions are
// confirmed-then-mutate: local state changes only after the server has
// acknowledged the update. Failures in background cycles are logged,
// never surfaced as blocking UI errors.
package notify

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/store"
)

// fetchTimeout bounds a single refresh cycle.
const fetchTimeout = 15 * time.Second

// RefreshedMsg is a tea.Msg sent after each refresh cycle. Err is set
// when the cycle failed; the previous list state is kept in that case.
type RefreshedMsg struct {
	Items       []model.Notification
	UnreadCount int
	Err         error
}

// ActionMsg is a tea.Msg sent after a user-initiated notification
// action. It carries the post-action state; unlike RefreshedMsg it does
// not come from the result channel, so receivers must not re-subscribe
// on it.
type ActionMsg struct {
	Items       []model.Notification
	UnreadCount int
}

// Poller periodically fetches notifications and reconciles the unread
// count. Its goroutine and ticker live from Start to Stop; Stop is
// idempotent and leaks nothing.
type Poller struct {
	client   *api.Client
	cache    store.Store
	logger   *zap.Logger
	interval time.Duration

	resultCh  chan RefreshedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      sync.Mutex
	items   []model.Notification
	unread  int
	running bool
	stopped bool
}

// New creates a Poller. cache may be nil to disable local mirroring.
func New(client *api.Client, cache store.Store, interval time.Duration, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		client:    client,
		cache:     cache,
		logger:    logger,
		interval:  interval,
		resultCh:  make(chan RefreshedMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine: one immediate fetch, then one
// per interval until Stop. The returned command subscribes to results.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine and its ticker. No further fetches
// happen after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		p.stopped = true
		return
	}

	close(p.stopCh)
	p.running = false
	p.stopped = true
}

// Refresh requests an immediate fetch without waiting for the ticker.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Items returns a copy of the current notification list.
func (p *Poller) Items() []model.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]model.Notification, len(p.items))
	copy(items, p.items)
	return items
}

// UnreadCount returns the current unread count.
func (p *Poller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unread
}

// MarkAsRead flags one notification as read. The server call runs
// first; only on success is the local flag flipped and the unread count
// decremented (floored at zero). On failure local state is untouched
// and the error is logged.
func (p *Poller) MarkAsRead(ctx context.Context, id string) error {
	if err := p.client.Notifications.MarkRead(ctx, id); err != nil {
		p.logger.Warn("marking notification read", zap.String("id", id), zap.Error(err))
		return err
	}

	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == id && !p.items[i].IsRead {
			p.items[i].IsRead = true
			if p.unread > 0 {
				p.unread--
			}
			break
		}
	}
	p.mu.Unlock()

	return nil
}

// MarkAllAsRead flags every notification as read and zeroes the unread
// count, after server confirmation.
func (p *Poller) MarkAllAsRead(ctx context.Context) error {
	if err := p.client.Notifications.MarkAllRead(ctx); err != nil {
		p.logger.Warn("marking all notifications read", zap.Error(err))
		return err
	}

	p.mu.Lock()
	for i := range p.items {
		p.items[i].IsRead = true
	}
	p.unread = 0
	p.mu.Unlock()

	return nil
}

// Delete removes a notification after server confirmation, then
// triggers a full refresh so the unread count resynchronizes from the
// server instead of local arithmetic.
func (p *Poller) Delete(ctx context.Context, id string) error {
	if err := p.client.Notifications.Delete(ctx, id); err != nil {
		p.logger.Warn("deleting notification", zap.String("id", id), zap.Error(err))
		return err
	}

	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			break
		}
	}
	p.mu.Unlock()

	if p.cache != nil {
		if err := p.cache.DeleteNotification(ctx, id); err != nil {
			p.logger.Warn("removing cached notification", zap.Error(err))
		}
	}

	p.Refresh()
	return nil
}

// MarkAsReadCmd wraps MarkAsRead for the Bubble Tea runtime.
func (p *Poller) MarkAsReadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_ = p.MarkAsRead(ctx, id)
		return p.actionSnapshot()
	}
}

// MarkAllAsReadCmd wraps MarkAllAsRead for the Bubble Tea runtime.
func (p *Poller) MarkAllAsReadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_ = p.MarkAllAsRead(ctx)
		return p.actionSnapshot()
	}
}

// DeleteCmd wraps Delete for the Bubble Tea runtime.
func (p *Poller) DeleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_ = p.Delete(ctx, id)
		return p.actionSnapshot()
	}
}

// WaitForNextResult returns a command that waits for the next refresh
// result. Call it again after each RefreshedMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}

// loop runs the fetch cycle until Stop. Closing the result channel on
// the way out releases any blocked subscriber command.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer close(p.resultCh)

	p.fetch()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetch()
		case <-p.triggerCh:
			p.fetch()
		}
	}
}

// fetch performs one refresh cycle and publishes the result.
func (p *Poller) fetch() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	list, err := p.client.Notifications.List(ctx)
	if err != nil {
		p.logger.Warn("fetching notifications", zap.Error(err))
		p.sendResult(p.snapshotWithErr(err))
		return
	}

	p.mu.Lock()
	p.items = list.Items
	p.unread = list.UnreadCount
	p.mu.Unlock()

	if p.cache != nil {
		if err := p.cache.UpsertNotifications(ctx, list.Items); err != nil {
			p.logger.Warn("mirroring notifications to cache", zap.Error(err))
		}
	}

	p.sendResult(p.snapshot())
}

// snapshot builds a RefreshedMsg from the current state.
func (p *Poller) snapshot() RefreshedMsg {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]model.Notification, len(p.items))
	copy(items, p.items)
	return RefreshedMsg{Items: items, UnreadCount: p.unread}
}

func (p *Poller) snapshotWithErr(err error) RefreshedMsg {
	msg := p.snapshot()
	msg.Err = err
	return msg
}

func (p *Poller) actionSnapshot() ActionMsg {
	s := p.snapshot()
	return ActionMsg{Items: s.Items, UnreadCount: s.UnreadCount}
}

// sendResult publishes without blocking the poll goroutine.
func (p *Poller) sendResult(msg RefreshedMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the UI is not draining; the next cycle supersedes it.
	}
}

// waitForResult returns a command that blocks on the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
