package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/credential"
)

// notifServer fakes the /notifications endpoints, counting calls.
type notifServer struct {
	*httptest.Server

	listCalls    atomic.Int64
	readCalls    atomic.Int64
	readAllCalls atomic.Int64
	deleteCalls  atomic.Int64

	failActions atomic.Bool
}

func newNotifServer(t *testing.T) *notifServer {
	t.Helper()
	ns := &notifServer{}
	ns.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/notifications":
			ns.listCalls.Add(1)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"notifications": []map[string]interface{}{
						{"_id": "n1", "title": "Task assigned", "isRead": false},
						{"_id": "n2", "title": "Leave approved", "isRead": true},
					},
					"unreadCount": 1,
				},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/notifications/read-all":
			ns.readAllCalls.Add(1)
			ns.answerAction(w)
		case r.Method == http.MethodPut && r.URL.Path == "/notifications/n1/read":
			ns.readCalls.Add(1)
			ns.answerAction(w)
		case r.Method == http.MethodDelete && r.URL.Path == "/notifications/n1":
			ns.deleteCalls.Add(1)
			ns.answerAction(w)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ns.Close)
	return ns
}

func (ns *notifServer) answerAction(w http.ResponseWriter) {
	if ns.failActions.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
		return
	}
	w.Write([]byte(`{"success":true}`))
}

func (ns *notifServer) client() *api.Client {
	return api.NewClient(ns.URL, credential.NewMemoryStore(), nil)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestPollerFetchesImmediatelyAndOnInterval(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, 30*time.Millisecond, nil)
	defer p.Stop()

	if cmd := p.Start(); cmd == nil {
		t.Fatal("Start returned nil command")
	}

	waitFor(t, func() bool { return ns.listCalls.Load() >= 1 })
	if p.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d, want 1", p.UnreadCount())
	}
	if got := p.Items(); len(got) != 2 || got[0].ID != "n1" {
		t.Errorf("Items = %+v", got)
	}

	waitFor(t, func() bool { return ns.listCalls.Load() >= 3 })
}

func TestPollerStopHaltsFetching(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, 10*time.Millisecond, nil)

	p.Start()
	waitFor(t, func() bool { return ns.listCalls.Load() >= 2 })

	p.Stop()
	settled := ns.listCalls.Load()
	time.Sleep(60 * time.Millisecond)
	if got := ns.listCalls.Load(); got > settled+1 {
		t.Errorf("fetches continued after Stop: %d -> %d", settled, got)
	}

	// Stop is idempotent and Start after Stop is a no-op.
	p.Stop()
	if cmd := p.Start(); cmd != nil {
		t.Error("Start after Stop restarted the poller")
	}
}

func TestPollerRefreshTriggersImmediateFetch(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	p.Start()
	waitFor(t, func() bool { return ns.listCalls.Load() == 1 })

	p.Refresh()
	waitFor(t, func() bool { return ns.listCalls.Load() == 2 })
}

func TestMarkAsReadMutatesOnlyAfterConfirmation(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	p.Start()
	waitFor(t, func() bool { return p.UnreadCount() == 1 })

	if err := p.MarkAsRead(context.Background(), "n1"); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if p.UnreadCount() != 0 {
		t.Errorf("UnreadCount = %d, want 0", p.UnreadCount())
	}
	items := p.Items()
	if !items[0].IsRead {
		t.Error("n1 not flagged read after confirmation")
	}

	// Repeat on an already-read item must not drive the count negative.
	if err := p.MarkAsRead(context.Background(), "n1"); err != nil {
		t.Fatalf("MarkAsRead repeat: %v", err)
	}
	if p.UnreadCount() != 0 {
		t.Errorf("UnreadCount went negative: %d", p.UnreadCount())
	}
}

func TestFailedActionLeavesStateUntouched(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	p.Start()
	waitFor(t, func() bool { return p.UnreadCount() == 1 })

	ns.failActions.Store(true)

	if err := p.MarkAsRead(context.Background(), "n1"); err == nil {
		t.Fatal("MarkAsRead succeeded against failing server")
	}
	if p.UnreadCount() != 1 {
		t.Errorf("UnreadCount changed after failed action: %d", p.UnreadCount())
	}
	if p.Items()[0].IsRead {
		t.Error("item flagged read after failed action")
	}

	if err := p.MarkAllAsRead(context.Background()); err == nil {
		t.Fatal("MarkAllAsRead succeeded against failing server")
	}
	if p.UnreadCount() != 1 {
		t.Errorf("UnreadCount changed after failed mark-all: %d", p.UnreadCount())
	}

	if err := p.Delete(context.Background(), "n1"); err == nil {
		t.Fatal("Delete succeeded against failing server")
	}
	if len(p.Items()) != 2 {
		t.Errorf("items changed after failed delete: %+v", p.Items())
	}
}

func TestMarkAllAsReadZeroesCount(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	p.Start()
	waitFor(t, func() bool { return p.UnreadCount() == 1 })

	if err := p.MarkAllAsRead(context.Background()); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}
	if ns.readAllCalls.Load() != 1 {
		t.Errorf("read-all calls = %d, want 1", ns.readAllCalls.Load())
	}
	if p.UnreadCount() != 0 {
		t.Errorf("UnreadCount = %d, want 0", p.UnreadCount())
	}
	for _, n := range p.Items() {
		if !n.IsRead {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
}

func TestDeleteRemovesItemAndResyncs(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	p.Start()
	waitFor(t, func() bool { return len(p.Items()) == 2 })
	fetches := ns.listCalls.Load()

	if err := p.Delete(context.Background(), "n1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ns.deleteCalls.Load() != 1 {
		t.Errorf("delete calls = %d, want 1", ns.deleteCalls.Load())
	}

	// Delete schedules a refresh to resync the unread count.
	waitFor(t, func() bool { return ns.listCalls.Load() > fetches })
}

func TestActionCmdReturnsPostActionSnapshot(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	p.Start()
	waitFor(t, func() bool { return p.UnreadCount() == 1 })

	msg := p.MarkAllAsReadCmd()()
	action, ok := msg.(ActionMsg)
	if !ok {
		t.Fatalf("cmd result = %T, want ActionMsg", msg)
	}
	if action.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", action.UnreadCount)
	}
	if len(action.Items) != 2 {
		t.Errorf("Items = %+v", action.Items)
	}
}

func TestRefreshedMsgFlowsThroughResultChannel(t *testing.T) {
	ns := newNotifServer(t)
	p := New(ns.client(), nil, time.Hour, nil)
	defer p.Stop()

	cmd := p.Start()
	msg := cmd()
	refreshed, ok := msg.(RefreshedMsg)
	if !ok {
		t.Fatalf("first result = %T, want RefreshedMsg", msg)
	}
	if refreshed.Err != nil {
		t.Fatalf("refresh error: %v", refreshed.Err)
	}
	if refreshed.UnreadCount != 1 || len(refreshed.Items) != 2 {
		t.Errorf("RefreshedMsg = %+v", refreshed)
	}
}
