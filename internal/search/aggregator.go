// Package search implements the debounced, fanned-out global search.
// Each keystroke resets a quiet-window timer; when it fires, the users,
// tasks and documents endpoints are queried concurrently and the merged
// result set replaces the previous one atomically. Every dispatch
// carries a sequence number so a late response from a superseded query
// can never overwrite fresher results.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/model"
)

const (
	// MinQueryLen is the minimum query length that triggers a search.
	// Shorter input clears results without a network call.
	MinQueryLen = 2

	// maxPerKind caps each branch's contribution to the merged list.
	maxPerKind = 3

	searchTimeout = 10 * time.Second
)

// ResultsMsg is a tea.Msg carrying a completed result set for Query.
type ResultsMsg struct {
	Query   string
	Results []model.SearchResult
}

// Aggregator owns the debounce timer and the current result set. The
// timer is released by Stop when the owning view is torn down.
type Aggregator struct {
	client   *api.Client
	logger   *zap.Logger
	debounce time.Duration

	resultCh chan ResultsMsg

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	results []model.SearchResult
	stopped bool
}

// New creates an Aggregator with the given debounce window.
func New(client *api.Client, debounce time.Duration, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Aggregator{
		client:   client,
		logger:   logger,
		debounce: debounce,
		resultCh: make(chan ResultsMsg, 4),
	}
}

// SetQuery feeds one input change into the debouncer. Queries shorter
// than MinQueryLen cancel any pending dispatch and clear the results
// immediately; longer queries (re)arm the timer for the quiet window.
func (a *Aggregator) SetQuery(query string) {
	query = strings.TrimSpace(query)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}

	// Invalidate any in-flight fan-out.
	a.seq++

	if len(query) < MinQueryLen {
		a.results = nil
		a.publish(ResultsMsg{Query: query})
		return
	}

	seq := a.seq
	a.timer = time.AfterFunc(a.debounce, func() {
		a.run(query, seq)
	})
}

// Stop cancels any pending dispatch and invalidates in-flight queries.
// Further SetQuery calls are ignored. The result channel is closed so a
// blocked subscriber command returns; all sends hold a.mu and check
// stopped or the sequence first, so none can race the close.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.seq++
	a.stopped = true
	close(a.resultCh)
}

// Results returns a copy of the current result set.
func (a *Aggregator) Results() []model.SearchResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	results := make([]model.SearchResult, len(a.results))
	copy(results, a.results)
	return results
}

// WaitForResults returns a command that blocks until the next result
// set. Call again after each ResultsMsg to keep listening.
func (a *Aggregator) WaitForResults() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-a.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}

// run executes one fan-out for query. seq identifies this dispatch; the
// merge is discarded if a newer one has been issued meanwhile.
func (a *Aggregator) run(query string, seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	// Fixed merge order: users, tasks, documents.
	branches := [3][]model.SearchResult{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		users, err := a.client.Users.List(ctx, api.UserFilter{Search: query})
		if err != nil {
			a.logger.Warn("user search branch failed", zap.Error(err))
			return
		}
		branches[0] = userResults(users)
	}()

	go func() {
		defer wg.Done()
		tasks, err := a.client.Tasks.List(ctx, api.TaskFilter{Search: query})
		if err != nil {
			a.logger.Warn("task search branch failed", zap.Error(err))
			return
		}
		branches[1] = taskResults(tasks)
	}()

	go func() {
		defer wg.Done()
		docs, err := a.client.Documents.List(ctx, api.DocumentFilter{Search: query})
		if err != nil {
			a.logger.Warn("document search branch failed", zap.Error(err))
			return
		}
		branches[2] = documentResults(docs)
	}()

	wg.Wait()

	var merged []model.SearchResult
	for _, branch := range branches {
		if len(branch) > maxPerKind {
			branch = branch[:maxPerKind]
		}
		merged = append(merged, branch...)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.seq {
		// A newer query superseded this dispatch.
		return
	}

	a.results = merged
	a.publish(ResultsMsg{Query: query, Results: merged})
}

// publish sends without blocking; callers hold a.mu.
func (a *Aggregator) publish(msg ResultsMsg) {
	select {
	case a.resultCh <- msg:
	default:
	}
}

func userResults(users []model.User) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, model.SearchResult{
			Kind:     model.SearchKindUser,
			ID:       u.ID,
			Title:    u.Name,
			Subtitle: u.Email,
			Link:     "/users",
		})
	}
	return results
}

func taskResults(tasks []model.Task) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, model.SearchResult{
			Kind:     model.SearchKindTask,
			ID:       t.ID,
			Title:    t.Title,
			Subtitle: t.Status,
			Link:     "/tasks",
		})
	}
	return results
}

func documentResults(docs []model.Document) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(docs))
	for _, d := range docs {
		results = append(results, model.SearchResult{
			Kind:     model.SearchKindDocument,
			ID:       d.ID,
			Title:    d.Title,
			Subtitle: d.FileName,
			Link:     "/documents",
		})
	}
	return results
}
