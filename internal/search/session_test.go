package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"glitchterm/internal/api"
	"glitchterm/internal/debounce"
	"glitchterm/internal/domain"
	"glitchterm/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type reply struct {
	accounts []domain.Account
	err      error
}

type searchCall struct {
	query string
	opts  api.SearchOptions
	reply chan reply
}

// fakeSearcher hands every call to the test, which answers it explicitly.
// Calls ignore their context so late answers behave like zombie requests.
type fakeSearcher struct {
	calls chan *searchCall
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{calls: make(chan *searchCall, 8)}
}

func (f *fakeSearcher) SearchAccounts(ctx context.Context, q string, opts api.SearchOptions) ([]domain.Account, error) {
	c := &searchCall{query: q, opts: opts, reply: make(chan reply, 1)}
	f.calls <- c
	r := <-c.reply
	return r.accounts, r.err
}

func (f *fakeSearcher) next(t *testing.T) *searchCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("expected a search request")
		return nil
	}
}

func (f *fakeSearcher) assertNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected search request for %q", c.query)
	case <-time.After(20 * time.Millisecond):
	}
}

type fakeImporter struct {
	mu      sync.Mutex
	imports [][]domain.Account
}

func (f *fakeImporter) ImportAccounts(accounts []domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, accounts)
}

func (f *fakeImporter) all() [][]domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]domain.Account(nil), f.imports...)
}

type harness struct {
	session  *Session
	searcher *fakeSearcher
	importer *fakeImporter
	settled  chan string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		searcher: newFakeSearcher(),
		importer: &fakeImporter{},
		settled:  make(chan string, 8),
	}
	opts.OnSettled = func(q string) { h.settled <- q }
	opts.Logger = zap.NewNop()
	opts.Metrics = metrics.New()
	h.session = NewSession(h.searcher, h.importer, opts)
	t.Cleanup(h.session.Close)
	return h
}

func (h *harness) waitSettled(t *testing.T) string {
	t.Helper()
	select {
	case q := <-h.settled:
		return q
	case <-time.After(time.Second):
		t.Fatal("search never settled")
		return ""
	}
}

func TestSuccessImportsAndRecordsIDs(t *testing.T) {
	h := newHarness(t, Options{Limit: 10})

	h.session.dispatch("abc")
	assert.True(t, h.session.IsLoading())

	call := h.searcher.next(t)
	assert.Equal(t, "abc", call.query)
	assert.Equal(t, api.SearchOptions{Resolve: true, Limit: 10}, call.opts)

	call.reply <- reply{accounts: []domain.Account{{ID: "1"}, {ID: "2"}}}
	assert.Equal(t, "abc", h.waitSettled(t))

	assert.Equal(t, []string{"1", "2"}, h.session.AccountIDs())
	assert.Equal(t, StatusIdle, h.session.Status())
	imports := h.importer.all()
	require.Len(t, imports, 1)
	assert.Equal(t, []domain.Account{{ID: "1"}, {ID: "2"}}, imports[0])
}

func TestEmptyQueryIsIdleWithoutRequest(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		h := newHarness(t, Options{})

		h.session.dispatch(input)

		assert.Equal(t, "", h.waitSettled(t))
		assert.Equal(t, StatusIdle, h.session.Status())
		assert.Nil(t, h.session.AccountIDs())
		h.searcher.assertNoCall(t)
	}
}

func TestQueryIsTrimmed(t *testing.T) {
	h := newHarness(t, Options{})

	h.session.dispatch("  alice ")
	call := h.searcher.next(t)
	assert.Equal(t, "alice", call.query)
	call.reply <- reply{}
	assert.Equal(t, "alice", h.waitSettled(t))
}

func TestSupersededResponseHasNoEffect(t *testing.T) {
	h := newHarness(t, Options{})

	h.session.dispatch("abc")
	first := h.searcher.next(t)

	h.session.dispatch("abcd")
	second := h.searcher.next(t)
	assert.True(t, h.session.IsLoading())

	// the stale answer arrives first
	first.reply <- reply{accounts: []domain.Account{{ID: "stale"}}}
	second.reply <- reply{accounts: []domain.Account{{ID: "fresh"}}}

	assert.Equal(t, "abcd", h.waitSettled(t))
	assert.Equal(t, []string{"fresh"}, h.session.AccountIDs())
	assert.Equal(t, StatusIdle, h.session.Status())

	imports := h.importer.all()
	require.Len(t, imports, 1)
	assert.Equal(t, "fresh", imports[0][0].ID)

	select {
	case q := <-h.settled:
		t.Fatalf("stale request settled with %q", q)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSupersededFailureDoesNotSurfaceAsError(t *testing.T) {
	h := newHarness(t, Options{})

	h.session.dispatch("abc")
	first := h.searcher.next(t)
	h.session.dispatch("abcd")
	second := h.searcher.next(t)

	first.reply <- reply{err: context.Canceled}
	second.reply <- reply{accounts: []domain.Account{{ID: "1"}}}

	assert.Equal(t, "abcd", h.waitSettled(t))
	assert.False(t, h.session.IsError())
}

func TestFailureThenRecovery(t *testing.T) {
	h := newHarness(t, Options{})

	h.session.dispatch("abc")
	call := h.searcher.next(t)
	call.reply <- reply{accounts: []domain.Account{{ID: "1"}}}
	h.waitSettled(t)

	h.session.dispatch("xyz")
	call = h.searcher.next(t)
	call.reply <- reply{err: errors.New("connection reset")}
	assert.Equal(t, "xyz", h.waitSettled(t))
	assert.True(t, h.session.IsError())
	assert.Equal(t, []string{"1"}, h.session.AccountIDs(), "failure leaves results unchanged")

	h.session.dispatch("abc")
	call = h.searcher.next(t)
	call.reply <- reply{accounts: []domain.Account{{ID: "2"}}}
	assert.Equal(t, "abc", h.waitSettled(t))
	assert.Equal(t, StatusIdle, h.session.Status())
	assert.Equal(t, []string{"2"}, h.session.AccountIDs())
}

func TestClearCancelsLiveRequest(t *testing.T) {
	h := newHarness(t, Options{})

	h.session.dispatch("abc")
	call := h.searcher.next(t)

	h.session.dispatch(" ")
	assert.Equal(t, "", h.waitSettled(t))
	assert.Equal(t, StatusIdle, h.session.Status())

	call.reply <- reply{accounts: []domain.Account{{ID: "1"}}}
	select {
	case q := <-h.settled:
		t.Fatalf("cancelled request settled with %q", q)
	case <-time.After(20 * time.Millisecond):
	}
	assert.Nil(t, h.session.AccountIDs())
	assert.Empty(t, h.importer.all())
}

func TestCloseIgnoresInFlightResult(t *testing.T) {
	searcher := newFakeSearcher()
	importer := &fakeImporter{}
	settled := make(chan string, 1)
	s := NewSession(searcher, importer, Options{OnSettled: func(q string) { settled <- q }})

	s.dispatch("abc")
	call := searcher.next(t)
	s.Close()
	call.reply <- reply{accounts: []domain.Account{{ID: "1"}}}

	s.dispatch("later")
	searcher.assertNoCall(t)
	select {
	case q := <-settled:
		t.Fatalf("closed session settled with %q", q)
	case <-time.After(20 * time.Millisecond):
	}
	assert.Empty(t, importer.all())
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Elapse() {
	c.mu.Lock()
	var live []*manualTimer
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			live = append(live, t)
		}
	}
	c.mu.Unlock()
	for _, t := range live {
		t.f()
	}
}

func TestTypingBurstSendsLeadingAndTrailingQueries(t *testing.T) {
	clock := &manualClock{}
	h := newHarness(t, Options{Leading: true, Trailing: true, AfterFunc: clock.AfterFunc})

	for _, q := range []string{"a", "al", "ali", "alic", "alice"} {
		h.session.Search(q)
	}

	first := h.searcher.next(t)
	assert.Equal(t, "a", first.query)
	h.searcher.assertNoCall(t)

	clock.Elapse()
	last := h.searcher.next(t)
	assert.Equal(t, "alice", last.query)

	first.reply <- reply{accounts: []domain.Account{{ID: "stale"}}}
	last.reply <- reply{accounts: []domain.Account{{ID: "alice"}}}
	assert.Equal(t, "alice", h.waitSettled(t))
	assert.Equal(t, []string{"alice"}, h.session.AccountIDs())
}

func TestFlushDispatchesPendingQuery(t *testing.T) {
	clock := &manualClock{}
	h := newHarness(t, Options{Leading: true, Trailing: true, AfterFunc: clock.AfterFunc})

	h.session.Search("a")
	first := h.searcher.next(t)
	h.session.Search("ab")
	require.True(t, h.session.Flush())

	second := h.searcher.next(t)
	assert.Equal(t, "ab", second.query)

	first.reply <- reply{}
	second.reply <- reply{}
	assert.Equal(t, "ab", h.waitSettled(t))
}
