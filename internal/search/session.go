// Package search drives an account search-as-you-type input: a debounced
// trigger feeding a controller that owns at most one live request.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"glitchterm/internal/api"
	"glitchterm/internal/debounce"
	"glitchterm/internal/domain"
	"glitchterm/internal/metrics"
	"glitchterm/internal/store"
)

// DefaultWait is the debounce window used when Options.Wait is zero
const DefaultWait = 500 * time.Millisecond

// Status is the tri-state of a session
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Searcher is the outbound account search
type Searcher interface {
	SearchAccounts(ctx context.Context, q string, opts api.SearchOptions) ([]domain.Account, error)
}

// Options configures a Session
type Options struct {
	Wait     time.Duration
	Leading  bool
	Trailing bool
	Limit    int

	// OnSettled is called with the query once its outcome is known, or with
	// "" when the input was cleared. It runs outside the session lock.
	OnSettled func(query string)

	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	AfterFunc debounce.TimerFunc
}

// Session is the search controller for one mounted search surface
type Session struct {
	mu       sync.Mutex
	ctx      context.Context
	stop     context.CancelFunc
	searcher Searcher
	importer store.AccountImporter
	gate     *debounce.Gate
	opts     Options
	logger   *zap.Logger

	live   *Handle
	gen    uint64
	ids    []string
	status Status
	closed bool
}

// NewSession wires a session. Call Close when the search surface goes away.
func NewSession(searcher Searcher, importer store.AccountImporter, opts Options) *Session {
	if opts.Wait <= 0 {
		opts.Wait = DefaultWait
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, stop := context.WithCancel(context.Background())
	s := &Session{
		ctx:      ctx,
		stop:     stop,
		searcher: searcher,
		importer: importer,
		opts:     opts,
		logger:   logger.Named("search"),
	}
	s.gate = debounce.New(s.dispatch, debounce.Options{
		Wait:      opts.Wait,
		Leading:   opts.Leading,
		Trailing:  opts.Trailing,
		AfterFunc: opts.AfterFunc,
	})
	return s
}

// Search is the trigger for raw input; it goes through the debounce gate
func (s *Session) Search(raw string) {
	s.gate.Call(raw)
}

// Flush dispatches a pending debounced query right away
func (s *Session) Flush() bool {
	return s.gate.Flush()
}

// AccountIDs returns the ids of the latest successful result, in server order
func (s *Session) AccountIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		return nil
	}
	return append([]string(nil), s.ids...)
}

// Status returns the current status
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) IsLoading() bool { return s.Status() == StatusLoading }

func (s *Session) IsError() bool { return s.Status() == StatusError }

// Close drops any pending debounced query and cancels the live request
func (s *Session) Close() {
	s.gate.Cancel()

	s.mu.Lock()
	s.closed = true
	s.cancelLive()
	s.gen++
	s.mu.Unlock()

	s.stop()
}

func (s *Session) dispatch(value string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	// the previous request is dead before the next one exists
	s.cancelLive()
	s.gen++
	gen := s.gen

	query := strings.TrimSpace(value)
	if query == "" {
		s.status = StatusIdle
		s.ids = nil
		s.mu.Unlock()

		s.opts.Metrics.SearchOutcome(metrics.OutcomeCleared)
		s.settled("")
		return
	}

	s.status = StatusLoading
	s.logger.Debug("dispatching search", zap.String("query", query), zap.Uint64("gen", gen))
	s.live = Issue(s.ctx,
		func(ctx context.Context) ([]domain.Account, error) {
			return s.searcher.SearchAccounts(ctx, query, api.SearchOptions{Resolve: true, Limit: s.opts.Limit})
		},
		func(accounts []domain.Account, err error) {
			s.resolve(gen, query, accounts, err)
		})
	s.mu.Unlock()
}

func (s *Session) resolve(gen uint64, query string, accounts []domain.Account, err error) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		s.opts.Metrics.SearchOutcome(metrics.OutcomeCancelled)
		return
	}
	s.live = nil

	if err != nil {
		s.status = StatusError
		s.mu.Unlock()

		if errors.Is(err, context.Canceled) {
			s.logger.Warn("search aborted by transport", zap.String("query", query), zap.Error(err))
		} else {
			s.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		}
		s.opts.Metrics.SearchOutcome(metrics.OutcomeError)
		s.settled(query)
		return
	}

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	s.importer.ImportAccounts(accounts)
	s.ids = ids
	s.status = StatusIdle
	s.mu.Unlock()

	s.logger.Debug("search settled", zap.String("query", query), zap.Int("results", len(ids)))
	s.opts.Metrics.SearchOutcome(metrics.OutcomeSuccess)
	s.settled(query)
}

// cancelLive must be called with s.mu held
func (s *Session) cancelLive() {
	if s.live == nil {
		return
	}
	if s.live.Cancel() {
		s.opts.Metrics.SearchOutcome(metrics.OutcomeCancelled)
	}
	s.live = nil
}

func (s *Session) settled(query string) {
	if s.opts.OnSettled != nil {
		s.opts.OnSettled(query)
	}
}
