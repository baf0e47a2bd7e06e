// Package network checks whether the structure generator can be reached.
package network

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// checkTimeout bounds a single reachability probe
const checkTimeout = 5 * time.Second

// HTTPClient abstracts HTTP requests for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusChecker probes a target URL and caches the result
type StatusChecker struct {
	mu        sync.RWMutex
	isOnline  bool
	lastCheck time.Time

	client HTTPClient
	target string
	logger *slog.Logger
}

// StatusMsg reports the outcome of a check to the program
type StatusMsg struct {
	Online bool
}

// NewStatusChecker creates a checker for target. A nil client gets a
// short-lived client without keep-alives.
func NewStatusChecker(client HTTPClient, target string, logger *slog.Logger) *StatusChecker {
	if client == nil {
		client = &http.Client{
			Timeout: checkTimeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusChecker{
		isOnline: true, // Optimistically assume online
		client:   client,
		target:   target,
		logger:   logger,
	}
}

// Check sends a HEAD request to the target. Any response below 500 counts
// as reachable; the endpoint itself may answer 404 to a bare HEAD.
func (s *StatusChecker) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.target, nil)
	if err != nil {
		s.setOnline(false)
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("generator unreachable", "target", s.target, "error", err)
		s.setOnline(false)
		return false
	}
	defer resp.Body.Close()

	online := resp.StatusCode < http.StatusInternalServerError
	s.setOnline(online)
	return online
}

// IsOnline returns the cached online status
func (s *StatusChecker) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOnline
}

// LastCheck returns the time of the last connectivity check
func (s *StatusChecker) LastCheck() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheck
}

func (s *StatusChecker) setOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOnline = online
	s.lastCheck = time.Now()
}

// CheckCmd returns a tea.Cmd that performs a one-time connectivity check
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		return StatusMsg{Online: s.Check(ctx)}
	}
}
