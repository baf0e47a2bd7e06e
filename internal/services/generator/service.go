// Package generator asks the Gemini API for a tournament blind structure.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/riordanpawley/blindtimer/internal/domain"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	// maxErrorBody bounds how much of a failed response is kept in the error
	maxErrorBody = 512
)

const promptTemplate = `Create a Poker Tournament Blind Structure for %d players, lasting approximately %s hours, with %d starting chips.
Ensure the structure is gradual and fair. Return only the blind levels.
Typically, a level lasts 15-20 minutes for this duration.`

var codeFence = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// HTTPClient abstracts HTTP requests for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings for the generator
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Request describes the tournament to generate a structure for
type Request struct {
	Players       int
	DurationHours float64
	StartingChips int
}

// Validate checks the request inputs are positive
func (r Request) Validate() error {
	switch {
	case r.Players <= 0:
		return errors.New("players must be positive")
	case r.DurationHours <= 0:
		return errors.New("duration must be positive")
	case r.StartingChips <= 0:
		return errors.New("starting chips must be positive")
	}
	return nil
}

// Prompt renders the instruction sent to the model
func (r Request) Prompt() string {
	hours := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", r.DurationHours), "0"), ".")
	return fmt.Sprintf(promptTemplate, r.Players, hours, r.StartingChips)
}

// Service generates blind structures
type Service struct {
	httpClient HTTPClient
	logger     *slog.Logger
	apiKey     string
	model      string
	baseURL    string
}

// NewService creates a generator. A missing API key is reported by Generate,
// so the rest of the application works without one.
func NewService(httpClient HTTPClient, cfg Config, logger *slog.Logger) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Service{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// HasAPIKey reports whether the service can call the API at all
func (s *Service) HasAPIKey() bool {
	return s.apiKey != ""
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generatedLevel mirrors the schema; pointers let missing optional fields
// fall back to defaults
type generatedLevel struct {
	SmallBlind      int   `json:"smallBlind"`
	BigBlind        int   `json:"bigBlind"`
	Ante            *int  `json:"ante"`
	DurationMinutes int   `json:"durationMinutes"`
	IsBreak         *bool `json:"isBreak"`
}

func levelSchema() *schema {
	return &schema{
		Type: "ARRAY",
		Items: &schema{
			Type: "OBJECT",
			Properties: map[string]*schema{
				"smallBlind":      {Type: "INTEGER"},
				"bigBlind":        {Type: "INTEGER"},
				"ante":            {Type: "INTEGER"},
				"durationMinutes": {Type: "INTEGER"},
				"isBreak":         {Type: "BOOLEAN", Description: "True if this is a break period"},
			},
			Required: []string{"smallBlind", "bigBlind", "durationMinutes"},
		},
	}
}

// Generate requests a structure for req. An empty answer is returned as an
// empty slice with a nil error; callers decide how to surface it.
func (s *Service) Generate(ctx context.Context, req Request) ([]domain.Level, error) {
	if s.apiKey == "" {
		return nil, &domain.GenerationError{Op: "request", Err: domain.ErrNoAPIKey}
	}
	if err := req.Validate(); err != nil {
		return nil, &domain.GenerationError{Op: "request", Message: "invalid input", Err: err}
	}

	s.logger.Info("generating structure",
		"players", req.Players,
		"duration_hours", req.DurationHours,
		"starting_chips", req.StartingChips,
		"model", s.model)

	text, err := s.callGemini(ctx, req.Prompt())
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		s.logger.Warn("generator returned no text")
		return []domain.Level{}, nil
	}

	levels, err := parseLevels(text)
	if err != nil {
		return nil, &domain.GenerationError{Op: "parse", Message: "malformed structure", Err: err}
	}

	table, dropped := sanitize(levels)
	if dropped > 0 {
		s.logger.Warn("dropped malformed levels", "count", dropped)
	}

	s.logger.Info("structure generated", "levels", len(table))
	return table, nil
}

func (s *Service) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []requestContent{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   levelSchema(),
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &domain.GenerationError{Op: "request", Message: "failed to marshal request", Err: err}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, url.PathEscape(s.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.GenerationError{Op: "request", Message: "failed to create request", Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.GenerationError{Op: "request", Message: "API request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &domain.GenerationError{
			Op:      "request",
			Message: fmt.Sprintf("API returned status %d", resp.StatusCode),
			Err:     errors.New(strings.TrimSpace(string(bodyBytes))),
		}
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", &domain.GenerationError{Op: "decode", Message: "failed to decode response", Err: err}
	}

	var sb strings.Builder
	for _, c := range apiResp.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String(), nil
}

// parseLevels extracts the JSON array, tolerating a markdown code fence
func parseLevels(text string) ([]generatedLevel, error) {
	jsonStr := strings.TrimSpace(text)
	if matches := codeFence.FindStringSubmatch(jsonStr); len(matches) > 1 {
		jsonStr = strings.TrimSpace(matches[1])
	}

	var levels []generatedLevel
	if err := json.Unmarshal([]byte(jsonStr), &levels); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return levels, nil
}

// sanitize applies defaults and drops levels that cannot be run
func sanitize(levels []generatedLevel) (domain.Table, int) {
	table := make(domain.Table, 0, len(levels))
	dropped := 0
	for _, l := range levels {
		if l.DurationMinutes <= 0 || l.SmallBlind < 0 || l.BigBlind < 0 {
			dropped++
			continue
		}
		level := domain.Level{
			SmallBlind:      l.SmallBlind,
			BigBlind:        l.BigBlind,
			DurationMinutes: l.DurationMinutes,
		}
		if l.Ante != nil && *l.Ante > 0 {
			level.Ante = *l.Ante
		}
		if l.IsBreak != nil {
			level.IsBreak = *l.IsBreak
		}
		table = append(table, level)
	}
	return table, dropped
}
