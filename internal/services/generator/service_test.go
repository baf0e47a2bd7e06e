package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient mocks HTTP requests
type mockHTTPClient struct {
	response *http.Response
	err      error
	requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return m.response, m.err
}

func createMockAPIResponse(text string) *http.Response {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": text}},
			}},
		},
	}
	body, _ := json.Marshal(resp)
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
}

func validRequest() Request {
	return Request{Players: 6, DurationHours: 2, StartingChips: 5000}
}

func TestService_Generate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []domain.Level
	}{
		{
			name:     "applies defaults",
			response: `[{"smallBlind":25,"bigBlind":50,"durationMinutes":15},{"smallBlind":50,"bigBlind":100,"ante":10,"durationMinutes":20,"isBreak":false}]`,
			want: []domain.Level{
				{SmallBlind: 25, BigBlind: 50, DurationMinutes: 15},
				{SmallBlind: 50, BigBlind: 100, Ante: 10, DurationMinutes: 20},
			},
		},
		{
			name:     "keeps breaks",
			response: `[{"smallBlind":0,"bigBlind":0,"durationMinutes":10,"isBreak":true}]`,
			want:     []domain.Level{{DurationMinutes: 10, IsBreak: true}},
		},
		{
			name:     "strips code fence",
			response: "```json\n[{\"smallBlind\":10,\"bigBlind\":20,\"durationMinutes\":15}]\n```",
			want:     []domain.Level{{SmallBlind: 10, BigBlind: 20, DurationMinutes: 15}},
		},
		{
			name:     "drops non-positive durations",
			response: `[{"smallBlind":10,"bigBlind":20,"durationMinutes":0},{"smallBlind":20,"bigBlind":40,"durationMinutes":15}]`,
			want:     []domain.Level{{SmallBlind: 20, BigBlind: 40, DurationMinutes: 15}},
		},
		{
			name:     "empty array",
			response: `[]`,
			want:     []domain.Level{},
		},
		{
			name:     "empty text",
			response: "",
			want:     []domain.Level{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockHTTPClient{response: createMockAPIResponse(tt.response)}
			svc := NewService(client, Config{APIKey: "test-key"}, slog.Default())

			levels, err := svc.Generate(context.Background(), validRequest())

			require.NoError(t, err)
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestService_Generate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *mockHTTPClient
		req    Request
		op     string
	}{
		{
			name:   "transport failure",
			client: &mockHTTPClient{err: errors.New("connection refused")},
			req:    validRequest(),
			op:     "request",
		},
		{
			name: "non-2xx status",
			client: &mockHTTPClient{response: &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(bytes.NewReader([]byte(`{"error":"quota"}`))),
			}},
			req: validRequest(),
			op:  "request",
		},
		{
			name: "undecodable envelope",
			client: &mockHTTPClient{response: &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(bytes.NewReader([]byte("not json"))),
			}},
			req: validRequest(),
			op:  "decode",
		},
		{
			name:   "malformed structure",
			client: &mockHTTPClient{response: createMockAPIResponse(`{"levels": "nope"}`)},
			req:    validRequest(),
			op:     "parse",
		},
		{
			name:   "invalid request",
			client: &mockHTTPClient{},
			req:    Request{Players: 0, DurationHours: 2, StartingChips: 5000},
			op:     "request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.client, Config{APIKey: "test-key"}, slog.Default())

			levels, err := svc.Generate(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, levels)

			var genErr *domain.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.op, genErr.Op)
		})
	}
}

func TestService_Generate_NoAPIKey(t *testing.T) {
	client := &mockHTTPClient{}
	svc := NewService(client, Config{}, slog.Default())

	_, err := svc.Generate(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)
	assert.Empty(t, client.requests, "no request without a key")
	assert.False(t, svc.HasAPIKey())
}

func TestService_Generate_RequestShape(t *testing.T) {
	var (
		gotPath   string
		gotKey    string
		gotMethod string
		gotBody   generateRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": `[{"smallBlind":25,"bigBlind":50,"durationMinutes":15}]`},
					},
				}},
			},
		})
	}))
	defer server.Close()

	svc := NewService(server.Client(), Config{
		APIKey:  "secret",
		Model:   "gemini-test",
		BaseURL: server.URL + "/",
	}, slog.Default())

	levels, err := svc.Generate(context.Background(), Request{Players: 9, DurationHours: 3.5, StartingChips: 10000})
	require.NoError(t, err)
	require.Len(t, levels, 1)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "9 players")
	assert.Contains(t, prompt, "3.5 hours")
	assert.Contains(t, prompt, "10000 starting chips")

	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
	sch := gotBody.GenerationConfig.ResponseSchema
	require.NotNil(t, sch)
	assert.Equal(t, "ARRAY", sch.Type)
	require.NotNil(t, sch.Items)
	assert.ElementsMatch(t, []string{"smallBlind", "bigBlind", "durationMinutes"}, sch.Items.Required)
	assert.Contains(t, sch.Items.Properties, "isBreak")
}

func TestService_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	svc := NewService(server.Client(), Config{APIKey: "k", BaseURL: server.URL}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequest_Prompt(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{2, "approximately 2 hours"},
		{1.5, "approximately 1.5 hours"},
		{2.25, "approximately 2.25 hours"},
	}
	for _, tt := range tests {
		req := Request{Players: 6, DurationHours: tt.hours, StartingChips: 5000}
		assert.Contains(t, req.Prompt(), tt.want)
	}
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, Config{APIKey: "k"}, nil)

	assert.Equal(t, DefaultModel, svc.model)
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.True(t, svc.HasAPIKey())
}
