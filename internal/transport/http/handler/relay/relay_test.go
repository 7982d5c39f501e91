package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandalnilabja/promptrelay/internal/provider"
	"github.com/mandalnilabja/promptrelay/internal/types"
)

// fakeProvider implements provider.Provider for testing.
type fakeProvider struct {
	configured bool
	body       []byte
	err        error

	calls   int
	lastReq *types.RelayRequest
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) Model() string    { return "fake-model" }
func (f *fakeProvider) Configured() bool { return f.configured }
func (f *fakeProvider) GenerateContent(ctx context.Context, req *types.RelayRequest) (*provider.Result, error) {
	f.calls++
	f.lastReq = req
	result := &provider.Result{Model: "fake-model", StatusCode: http.StatusOK}
	if f.err != nil {
		return result, f.err
	}
	result.Body = f.body
	return result, nil
}

// fakeTokenizer returns a fixed count.
type fakeTokenizer struct{ count int }

func (f fakeTokenizer) CountTokens(text, model string) (int, error) { return f.count, nil }
func (f fakeTokenizer) CountRequest(req *types.RelayRequest, model string) (int, error) {
	return f.count, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(h *Handlers, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/gemini", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Relay(rec, req)
	return rec
}

func TestRelay_MissingAPIKey(t *testing.T) {
	bodies := map[string]string{
		"valid body":     `{"prompt":"hello"}`,
		"malformed body": `{not json`,
		"empty body":     ``,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			prov := &fakeProvider{configured: false}
			rec := serve(New(prov, nil, discardLogger()), body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"Server is not configured correctly. API key is missing."}`, rec.Body.String())
			assert.Zero(t, prov.calls, "no upstream call expected")
		})
	}
}

func TestRelay_Success(t *testing.T) {
	upstream := []byte(`{"candidates":[{"content":{"parts":[{"text":"{\"answer\":42}"}],"role":"model"}}],"usageMetadata":{"promptTokenCount":1}}`)
	prov := &fakeProvider{configured: true, body: upstream}

	rec := serve(New(prov, fakeTokenizer{count: 7}, discardLogger()), `{"prompt":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(upstream), rec.Body.String(), "body must be relayed byte-for-byte")
	require.Equal(t, 1, prov.calls)
	assert.Equal(t, "hello", prov.lastReq.Prompt)
	assert.False(t, prov.lastReq.HasSystemInstruction())
}

func TestRelay_SystemInstructionPassedThrough(t *testing.T) {
	prov := &fakeProvider{configured: true, body: []byte(`{}`)}
	instruction := `{"parts":[{"text":"Respond only with JSON"}]}`

	rec := serve(New(prov, nil, discardLogger()), `{"prompt":"hello","systemInstruction":`+instruction+`}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, prov.lastReq)
	assert.JSONEq(t, instruction, string(prov.lastReq.SystemInstruction))
}

func TestRelay_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "non-2xx status",
			err:  &provider.UpstreamError{StatusCode: http.StatusForbidden, Body: []byte(`{"error":{"message":"API key not valid. key=sk-live-123"}}`)},
		},
		{
			name: "malformed response",
			err:  provider.ErrMalformedResponse,
		},
		{
			name: "transport error",
			err:  errors.New(`Post "https://example.test/v1beta/models/m:generateContent?key=REDACTED": dial tcp: connection refused`),
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prov := &fakeProvider{configured: true, err: tt.err}
			rec := serve(New(prov, nil, discardLogger()), `{"prompt":"hello"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"Failed to get a response from the Gemini API."}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "sk-live-123")
			assert.Equal(t, 1, prov.calls, "no retry expected")
		})
	}
}

func TestRelay_ProviderReportsNoAPIKey(t *testing.T) {
	prov := &fakeProvider{configured: true, err: provider.ErrNoAPIKey}
	rec := serve(New(prov, nil, discardLogger()), `{"prompt":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server is not configured correctly. API key is missing."}`, rec.Body.String())
}

func TestRelay_UnparseableBody(t *testing.T) {
	bodies := map[string]string{
		"malformed json":    `{"prompt":`,
		"array body":        `["hello"]`,
		"prompt wrong type": `{"prompt":123}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			prov := &fakeProvider{configured: true}
			rec := serve(New(prov, nil, discardLogger()), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+types.MsgInvalidBody+`"}`, rec.Body.String())
			assert.Zero(t, prov.calls)
		})
	}
}

func TestRelay_PromptlessBodiesAreForwarded(t *testing.T) {
	bodies := map[string]string{
		"empty object":     `{}`,
		"empty prompt":     `{"prompt":""}`,
		"instruction only": `{"systemInstruction":{"parts":[{"text":"be terse"}]}}`,
		"null body":        `null`,
		"empty body":       ``,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			prov := &fakeProvider{configured: true, err: &provider.UpstreamError{
				StatusCode: http.StatusBadRequest,
				Body:       []byte(`{"error":{"code":400,"status":"INVALID_ARGUMENT"}}`),
			}}
			rec := serve(New(prov, nil, discardLogger()), body)

			require.Equal(t, 1, prov.calls, "request must reach the upstream")
			assert.Empty(t, prov.lastReq.Prompt)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"`+types.MsgUpstreamFailure+`"}`, rec.Body.String())
		})
	}
}

// panickingTokenizer fails inside the background counting goroutine.
type panickingTokenizer struct{}

func (panickingTokenizer) CountTokens(text, model string) (int, error) { panic("encoding table missing") }
func (panickingTokenizer) CountRequest(req *types.RelayRequest, model string) (int, error) {
	panic("encoding table missing")
}

func TestRelay_TokenizerPanicDoesNotFailRequest(t *testing.T) {
	prov := &fakeProvider{configured: true, body: []byte(`{"candidates":[]}`)}

	rec := serve(New(prov, panickingTokenizer{}, discardLogger()), `{"prompt":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"candidates":[]}`, rec.Body.String())
}

func TestRelay_OversizedBody(t *testing.T) {
	prov := &fakeProvider{configured: true}
	body := `{"prompt":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	rec := serve(New(prov, nil, discardLogger()), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, prov.calls)
}

func TestRelay_FailureLogsUpstreamDetail(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	prov := &fakeProvider{configured: true, err: &provider.UpstreamError{
		StatusCode: http.StatusTooManyRequests,
		Body:       []byte(`{"error":{"status":"RESOURCE_EXHAUSTED"}}`),
	}}

	rec := serve(New(prov, nil, logger), `{"prompt":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "RESOURCE_EXHAUSTED")
	assert.NotContains(t, rec.Body.String(), "RESOURCE_EXHAUSTED")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate([]byte("abc"), 5))
	assert.Equal(t, "ab…", truncate([]byte("abcdef"), 2))
}
