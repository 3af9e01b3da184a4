package buddyapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient_RejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "ftp://host", "http://"} {
		_, err := NewClient(raw)
		assert.Error(t, err, "url %q", raw)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := NewClient("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestChat_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Generate practice: fractions", req.Message)

		writeJSON(w, http.StatusOK, ChatResponse{Response: "Question 1 of 5: ...", SessionID: "abc123"})
	})

	resp, err := c.Chat(context.Background(), ChatRequest{Message: "Generate practice: fractions"})
	require.NoError(t, err)
	assert.Equal(t, "Question 1 of 5: ...", resp.Response)
	assert.Equal(t, "abc123", resp.SessionID)
}

func TestChat_ErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ChatResponse{Error: "Session not found"})
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "session:x answer:A"})
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Session not found", be.Message)
	assert.Equal(t, "Session not found", UserMessage(err))
}

func TestChat_ErrorStatusWithBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, ChatResponse{Error: "message is required"})
	})

	_, err := c.Chat(context.Background(), ChatRequest{})
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Equal(t, "message is required", be.Message)
}

func TestChat_ErrorStatusWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{})
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), be.Message)
}

func TestChat_EmptyResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, ErrEmptyResponse.Error(), be.Message)
}

func TestChat_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "decode /chat", ne.Op)
	assert.Contains(t, UserMessage(err), "Error: ")
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), ChatRequest{Message: "hi"})
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "POST /chat", ne.Op)
}

func TestChat_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ChatResponse{Response: "late"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Chat(ctx, ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRecommendations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/recommendations", r.URL.Path)
		writeJSON(w, http.StatusOK, RecommendationsResponse{Topics: []Topic{
			{Topic: "fractions", Accuracy: 40, CorrectCount: 2, IncorrectCount: 3},
			{Topic: "algebra", Accuracy: 75, CorrectCount: 3, IncorrectCount: 1},
		}})
	})

	topics, err := c.Recommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "fractions", topics[0].Topic)
	assert.InDelta(t, 40.0, topics[0].Accuracy, 0.001)
	assert.Equal(t, 3, topics[0].IncorrectCount)
}

func TestRecommendations_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, RecommendationsResponse{Error: "database unavailable"})
	})

	_, err := c.Recommendations(context.Background())
	assert.Equal(t, "database unavailable", UserMessage(err))
}

func TestReport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/report", r.URL.Path)
		var req ReportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "abc123", req.SessionID)
		assert.Equal(t, "ada", req.UserName)
		writeJSON(w, http.StatusOK, ReportResponse{Success: false, Message: "Slack is not configured"})
	})

	resp, err := c.Report(context.Background(), ReportRequest{SessionID: "abc123", UserName: "ada"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Slack is not configured", resp.Message)
}
