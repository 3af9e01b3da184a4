package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/slack"
	"github.com/learnbuddy/learnbuddy/internal/store"
)

type fakeTutor struct {
	reply  *buddyapi.ChatResponse
	err    error
	topics []buddyapi.Topic
	got    []string
}

func (f *fakeTutor) Chat(_ context.Context, req buddyapi.ChatRequest) (*buddyapi.ChatResponse, error) {
	f.got = append(f.got, req.Message)
	return f.reply, f.err
}

func (f *fakeTutor) Recommendations(context.Context) ([]buddyapi.Topic, error) {
	return f.topics, f.err
}

type fakeReporter struct {
	err     error
	report  slack.Report
	channel string
	calls   int
}

func (f *fakeReporter) Send(_ context.Context, r slack.Report, channel string) error {
	f.calls++
	f.report, f.channel = r, channel
	return f.err
}

func newTestServer(t *testing.T, tutor *fakeTutor, reporter *fakeReporter) (*Server, store.QuizRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(tutor, st.QuizRepo(), reporter, nil), st.QuizRepo()
}

func do(t *testing.T, s *Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &fakeTutor{}, &fakeReporter{})
	status, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestChat(t *testing.T) {
	tutor := &fakeTutor{reply: &buddyapi.ChatResponse{Response: "Question 1 of 5: ...", SessionID: "s-1"}}
	s, _ := newTestServer(t, tutor, &fakeReporter{})

	status, body := do(t, s, http.MethodPost, "/chat", `{"message":"Generate practice: atoms"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Question 1 of 5: ...", body["response"])
	assert.Equal(t, "s-1", body["session_id"])
	assert.Equal(t, []string{"Generate practice: atoms"}, tutor.got)
}

func TestChat_EmptyMessage(t *testing.T) {
	tutor := &fakeTutor{}
	s, _ := newTestServer(t, tutor, &fakeReporter{})

	status, body := do(t, s, http.MethodPost, "/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No message provided", body["error"])
	assert.Empty(t, tutor.got)
}

func TestChat_MalformedBody(t *testing.T) {
	s, _ := newTestServer(t, &fakeTutor{}, &fakeReporter{})

	status, body := do(t, s, http.MethodPost, "/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestChat_TutorErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"backend error keeps status", &buddyapi.BackendError{Status: 404, Message: "Quiz session not found"}, 404, "Quiz session not found"},
		{"plain error is 500", errors.New("disk on fire"), 500, "disk on fire"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, &fakeTutor{err: tt.err}, &fakeReporter{})
			status, body := do(t, s, http.MethodPost, "/chat", `{"message":"hi"}`)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestChat_ClientRoundTrip(t *testing.T) {
	tutor := &fakeTutor{err: &buddyapi.BackendError{Status: 404, Message: "Quiz session not found"}}
	s, _ := newTestServer(t, tutor, &fakeReporter{})

	// Drive the fiber app through the real client.
	srv := httptest.NewServer(adaptor.FiberApp(s.App()))
	defer srv.Close()

	client, err := buddyapi.NewClient(srv.URL)
	require.NoError(t, err)
	_, err = client.Chat(context.Background(), buddyapi.ChatRequest{Message: "session:x answer:A"})
	var be *buddyapi.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Quiz session not found", be.Message)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	tutor := &fakeTutor{reply: &buddyapi.ChatResponse{Response: "Hi!"}}
	s, _ := newTestServer(t, tutor, &fakeReporter{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client, err := buddyapi.NewClient("http://" + ln.Addr().String())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		resp, err := client.Chat(context.Background(), buddyapi.ChatRequest{Message: "hello"})
		return err == nil && resp.Response == "Hi!"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRecommendations(t *testing.T) {
	tutor := &fakeTutor{topics: []buddyapi.Topic{{Topic: "Atoms", Accuracy: 40, CorrectCount: 2, IncorrectCount: 3}}}
	s, _ := newTestServer(t, tutor, &fakeReporter{})

	status, body := do(t, s, http.MethodGet, "/recommendations", "")
	assert.Equal(t, http.StatusOK, status)
	topics := body["topics"].([]any)
	require.Len(t, topics, 1)
	assert.Equal(t, "Atoms", topics[0].(map[string]any)["topic"])
}

func TestRecommendations_EmptyIsArray(t *testing.T) {
	s, _ := newTestServer(t, &fakeTutor{}, &fakeReporter{})

	_, body := do(t, s, http.MethodGet, "/recommendations", "")
	assert.Equal(t, []any{}, body["topics"])
}

func seedSession(t *testing.T, repo store.QuizRepo, id string, correct ...bool) {
	t.Helper()
	sess := &store.QuizSession{ID: id, Topic: "Atoms"}
	for range correct {
		sess.Questions = append(sess.Questions, store.QuestionRecord{Body: "Q", Options: []string{"a", "b"}, Answer: "A"})
	}
	ctx := context.Background()
	require.NoError(t, repo.CreateSession(ctx, sess))
	for i, ok := range correct {
		require.NoError(t, repo.RecordAnswer(ctx, &store.AnswerRecord{
			SessionID: id, QuestionID: sess.Questions[i].ID, Topic: "Atoms", Answer: "A", Correct: ok,
		}))
	}
}

func TestReport_Session(t *testing.T) {
	reporter := &fakeReporter{}
	s, repo := newTestServer(t, &fakeTutor{}, reporter)
	seedSession(t, repo, "s-1", true, false, true)

	status, body := do(t, s, http.MethodPost, "/report", `{"session_id":"s-1","channel":"#study","user_name":"ada"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Report sent to #study", body["message"])

	assert.Equal(t, "#study", reporter.channel)
	assert.Equal(t, "ada", reporter.report.UserName)
	assert.Equal(t, 1, reporter.report.QuizzesTaken)
	assert.Equal(t, 2, reporter.report.Correct)
	assert.Equal(t, 3, reporter.report.Total)
}

func TestReport_TodayWithoutSession(t *testing.T) {
	reporter := &fakeReporter{}
	s, repo := newTestServer(t, &fakeTutor{}, reporter)
	seedSession(t, repo, "s-1", true)
	seedSession(t, repo, "s-2", false)

	status, _ := do(t, s, http.MethodPost, "/report", `{"user_name":""}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Learner", reporter.report.UserName)
	assert.Equal(t, 2, reporter.report.QuizzesTaken)
}

func TestReport_UnknownSession(t *testing.T) {
	reporter := &fakeReporter{}
	s, _ := newTestServer(t, &fakeTutor{}, reporter)

	status, body := do(t, s, http.MethodPost, "/report", `{"session_id":"ghost","user_name":"ada"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Zero(t, reporter.calls)
}

func TestReport_NotConfigured(t *testing.T) {
	s, _ := newTestServer(t, &fakeTutor{}, &fakeReporter{err: slack.ErrNotConfigured})

	status, body := do(t, s, http.MethodPost, "/report", `{"user_name":"ada"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "not configured")
}

func TestReport_SlackFailure(t *testing.T) {
	s, _ := newTestServer(t, &fakeTutor{}, &fakeReporter{err: errors.New("channel_not_found")})

	status, body := do(t, s, http.MethodPost, "/report", `{"user_name":"ada"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "channel_not_found", body["message"])
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	got := startOfDay(time.Date(2026, 5, 1, 17, 45, 3, 9, loc))
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, loc), got)
}
