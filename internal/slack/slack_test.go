package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnbuddy/learnbuddy/internal/store"
)

var base = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func TestBuildReport(t *testing.T) {
	sessions := []store.SessionSummary{
		{SessionID: "a", Topic: "Atoms", CreatedAt: base, Questions: 5, Answered: 5, Correct: 4, LastAnswerAt: base.Add(6 * time.Minute)},
		{SessionID: "b", Topic: "Cells", CreatedAt: base.Add(10 * time.Minute), Questions: 5, Answered: 2, Correct: 1, LastAnswerAt: base.Add(14 * time.Minute)},
	}
	stats := []store.TopicStat{
		{Topic: "Cells", Correct: 1, Incorrect: 1},
		{Topic: "Tides", Correct: 0, Incorrect: 3},
		{Topic: "Atoms", Correct: 4, Incorrect: 1},
	}

	r := BuildReport("ada", sessions, stats, base.Add(time.Hour))

	assert.Equal(t, 2, r.QuizzesTaken)
	assert.Equal(t, 5, r.Correct)
	assert.Equal(t, 7, r.Total)
	assert.Equal(t, 14*time.Minute, r.Duration)
	assert.Equal(t, base.Add(14*time.Minute), r.Date)
	assert.Equal(t, []TopicScore{{"Cells", 50}, {"Atoms", 80}}, r.Topics)
}

func TestBuildReport_NoSessions(t *testing.T) {
	r := BuildReport("ada", nil, []store.TopicStat{{Topic: "Atoms", Correct: 1}}, base)

	assert.Zero(t, r.QuizzesTaken)
	assert.Zero(t, r.Accuracy())
	assert.Empty(t, r.Topics)
	assert.Equal(t, base, r.Date)
}

func TestBlocks(t *testing.T) {
	r := Report{
		UserName: "ada", Date: base, Duration: 14 * time.Minute,
		QuizzesTaken: 2, Correct: 5, Total: 7,
		Topics: []TopicScore{{"Cells", 50}, {"Atoms", 80}},
	}
	blocks := Blocks(r)
	require.Len(t, blocks, 7)

	header := blocks[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "📚 Learning Buddy Session Report", header.Text.Text)

	when := blocks[1].(*slackapi.SectionBlock)
	assert.Equal(t, "*Session Date:*\nMarch 14, 2026 at 03:00 PM", when.Fields[0].Text)
	assert.Equal(t, "*Duration:*\n14 minutes", when.Fields[1].Text)

	score := blocks[2].(*slackapi.SectionBlock)
	assert.Equal(t, "*Quizzes Taken:*\n2", score.Fields[0].Text)
	assert.Equal(t, "*Overall Score:*\n5/7 (71.4%)", score.Fields[1].Text)

	assert.Equal(t, slackapi.MBTDivider, blocks[3].BlockType())
	assert.Equal(t, "• Cells: 50% accuracy\n• Atoms: 80% accuracy", blocks[5].(*slackapi.SectionBlock).Text.Text)

	footer := blocks[6].(*slackapi.ContextBlock)
	require.Len(t, footer.ContextElements.Elements, 1)
	assert.Equal(t, "Report for: *ada*", footer.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
}

func TestBlocks_NoTopicsNoUser(t *testing.T) {
	blocks := Blocks(Report{Date: base})
	require.Len(t, blocks, 6)
	assert.Equal(t, "_No topic data available_", blocks[5].(*slackapi.SectionBlock).Text.Text)
}

func TestSend_NotConfigured(t *testing.T) {
	r := NewReporter(Options{})
	assert.False(t, r.Configured())
	assert.ErrorIs(t, r.Send(context.Background(), Report{}, ""), ErrNotConfigured)
}

// postedMessage is what a chat.postMessage call carried.
type postedMessage struct {
	path    string
	auth    string
	channel string
	text    string
	blocks  []json.RawMessage
}

func newSlackAPI(t *testing.T, reply string, got *postedMessage) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseForm())
		got.path = req.URL.Path
		got.auth = req.Header.Get("Authorization")
		if got.auth == "" && req.Form.Get("token") != "" {
			got.auth = "Bearer " + req.Form.Get("token")
		}
		got.channel = req.Form.Get("channel")
		got.text = req.Form.Get("text")
		got.blocks = nil
		if b := req.Form.Get("blocks"); b != "" {
			require.NoError(t, json.Unmarshal([]byte(b), &got.blocks))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSend_BotToken(t *testing.T) {
	var got postedMessage
	srv := newSlackAPI(t, `{"ok":true,"channel":"C1","ts":"1.0"}`, &got)

	r := NewReporter(Options{BotToken: "xoxb-test", WebhookURL: "http://unused.invalid", DefaultChannel: "#learning", APIURL: srv.URL + "/"})
	require.NoError(t, r.Send(context.Background(), Report{UserName: "ada", Date: base}, ""))
	assert.Equal(t, "/chat.postMessage", got.path)
	assert.Equal(t, "Bearer xoxb-test", got.auth)
	assert.Equal(t, "#learning", got.channel)
	assert.Equal(t, "Learning Buddy Session Report", got.text)
	assert.Len(t, got.blocks, 7)

	require.NoError(t, r.Send(context.Background(), Report{Date: base}, "#other"))
	assert.Equal(t, "#other", got.channel)
}

func TestSend_BotError(t *testing.T) {
	var got postedMessage
	srv := newSlackAPI(t, `{"ok":false,"error":"channel_not_found"}`, &got)

	r := NewReporter(Options{BotToken: "xoxb-test", APIURL: srv.URL + "/"})
	err := r.Send(context.Background(), Report{Date: base}, "#nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestSend_Webhook(t *testing.T) {
	var auth string
	var got struct {
		Channel string            `json:"channel"`
		Text    string            `json:"text"`
		Blocks  []json.RawMessage `json:"blocks"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		auth = req.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	r := NewReporter(Options{WebhookURL: srv.URL, DefaultChannel: "#learning"})
	require.NoError(t, r.Send(context.Background(), Report{Date: base}, "#ignored"))
	assert.Empty(t, auth)
	assert.Empty(t, got.Channel)
	assert.Equal(t, "Learning Buddy Session Report", got.Text)
	assert.Len(t, got.Blocks, 6)
}

func TestSend_WebhookRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewReporter(Options{WebhookURL: srv.URL}).Send(context.Background(), Report{Date: base}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.False(t, errors.Is(err, ErrNotConfigured))
}
