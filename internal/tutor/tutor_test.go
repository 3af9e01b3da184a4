package tutor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/llm"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
	"github.com/learnbuddy/learnbuddy/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "tutor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// quizJSON is a generated quiz whose correct answers are A, B, C, D, A.
func quizJSON(topic string) llm.MockResponse {
	letters := []string{"A", "B", "C", "D", "A"}
	questions := make([]map[string]any, QuestionsPerQuiz)
	for i := range questions {
		questions[i] = map[string]any{
			"question":    fmt.Sprintf("Which statement %d is true?", i+1),
			"options":     []string{"first", "second", "third", "fourth"},
			"answer":      letters[i],
			"explanation": fmt.Sprintf("Because of reason %d.", i+1),
		}
	}
	return llm.MockJSON(map[string]any{"topic": topic, "questions": questions})
}

func newTutor(t *testing.T, responses ...llm.MockResponse) (*Service, *llm.MockProvider, *store.Store) {
	t.Helper()
	st := openStore(t)
	mock := llm.NewMockProvider(responses...)
	svc := New(mock, st.QuizRepo(), DefaultConfig(), nil)
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("session-%d", ids)
	}
	return svc, mock, st
}

func chat(t *testing.T, svc *Service, msg string) *buddyapi.ChatResponse {
	t.Helper()
	resp, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: msg})
	require.NoError(t, err)
	return resp
}

func backendError(t *testing.T, err error) *buddyapi.BackendError {
	t.Helper()
	var be *buddyapi.BackendError
	require.True(t, errors.As(err, &be), "expected BackendError, got %T (%v)", err, err)
	return be
}

func TestChat_EmptyMessage(t *testing.T) {
	svc, mock, _ := newTutor(t)

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "   "})
	be := backendError(t, err)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Equal(t, "No message provided", be.Message)
	assert.Zero(t, mock.CallCount())
}

func TestChat_Ask(t *testing.T) {
	svc, mock, _ := newTutor(t, llm.MockText(`"Osmosis is the movement of water across a membrane."`))

	resp := chat(t, svc, "What is osmosis?")
	assert.Equal(t, "Osmosis is the movement of water across a membrane.", resp.Response)
	assert.Empty(t, resp.SessionID)

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Nil(t, call.Schema)
	assert.Equal(t, "What is osmosis?", call.Messages[0].Content)
}

func TestChat_AskProviderFailure(t *testing.T) {
	svc, _, _ := newTutor(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "hi"})
	be := backendError(t, err)
	assert.Equal(t, http.StatusBadGateway, be.Status)
	assert.Contains(t, be.Message, "down")
}

func TestChat_NoProvider(t *testing.T) {
	svc := New(nil, openStore(t).QuizRepo(), DefaultConfig(), nil)

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "Generate practice: atoms"})
	assert.Equal(t, http.StatusServiceUnavailable, backendError(t, err).Status)
}

func TestChat_GenerateQuiz(t *testing.T) {
	svc, mock, st := newTutor(t, quizJSON("Atoms"))

	resp := chat(t, svc, "Generate practice: atoms for beginners")
	assert.Equal(t, "session-1", resp.SessionID)

	q, ok := quiz.Parse(resp.Response).(*quiz.Question)
	require.True(t, ok, "reply should parse as a question: %q", resp.Response)
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, QuestionsPerQuiz, q.Total)
	assert.Equal(t, "Which statement 1 is true?", q.Body)
	assert.Equal(t, []rune{'A', 'B', 'C', 'D'}, q.Letters())

	call, _ := mock.LastCall()
	assert.Equal(t, QuizSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "atoms for beginners")

	sess, err := st.QuizRepo().Session(context.Background(), "session-1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Atoms", sess.Topic)
	assert.Len(t, sess.Questions, QuestionsPerQuiz)
}

func TestChat_GenerateWithoutTopic(t *testing.T) {
	svc, mock, _ := newTutor(t)

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "Generate practice:"})
	assert.Equal(t, http.StatusBadRequest, backendError(t, err).Status)
	assert.Zero(t, mock.CallCount())
}

func TestChat_GenerateMalformedQuiz(t *testing.T) {
	svc, _, _ := newTutor(t, llm.MockJSON(map[string]any{"topic": "x", "questions": []any{}}))

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "Generate practice: x"})
	be := backendError(t, err)
	assert.Equal(t, http.StatusBadGateway, be.Status)
	assert.Equal(t, msgMalformedQuiz, be.Message)
}

func TestChat_AnswerCorrectThenIncorrect(t *testing.T) {
	svc, _, _ := newTutor(t, quizJSON("Atoms"))
	chat(t, svc, "Generate practice: atoms")

	resp := chat(t, svc, "session:session-1 answer:a")
	assert.Equal(t, "session-1", resp.SessionID)
	fb, ok := quiz.Parse(resp.Response).(*quiz.Feedback)
	require.True(t, ok, "reply should parse as feedback: %q", resp.Response)
	assert.True(t, fb.Correct)
	assert.Equal(t, "Because of reason 1.", fb.Explanation)
	require.NotNil(t, fb.Next)
	assert.Equal(t, 2, fb.Next.Number)

	resp = chat(t, svc, "session:session-1 answer:D")
	fb, ok = quiz.Parse(resp.Response).(*quiz.Feedback)
	require.True(t, ok)
	assert.False(t, fb.Correct)
	assert.Equal(t, "The correct answer is B. Because of reason 2.", fb.Explanation)
	require.NotNil(t, fb.Next)
	assert.Equal(t, 3, fb.Next.Number)
}

func TestChat_CompleteQuizRecordsStats(t *testing.T) {
	svc, _, st := newTutor(t, quizJSON("Atoms"))
	chat(t, svc, "Generate practice: atoms")

	var last *buddyapi.ChatResponse
	for _, a := range []string{"A", "B", "A", "D", "B"} { // 3 of 5 correct
		last = chat(t, svc, "session:session-1 answer:"+a)
	}
	fb, ok := quiz.Parse(last.Response).(*quiz.Feedback)
	require.True(t, ok)
	assert.Nil(t, fb.Next)
	assert.Contains(t, fb.Explanation, "Quiz complete! You scored 3/5 on Atoms.")

	again := chat(t, svc, "session:session-1 answer:A")
	assert.IsType(t, &quiz.Passthrough{}, quiz.Parse(again.Response))
	assert.Contains(t, again.Response, "3/5")

	sum, err := st.QuizRepo().Summary(context.Background(), "session-1")
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, 5, sum.Answered)
	assert.Equal(t, 3, sum.Correct)

	topics, err := svc.Recommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Atoms", topics[0].Topic)
	assert.Equal(t, 3, topics[0].CorrectCount)
	assert.Equal(t, 2, topics[0].IncorrectCount)
	assert.InDelta(t, 60.0, topics[0].Accuracy, 0.001)
}

func TestChat_AnswerUnknownSession(t *testing.T) {
	svc, _, _ := newTutor(t)

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "session:nope answer:A"})
	be := backendError(t, err)
	assert.Equal(t, http.StatusNotFound, be.Status)
	assert.Equal(t, msgNoSession, be.Message)
}

func TestChat_AnswerNotALetter(t *testing.T) {
	svc, _, st := newTutor(t, quizJSON("Atoms"))
	chat(t, svc, "Generate practice: atoms")

	_, err := svc.Chat(context.Background(), buddyapi.ChatRequest{Message: "session:session-1 answer:protons"})
	assert.Equal(t, http.StatusBadRequest, backendError(t, err).Status)

	answers, err := st.QuizRepo().Answers(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Empty(t, answers, "a rejected answer must not be recorded")
}

func TestChat_SessionReloadedFromStore(t *testing.T) {
	svc, _, st := newTutor(t, quizJSON("Atoms"))
	chat(t, svc, "Generate practice: atoms")
	chat(t, svc, "session:session-1 answer:A")

	// A fresh tutor over the same store has nothing cached.
	restarted := New(llm.NewMockProvider(), st.QuizRepo(), DefaultConfig(), nil)
	resp := chat(t, restarted, "session:session-1 answer:B")

	fb, ok := quiz.Parse(resp.Response).(*quiz.Feedback)
	require.True(t, ok)
	assert.True(t, fb.Correct)
	require.NotNil(t, fb.Next)
	assert.Equal(t, 3, fb.Next.Number)
}

func TestRecommendations_Empty(t *testing.T) {
	svc, _, _ := newTutor(t)

	topics, err := svc.Recommendations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestQuizSchemaPromptMentionsLength(t *testing.T) {
	assert.True(t, strings.Contains(fmt.Sprintf(practicePrompt, QuestionsPerQuiz), "exactly 5 questions"))
}
