package store

import (
	"context"
	"testing"
	"time"
)

func sampleSession(id, topic string) *QuizSession {
	return &QuizSession{
		ID:    id,
		Topic: topic,
		Questions: []QuestionRecord{
			{Body: "What is H2O?", Options: []string{"Water", "Salt", "Sugar", "Iron"}, Answer: "A", Explanation: "Two hydrogens, one oxygen."},
			{Body: "What is NaCl?", Options: []string{"Water", "Salt", "Sugar", "Iron"}, Answer: "B"},
		},
	}
}

func TestQuizRepo_CreateAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	sess := sampleSession("sess-1", "chemistry")
	if err := repo.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Questions[0].ID == 0 || sess.Questions[1].Position != 2 {
		t.Fatalf("ids/positions not filled: %+v", sess.Questions)
	}

	got, err := repo.Session(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected session")
	}
	if got.Topic != "chemistry" || len(got.Questions) != 2 {
		t.Fatalf("unexpected session: %+v", got)
	}
	q := got.Questions[0]
	if q.Body != "What is H2O?" || q.Answer != "A" || len(q.Options) != 4 || q.Options[1] != "Salt" {
		t.Errorf("unexpected question: %+v", q)
	}
	if q.Topic != "chemistry" {
		t.Errorf("question topic should default to session topic, got %q", q.Topic)
	}

	missing, err := repo.Session(ctx, "nope")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown session")
	}
}

func TestQuizRepo_DuplicateSessionRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	if err := repo.CreateSession(ctx, sampleSession("dup", "a")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateSession(ctx, sampleSession("dup", "b")); err == nil {
		t.Fatal("expected error for duplicate session id")
	}

	got, _ := repo.Session(ctx, "dup")
	if got.Topic != "a" || len(got.Questions) != 2 {
		t.Fatalf("stored session altered: %+v", got)
	}
}

func TestQuizRepo_AnswersAndStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	chem := sampleSession("chem", "chemistry")
	bio := sampleSession("bio", "biology")
	for _, sess := range []*QuizSession{chem, bio} {
		if err := repo.CreateSession(ctx, sess); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	answers := []*AnswerRecord{
		{SessionID: "chem", QuestionID: chem.Questions[0].ID, Topic: "chemistry", Answer: "A", Correct: true},
		{SessionID: "chem", QuestionID: chem.Questions[1].ID, Topic: "chemistry", Answer: "B", Correct: true},
		{SessionID: "bio", QuestionID: bio.Questions[0].ID, Topic: "biology", Answer: "C", Correct: false},
		{SessionID: "bio", QuestionID: bio.Questions[1].ID, Topic: "biology", Answer: "B", Correct: true},
	}
	for _, a := range answers {
		if err := repo.RecordAnswer(ctx, a); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := repo.Answers(ctx, "bio")
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(got) != 2 || got[0].Answer != "C" || got[0].Correct || !got[1].Correct {
		t.Fatalf("unexpected answers: %+v", got)
	}

	stats, err := repo.TopicStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 topics, got %+v", stats)
	}
	if stats[0].Topic != "biology" || stats[0].Accuracy() != 50 {
		t.Errorf("weakest topic should come first: %+v", stats)
	}
	if stats[1].Topic != "chemistry" || stats[1].Correct != 2 || stats[1].Incorrect != 0 {
		t.Errorf("unexpected chemistry stat: %+v", stats[1])
	}

	sum, err := repo.Summary(ctx, "bio")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum == nil || sum.Questions != 2 || sum.Answered != 2 || sum.Correct != 1 || sum.Topic != "biology" {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	none, err := repo.Summary(ctx, "nope")
	if err != nil {
		t.Fatalf("summary missing: %v", err)
	}
	if none != nil {
		t.Fatal("expected nil summary for unknown session")
	}
}

func TestQuizRepo_AnswerRequiresQuestion(t *testing.T) {
	s := openTestStore(t)
	err := s.QuizRepo().RecordAnswer(context.Background(), &AnswerRecord{
		SessionID: "ghost", QuestionID: 42, Topic: "x", Answer: "A",
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestTopicStat_Accuracy(t *testing.T) {
	if got := (TopicStat{}).Accuracy(); got != 0 {
		t.Errorf("empty accuracy = %v", got)
	}
	if got := (TopicStat{Correct: 3, Incorrect: 1}).Accuracy(); got != 75 {
		t.Errorf("accuracy = %v, want 75", got)
	}
}

func TestQuizRepo_Sessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	old := sampleSession("old", "history")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	recent := sampleSession("recent", "chemistry")
	for _, sess := range []*QuizSession{old, recent} {
		if err := repo.CreateSession(ctx, sess); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	answeredAt := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
	if err := repo.RecordAnswer(ctx, &AnswerRecord{
		SessionID: "recent", QuestionID: recent.Questions[0].ID, Topic: "chemistry",
		Answer: "A", Correct: true, AnsweredAt: answeredAt,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Sessions(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(got) != 1 || got[0].SessionID != "recent" {
		t.Fatalf("expected only the recent session, got %+v", got)
	}
	if got[0].Answered != 1 || got[0].Correct != 1 || !got[0].LastAnswerAt.Equal(answeredAt) {
		t.Errorf("unexpected summary: %+v", got[0])
	}

	all, err := repo.Sessions(ctx, time.Time{})
	if err != nil {
		t.Fatalf("all sessions: %v", err)
	}
	if len(all) != 2 || all[0].SessionID != "old" || !all[0].LastAnswerAt.IsZero() {
		t.Fatalf("unexpected sessions: %+v", all)
	}
}
