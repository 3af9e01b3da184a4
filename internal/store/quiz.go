package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/learnbuddy/learnbuddy/ent"
	"github.com/learnbuddy/learnbuddy/ent/question"
	"github.com/learnbuddy/learnbuddy/ent/quizsession"
	"github.com/learnbuddy/learnbuddy/ent/useranswer"
)

// quizRepo implements QuizRepo with ent, plus one raw aggregate over
// user_answers for topic accuracy.
type quizRepo struct {
	client *ent.Client
	db     *sql.DB
}

func (r *quizRepo) CreateSession(ctx context.Context, sess *QuizSession) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	tx, err := r.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.QuizSession.Create().
		SetID(sess.ID).
		SetTopic(sess.Topic).
		SetCreatedAt(sess.CreatedAt.UTC()).
		Save(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	builders := make([]*ent.QuestionCreate, len(sess.Questions))
	for i := range sess.Questions {
		q := &sess.Questions[i]
		q.SessionID = sess.ID
		if q.Topic == "" {
			q.Topic = sess.Topic
		}
		if q.Position == 0 {
			q.Position = i + 1
		}
		builders[i] = tx.Question.Create().
			SetSessionID(q.SessionID).
			SetPosition(q.Position).
			SetTopic(q.Topic).
			SetBody(q.Body).
			SetOptions(q.Options).
			SetAnswer(q.Answer).
			SetExplanation(q.Explanation)
	}
	saved, err := tx.Question.CreateBulk(builders...).Save(ctx)
	if err != nil {
		return fmt.Errorf("save questions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	for i, q := range saved {
		sess.Questions[i].ID = q.ID
	}
	return nil
}

func (r *quizRepo) Session(ctx context.Context, id string) (*QuizSession, error) {
	s, err := r.client.QuizSession.Query().
		Where(quizsession.ID(id)).
		WithQuestions(func(q *ent.QuestionQuery) {
			q.Order(ent.Asc(question.FieldPosition))
		}).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := &QuizSession{ID: s.ID, Topic: s.Topic, CreatedAt: s.CreatedAt}
	for _, q := range s.Edges.Questions {
		sess.Questions = append(sess.Questions, QuestionRecord{
			ID:          q.ID,
			SessionID:   q.SessionID,
			Position:    q.Position,
			Topic:       q.Topic,
			Body:        q.Body,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return sess, nil
}

func (r *quizRepo) RecordAnswer(ctx context.Context, ans *AnswerRecord) error {
	if ans.AnsweredAt.IsZero() {
		ans.AnsweredAt = time.Now()
	}
	saved, err := r.client.UserAnswer.Create().
		SetSessionID(ans.SessionID).
		SetQuestionID(ans.QuestionID).
		SetTopic(ans.Topic).
		SetAnswer(ans.Answer).
		SetCorrect(ans.Correct).
		SetAnsweredAt(ans.AnsweredAt.UTC()).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	ans.ID = saved.ID
	return nil
}

func (r *quizRepo) Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	answers, err := r.client.UserAnswer.Query().
		Where(useranswer.SessionID(sessionID)).
		Order(ent.Asc(useranswer.FieldID)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}

	out := make([]AnswerRecord, len(answers))
	for i, a := range answers {
		out[i] = answerRecord(a)
	}
	return out, nil
}

// TopicStats is the one aggregate ent's builders don't express well: a
// ratio ordering over a GROUP BY. The table is ent-managed.
func (r *quizRepo) TopicStats(ctx context.Context) ([]TopicStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic, SUM(correct), COUNT(*) - SUM(correct)
		FROM user_answers GROUP BY topic
		ORDER BY CAST(SUM(correct) AS REAL) / COUNT(*), COUNT(*) DESC, topic`)
	if err != nil {
		return nil, fmt.Errorf("query topic stats: %w", err)
	}
	defer rows.Close()

	var out []TopicStat
	for rows.Next() {
		var s TopicStat
		if err := rows.Scan(&s.Topic, &s.Correct, &s.Incorrect); err != nil {
			return nil, fmt.Errorf("scan topic stat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *quizRepo) Summary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	s, err := r.summaryQuery().
		Where(quizsession.ID(sessionID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("session summary: %w", err)
	}
	sum := summarize(s)
	return &sum, nil
}

func (r *quizRepo) Sessions(ctx context.Context, since time.Time) ([]SessionSummary, error) {
	query := r.summaryQuery().
		Order(ent.Asc(quizsession.FieldCreatedAt), ent.Asc(quizsession.FieldID))
	if !since.IsZero() {
		query = query.Where(quizsession.CreatedAtGTE(since.UTC()))
	}

	sessions, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	out := make([]SessionSummary, len(sessions))
	for i, s := range sessions {
		out[i] = summarize(s)
	}
	return out, nil
}

// summaryQuery loads sessions with the question IDs and answers a summary
// needs.
func (r *quizRepo) summaryQuery() *ent.QuizSessionQuery {
	return r.client.QuizSession.Query().
		WithQuestions(func(q *ent.QuestionQuery) {
			q.Select(question.FieldID, question.FieldSessionID)
		}).
		WithAnswers()
}

func summarize(s *ent.QuizSession) SessionSummary {
	sum := SessionSummary{
		SessionID: s.ID,
		Topic:     s.Topic,
		CreatedAt: s.CreatedAt,
		Questions: len(s.Edges.Questions),
		Answered:  len(s.Edges.Answers),
	}
	for _, a := range s.Edges.Answers {
		if a.Correct {
			sum.Correct++
		}
		if a.AnsweredAt.After(sum.LastAnswerAt) {
			sum.LastAnswerAt = a.AnsweredAt
		}
	}
	return sum
}

func answerRecord(a *ent.UserAnswer) AnswerRecord {
	return AnswerRecord{
		ID:         a.ID,
		SessionID:  a.SessionID,
		QuestionID: a.QuestionID,
		Topic:      a.Topic,
		Answer:     a.Answer,
		Correct:    a.Correct,
		AnsweredAt: a.AnsweredAt,
	}
}
