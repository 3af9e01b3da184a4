package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UserAnswer is one graded answer. Topic is copied from the question so
// per-topic accuracy is a single-table aggregate.
type UserAnswer struct {
	ent.Schema
}

func (UserAnswer) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id"),
		field.Int("question_id"),
		field.String("topic"),
		field.String("answer"),
		field.Bool("correct"),
		field.Time("answered_at").
			Default(time.Now),
	}
}

func (UserAnswer) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("session", QuizSession.Type).
			Ref("answers").
			Field("session_id").
			Unique().
			Required(),
		edge.From("question", Question.Type).
			Ref("answers").
			Field("question_id").
			Unique().
			Required(),
	}
}

func (UserAnswer) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("topic"),
	}
}
