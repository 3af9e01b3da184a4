package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Question is one multiple-choice question of a quiz session.
type Question struct {
	ent.Schema
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id"),
		field.Int("position").
			Positive().
			Comment("1-based order within the session"),
		field.String("topic"),
		field.Text("body"),
		field.Strings("options").
			Comment("Option texts in letter order starting at A"),
		field.String("answer").
			Comment("Correct option letter"),
		field.Text("explanation").
			Default(""),
	}
}

func (Question) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("session", QuizSession.Type).
			Ref("questions").
			Field("session_id").
			Unique().
			Required(),
		edge.To("answers", UserAnswer.Type),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "position").Unique(),
	}
}
