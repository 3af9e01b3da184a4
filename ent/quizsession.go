// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/learnbuddy/learnbuddy/ent/quizsession"
)

// QuizSession is the model entity for the QuizSession schema.
type QuizSession struct {
	config `json:"-"`
	// ID of the ent.
	ID string `json:"id,omitempty"`
	// Topic holds the value of the "topic" field.
	Topic string `json:"topic,omitempty"`
	// CreatedAt holds the value of the "created_at" field.
	CreatedAt time.Time `json:"created_at,omitempty"`
	// Edges holds the relations/edges for other nodes in the graph.
	// The values are being populated by the QuizSessionQuery when eager-loading is set.
	Edges        QuizSessionEdges `json:"edges"`
	selectValues sql.SelectValues
}

// QuizSessionEdges holds the relations/edges for other nodes in the graph.
type QuizSessionEdges struct {
	// Questions holds the value of the questions edge.
	Questions []*Question `json:"questions,omitempty"`
	// Answers holds the value of the answers edge.
	Answers []*UserAnswer `json:"answers,omitempty"`
	// loadedTypes holds the information for reporting if a
	// type was loaded (or requested) in eager-loading or not.
	loadedTypes [2]bool
}

// QuestionsOrErr returns the Questions value or an error if the edge
// was not loaded in eager-loading.
func (e QuizSessionEdges) QuestionsOrErr() ([]*Question, error) {
	if e.loadedTypes[0] {
		return e.Questions, nil
	}
	return nil, &NotLoadedError{edge: "questions"}
}

// AnswersOrErr returns the Answers value or an error if the edge
// was not loaded in eager-loading.
func (e QuizSessionEdges) AnswersOrErr() ([]*UserAnswer, error) {
	if e.loadedTypes[1] {
		return e.Answers, nil
	}
	return nil, &NotLoadedError{edge: "answers"}
}

// scanValues returns the types for scanning values from sql.Rows.
func (*QuizSession) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case quizsession.FieldID, quizsession.FieldTopic:
			values[i] = new(sql.NullString)
		case quizsession.FieldCreatedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the QuizSession fields.
func (_m *QuizSession) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case quizsession.FieldID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field id", values[i])
			} else if value.Valid {
				_m.ID = value.String
			}
		case quizsession.FieldTopic:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field topic", values[i])
			} else if value.Valid {
				_m.Topic = value.String
			}
		case quizsession.FieldCreatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field created_at", values[i])
			} else if value.Valid {
				_m.CreatedAt = value.Time
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the QuizSession.
// This includes values selected through modifiers, order, etc.
func (_m *QuizSession) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// QueryQuestions queries the "questions" edge of the QuizSession entity.
func (_m *QuizSession) QueryQuestions() *QuestionQuery {
	return NewQuizSessionClient(_m.config).QueryQuestions(_m)
}

// QueryAnswers queries the "answers" edge of the QuizSession entity.
func (_m *QuizSession) QueryAnswers() *UserAnswerQuery {
	return NewQuizSessionClient(_m.config).QueryAnswers(_m)
}

// Update returns a builder for updating this QuizSession.
// Note that you need to call QuizSession.Unwrap() before calling this method if this QuizSession
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *QuizSession) Update() *QuizSessionUpdateOne {
	return NewQuizSessionClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the QuizSession entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *QuizSession) Unwrap() *QuizSession {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: QuizSession is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *QuizSession) String() string {
	var builder strings.Builder
	builder.WriteString("QuizSession(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("topic=")
	builder.WriteString(_m.Topic)
	builder.WriteString(", ")
	builder.WriteString("created_at=")
	builder.WriteString(_m.CreatedAt.Format(time.ANSIC))
	builder.WriteByte(')')
	return builder.String()
}

// QuizSessions is a parsable slice of QuizSession.
type QuizSessions []*QuizSession
