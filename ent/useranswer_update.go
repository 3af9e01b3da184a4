// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/learnbuddy/learnbuddy/ent/predicate"
	"github.com/learnbuddy/learnbuddy/ent/question"
	"github.com/learnbuddy/learnbuddy/ent/quizsession"
	"github.com/learnbuddy/learnbuddy/ent/useranswer"
)

// UserAnswerUpdate is the builder for updating UserAnswer entities.
type UserAnswerUpdate struct {
	config
	hooks    []Hook
	mutation *UserAnswerMutation
}

// Where appends a list predicates to the UserAnswerUpdate builder.
func (_u *UserAnswerUpdate) Where(ps ...predicate.UserAnswer) *UserAnswerUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *UserAnswerUpdate) SetSessionID(v string) *UserAnswerUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *UserAnswerUpdate) SetNillableSessionID(v *string) *UserAnswerUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetQuestionID sets the "question_id" field.
func (_u *UserAnswerUpdate) SetQuestionID(v int) *UserAnswerUpdate {
	_u.mutation.SetQuestionID(v)
	return _u
}

// SetNillableQuestionID sets the "question_id" field if the given value is not nil.
func (_u *UserAnswerUpdate) SetNillableQuestionID(v *int) *UserAnswerUpdate {
	if v != nil {
		_u.SetQuestionID(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *UserAnswerUpdate) SetTopic(v string) *UserAnswerUpdate {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *UserAnswerUpdate) SetNillableTopic(v *string) *UserAnswerUpdate {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetAnswer sets the "answer" field.
func (_u *UserAnswerUpdate) SetAnswer(v string) *UserAnswerUpdate {
	_u.mutation.SetAnswer(v)
	return _u
}

// SetNillableAnswer sets the "answer" field if the given value is not nil.
func (_u *UserAnswerUpdate) SetNillableAnswer(v *string) *UserAnswerUpdate {
	if v != nil {
		_u.SetAnswer(*v)
	}
	return _u
}

// SetCorrect sets the "correct" field.
func (_u *UserAnswerUpdate) SetCorrect(v bool) *UserAnswerUpdate {
	_u.mutation.SetCorrect(v)
	return _u
}

// SetNillableCorrect sets the "correct" field if the given value is not nil.
func (_u *UserAnswerUpdate) SetNillableCorrect(v *bool) *UserAnswerUpdate {
	if v != nil {
		_u.SetCorrect(*v)
	}
	return _u
}

// SetAnsweredAt sets the "answered_at" field.
func (_u *UserAnswerUpdate) SetAnsweredAt(v time.Time) *UserAnswerUpdate {
	_u.mutation.SetAnsweredAt(v)
	return _u
}

// SetNillableAnsweredAt sets the "answered_at" field if the given value is not nil.
func (_u *UserAnswerUpdate) SetNillableAnsweredAt(v *time.Time) *UserAnswerUpdate {
	if v != nil {
		_u.SetAnsweredAt(*v)
	}
	return _u
}

// SetSession sets the "session" edge to the QuizSession entity.
func (_u *UserAnswerUpdate) SetSession(v *QuizSession) *UserAnswerUpdate {
	return _u.SetSessionID(v.ID)
}

// SetQuestion sets the "question" edge to the Question entity.
func (_u *UserAnswerUpdate) SetQuestion(v *Question) *UserAnswerUpdate {
	return _u.SetQuestionID(v.ID)
}

// Mutation returns the UserAnswerMutation object of the builder.
func (_u *UserAnswerUpdate) Mutation() *UserAnswerMutation {
	return _u.mutation
}

// ClearSession clears the "session" edge to the QuizSession entity.
func (_u *UserAnswerUpdate) ClearSession() *UserAnswerUpdate {
	_u.mutation.ClearSession()
	return _u
}

// ClearQuestion clears the "question" edge to the Question entity.
func (_u *UserAnswerUpdate) ClearQuestion() *UserAnswerUpdate {
	_u.mutation.ClearQuestion()
	return _u
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *UserAnswerUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *UserAnswerUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *UserAnswerUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *UserAnswerUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *UserAnswerUpdate) check() error {
	if _u.mutation.SessionCleared() && len(_u.mutation.SessionIDs()) > 0 {
		return errors.New(`ent: clearing a required unique edge "UserAnswer.session"`)
	}
	if _u.mutation.QuestionCleared() && len(_u.mutation.QuestionIDs()) > 0 {
		return errors.New(`ent: clearing a required unique edge "UserAnswer.question"`)
	}
	return nil
}

func (_u *UserAnswerUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(useranswer.Table, useranswer.Columns, sqlgraph.NewFieldSpec(useranswer.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(useranswer.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Answer(); ok {
		_spec.SetField(useranswer.FieldAnswer, field.TypeString, value)
	}
	if value, ok := _u.mutation.Correct(); ok {
		_spec.SetField(useranswer.FieldCorrect, field.TypeBool, value)
	}
	if value, ok := _u.mutation.AnsweredAt(); ok {
		_spec.SetField(useranswer.FieldAnsweredAt, field.TypeTime, value)
	}
	if _u.mutation.SessionCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.SessionTable,
			Columns: []string{useranswer.SessionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(quizsession.FieldID, field.TypeString),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.SessionIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.SessionTable,
			Columns: []string{useranswer.SessionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(quizsession.FieldID, field.TypeString),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _u.mutation.QuestionCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.QuestionTable,
			Columns: []string{useranswer.QuestionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(question.FieldID, field.TypeInt),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.QuestionIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.QuestionTable,
			Columns: []string{useranswer.QuestionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(question.FieldID, field.TypeInt),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{useranswer.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// UserAnswerUpdateOne is the builder for updating a single UserAnswer entity.
type UserAnswerUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *UserAnswerMutation
}

// SetSessionID sets the "session_id" field.
func (_u *UserAnswerUpdateOne) SetSessionID(v string) *UserAnswerUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *UserAnswerUpdateOne) SetNillableSessionID(v *string) *UserAnswerUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetQuestionID sets the "question_id" field.
func (_u *UserAnswerUpdateOne) SetQuestionID(v int) *UserAnswerUpdateOne {
	_u.mutation.SetQuestionID(v)
	return _u
}

// SetNillableQuestionID sets the "question_id" field if the given value is not nil.
func (_u *UserAnswerUpdateOne) SetNillableQuestionID(v *int) *UserAnswerUpdateOne {
	if v != nil {
		_u.SetQuestionID(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *UserAnswerUpdateOne) SetTopic(v string) *UserAnswerUpdateOne {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *UserAnswerUpdateOne) SetNillableTopic(v *string) *UserAnswerUpdateOne {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetAnswer sets the "answer" field.
func (_u *UserAnswerUpdateOne) SetAnswer(v string) *UserAnswerUpdateOne {
	_u.mutation.SetAnswer(v)
	return _u
}

// SetNillableAnswer sets the "answer" field if the given value is not nil.
func (_u *UserAnswerUpdateOne) SetNillableAnswer(v *string) *UserAnswerUpdateOne {
	if v != nil {
		_u.SetAnswer(*v)
	}
	return _u
}

// SetCorrect sets the "correct" field.
func (_u *UserAnswerUpdateOne) SetCorrect(v bool) *UserAnswerUpdateOne {
	_u.mutation.SetCorrect(v)
	return _u
}

// SetNillableCorrect sets the "correct" field if the given value is not nil.
func (_u *UserAnswerUpdateOne) SetNillableCorrect(v *bool) *UserAnswerUpdateOne {
	if v != nil {
		_u.SetCorrect(*v)
	}
	return _u
}

// SetAnsweredAt sets the "answered_at" field.
func (_u *UserAnswerUpdateOne) SetAnsweredAt(v time.Time) *UserAnswerUpdateOne {
	_u.mutation.SetAnsweredAt(v)
	return _u
}

// SetNillableAnsweredAt sets the "answered_at" field if the given value is not nil.
func (_u *UserAnswerUpdateOne) SetNillableAnsweredAt(v *time.Time) *UserAnswerUpdateOne {
	if v != nil {
		_u.SetAnsweredAt(*v)
	}
	return _u
}

// SetSession sets the "session" edge to the QuizSession entity.
func (_u *UserAnswerUpdateOne) SetSession(v *QuizSession) *UserAnswerUpdateOne {
	return _u.SetSessionID(v.ID)
}

// SetQuestion sets the "question" edge to the Question entity.
func (_u *UserAnswerUpdateOne) SetQuestion(v *Question) *UserAnswerUpdateOne {
	return _u.SetQuestionID(v.ID)
}

// Mutation returns the UserAnswerMutation object of the builder.
func (_u *UserAnswerUpdateOne) Mutation() *UserAnswerMutation {
	return _u.mutation
}

// ClearSession clears the "session" edge to the QuizSession entity.
func (_u *UserAnswerUpdateOne) ClearSession() *UserAnswerUpdateOne {
	_u.mutation.ClearSession()
	return _u
}

// ClearQuestion clears the "question" edge to the Question entity.
func (_u *UserAnswerUpdateOne) ClearQuestion() *UserAnswerUpdateOne {
	_u.mutation.ClearQuestion()
	return _u
}

// Where appends a list predicates to the UserAnswerUpdate builder.
func (_u *UserAnswerUpdateOne) Where(ps ...predicate.UserAnswer) *UserAnswerUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *UserAnswerUpdateOne) Select(field string, fields ...string) *UserAnswerUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated UserAnswer entity.
func (_u *UserAnswerUpdateOne) Save(ctx context.Context) (*UserAnswer, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *UserAnswerUpdateOne) SaveX(ctx context.Context) *UserAnswer {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *UserAnswerUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *UserAnswerUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *UserAnswerUpdateOne) check() error {
	if _u.mutation.SessionCleared() && len(_u.mutation.SessionIDs()) > 0 {
		return errors.New(`ent: clearing a required unique edge "UserAnswer.session"`)
	}
	if _u.mutation.QuestionCleared() && len(_u.mutation.QuestionIDs()) > 0 {
		return errors.New(`ent: clearing a required unique edge "UserAnswer.question"`)
	}
	return nil
}

func (_u *UserAnswerUpdateOne) sqlSave(ctx context.Context) (_node *UserAnswer, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(useranswer.Table, useranswer.Columns, sqlgraph.NewFieldSpec(useranswer.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "UserAnswer.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, useranswer.FieldID)
		for _, f := range fields {
			if !useranswer.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != useranswer.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(useranswer.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Answer(); ok {
		_spec.SetField(useranswer.FieldAnswer, field.TypeString, value)
	}
	if value, ok := _u.mutation.Correct(); ok {
		_spec.SetField(useranswer.FieldCorrect, field.TypeBool, value)
	}
	if value, ok := _u.mutation.AnsweredAt(); ok {
		_spec.SetField(useranswer.FieldAnsweredAt, field.TypeTime, value)
	}
	if _u.mutation.SessionCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.SessionTable,
			Columns: []string{useranswer.SessionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(quizsession.FieldID, field.TypeString),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.SessionIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.SessionTable,
			Columns: []string{useranswer.SessionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(quizsession.FieldID, field.TypeString),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _u.mutation.QuestionCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.QuestionTable,
			Columns: []string{useranswer.QuestionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(question.FieldID, field.TypeInt),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.QuestionIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   useranswer.QuestionTable,
			Columns: []string{useranswer.QuestionColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(question.FieldID, field.TypeInt),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	_node = &UserAnswer{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{useranswer.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
