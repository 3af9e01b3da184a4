// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// LLMRequestEvent is the predicate function for llmrequestevent builders.
type LLMRequestEvent func(*sql.Selector)

// Question is the predicate function for question builders.
type Question func(*sql.Selector)

// QuizSession is the predicate function for quizsession builders.
type QuizSession func(*sql.Selector)

// UserAnswer is the predicate function for useranswer builders.
type UserAnswer func(*sql.Selector)
