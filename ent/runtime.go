// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/learnbuddy/learnbuddy/ent/llmrequestevent"
	"github.com/learnbuddy/learnbuddy/ent/question"
	"github.com/learnbuddy/learnbuddy/ent/quizsession"
	"github.com/learnbuddy/learnbuddy/ent/schema"
	"github.com/learnbuddy/learnbuddy/ent/useranswer"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[0].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
	questionFields := schema.Question{}.Fields()
	_ = questionFields
	// questionDescPosition is the schema descriptor for position field.
	questionDescPosition := questionFields[1].Descriptor()
	// question.PositionValidator is a validator for the "position" field. It is called by the builders before save.
	question.PositionValidator = questionDescPosition.Validators[0].(func(int) error)
	// questionDescExplanation is the schema descriptor for explanation field.
	questionDescExplanation := questionFields[6].Descriptor()
	// question.DefaultExplanation holds the default value on creation for the explanation field.
	question.DefaultExplanation = questionDescExplanation.Default.(string)
	quizsessionFields := schema.QuizSession{}.Fields()
	_ = quizsessionFields
	// quizsessionDescCreatedAt is the schema descriptor for created_at field.
	quizsessionDescCreatedAt := quizsessionFields[2].Descriptor()
	// quizsession.DefaultCreatedAt holds the default value on creation for the created_at field.
	quizsession.DefaultCreatedAt = quizsessionDescCreatedAt.Default.(func() time.Time)
	// quizsessionDescID is the schema descriptor for id field.
	quizsessionDescID := quizsessionFields[0].Descriptor()
	// quizsession.IDValidator is a validator for the "id" field. It is called by the builders before save.
	quizsession.IDValidator = quizsessionDescID.Validators[0].(func(string) error)
	useranswerFields := schema.UserAnswer{}.Fields()
	_ = useranswerFields
	// useranswerDescAnsweredAt is the schema descriptor for answered_at field.
	useranswerDescAnsweredAt := useranswerFields[5].Descriptor()
	// useranswer.DefaultAnsweredAt holds the default value on creation for the answered_at field.
	useranswer.DefaultAnsweredAt = useranswerDescAnsweredAt.Default.(func() time.Time)
}
