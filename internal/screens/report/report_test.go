package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/router"
)

type fakeReporter struct {
	got  []buddyapi.ReportRequest
	resp *buddyapi.ReportResponse
	err  error
}

func (f *fakeReporter) Report(_ context.Context, req buddyapi.ReportRequest) (*buddyapi.ReportResponse, error) {
	f.got = append(f.got, req)
	return f.resp, f.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// run executes cmd and feeds any doneMsg it produces back to the screen.
func run(t *testing.T, s *Screen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok, "expected a batch, got %T", msg)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(doneMsg); ok {
			s.Update(done)
		}
	}
}

func TestSendUsesFormValues(t *testing.T) {
	rep := &fakeReporter{resp: &buddyapi.ReportResponse{Success: true, Message: "Report sent to #study"}}
	s := New(context.Background(), rep, "sess-1", Defaults{UserName: "Ada"})

	s.Update(specialKey(tea.KeyTab))
	for _, r := range "study" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.True(t, s.sending)
	run(t, s, cmd)

	require.Len(t, rep.got, 1)
	assert.Equal(t, buddyapi.ReportRequest{SessionID: "sess-1", UserName: "Ada", Channel: "study"}, rep.got[0])
	assert.False(t, s.sending)
	assert.Contains(t, s.View(80, 24), "Report sent to #study")
}

func TestEmptyNameDefaultsToLearner(t *testing.T) {
	rep := &fakeReporter{resp: &buddyapi.ReportResponse{Success: true}}
	s := New(context.Background(), rep, "", Defaults{})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)

	require.Len(t, rep.got, 1)
	assert.Equal(t, "Learner", rep.got[0].UserName)
	assert.Contains(t, s.View(80, 24), "Report sent.")
}

func TestUnsuccessfulReportShown(t *testing.T) {
	rep := &fakeReporter{resp: &buddyapi.ReportResponse{Success: false, Message: "Slack is not configured"}}
	s := New(context.Background(), rep, "", Defaults{UserName: "Ada"})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)

	assert.True(t, s.failed)
	assert.Contains(t, s.View(80, 24), "Slack is not configured")
}

func TestTransportErrorShown(t *testing.T) {
	rep := &fakeReporter{err: errors.New("connection refused")}
	s := New(context.Background(), rep, "", Defaults{UserName: "Ada"})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)

	assert.True(t, s.failed)
	assert.Contains(t, s.View(80, 24), "connection refused")
}

func TestNoResendAfterResult(t *testing.T) {
	rep := &fakeReporter{resp: &buddyapi.ReportResponse{Success: true}}
	s := New(context.Background(), rep, "", Defaults{UserName: "Ada"})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)
	_, cmd = s.Update(specialKey(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Len(t, rep.got, 1)
}

func TestEscPops(t *testing.T) {
	s := New(context.Background(), &fakeReporter{}, "", Defaults{})
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestScopeLine(t *testing.T) {
	s := New(context.Background(), &fakeReporter{}, "abcdefghijkl", Defaults{})
	assert.Contains(t, s.View(80, 24), "abcdefgh...")

	s = New(context.Background(), &fakeReporter{}, "", Defaults{})
	assert.True(t, strings.Contains(s.View(80, 24), "practiced today"))
}
