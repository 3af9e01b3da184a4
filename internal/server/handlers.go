package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/slack"
	"github.com/learnbuddy/learnbuddy/internal/store"
)

const defaultUserName = "Learner"

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) chat(c *fiber.Ctx) error {
	var req buddyapi.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No message provided")
	}

	resp, err := s.tutor.Chat(c.UserContext(), req)
	if err != nil {
		return backendError(err)
	}
	return c.JSON(resp)
}

func (s *Server) recommendations(c *fiber.Ctx) error {
	topics, err := s.tutor.Recommendations(c.UserContext())
	if err != nil {
		return backendError(err)
	}
	if topics == nil {
		topics = []buddyapi.Topic{}
	}
	return c.JSON(buddyapi.RecommendationsResponse{Topics: topics})
}

func (s *Server) report(c *fiber.Ctx) error {
	var req buddyapi.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserName == "" {
		req.UserName = defaultUserName
	}

	ctx := c.UserContext()
	var sessions []store.SessionSummary
	if req.SessionID != "" {
		sum, err := s.quizzes.Summary(ctx, req.SessionID)
		if err != nil {
			return err
		}
		if sum == nil {
			return c.Status(fiber.StatusNotFound).JSON(buddyapi.ReportResponse{
				Message: "Unknown session " + req.SessionID,
			})
		}
		sessions = append(sessions, *sum)
	} else {
		// Without a quiz session the report covers today.
		var err error
		if sessions, err = s.quizzes.Sessions(ctx, startOfDay(s.now())); err != nil {
			return err
		}
	}
	stats, err := s.quizzes.TopicStats(ctx)
	if err != nil {
		return err
	}

	report := slack.BuildReport(req.UserName, sessions, stats, s.now())
	if err := s.reporter.Send(ctx, report, req.Channel); err != nil {
		if errors.Is(err, slack.ErrNotConfigured) {
			return c.JSON(buddyapi.ReportResponse{Message: err.Error()})
		}
		s.logger.Warn("slack report failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(buddyapi.ReportResponse{Message: err.Error()})
	}

	msg := "Report sent to Slack"
	if req.Channel != "" {
		msg = fmt.Sprintf("Report sent to %s", req.Channel)
	}
	return c.JSON(buddyapi.ReportResponse{Success: true, Message: msg})
}

// backendError maps a tutor error to a fiber error with the same status.
func backendError(err error) error {
	var be *buddyapi.BackendError
	if errors.As(err, &be) && be.Status != 0 {
		return fiber.NewError(be.Status, be.Message)
	}
	return err
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
