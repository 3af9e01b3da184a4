// Package server exposes the tutor over the chat service HTTP contract.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/slack"
	"github.com/learnbuddy/learnbuddy/internal/store"
)

// Tutor answers chat messages and ranks topics.
type Tutor interface {
	Chat(ctx context.Context, req buddyapi.ChatRequest) (*buddyapi.ChatResponse, error)
	Recommendations(ctx context.Context) ([]buddyapi.Topic, error)
}

// Reporter delivers session reports.
type Reporter interface {
	Send(ctx context.Context, report slack.Report, channel string) error
}

// Server is the HTTP front end of the tutor.
type Server struct {
	app      *fiber.App
	tutor    Tutor
	quizzes  store.QuizRepo
	reporter Reporter
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Server and registers its routes.
func New(tutor Tutor, quizzes store.QuizRepo, reporter Reporter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		tutor:    tutor,
		quizzes:  quizzes,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}

	app := fiber.New(fiber.Config{
		AppName:               "learnbuddy",
		BodyLimit:             1 << 20,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	app.Use(recover.New())
	// Browser clients may be served from another origin.
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(s.logRequests)

	s.app = app
	s.registerRoutes(app)
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) registerRoutes(r fiber.Router) {
	r.Get("/health", s.health)
	r.Post("/chat", s.chat)
	r.Get("/recommendations", s.recommendations)
	r.Post("/report", s.report)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("tutor server listening", zap.String("addr", ln.Addr().String()))
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("tutor server shutting down")
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}
	s.logger.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)))
	return err
}

// handleError renders errors that escape a handler in the {"error": ...}
// shape every endpoint uses.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
