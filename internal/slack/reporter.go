package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when neither a bot token nor a webhook URL
// is set.
var ErrNotConfigured = errors.New("slack credentials not configured: set SLACK_WEBHOOK_URL or SLACK_BOT_TOKEN")

// Options configures a Reporter.
type Options struct {
	WebhookURL     string
	BotToken       string
	DefaultChannel string

	// APIURL overrides the Web API base URL, e.g. "http://host/api/".
	APIURL     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Reporter delivers reports with the bot API when a token is set and
// falls back to the incoming webhook otherwise.
type Reporter struct {
	api        *slackapi.Client
	webhookURL string
	channel    string
	http       *http.Client
	logger     *zap.Logger
}

// NewReporter creates a Reporter.
func NewReporter(opts Options) *Reporter {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := &Reporter{
		webhookURL: opts.WebhookURL,
		channel:    opts.DefaultChannel,
		http:       opts.HTTPClient,
		logger:     opts.Logger,
	}
	if opts.BotToken != "" {
		apiOpts := []slackapi.Option{slackapi.OptionHTTPClient(opts.HTTPClient)}
		if opts.APIURL != "" {
			apiOpts = append(apiOpts, slackapi.OptionAPIURL(opts.APIURL))
		}
		r.api = slackapi.New(opts.BotToken, apiOpts...)
	}
	return r
}

// Configured reports whether the Reporter has credentials.
func (r *Reporter) Configured() bool {
	return r.api != nil || r.webhookURL != ""
}

// Send posts report. channel overrides the default channel for bot
// delivery and is ignored by webhooks, which are bound to one channel.
func (r *Reporter) Send(ctx context.Context, report Report, channel string) error {
	if !r.Configured() {
		return ErrNotConfigured
	}
	blocks := Blocks(report)

	if r.api != nil {
		if channel == "" {
			channel = r.channel
		}
		if _, _, err := r.api.PostMessageContext(ctx, channel,
			slackapi.MsgOptionText(reportTitle, false),
			slackapi.MsgOptionBlocks(blocks...),
		); err != nil {
			return fmt.Errorf("slack: chat.postMessage: %w", err)
		}
		r.logger.Info("slack report sent", zap.String("via", "bot"), zap.String("channel", channel))
		return nil
	}

	msg := &slackapi.WebhookMessage{
		Text:   reportTitle,
		Blocks: &slackapi.Blocks{BlockSet: blocks},
	}
	if err := slackapi.PostWebhookCustomHTTPContext(ctx, r.webhookURL, r.http, msg); err != nil {
		return fmt.Errorf("slack: webhook: %w", err)
	}
	r.logger.Info("slack report sent", zap.String("via", "webhook"))
	return nil
}
