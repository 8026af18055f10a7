// Package notifications delivers run lifecycle pushes over ntfy.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aniharvest/internal/config"
	"aniharvest/internal/harvest"
)

const userAgent = "AniHarvest/0.1.0"

// Service defines the notification surface exposed to the harvest command.
type Service interface {
	NotifySweepStarted(ctx context.Context, firstID, lastID int) error
	NotifySweepCompleted(ctx context.Context, summary harvest.Summary) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifySweepStarted(ctx context.Context, firstID, lastID int) error {
	data := payload{
		title:   "AniHarvest - Sweep Started",
		message: fmt.Sprintf("Started sweeping identifiers %d-%d (%d total)", firstID, lastID, lastID-firstID+1),
		tags:    []string{"aniharvest", "sweep", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySweepCompleted(ctx context.Context, summary harvest.Summary) error {
	elapsed := summary.Elapsed.Round(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	elapsedText := elapsed.String()
	if elapsed == 0 {
		elapsedText = "0s"
	}

	var title string
	var message string
	if summary.Failed == 0 {
		title = "AniHarvest - Sweep Complete"
		message = fmt.Sprintf("Sweep complete: %d series harvested in %s", summary.Succeeded, elapsedText)
	} else {
		title = "AniHarvest - Sweep Complete (with errors)"
		message = fmt.Sprintf("Sweep complete: %d harvested, %d failed in %s", summary.Succeeded, summary.Failed, elapsedText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"aniharvest", "sweep", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "AniHarvest - Error",
		message:  builder.String(),
		tags:     []string{"aniharvest", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "AniHarvest - Test",
		message:  "Notification system test",
		tags:     []string{"aniharvest", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifySweepStarted(context.Context, int, int) error          { return nil }
func (noopService) NotifySweepCompleted(context.Context, harvest.Summary) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error            { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
