package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrDelivery = errors.New("notification delivery failed")

// How long a single webhook delivery may take. Deliveries run on the
// orchestrator goroutine, so this also bounds the stall a dead webhook
// can add between stages.
const deliveryTimeout = 10 * time.Second

// Delivers orchestration events to a Slack incoming webhook.
type Slack struct {
	webhookURL string
	client     *http.Client
}

// Creates a Slack notifier posting to the given incoming webhook URL.
func NewSlack(webhookURL string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: deliveryTimeout,
		},
	}
}

func (s *Slack) RunStarted(buildType, architecture string) error {
	return s.post(fmt.Sprintf("🚀 Nxtscape build started (%s, %s)", buildType, architecture))
}

func (s *Slack) StepCompleted(description string) error {
	return s.post("✅ Completed " + description)
}

func (s *Slack) RunSucceeded(minutes, seconds int) error {
	return s.post(fmt.Sprintf("🎉 Nxtscape build completed in %dm %ds", minutes, seconds))
}

func (s *Slack) RunFailed(cause string) error {
	return s.post("❌ Nxtscape build failed: " + cause)
}

func (s *Slack) RunInterrupted() error {
	return s.post("⚠️ Nxtscape build interrupted")
}

// Posts a message to the webhook.
//
// Deliveries run under their own timeout-bound context, never the run's
// signal context. An interrupt arriving mid-delivery therefore cannot turn
// into a delivery error; it is observed by the orchestration loop at the
// next stage boundary.
func (s *Slack) post(text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%w: webhook returned %d: %s", ErrDelivery, resp.StatusCode, msg)
	}

	return nil
}
