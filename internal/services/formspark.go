package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// FormSparkSubmitter posts verification submissions to a FormSpark form as
// JSON. Success is HTTP 200 or 201; anything else is a submission failure
// and is never retried.
type FormSparkSubmitter struct {
	URL        string
	HTTPClient *http.Client
}

type formSparkPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	Ecom        string `json:"ecom,omitempty"`
	DiscordUser string `json:"discord_user"`
	Timestamp   string `json:"timestamp"`
}

func NewFormSparkSubmitter(url string) *FormSparkSubmitter {
	return &FormSparkSubmitter{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *FormSparkSubmitter) Submit(ctx context.Context, sub models.VerificationSubmission) error {
	body, err := json.Marshal(formSparkPayload{
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Country:     sub.Country,
		Ecom:        sub.IncomeBand,
		DiscordUser: fmt.Sprintf("%s (%s)", sub.DiscordUserTag, sub.DiscordUserID),
		Timestamp:   sub.SubmittedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("formspark: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("formspark: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("formspark: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("formspark: http %d", resp.StatusCode)
	}
	return nil
}
