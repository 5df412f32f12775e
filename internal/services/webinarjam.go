package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// WebinarJamSubmitter registers verification submissions against the
// WebinarJam registration API (form-url-encoded). Registration counts as
// successful only on HTTP 200 with a live or replay room URL in the body —
// a 200 without either means the registrant was not actually created.
type WebinarJamSubmitter struct {
	URL        string
	APIKey     string
	WebinarID  string
	Schedule   string
	HTTPClient *http.Client
}

type webinarJamResponse struct {
	Status string `json:"status"`
	User   struct {
		LiveRoomURL   string `json:"live_room_url"`
		ReplayRoomURL string `json:"replay_room_url"`
	} `json:"user"`
}

func NewWebinarJamSubmitter(apiURL, apiKey, webinarID, schedule string) *WebinarJamSubmitter {
	return &WebinarJamSubmitter{
		URL:       apiURL,
		APIKey:    apiKey,
		WebinarID: webinarID,
		Schedule:  schedule,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *WebinarJamSubmitter) Submit(ctx context.Context, sub models.VerificationSubmission) error {
	first, last := splitName(sub.Name)

	form := url.Values{}
	form.Set("api_key", s.APIKey)
	form.Set("webinar_id", s.WebinarID)
	form.Set("schedule", s.Schedule)
	form.Set("first_name", first)
	form.Set("last_name", last)
	form.Set("email", sub.Email)
	form.Set("phone", sub.Phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("webinarjam: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("webinarjam: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webinarjam: http %d", resp.StatusCode)
	}

	var out webinarJamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("webinarjam: decode: %w", err)
	}
	if out.User.LiveRoomURL == "" && out.User.ReplayRoomURL == "" {
		return fmt.Errorf("webinarjam: registration returned no room url (status=%q)", out.Status)
	}
	return nil
}

// splitName splits a full name into WebinarJam's first/last fields. A
// single-word name goes into first_name with "-" as last_name, which the
// API accepts.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "-", "-"
	case 1:
		return parts[0], "-"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
