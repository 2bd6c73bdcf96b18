package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"medicine_reminder/internal/domain/notify"
)

const sendgridMailEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridNotifier delivers notification messages as email via the SendGrid
// v3 Mail Send API.
type SendGridNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
	client    *http.Client
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    http.DefaultClient,
	}
}

func (n *SendGridNotifier) Send(ctx context.Context, msg notify.Message) error {
	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{
			To: []sgAddress{{Email: msg.To}},
		}},
		From:    sgAddress{Email: n.fromEmail, Name: n.fromName},
		Subject: msg.Subject,
		Content: []sgContent{{Type: "text/html", Value: msg.Body}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SendGrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendgridMailEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("SendGrid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// SendGrid v3 Mail Send API payload types.
type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
