package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/yaronsh/mediahub/internal/model"
)

// PostmarkMailer sends the password reset mail through Postmark's
// transactional API.
type PostmarkMailer struct {
	client   *postmark.Client
	sender   string
	resetURL string
}

// NewPostmarkMailer creates a Postmark-backed mailer. Both tokens and
// the sender address are required — missing configuration fails here,
// at startup, rather than on the first reset request.
func NewPostmarkMailer(serverToken, accountToken, sender, resetURL string) (*PostmarkMailer, error) {
	if serverToken == "" || accountToken == "" {
		return nil, errors.New("mailer: postmark tokens are required")
	}
	if sender == "" {
		return nil, errors.New("mailer: sender address is required")
	}

	return &PostmarkMailer{
		client:   postmark.NewClient(serverToken, accountToken),
		sender:   sender,
		resetURL: resetURL,
	}, nil
}

// SendPasswordReset mails the reset link to the user's address.
func (m *PostmarkMailer) SendPasswordReset(ctx context.Context, user *model.User) error {
	link := resetLink(m.resetURL, user.ID)

	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.sender,
		To:       user.Email,
		Subject:  "Reset your mediahub password",
		Tag:      "password-reset",
		HTMLBody: resetBodyHTML(user.FullName, link),
		TextBody: resetBodyText(user.FullName, link),
	})
	if err != nil {
		return fmt.Errorf("mailer: sending reset mail: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("mailer: postmark error %d: %s", resp.ErrorCode, resp.Message)
	}

	return nil
}

func resetBodyHTML(name, link string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can ignore this mail.</p>`,
		name, link,
	)
}

func resetBodyText(name, link string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Open the link below to choose a new one:\n\n%s\n\nIf you did not request this, you can ignore this mail.\n",
		name, link,
	)
}
