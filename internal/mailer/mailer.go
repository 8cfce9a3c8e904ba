// Package mailer delivers the password reset mail.
//
// The flows only see the Mailer interface; the Postmark client is the
// production implementation and LogMailer stands in during local
// development when no Postmark credentials are configured.
package mailer

import (
	"context"
	"log/slog"

	"github.com/yaronsh/mediahub/internal/model"
)

// Mailer is the outbound-mail collaborator the password reset flow
// hands a user record to. Failures are opaque to the flow — it reports
// the same generic outcome whether the user was unknown or delivery
// failed, so responses cannot be used to probe for accounts.
type Mailer interface {
	SendPasswordReset(ctx context.Context, user *model.User) error
}

// LogMailer logs the reset link instead of sending it. Local
// development only.
type LogMailer struct {
	ResetURL string
	Logger   *slog.Logger
}

func (m *LogMailer) SendPasswordReset(_ context.Context, user *model.User) error {
	m.Logger.Info("password reset requested (mail delivery disabled)",
		slog.String("email", user.Email),
		slog.String("link", resetLink(m.ResetURL, user.ID)),
	)
	return nil
}

func resetLink(base, userID string) string {
	return base + "?id=" + userID
}
