package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/config"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// WelcomeSender delivers the registration email. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(to, firstName string) error
}

// InitHandlers builds the dependencies the task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.emails = email.NewClient(cfg, logger)
}

// SetWelcomeSender replaces the email sender used by the welcome task handler.
func (j *JobService) SetWelcomeSender(sender WelcomeSender) {
	j.emails = sender
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	if j.emails == nil {
		return fmt.Errorf("welcome email sender not initialized")
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("customer_id", p.CustomerID).
		Msg("Processing welcome email task")

	if err := j.emails.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("customer_id", p.CustomerID).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("customer_id", p.CustomerID).
		Msg("Successfully sent welcome email")

	return nil
}
