package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type of the registration email.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON body of a TaskWelcome task.
type WelcomeEmailPayload struct {
	CustomerID string `json:"customer_id"`
	To         string `json:"to"`
	FirstName  string `json:"first_name"`
}

// NewWelcomeEmailTask builds the welcome email task for a registered customer.
// It is retried up to 3 times on the default queue with a 30s timeout.
func NewWelcomeEmailTask(customerID, to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		CustomerID: customerID,
		To:         to,
		FirstName:  firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
