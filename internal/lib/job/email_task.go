package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskWelcome is the task type for sending a welcome email.
const TaskWelcome = "email:welcome"

// WelcomeEmailPayload is the serialized payload for TaskWelcome.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// NewWelcomeEmailTask builds the welcome email task. Up to 3 retries,
// default queue, 30 second timeout.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}
