package job

import (
	"time"

	"github.com/hibiken/asynq"
)

// TaskMaintenancePurge hard-deletes rows that were soft-deleted longer
// than the retention window ago. Enqueued nightly by the scheduler.
const TaskMaintenancePurge = "maintenance:purge"

// purgeRetention is how long soft-deleted rows are kept before the
// nightly purge removes them for good.
const purgeRetention = 30 * 24 * time.Hour

func NewMaintenancePurgeTask() (*asynq.Task, error) {
	return asynq.NewTask(
		TaskMaintenancePurge,
		nil,
		asynq.MaxRetry(2),
		asynq.Queue(QueueLow),
		asynq.Timeout(5*time.Minute),
	), nil
}
