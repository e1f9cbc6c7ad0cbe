// Package jobs hosts the asynq task handlers and worker bootstrap.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the only queue the worker consumes.
	QueueDefault = "default"

	// TaskRefDataWarmup pre-populates the Redis reference-lookup cache.
	TaskRefDataWarmup = "refdata:cache_warmup"
)

// RefDataWarmupPayload narrows the warmup to specific banks; empty means
// all registered banks.
type RefDataWarmupPayload struct {
	BankIDs []string `json:"bank_ids,omitempty"`
}

// NewRefDataWarmupTask builds the warmup task.
func NewRefDataWarmupTask(payload RefDataWarmupPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRefDataWarmup, raw), nil
}
