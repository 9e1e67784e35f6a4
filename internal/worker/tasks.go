package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeDailySummary = "daily-summary"
	TypeBonusArchive = "bonus-archive"
)

// DailySummaryPayload names the day (YYYY-MM-DD) to fold into rollup rows.
type DailySummaryPayload struct {
	Day string `json:"day"`
}

func NewDailySummaryTask(day string) (*asynq.Task, error) {
	data, err := json.Marshal(DailySummaryPayload{Day: day})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDailySummary, data), nil
}

func NewBonusArchiveTask() *asynq.Task {
	return asynq.NewTask(TypeBonusArchive, nil)
}
