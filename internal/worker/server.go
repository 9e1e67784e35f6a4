package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"bingo-admin-service/internal/services"
	"bingo-admin-service/pkg/common"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Summary *services.SummaryService
	Archive *services.ArchiveService
}

func NewWorker(summary *services.SummaryService, archive *services.ArchiveService) *Worker {
	return &Worker{
		Summary: summary,
		Archive: archive,
	}
}

func (w *Worker) HandleDailySummary(ctx context.Context, t *asynq.Task) error {
	var p DailySummaryPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	day, err := common.ParseDay(p.Day)
	if err != nil {
		return fmt.Errorf("bad day %q: %v: %w", p.Day, err, asynq.SkipRetry)
	}
	count, err := w.Summary.SnapshotDay(day)
	if err != nil {
		return err
	}
	log.Printf("Daily summary for %s refreshed %d rows", p.Day, count)
	return nil
}

func (w *Worker) HandleBonusArchive(ctx context.Context, t *asynq.Task) error {
	moved, err := w.Archive.ArchiveBonusLedger()
	if err != nil {
		return err
	}
	log.Printf("Bonus archive task moved %d rows", moved)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, summary *services.SummaryService, archive *services.ArchiveService) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(summary, archive)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeDailySummary, worker.HandleDailySummary)
	mux.HandleFunc(TypeBonusArchive, worker.HandleBonusArchive)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
