package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the background follow-up scan.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	followUpSvc *FollowUpReminderService
}

func NewJobScheduler(followUpSvc *FollowUpReminderService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		followUpSvc: followUpSvc,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.runFollowUpScan, context.Background()),
		gocron.WithName("follow-up-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) runFollowUpScan(ctx context.Context) {
	alerts, err := js.followUpSvc.CheckDueFollowUps(ctx, time.Now())
	if err != nil {
		log.Printf("Follow-up scan failed: %v", err)
		return
	}
	js.followUpSvc.LogDueFollowUps(alerts)
}
