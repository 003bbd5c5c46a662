package background

import (
	"context"
	"log"
	"sync"
	"time"

	"slotbook/internal/repositories"
	"slotbook/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobScheduler runs recurring background jobs
type JobScheduler struct {
	scheduler   gocron.Scheduler
	reminderSvc services.ReminderService
	tenantRepo  repositories.TenantRepository
	jobs        map[string]gocron.Job
	mu          sync.RWMutex
}

func NewJobScheduler(reminderSvc services.ReminderService, tenantRepo repositories.TenantRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		reminderSvc: reminderSvc,
		tenantRepo:  tenantRepo,
		jobs:        make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Next-day reminder emails, once a day at 18:00 UTC
	reminderJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(18, 0, 0))),
		gocron.NewTask(js.sendDailyReminders, context.Background()),
		gocron.WithName("daily-appointment-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create reminder job: %v", err)
	} else {
		js.jobs["daily-reminders"] = reminderJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// sendDailyReminders fans tomorrow's reminder emails out across all active
// tenants.
func (js *JobScheduler) sendDailyReminders(ctx context.Context) error {
	log.Printf("Starting daily reminder run")

	tenants, err := js.tenantRepo.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to list tenants for reminders: %v", err)
		return err
	}

	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, tenant := range tenants {
		wg.Add(1)
		go func(tenantID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			report, err := js.reminderSvc.SendDailyReminders(ctx, tenantID, "")
			if err != nil {
				log.Printf("Reminder run failed for tenant %s: %v", tenantID.String(), err)
				return
			}
			if report.Appointments > 0 {
				log.Printf("Tenant %s: %d appointments, %d emails sent, %d failed",
					tenantID.String(), report.Appointments, report.EmailsSent, report.EmailsFailed)
			}
		}(tenant.ID)
	}

	wg.Wait()
	log.Printf("Completed daily reminder run for %d tenants", len(tenants))
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       names,
	}
}
