package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"reportdesk/internal/domain/compile"
	"reportdesk/internal/domain/reports"
)

const (
	JobLockOverdue   = "lock_overdue"
	JobDailyReminder = "daily_reminder"
	JobWeeklyRollup  = "weekly_rollup"
	JobMonthlyRollup = "monthly_rollup"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Sweeper is the slice of the report store the overdue sweep needs.
type Sweeper interface {
	ListOverdue(ctx context.Context, now time.Time) ([]reports.Report, error)
	AutoLock(ctx context.Context, id string, at time.Time) error
}

// Reminder notifies staff users who have not filed today's report.
type Reminder interface {
	RemindMissingDaily(ctx context.Context, dayStart, dayEnd time.Time) ([]string, error)
}

// Compiler runs the population-wide roll-ups.
type Compiler interface {
	CompileWeekForAll(ctx context.Context, anchor time.Time) (compile.FanOutResult, error)
	CompileMonthForAll(ctx context.Context, anchor time.Time) (compile.FanOutResult, error)
}

type BatchResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Service owns the scheduled jobs. DB may be nil in tests, which
// skips the job_runs audit rows.
type Service struct {
	DB           *pgxpool.Pool
	Sweeper      Sweeper
	Reminder     Reminder
	Compiler     Compiler
	Clock        Clock
	ReminderHour int

	running map[string]*sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
}

func New(db *pgxpool.Pool, sweeper Sweeper, reminder Reminder, compiler Compiler, reminderHour int) *Service {
	return &Service{
		DB:           db,
		Sweeper:      sweeper,
		Reminder:     reminder,
		Compiler:     compiler,
		Clock:        systemClock{},
		ReminderHour: reminderHour,
		running: map[string]*sync.Mutex{
			JobLockOverdue:   {},
			JobDailyReminder: {},
			JobWeeklyRollup:  {},
			JobMonthlyRollup: {},
		},
		stop: make(chan struct{}),
	}
}

// RunLockOverdue locks every unlocked report whose deadline has
// passed. The sweep is silent: owners get no notification.
func (s *Service) RunLockOverdue(ctx context.Context) (BatchResult, error) {
	return s.runJob(ctx, JobLockOverdue, func(ctx context.Context) (BatchResult, error) {
		now := s.Clock.Now()
		overdue, err := s.Sweeper.ListOverdue(ctx, now)
		if err != nil {
			return BatchResult{}, err
		}

		var result BatchResult
		for _, report := range overdue {
			if err := s.Sweeper.AutoLock(ctx, report.ID, now); err != nil {
				slog.Warn("auto-lock failed", "reportId", report.ID, "err", err)
				result.Failed++
				continue
			}
			result.Succeeded++
		}
		return result, nil
	})
}

func (s *Service) RunDailyReminder(ctx context.Context) (BatchResult, error) {
	return s.runJob(ctx, JobDailyReminder, func(ctx context.Context) (BatchResult, error) {
		dayStart, dayEnd := reports.DayBounds(s.Clock.Now())
		notified, err := s.Reminder.RemindMissingDaily(ctx, dayStart, dayEnd)
		if err != nil {
			return BatchResult{}, err
		}
		return BatchResult{Succeeded: len(notified)}, nil
	})
}

func (s *Service) RunWeeklyRollup(ctx context.Context) (BatchResult, error) {
	return s.runJob(ctx, JobWeeklyRollup, func(ctx context.Context) (BatchResult, error) {
		result, err := s.Compiler.CompileWeekForAll(ctx, s.Clock.Now())
		if err != nil {
			return BatchResult{}, err
		}
		return BatchResult{Succeeded: len(result.Succeeded), Failed: len(result.Failed)}, nil
	})
}

// RunMonthlyRollup compiles the month that just ended, so the anchor
// is one day behind the clock.
func (s *Service) RunMonthlyRollup(ctx context.Context) (BatchResult, error) {
	return s.runJob(ctx, JobMonthlyRollup, func(ctx context.Context) (BatchResult, error) {
		anchor := s.Clock.Now().AddDate(0, 0, -1)
		result, err := s.Compiler.CompileMonthForAll(ctx, anchor)
		if err != nil {
			return BatchResult{}, err
		}
		return BatchResult{Succeeded: len(result.Succeeded), Failed: len(result.Failed)}, nil
	})
}

// runJob serialises each job behind its own mutex and records a
// job_runs audit row. A job still running when its next slot arrives
// is skipped, never stacked.
func (s *Service) runJob(ctx context.Context, name string, run func(context.Context) (BatchResult, error)) (BatchResult, error) {
	mu := s.running[name]
	if !mu.TryLock() {
		slog.Warn("job already running, skipped", "job", name)
		return BatchResult{}, nil
	}
	defer mu.Unlock()

	runID := s.auditStart(ctx, name)
	result, err := run(ctx)
	s.auditFinish(ctx, runID, result, err)
	return result, err
}

func (s *Service) auditStart(ctx context.Context, name string) string {
	if s.DB == nil {
		return ""
	}
	var runID string
	err := s.DB.QueryRow(ctx, `INSERT INTO job_runs (job_type, status) VALUES ($1, 'running') RETURNING id`, name).Scan(&runID)
	if err != nil {
		slog.Warn("job run insert failed", "job", name, "err", err)
	}
	return runID
}

func (s *Service) auditFinish(ctx context.Context, runID string, result BatchResult, runErr error) {
	if s.DB == nil || runID == "" {
		return
	}
	status := "completed"
	if runErr != nil {
		status = "failed"
	}
	details, err := json.Marshal(result)
	if err != nil {
		details = []byte("{}")
	}
	_, err = s.DB.Exec(ctx, `UPDATE job_runs SET status = $1, details_json = $2, completed_at = now() WHERE id = $3`,
		status, details, runID)
	if err != nil {
		slog.Warn("job run update failed", "err", err)
	}
}
