package jobs

import (
	"context"
	"log/slog"
	"time"
)

type scheduledJob struct {
	name string
	next func(time.Time) time.Time
	run  func(context.Context) (BatchResult, error)
}

// Start launches one goroutine per job, each sleeping until its next
// slot. Stop waits for in-flight runs to finish.
func (s *Service) Start(ctx context.Context) {
	schedule := []scheduledJob{
		{JobLockOverdue, nextMidnight, s.RunLockOverdue},
		{JobDailyReminder, s.nextReminder, s.RunDailyReminder},
		{JobWeeklyRollup, nextSundayEvening, s.RunWeeklyRollup},
		{JobMonthlyRollup, nextFirstOfMonth, s.RunMonthlyRollup},
	}

	for _, job := range schedule {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
}

func (s *Service) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Service) loop(ctx context.Context, job scheduledJob) {
	defer s.wg.Done()
	for {
		now := s.Clock.Now()
		timer := time.NewTimer(job.next(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			result, err := job.run(ctx)
			if err != nil {
				slog.Warn("scheduled job failed", "job", job.name, "err", err)
				continue
			}
			slog.Info("scheduled job completed", "job", job.name,
				"succeeded", result.Succeeded, "failed", result.Failed)
		}
	}
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

func (s *Service) nextReminder(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.ReminderHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// nextSundayEvening lands just before midnight so the roll-up still
// sees the closing week.
func nextSundayEvening(now time.Time) time.Time {
	days := (7 - int(now.Weekday())) % 7
	next := time.Date(now.Year(), now.Month(), now.Day()+days, 23, 55, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

func nextFirstOfMonth(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), 1, 0, 30, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month()+1, 1, 0, 30, 0, 0, now.Location())
	}
	return next
}
