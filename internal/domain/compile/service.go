package compile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/domain/reports"
)

// Service is the roll-up compiler. Compilation is deliberately not
// idempotent: re-invoking for the same period creates a new artifact,
// preserving the provenance of earlier manual regenerations.
type Service struct {
	store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, Now: time.Now}
}

// CompileWeekly rolls one owner's daily reports for the ISO week
// containing anchor into a weekly compiled report.
func (s *Service) CompileWeekly(ctx context.Context, userID string, anchor time.Time) (CompiledReport, error) {
	start, end := reports.WeekRange(anchor)
	sources, err := s.store.DailySources(ctx, userID, start, end)
	if err != nil {
		return CompiledReport{}, err
	}
	if len(sources) == 0 {
		return CompiledReport{}, ErrNoSources
	}
	return s.store.CreateCompiled(ctx, buildWeekly(userID, start, end, sources))
}

// CompileMonthly rolls one owner's daily reports and fully contained
// weekly compilations for the month containing anchor. Weekly sources
// of any status qualify on this on-demand path.
func (s *Service) CompileMonthly(ctx context.Context, userID string, anchor time.Time) (CompiledReport, error) {
	start, end := reports.MonthRange(anchor)
	daily, err := s.store.DailySources(ctx, userID, start, end)
	if err != nil {
		return CompiledReport{}, err
	}
	weekly, err := s.store.WeeklyCompiledInRange(ctx, userID, start, end, "")
	if err != nil {
		return CompiledReport{}, err
	}
	if len(daily) == 0 && len(weekly) == 0 {
		return CompiledReport{}, ErrNoSources
	}
	return s.store.CreateCompiled(ctx, buildMonthly(userID, start, end, daily, weekly))
}

// CompileAnnual rolls one owner's monthly compilations for year,
// optionally restricted to a subset of months.
func (s *Service) CompileAnnual(ctx context.Context, userID string, year int, months []int) (CompiledReport, error) {
	monthly, err := s.store.MonthlyCompiledInYear(ctx, userID, year, months)
	if err != nil {
		return CompiledReport{}, err
	}
	if len(monthly) == 0 {
		return CompiledReport{}, ErrNoSources
	}

	start, end := reports.YearRange(year, time.UTC)
	includedIDs := make([]string, 0, len(monthly))
	entries := make([]CompiledEntry, 0, len(monthly))
	for _, m := range monthly {
		includedIDs = append(includedIDs, m.ID)
		entries = append(entries, CompiledEntry{Title: m.Title, Content: m.Content})
	}
	content, _ := json.Marshal(AnnualContent{Type: TypeAnnual, Year: year, MonthlyReports: entries})

	return s.store.CreateCompiled(ctx, CompiledReport{
		UserID:          userID,
		Type:            TypeAnnual,
		Title:           fmt.Sprintf("Annual Report - %d", year),
		Content:         content,
		DateRangeStart:  start,
		DateRangeEnd:    end,
		IncludedReports: includedIDs,
		Status:          reports.StatusDraft,
	})
}

type FanOutFailure struct {
	UserID string `json:"userId"`
	Err    string `json:"error"`
}

// FanOutResult accumulates per-owner outcomes of a population-wide
// compile; one owner's failure never aborts the rest.
type FanOutResult struct {
	Succeeded []string        `json:"succeeded"`
	Failed    []FanOutFailure `json:"failed"`
}

// CompileWeekForAll is the scheduled fan-out form of CompileWeekly:
// owners without qualifying reports are skipped, not failed.
func (s *Service) CompileWeekForAll(ctx context.Context, anchor time.Time) (FanOutResult, error) {
	start, end := reports.WeekRange(anchor)
	sources, err := s.store.DailySources(ctx, "", start, end)
	if err != nil {
		return FanOutResult{}, err
	}

	var result FanOutResult
	for _, userID := range groupOwners(sources) {
		owned := ownedSources(sources, userID)
		if _, err := s.store.CreateCompiled(ctx, buildWeekly(userID, start, end, owned)); err != nil {
			slog.Warn("weekly roll-up failed", "userId", userID, "err", err)
			result.Failed = append(result.Failed, FanOutFailure{UserID: userID, Err: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, userID)
	}
	return result, nil
}

// CompileMonthForAll is the scheduled fan-out form of CompileMonthly.
// Unlike the on-demand path it only consumes draft weekly
// compilations, so already-reviewed roll-ups are not re-aggregated.
func (s *Service) CompileMonthForAll(ctx context.Context, anchor time.Time) (FanOutResult, error) {
	start, end := reports.MonthRange(anchor)
	daily, err := s.store.DailySources(ctx, "", start, end)
	if err != nil {
		return FanOutResult{}, err
	}
	weekly, err := s.store.WeeklyCompiledInRange(ctx, "", start, end, reports.StatusDraft)
	if err != nil {
		return FanOutResult{}, err
	}

	owners := map[string]bool{}
	for _, src := range daily {
		owners[src.UserID] = true
	}
	for _, w := range weekly {
		owners[w.UserID] = true
	}
	ordered := make([]string, 0, len(owners))
	for userID := range owners {
		ordered = append(ordered, userID)
	}
	sort.Strings(ordered)

	var result FanOutResult
	for _, userID := range ordered {
		ownedDaily := ownedSources(daily, userID)
		var ownedWeekly []CompiledReport
		for _, w := range weekly {
			if w.UserID == userID {
				ownedWeekly = append(ownedWeekly, w)
			}
		}
		if _, err := s.store.CreateCompiled(ctx, buildMonthly(userID, start, end, ownedDaily, ownedWeekly)); err != nil {
			slog.Warn("monthly roll-up failed", "userId", userID, "err", err)
			result.Failed = append(result.Failed, FanOutFailure{UserID: userID, Err: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, userID)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, actor auth.UserContext, id string) (CompiledReport, error) {
	compiled, err := s.store.GetCompiled(ctx, id)
	if err != nil {
		return CompiledReport{}, err
	}
	if actor.Role == auth.RoleStaff && compiled.UserID != actor.UserID {
		return CompiledReport{}, ErrForbidden
	}
	return compiled, nil
}

func (s *Service) List(ctx context.Context, actor auth.UserContext, filters ListFilters) ([]CompiledReport, int, error) {
	switch actor.Role {
	case auth.RoleStaff:
		filters.UserID = actor.UserID
	case auth.RoleHOD:
		if filters.DepartmentID == "" {
			departmentID, err := s.store.UserDepartmentID(ctx, actor.UserID)
			if err != nil {
				slog.Warn("department lookup failed", "userId", actor.UserID, "err", err)
			}
			filters.DepartmentID = departmentID
		}
	}
	return s.store.ListCompiled(ctx, filters)
}

func buildWeekly(userID string, start, end time.Time, sources []SourceReport) CompiledReport {
	week := reports.ISOWeekNumber(start)
	year, _ := start.ISOWeek()

	entries := make([]DailyEntry, 0, len(sources))
	includedIDs := make([]string, 0, len(sources))
	for _, src := range sources {
		entries = append(entries, DailyEntry{Date: src.Date.Format("2006-01-02"), Content: src.Content})
		includedIDs = append(includedIDs, src.ID)
	}
	content, _ := json.Marshal(WeeklyContent{Type: TypeWeekly, WeekNumber: week, Year: year, Reports: entries})

	return CompiledReport{
		UserID:          userID,
		Type:            TypeWeekly,
		Title:           fmt.Sprintf("Weekly Report - Week %d, %d", week, year),
		Content:         content,
		DateRangeStart:  start,
		DateRangeEnd:    end,
		IncludedReports: includedIDs,
		Status:          reports.StatusDraft,
	}
}

func buildMonthly(userID string, start, end time.Time, daily []SourceReport, weekly []CompiledReport) CompiledReport {
	dailyEntries := make([]DailyEntry, 0, len(daily))
	includedIDs := make([]string, 0, len(daily)+len(weekly))
	for _, src := range daily {
		dailyEntries = append(dailyEntries, DailyEntry{Date: src.Date.Format("2006-01-02"), Content: src.Content})
		includedIDs = append(includedIDs, src.ID)
	}
	weeklyEntries := make([]CompiledEntry, 0, len(weekly))
	for _, w := range weekly {
		weeklyEntries = append(weeklyEntries, CompiledEntry{Title: w.Title, Content: w.Content})
		includedIDs = append(includedIDs, w.ID)
	}
	content, _ := json.Marshal(MonthlyContent{
		Type:          TypeMonthly,
		Month:         int(start.Month()),
		Year:          start.Year(),
		DailyReports:  dailyEntries,
		WeeklyReports: weeklyEntries,
	})

	return CompiledReport{
		UserID:          userID,
		Type:            TypeMonthly,
		Title:           fmt.Sprintf("Monthly Report - %s %d", start.Month(), start.Year()),
		Content:         content,
		DateRangeStart:  start,
		DateRangeEnd:    end,
		IncludedReports: includedIDs,
		Status:          reports.StatusDraft,
	}
}

func groupOwners(sources []SourceReport) []string {
	seen := map[string]bool{}
	var out []string
	for _, src := range sources {
		if !seen[src.UserID] {
			seen[src.UserID] = true
			out = append(out, src.UserID)
		}
	}
	sort.Strings(out)
	return out
}

func ownedSources(sources []SourceReport, userID string) []SourceReport {
	var out []SourceReport
	for _, src := range sources {
		if src.UserID == userID {
			out = append(out, src)
		}
	}
	return out
}
