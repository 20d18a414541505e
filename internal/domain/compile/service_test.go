package compile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/domain/reports"
)

type fakeStore struct {
	daily       []SourceReport
	compiled    []CompiledReport
	departments map[string]string

	createErrFor map[string]error
	nextID       int
}

func (f *fakeStore) DailySources(_ context.Context, userID string, start, end time.Time) ([]SourceReport, error) {
	var out []SourceReport
	for _, src := range f.daily {
		if userID != "" && src.UserID != userID {
			continue
		}
		if src.Date.Before(start) || src.Date.After(end) {
			continue
		}
		out = append(out, src)
	}
	return out, nil
}

func (f *fakeStore) WeeklyCompiledInRange(_ context.Context, userID string, start, end time.Time, statusFilter string) ([]CompiledReport, error) {
	var out []CompiledReport
	for _, c := range f.compiled {
		if c.Type != TypeWeekly {
			continue
		}
		if userID != "" && c.UserID != userID {
			continue
		}
		if statusFilter != "" && c.Status != statusFilter {
			continue
		}
		if c.DateRangeStart.Before(start) || c.DateRangeEnd.After(end) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) MonthlyCompiledInYear(_ context.Context, userID string, year int, months []int) ([]CompiledReport, error) {
	var out []CompiledReport
	for _, c := range f.compiled {
		if c.Type != TypeMonthly || c.DateRangeStart.Year() != year {
			continue
		}
		if userID != "" && c.UserID != userID {
			continue
		}
		if len(months) > 0 {
			found := false
			for _, m := range months {
				if int(c.DateRangeStart.Month()) == m {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) CreateCompiled(_ context.Context, c CompiledReport) (CompiledReport, error) {
	if err := f.createErrFor[c.UserID]; err != nil {
		return CompiledReport{}, err
	}
	f.nextID++
	c.ID = fmt.Sprintf("compiled-%d", f.nextID)
	f.compiled = append(f.compiled, c)
	return c, nil
}

func (f *fakeStore) GetCompiled(_ context.Context, id string) (CompiledReport, error) {
	for _, c := range f.compiled {
		if c.ID == id {
			return c, nil
		}
	}
	return CompiledReport{}, ErrNotFound
}

func (f *fakeStore) ListCompiled(_ context.Context, filters ListFilters) ([]CompiledReport, int, error) {
	var out []CompiledReport
	for _, c := range f.compiled {
		if filters.UserID != "" && c.UserID != filters.UserID {
			continue
		}
		if filters.Type != "" && c.Type != filters.Type {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeStore) UserDepartmentID(_ context.Context, userID string) (string, error) {
	return f.departments[userID], nil
}

func day(dateStr string) time.Time {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

func dailySource(id, userID, dateStr, text string) SourceReport {
	content, _ := json.Marshal(map[string]string{"text": text})
	return SourceReport{ID: id, UserID: userID, Date: day(dateStr), Content: content}
}

func TestCompileWeeklyOrdersSourcesByDate(t *testing.T) {
	store := &fakeStore{daily: []SourceReport{
		dailySource("r1", "u1", "2024-03-04", "monday"),
		dailySource("r2", "u1", "2024-03-06", "wednesday"),
		dailySource("r3", "u1", "2024-03-08", "friday"),
		dailySource("r4", "u1", "2024-03-10", "sunday"),
		dailySource("other", "u2", "2024-03-05", "someone else"),
		dailySource("outside", "u1", "2024-03-11", "next week"),
	}}
	svc := NewService(store)

	compiled, err := svc.CompileWeekly(context.Background(), "u1", day("2024-03-06"))
	require.NoError(t, err)

	assert.Equal(t, TypeWeekly, compiled.Type)
	assert.Equal(t, "Weekly Report - Week 10, 2024", compiled.Title)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, compiled.IncludedReports)
	assert.Equal(t, reports.StatusDraft, compiled.Status)

	var content WeeklyContent
	require.NoError(t, json.Unmarshal(compiled.Content, &content))
	assert.Equal(t, 10, content.WeekNumber)
	assert.Equal(t, 2024, content.Year)
	require.Len(t, content.Reports, 4)
	assert.Equal(t, "2024-03-04", content.Reports[0].Date)
	assert.Equal(t, "2024-03-10", content.Reports[3].Date)
}

func TestCompileWeeklyEmptyWeek(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.CompileWeekly(context.Background(), "u1", day("2024-03-06"))
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestCompileWeeklyNotIdempotent(t *testing.T) {
	store := &fakeStore{daily: []SourceReport{dailySource("r1", "u1", "2024-03-04", "monday")}}
	svc := NewService(store)

	first, err := svc.CompileWeekly(context.Background(), "u1", day("2024-03-06"))
	require.NoError(t, err)
	second, err := svc.CompileWeekly(context.Background(), "u1", day("2024-03-06"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.IncludedReports, second.IncludedReports)
}

func TestCompileMonthlyMergesDailyAndWeekly(t *testing.T) {
	weeklyContent, _ := json.Marshal(WeeklyContent{Type: TypeWeekly, WeekNumber: 10, Year: 2024})
	store := &fakeStore{
		daily: []SourceReport{
			dailySource("d1", "u1", "2024-03-15", "mid month"),
			dailySource("d2", "u1", "2024-03-20", "later"),
		},
		compiled: []CompiledReport{{
			ID:             "w1",
			UserID:         "u1",
			Type:           TypeWeekly,
			Title:          "Weekly Report - Week 10, 2024",
			Content:        weeklyContent,
			DateRangeStart: day("2024-03-04"),
			DateRangeEnd:   day("2024-03-10").Add(24*time.Hour - time.Millisecond),
			Status:         reports.StatusReviewed,
		}},
	}
	svc := NewService(store)

	compiled, err := svc.CompileMonthly(context.Background(), "u1", day("2024-03-01"))
	require.NoError(t, err)

	assert.Equal(t, "Monthly Report - March 2024", compiled.Title)
	assert.Equal(t, []string{"d1", "d2", "w1"}, compiled.IncludedReports)

	var content MonthlyContent
	require.NoError(t, json.Unmarshal(compiled.Content, &content))
	assert.Equal(t, 3, content.Month)
	assert.Len(t, content.DailyReports, 2)
	require.Len(t, content.WeeklyReports, 1)
	assert.Equal(t, "Weekly Report - Week 10, 2024", content.WeeklyReports[0].Title)
}

func TestCompileMonthlyBothSourcesEmpty(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.CompileMonthly(context.Background(), "u1", day("2024-03-01"))
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestCompileMonthlyWeeklyOnly(t *testing.T) {
	store := &fakeStore{compiled: []CompiledReport{{
		ID:             "w1",
		UserID:         "u1",
		Type:           TypeWeekly,
		Title:          "Weekly Report - Week 10, 2024",
		Content:        json.RawMessage(`{}`),
		DateRangeStart: day("2024-03-04"),
		DateRangeEnd:   day("2024-03-10"),
		Status:         reports.StatusDraft,
	}}}
	svc := NewService(store)

	compiled, err := svc.CompileMonthly(context.Background(), "u1", day("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"w1"}, compiled.IncludedReports)
}

func TestCompileAnnualMonthSubset(t *testing.T) {
	monthly := func(id string, month time.Month) CompiledReport {
		return CompiledReport{
			ID:             id,
			UserID:         "u1",
			Type:           TypeMonthly,
			Title:          fmt.Sprintf("Monthly Report - %s 2024", month),
			Content:        json.RawMessage(`{}`),
			DateRangeStart: time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC),
			Status:         reports.StatusDraft,
		}
	}
	store := &fakeStore{compiled: []CompiledReport{
		monthly("m1", time.January),
		monthly("m2", time.February),
		monthly("m3", time.March),
	}}
	svc := NewService(store)

	compiled, err := svc.CompileAnnual(context.Background(), "u1", 2024, []int{1, 3})
	require.NoError(t, err)

	assert.Equal(t, "Annual Report - 2024", compiled.Title)
	assert.Equal(t, []string{"m1", "m3"}, compiled.IncludedReports)

	var content AnnualContent
	require.NoError(t, json.Unmarshal(compiled.Content, &content))
	assert.Equal(t, 2024, content.Year)
	assert.Len(t, content.MonthlyReports, 2)
}

func TestCompileAnnualEmptyYear(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.CompileAnnual(context.Background(), "u1", 2024, nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestCompileWeekForAllGroupsByOwner(t *testing.T) {
	store := &fakeStore{daily: []SourceReport{
		dailySource("a1", "alice", "2024-03-04", "a monday"),
		dailySource("b1", "bob", "2024-03-05", "b tuesday"),
		dailySource("a2", "alice", "2024-03-06", "a wednesday"),
	}}
	svc := NewService(store)

	result, err := svc.CompileWeekForAll(context.Background(), day("2024-03-06"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, result.Succeeded)
	assert.Empty(t, result.Failed)
	require.Len(t, store.compiled, 2)
	assert.Equal(t, []string{"a1", "a2"}, store.compiled[0].IncludedReports)
	assert.Equal(t, []string{"b1"}, store.compiled[1].IncludedReports)
}

func TestCompileWeekForAllIsolatesFailures(t *testing.T) {
	store := &fakeStore{
		daily: []SourceReport{
			dailySource("a1", "alice", "2024-03-04", "ok"),
			dailySource("b1", "bob", "2024-03-05", "will fail"),
		},
		createErrFor: map[string]error{"bob": errors.New("insert failed")},
	}
	svc := NewService(store)

	result, err := svc.CompileWeekForAll(context.Background(), day("2024-03-06"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "bob", result.Failed[0].UserID)
}

func TestCompileMonthForAllSkipsReviewedWeekly(t *testing.T) {
	store := &fakeStore{compiled: []CompiledReport{
		{
			ID: "w-draft", UserID: "alice", Type: TypeWeekly,
			Content: json.RawMessage(`{}`), Status: reports.StatusDraft,
			DateRangeStart: day("2024-03-04"), DateRangeEnd: day("2024-03-10"),
		},
		{
			ID: "w-reviewed", UserID: "alice", Type: TypeWeekly,
			Content: json.RawMessage(`{}`), Status: reports.StatusReviewed,
			DateRangeStart: day("2024-03-11"), DateRangeEnd: day("2024-03-17"),
		},
	}}
	svc := NewService(store)

	result, err := svc.CompileMonthForAll(context.Background(), day("2024-03-01"))
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, result.Succeeded)

	created := store.compiled[len(store.compiled)-1]
	assert.Equal(t, TypeMonthly, created.Type)
	assert.Equal(t, []string{"w-draft"}, created.IncludedReports)
}

func TestGetScopesStaffToOwnReports(t *testing.T) {
	store := &fakeStore{compiled: []CompiledReport{{ID: "c1", UserID: "alice", Type: TypeWeekly}}}
	svc := NewService(store)

	_, err := svc.Get(context.Background(), auth.UserContext{UserID: "bob", Role: auth.RoleStaff}, "c1")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), auth.UserContext{UserID: "hr", Role: auth.RoleHR}, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
}

func TestListScopesStaffToOwnReports(t *testing.T) {
	store := &fakeStore{compiled: []CompiledReport{
		{ID: "c1", UserID: "alice", Type: TypeWeekly},
		{ID: "c2", UserID: "bob", Type: TypeWeekly},
	}}
	svc := NewService(store)

	out, total, err := svc.List(context.Background(), auth.UserContext{UserID: "alice", Role: auth.RoleStaff}, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
}
