package compile

import (
	"encoding/json"
	"time"
)

// Compiled report types; daily reports are sources, never artifacts.
const (
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
	TypeAnnual  = "annual"
)

type CompiledReport struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	Content         json.RawMessage `json:"content"`
	DateRangeStart  time.Time       `json:"dateRangeStart"`
	DateRangeEnd    time.Time       `json:"dateRangeEnd"`
	IncludedReports []string        `json:"includedReports"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SourceReport is the slice of a daily report the compiler needs.
type SourceReport struct {
	ID      string
	UserID  string
	Date    time.Time
	Content json.RawMessage
}

// Roll-up content payloads. Constituent content blobs pass through
// opaque.
type DailyEntry struct {
	Date    string          `json:"date"`
	Content json.RawMessage `json:"content"`
}

type CompiledEntry struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

type WeeklyContent struct {
	Type       string       `json:"type"`
	WeekNumber int          `json:"weekNumber"`
	Year       int          `json:"year"`
	Reports    []DailyEntry `json:"reports"`
}

type MonthlyContent struct {
	Type          string          `json:"type"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	DailyReports  []DailyEntry    `json:"dailyReports"`
	WeeklyReports []CompiledEntry `json:"weeklyReports"`
}

type AnnualContent struct {
	Type           string          `json:"type"`
	Year           int             `json:"year"`
	MonthlyReports []CompiledEntry `json:"monthlyReports"`
}
