package export

import (
	"encoding/json"

	"reportdesk/internal/domain/compile"
)

type section struct {
	heading string
	body    string
}

// compiledSections breaks a roll-up's payload into renderable pieces.
// A payload that fails to parse falls back to one raw section, old
// artifacts stay exportable.
func compiledSections(compiled compile.CompiledReport) []section {
	switch compiled.Type {
	case compile.TypeWeekly:
		var content compile.WeeklyContent
		if err := json.Unmarshal(compiled.Content, &content); err != nil {
			break
		}
		out := make([]section, 0, len(content.Reports))
		for _, entry := range content.Reports {
			out = append(out, section{heading: entry.Date, body: ExtractText(entry.Content)})
		}
		return out

	case compile.TypeMonthly:
		var content compile.MonthlyContent
		if err := json.Unmarshal(compiled.Content, &content); err != nil {
			break
		}
		out := make([]section, 0, len(content.DailyReports)+len(content.WeeklyReports))
		for _, entry := range content.DailyReports {
			out = append(out, section{heading: entry.Date, body: ExtractText(entry.Content)})
		}
		for _, entry := range content.WeeklyReports {
			out = append(out, section{heading: entry.Title, body: ExtractText(entry.Content)})
		}
		return out

	case compile.TypeAnnual:
		var content compile.AnnualContent
		if err := json.Unmarshal(compiled.Content, &content); err != nil {
			break
		}
		out := make([]section, 0, len(content.MonthlyReports))
		for _, entry := range content.MonthlyReports {
			out = append(out, section{heading: entry.Title, body: ExtractText(entry.Content)})
		}
		return out
	}

	return []section{{heading: compiled.Title, body: ExtractText(compiled.Content)}}
}
