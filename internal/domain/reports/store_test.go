package reports

import (
	"strings"
	"testing"
	"time"
)

func TestBuildListQueryPaginated(t *testing.T) {
	filters := ListFilters{UserID: "u1", Type: TypeDaily, Limit: 20, Offset: 40}
	countQuery, listQuery, countArgs, listArgs := buildListQuery(filters)

	if !strings.Contains(listQuery, "LIMIT $3 OFFSET $4") {
		t.Fatalf("expected LIMIT $3 OFFSET $4 in %q", listQuery)
	}
	if len(listArgs) != 4 {
		t.Fatalf("expected 4 list args, got %d: %v", len(listArgs), listArgs)
	}
	if listArgs[2] != 20 || listArgs[3] != 40 {
		t.Fatalf("expected limit/offset args 20/40, got %v", listArgs[2:])
	}
	if strings.Contains(countQuery, "LIMIT") {
		t.Fatalf("count query must not be paginated: %q", countQuery)
	}
	if len(countArgs) != 2 {
		t.Fatalf("expected 2 count args, got %d", len(countArgs))
	}
}

func TestBuildListQueryUnpaginated(t *testing.T) {
	filters := ListFilters{Status: StatusSubmitted, Limit: 0, Offset: 0}
	_, listQuery, _, listArgs := buildListQuery(filters)

	if strings.Contains(listQuery, "LIMIT") {
		t.Fatalf("limit 0 must not emit a LIMIT clause: %q", listQuery)
	}
	if len(listArgs) != 1 {
		t.Fatalf("expected only the status arg, got %v", listArgs)
	}
}

func TestBuildListQueryDateRange(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	filters := ListFilters{StartDate: start, EndDate: end, Limit: 10}
	_, listQuery, _, listArgs := buildListQuery(filters)

	if !strings.Contains(listQuery, "r.date >= $1") || !strings.Contains(listQuery, "r.date <= $2") {
		t.Fatalf("expected date range clauses in %q", listQuery)
	}
	if !strings.Contains(listQuery, "LIMIT $3 OFFSET $4") {
		t.Fatalf("expected pagination after range args in %q", listQuery)
	}
	if listArgs[0] != start || listArgs[1] != end {
		t.Fatalf("expected range args first, got %v", listArgs)
	}
}
