package deadlines

import "testing"

func strPtr(v string) *string { return &v }

func TestResolveNarrowestScopeWins(t *testing.T) {
	global := Deadline{ID: "global", Type: TypeDaily, DeadlineTime: "17:00"}
	dept := Deadline{ID: "dept", Type: TypeDaily, DeadlineTime: "16:00", DepartmentID: strPtr("eng")}
	unit := Deadline{ID: "unit", Type: TypeDaily, DeadlineTime: "15:00", DepartmentID: strPtr("eng"), UnitID: strPtr("platform")}
	rules := []Deadline{global, dept, unit}

	if got := Resolve(rules, strPtr("eng"), strPtr("platform")); got == nil || got.ID != "unit" {
		t.Errorf("unit scope: got %+v, want unit rule", got)
	}
	if got := Resolve(rules, strPtr("eng"), strPtr("other-unit")); got == nil || got.ID != "dept" {
		t.Errorf("department scope: got %+v, want dept rule", got)
	}
	if got := Resolve(rules, strPtr("sales"), nil); got == nil || got.ID != "global" {
		t.Errorf("global scope: got %+v, want global rule", got)
	}
	if got := Resolve(nil, strPtr("eng"), nil); got != nil {
		t.Errorf("no rules: got %+v, want nil", got)
	}
}
