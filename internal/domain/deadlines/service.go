package deadlines

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

type CreateInput struct {
	Type         string
	DepartmentID *string
	UnitID       *string
	DeadlineTime string
	DayOfWeek    *int
	DayOfMonth   *int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Deadline, error) {
	if err := validateRule(in.Type, in.DeadlineTime, in.DayOfWeek, in.DayOfMonth); err != nil {
		return Deadline{}, err
	}
	return s.store.CreateDeadline(ctx, Deadline{
		Type:         in.Type,
		DepartmentID: in.DepartmentID,
		UnitID:       in.UnitID,
		DeadlineTime: in.DeadlineTime,
		DayOfWeek:    in.DayOfWeek,
		DayOfMonth:   in.DayOfMonth,
		IsActive:     true,
	})
}

type UpdateInput struct {
	DeadlineTime *string
	DayOfWeek    *int
	DayOfMonth   *int
	IsActive     *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Deadline, error) {
	d, err := s.store.GetDeadline(ctx, id)
	if err != nil {
		return Deadline{}, err
	}
	if in.DeadlineTime != nil {
		d.DeadlineTime = *in.DeadlineTime
	}
	if in.DayOfWeek != nil {
		d.DayOfWeek = in.DayOfWeek
	}
	if in.DayOfMonth != nil {
		d.DayOfMonth = in.DayOfMonth
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if err := validateRule(d.Type, d.DeadlineTime, d.DayOfWeek, d.DayOfMonth); err != nil {
		return Deadline{}, err
	}
	return s.store.UpdateDeadline(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteDeadline(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Deadline, error) {
	return s.store.GetDeadline(ctx, id)
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Deadline, error) {
	return s.store.ListDeadlines(ctx, filters)
}

// Resolve picks the rule that applies to a user scope. Unit rules beat
// department rules beat organisation-wide rules; nil when no active
// rule matches.
func Resolve(rules []Deadline, departmentID, unitID *string) *Deadline {
	var departmentRule, globalRule *Deadline
	for i := range rules {
		rule := &rules[i]
		switch {
		case rule.UnitID != nil:
			if unitID != nil && *rule.UnitID == *unitID {
				return rule
			}
		case rule.DepartmentID != nil:
			if departmentID != nil && *rule.DepartmentID == *departmentID && departmentRule == nil {
				departmentRule = rule
			}
		default:
			if globalRule == nil {
				globalRule = rule
			}
		}
	}
	if departmentRule != nil {
		return departmentRule
	}
	return globalRule
}

// NextForUser resolves the applicable rule for a user and evaluates
// it. A nil time with nil error means no rule applies.
func (s *Service) NextForUser(ctx context.Context, userID, reportType string, now time.Time) (*time.Time, error) {
	departmentID, unitID, err := s.store.UserScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	rules, err := s.store.ActiveRules(ctx, reportType)
	if err != nil {
		return nil, err
	}
	rule := Resolve(rules, departmentID, unitID)
	if rule == nil {
		return nil, nil
	}
	next, err := NextOccurrence(*rule, now)
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func validateRule(ruleType, deadlineTime string, dayOfWeek, dayOfMonth *int) error {
	if !ValidType(ruleType) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRule, ruleType)
	}
	if _, _, err := parseClock(deadlineTime); err != nil {
		return err
	}
	switch ruleType {
	case TypeWeekly:
		if dayOfWeek == nil || *dayOfWeek < 0 || *dayOfWeek > 6 {
			return fmt.Errorf("%w: weekly rule needs dayOfWeek 0-6", ErrInvalidRule)
		}
	case TypeMonthly:
		if dayOfMonth == nil || *dayOfMonth < 1 || *dayOfMonth > 31 {
			return fmt.Errorf("%w: monthly rule needs dayOfMonth 1-31", ErrInvalidRule)
		}
	}
	return nil
}
