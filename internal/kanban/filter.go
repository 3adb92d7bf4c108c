package kanban

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"taskboard/internal/models"
)

// DueDateFilter narrows tasks by their due date relative to a reference time.
type DueDateFilter string

const (
	DueAll      DueDateFilter = "all"
	DueOverdue  DueDateFilter = "overdue"
	DueToday    DueDateFilter = "today"
	DueTomorrow DueDateFilter = "tomorrow"
	DueThisWeek DueDateFilter = "this-week"
	DueNoDate   DueDateFilter = "no-date"
)

const (
	// AssigneeAll and AssigneeNone are the non-user values of TaskFilter.Assignee.
	AssigneeAll  = "all"
	AssigneeNone = "unassigned"

	PriorityAll = "all"
)

// TaskFilter selects which tasks of a board are shown. Zero values match everything.
type TaskFilter struct {
	Search   string
	Priority string
	DueDate  DueDateFilter
	Assignee string
}

// Validate rejects unknown priority and due date values.
func (f TaskFilter) Validate() error {
	if f.Priority != "" && f.Priority != PriorityAll {
		if _, ok := models.ValidPriorities[models.Priority(f.Priority)]; !ok {
			return fmt.Errorf("unknown priority filter %q: %w", f.Priority, ErrInvalidInput)
		}
	}
	switch f.DueDate {
	case "", DueAll, DueOverdue, DueToday, DueTomorrow, DueThisWeek, DueNoDate:
		return nil
	default:
		return fmt.Errorf("unknown due date filter %q: %w", f.DueDate, ErrInvalidInput)
	}
}

// Active reports whether the filter excludes anything.
func (f TaskFilter) Active() bool {
	return strings.TrimSpace(f.Search) != "" ||
		(f.Priority != "" && f.Priority != PriorityAll) ||
		(f.DueDate != "" && f.DueDate != DueAll) ||
		(f.Assignee != "" && f.Assignee != AssigneeAll)
}

// Match reports whether t passes the filter at reference time now.
func (f TaskFilter) Match(t models.Task, now time.Time) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	if f.Priority != "" && f.Priority != PriorityAll && string(t.Priority) != f.Priority {
		return false
	}
	if !matchDueDate(f.DueDate, t.DueDate, now) {
		return false
	}
	switch f.Assignee {
	case "", AssigneeAll:
		return true
	case AssigneeNone:
		return len(t.Assignees) == 0
	default:
		return slices.ContainsFunc(t.Assignees, func(u models.User) bool { return u.ID == f.Assignee })
	}
}

func matchDueDate(f DueDateFilter, due *time.Time, now time.Time) bool {
	switch f {
	case "", DueAll:
		return true
	case DueNoDate:
		return due == nil
	}
	if due == nil {
		return false
	}

	d := due.In(now.Location())
	today := startOfDay(now)
	switch f {
	case DueOverdue:
		return d.Before(now) && !sameDay(d, today)
	case DueToday:
		return sameDay(d, today)
	case DueTomorrow:
		return sameDay(d, today.AddDate(0, 0, 1))
	case DueThisWeek:
		weekStart := today.AddDate(0, 0, -int(today.Weekday()))
		return !d.Before(weekStart) && d.Before(weekStart.AddDate(0, 0, 7))
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FilterBoard returns a copy of b whose columns only hold matching tasks.
func FilterBoard(b models.Board, f TaskFilter, now time.Time) models.Board {
	if !f.Active() {
		return b
	}
	out := b
	out.Columns = make([]models.Column, len(b.Columns))
	for i, col := range b.Columns {
		out.Columns[i] = col
		out.Columns[i].Tasks = make([]models.Task, 0, len(col.Tasks))
		for _, t := range col.Tasks {
			if f.Match(t, now) {
				out.Columns[i].Tasks = append(out.Columns[i].Tasks, t)
			}
		}
	}
	return out
}
