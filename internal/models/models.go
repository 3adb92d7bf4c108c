package models

import (
	"net/url"
	"time"
)

// Role separates regular members from moderators who may remove any comment.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is copied by value into boards, tasks and comments.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AvatarURL returns a generated initials avatar for name on the given hex background.
func AvatarURL(name, background string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=" + background + "&color=fff"
}

// Priority ranks a task on the board.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities enumerates the priorities a task may carry.
var ValidPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// Board is a kanban board with its columns inlined.
type Board struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	TeamMembers []User    `json:"teamMembers"`
	Columns     []Column  `json:"columns"`
	Owner       User      `json:"owner"`
}

// Column is an ordered list of tasks. Order always equals the column's index.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
	Order int    `json:"order"`
}

// Task is a single card on the board.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Assignees   []User     `json:"assignees"`
	Creator     *User      `json:"creator,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Comments    []Comment  `json:"comments"`
	Attachments []string   `json:"attachments"`
	Tags        []string   `json:"tags,omitempty"`
}

// Comment is a note left on a task.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBoardData holds the fields accepted when creating a board.
type CreateBoardData struct {
	Name        string
	Description string
}

// BoardUpdate lists the board fields that may change. Nil fields are left as is.
type BoardUpdate struct {
	Name        *string
	Description *string
	TeamMembers *[]User
}

// CreateColumnData holds the fields accepted when creating a column.
type CreateColumnData struct {
	Title string
}

// ColumnUpdate lists the column fields that may change.
type ColumnUpdate struct {
	Title *string
}

// CreateTaskData holds the fields accepted when creating a task.
type CreateTaskData struct {
	Title       string
	Description string
	Priority    Priority
	Assignees   []User
	DueDate     *time.Time
	Tags        []string
}

// TaskUpdate lists the task fields that may change. ClearDueDate removes the
// due date and takes precedence over DueDate.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Priority     *Priority
	Assignees    *[]User
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *[]string
	Attachments  *[]string
}

// TaskCount returns the number of tasks across all columns of the board.
func (b *Board) TaskCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Tasks)
	}
	return n
}

// FindColumn returns the index of the column with the given id or -1.
func (b *Board) FindColumn(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the column and task indexes of the task with the given id,
// or -1, -1 when no column holds it.
func (b *Board) FindTask(id string) (int, int) {
	for ci := range b.Columns {
		for ti := range b.Columns[ci].Tasks {
			if b.Columns[ci].Tasks[ti].ID == id {
				return ci, ti
			}
		}
	}
	return -1, -1
}
