package kanban

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/storage"
	"taskboard/internal/storage/memory"
)

type tickingClock struct {
	t time.Time
}

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

var owner = models.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}

func newTestStore(t *testing.T) (*Store, *memory.Backend) {
	t.Helper()
	backend := memory.New()
	clock := &tickingClock{t: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)}
	return New(backend, nil, WithClock(clock.Now)), backend
}

func mustCreateBoard(t *testing.T, s *Store, name string) models.Board {
	t.Helper()
	b, err := s.CreateBoard(context.Background(), models.CreateBoardData{Name: name}, owner)
	require.NoError(t, err)
	return b
}

func mustCreateTask(t *testing.T, s *Store, boardID, columnID, title string) models.Task {
	t.Helper()
	task, err := s.CreateTask(context.Background(), boardID, columnID, models.CreateTaskData{Title: title}, owner)
	require.NoError(t, err)
	return task
}

func taskIDs(col models.Column) []string {
	ids := make([]string, 0, len(col.Tasks))
	for _, t := range col.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestNextID(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)

	first, err := s.NextID(ctx)
	require.NoError(t, err)
	second, err := s.NextID(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1001", first)
	assert.Equal(t, "1002", second)

	stored, _, err := backend.Get(ctx, KeyNextID)
	require.NoError(t, err)
	assert.Equal(t, "1002", stored)

	t.Run("corrupt counter", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, backend, KeyNextID, "NaN"))
		_, err := s.NextID(ctx)
		assert.Error(t, err)
	})
}

func TestCreateBoard(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	b, err := s.CreateBoard(ctx, models.CreateBoardData{Name: "  Sprint 1  "}, owner)
	require.NoError(t, err)

	assert.Equal(t, "Sprint 1", b.Name)
	assert.Empty(t, b.Description)
	assert.Equal(t, owner, b.Owner)
	assert.Equal(t, []models.User{owner}, b.TeamMembers)
	require.Len(t, b.Columns, 3)
	for i, title := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, title, b.Columns[i].Title)
		assert.Equal(t, i, b.Columns[i].Order)
		assert.Empty(t, b.Columns[i].Tasks)
	}

	seen := map[string]bool{b.ID: true}
	for _, c := range b.Columns {
		assert.False(t, seen[c.ID], "id %s reused", c.ID)
		seen[c.ID] = true
	}

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, b.ID, loaded[0].ID)

	_, err = s.CreateBoard(ctx, models.CreateBoardData{Name: "   "}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateBoard(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Roadmap")

	name := "Roadmap 2025"
	desc := "Quarterly planning"
	members := []models.User{owner, {ID: "u-2", Name: "Grace"}}
	updated, err := s.UpdateBoard(ctx, b.ID, models.BoardUpdate{Name: &name, Description: &desc, TeamMembers: &members})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, desc, updated.Description)
	assert.Len(t, updated.TeamMembers, 2)
	assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateBoard(ctx, "missing", models.BoardUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrBoardNotFound)

	empty := ""
	_, err = s.UpdateBoard(ctx, b.ID, models.BoardUpdate{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteBoard(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)
	keep := mustCreateBoard(t, s, "Keep")
	drop := mustCreateBoard(t, s, "Drop")

	t.Run("missing id leaves collection unchanged", func(t *testing.T) {
		before := backend.Snapshot()
		ok, err := s.DeleteBoard(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, before, backend.Snapshot())

		boards, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, boards, 2)
	})

	t.Run("existing id", func(t *testing.T) {
		ok, err := s.DeleteBoard(ctx, drop.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		boards, err := s.Load(ctx)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, keep.ID, boards[0].ID)

		_, found, err := backend.Get(ctx, boardKey(drop.ID))
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSearchBoards(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreateBoard(t, s, "Website Redesign")
	_, err := s.CreateBoard(ctx, models.CreateBoardData{Name: "Mobile", Description: "iOS and Android"}, owner)
	require.NoError(t, err)

	found, err := s.SearchBoards(ctx, "android")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mobile", found[0].Name)

	found, err = s.SearchBoards(ctx, "WEB")
	require.NoError(t, err)
	require.Len(t, found, 1)

	all, err := s.SearchBoards(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestColumns(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Sprint 1")

	review, err := s.CreateColumn(ctx, b.ID, models.CreateColumnData{Title: "Review"})
	require.NoError(t, err)
	assert.Equal(t, 3, review.Order)

	_, err = s.CreateColumn(ctx, "missing", models.CreateColumnData{Title: "Review"})
	assert.ErrorIs(t, err, ErrBoardNotFound)
	_, err = s.CreateColumn(ctx, b.ID, models.CreateColumnData{Title: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	title := "QA"
	col, err := s.UpdateColumn(ctx, b.ID, review.ID, models.ColumnUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "QA", col.Title)
	assert.Equal(t, 3, col.Order)

	_, err = s.UpdateColumn(ctx, b.ID, "missing", models.ColumnUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	t.Run("delete renumbers densely", func(t *testing.T) {
		mustCreateTask(t, s, b.ID, b.Columns[1].ID, "goes away with its column")

		ok, err := s.DeleteColumn(ctx, b.ID, b.Columns[1].ID)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, got.Columns, 3)
		for i, c := range got.Columns {
			assert.Equal(t, i, c.Order)
		}
		assert.Equal(t, []string{"To Do", "Done", "QA"}, []string{got.Columns[0].Title, got.Columns[1].Title, got.Columns[2].Title})
		assert.Equal(t, 0, got.TaskCount())
	})

	t.Run("delete missing", func(t *testing.T) {
		ok, err := s.DeleteColumn(ctx, b.ID, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.DeleteColumn(ctx, "missing", b.Columns[0].ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSprintScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	b := mustCreateBoard(t, s, "Sprint 1")
	require.Equal(t, []models.User{owner}, b.TeamMembers)

	review, err := s.CreateColumn(ctx, b.ID, models.CreateColumnData{Title: "Review"})
	require.NoError(t, err)
	require.Equal(t, 3, review.Order)

	task, err := s.CreateTask(ctx, b.ID, review.ID, models.CreateTaskData{Title: "Fix bug", Priority: models.PriorityHigh}, owner)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Empty(t, task.Comments)
	assert.Empty(t, task.Attachments)
	require.NotNil(t, task.Creator)
	assert.Equal(t, owner.ID, task.Creator.ID)

	low := models.PriorityLow
	_, err = s.UpdateTask(ctx, b.ID, task.ID, models.TaskUpdate{Priority: &low})
	require.NoError(t, err)

	got, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	ci, ti := got.FindTask(task.ID)
	require.NotEqual(t, -1, ci)
	reloaded := got.Columns[ci].Tasks[ti]
	assert.Equal(t, review.ID, got.Columns[ci].ID)
	assert.Equal(t, models.PriorityLow, reloaded.Priority)
	assert.True(t, reloaded.UpdatedAt.After(reloaded.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(reloaded.UpdatedAt))
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Board")
	col := b.Columns[0].ID

	task := mustCreateTask(t, s, b.ID, col, "Defaults")
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.NotNil(t, task.Assignees)

	_, err := s.CreateTask(ctx, b.ID, "missing", models.CreateTaskData{Title: "x"}, owner)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	_, err = s.CreateTask(ctx, "missing", col, models.CreateTaskData{Title: "x"}, owner)
	assert.ErrorIs(t, err, ErrBoardNotFound)
	_, err = s.CreateTask(ctx, b.ID, col, models.CreateTaskData{Title: "x", Priority: "urgent"}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.CreateTask(ctx, b.ID, col, models.CreateTaskData{Title: ""}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateTaskFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Board")
	task := mustCreateTask(t, s, b.ID, b.Columns[2].ID, "Write docs")

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	tags := []string{"docs"}
	assignees := []models.User{{ID: "u-9", Name: "Linus"}}
	updated, err := s.UpdateTask(ctx, b.ID, task.ID, models.TaskUpdate{DueDate: &due, Tags: &tags, Assignees: &assignees})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))
	assert.Equal(t, tags, updated.Tags)
	assert.Equal(t, assignees, updated.Assignees)

	updated, err = s.UpdateTask(ctx, b.ID, task.ID, models.TaskUpdate{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	bad := models.Priority("urgent")
	_, err = s.UpdateTask(ctx, b.ID, task.ID, models.TaskUpdate{Priority: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.UpdateTask(ctx, b.ID, "missing", models.TaskUpdate{})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Board")
	task := mustCreateTask(t, s, b.ID, b.Columns[1].ID, "Temp")

	ok, err := s.DeleteTask(ctx, b.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteTask(ctx, b.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TaskCount())
}

func TestMoveTask(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Board")
	todo, doing := b.Columns[0].ID, b.Columns[1].ID

	a := mustCreateTask(t, s, b.ID, todo, "a")
	bb := mustCreateTask(t, s, b.ID, todo, "b")
	c := mustCreateTask(t, s, b.ID, doing, "c")

	t.Run("across columns", func(t *testing.T) {
		require.NoError(t, s.MoveTask(ctx, b.ID, a.ID, todo, doing, 0))

		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{bb.ID}, taskIDs(got.Columns[0]))
		assert.Equal(t, []string{a.ID, c.ID}, taskIDs(got.Columns[1]))
		assert.Equal(t, 3, got.TaskCount())
	})

	t.Run("index past end appends", func(t *testing.T) {
		require.NoError(t, s.MoveTask(ctx, b.ID, bb.ID, todo, doing, 99))

		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Columns[0].Tasks)
		assert.Equal(t, []string{a.ID, c.ID, bb.ID}, taskIDs(got.Columns[1]))
	})

	t.Run("within one column", func(t *testing.T) {
		require.NoError(t, s.MoveTask(ctx, b.ID, bb.ID, doing, doing, 0))

		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{bb.ID, a.ID, c.ID}, taskIDs(got.Columns[1]))
	})

	t.Run("task not in source column", func(t *testing.T) {
		err := s.MoveTask(ctx, b.ID, a.ID, todo, doing, 0)
		assert.ErrorIs(t, err, ErrTaskNotFound)

		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TaskCount())
	})

	t.Run("unknown columns", func(t *testing.T) {
		assert.ErrorIs(t, s.MoveTask(ctx, b.ID, a.ID, "nope", doing, 0), ErrColumnNotFound)
		assert.ErrorIs(t, s.MoveTask(ctx, b.ID, a.ID, doing, "nope", 0), ErrColumnNotFound)
		assert.ErrorIs(t, s.MoveTask(ctx, "nope", a.ID, todo, doing, 0), ErrBoardNotFound)
	})
}

func TestReorderTasksInColumn(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Board")
	col := b.Columns[0].ID

	t1 := mustCreateTask(t, s, b.ID, col, "1")
	t2 := mustCreateTask(t, s, b.ID, col, "2")
	t3 := mustCreateTask(t, s, b.ID, col, "3")

	order := []string{t3.ID, t1.ID, t2.ID}
	require.NoError(t, s.ReorderTasksInColumn(ctx, b.ID, col, order))
	got, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, order, taskIDs(got.Columns[0]))

	require.NoError(t, s.ReorderTasksInColumn(ctx, b.ID, col, order))
	again, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Columns[0].Tasks, again.Columns[0].Tasks)

	t.Run("partial and unknown ids never drop tasks", func(t *testing.T) {
		require.NoError(t, s.ReorderTasksInColumn(ctx, b.ID, col, []string{t2.ID, "ghost", t2.ID}))
		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{t2.ID, t3.ID, t1.ID}, taskIDs(got.Columns[0]))
	})

	assert.ErrorIs(t, s.ReorderTasksInColumn(ctx, b.ID, "missing", order), ErrColumnNotFound)
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Board")
	task := mustCreateTask(t, s, b.ID, b.Columns[0].ID, "Discuss")

	comment, err := s.AddComment(ctx, b.ID, task.ID, "  looks good  ", owner)
	require.NoError(t, err)
	assert.Equal(t, "looks good", comment.Text)
	assert.Equal(t, owner, comment.Author)

	got, err := s.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	reloaded := got.Columns[0].Tasks[0]
	require.Len(t, reloaded.Comments, 1)
	assert.True(t, reloaded.UpdatedAt.After(task.UpdatedAt))

	_, err = s.AddComment(ctx, b.ID, task.ID, "   ", owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.AddComment(ctx, b.ID, "missing", "hi", owner)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	t.Run("only author or admin may delete", func(t *testing.T) {
		stranger := models.User{ID: "u-2", Name: "Mallory"}
		err := s.DeleteComment(ctx, b.ID, task.ID, comment.ID, stranger)
		assert.ErrorIs(t, err, ErrForbidden)

		second, err := s.AddComment(ctx, b.ID, task.ID, "second", stranger)
		require.NoError(t, err)

		admin := models.User{ID: "u-3", Name: "Root", Role: models.RoleAdmin}
		require.NoError(t, s.DeleteComment(ctx, b.ID, task.ID, second.ID, admin))
		require.NoError(t, s.DeleteComment(ctx, b.ID, task.ID, comment.ID, owner))

		err = s.DeleteComment(ctx, b.ID, task.ID, comment.ID, owner)
		assert.ErrorIs(t, err, ErrCommentNotFound)

		got, err := s.GetBoard(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Columns[0].Tasks[0].Comments)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)
	_, err := s.Seed(ctx)
	require.NoError(t, err)
	b := mustCreateBoard(t, s, "Extra")
	task := mustCreateTask(t, s, b.ID, b.Columns[0].ID, "with comment")
	_, err = s.AddComment(ctx, b.ID, task.ID, "hello", owner)
	require.NoError(t, err)

	boards, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, boards))
	first := backend.Snapshot()

	boards, err = s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, boards))
	assert.Equal(t, first, backend.Snapshot())

	t.Run("save drops boards no longer present", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, boards[:1]))
		loaded, err := s.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		_, found, err := backend.Get(ctx, boardKey(boards[1].ID))
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestLoadRecoversFromCorruptData(t *testing.T) {
	ctx := context.Background()

	t.Run("index", func(t *testing.T) {
		s, backend := newTestStore(t)
		require.NoError(t, storage.Set(ctx, backend, KeyBoards, "{not json"))
		boards, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, boards)
	})

	t.Run("single board", func(t *testing.T) {
		s, backend := newTestStore(t)
		good := mustCreateBoard(t, s, "Good")
		bad := mustCreateBoard(t, s, "Bad")
		require.NoError(t, storage.Set(ctx, backend, boardKey(bad.ID), "garbage"))

		boards, err := s.Load(ctx)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, good.ID, boards[0].ID)

		_, err = s.GetBoard(ctx, bad.ID)
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)

	seeded, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	counter, _, err := backend.Get(ctx, KeyNextID)
	require.NoError(t, err)
	assert.Equal(t, "1000", counter)

	boards, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "Website Redesign", boards[0].Name)
	assert.Equal(t, 4, boards[0].TaskCount())

	seeded, err = s.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	id, err := s.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1001", id)
}

func TestSaveAdvancesCounter(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestStore(t)
	b := mustCreateBoard(t, src, "Imported")
	task := mustCreateTask(t, src, b.ID, b.Columns[0].ID, "carried over")
	comment, err := src.AddComment(ctx, b.ID, task.ID, "keep me", owner)
	require.NoError(t, err)
	boards, err := src.Load(ctx)
	require.NoError(t, err)

	dst, backend := newTestStore(t)
	require.NoError(t, dst.Save(ctx, boards))

	counter, _, err := backend.Get(ctx, KeyNextID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, counter)

	fresh := mustCreateBoard(t, dst, "New")
	assert.NotEqual(t, b.ID, fresh.ID)

	loaded, err := dst.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Imported", loaded[0].Name)
	assert.Equal(t, "New", loaded[1].Name)

	t.Run("counter never moves backwards", func(t *testing.T) {
		require.NoError(t, dst.Save(ctx, []models.Board{{ID: "7"}}))
		id, err := dst.NextID(ctx)
		require.NoError(t, err)
		assert.Greater(t, id, fresh.Columns[2].ID)
	})

	t.Run("non-numeric ids leave the counter alone", func(t *testing.T) {
		s, backend := newTestStore(t)
		require.NoError(t, s.Save(ctx, []models.Board{{ID: "board-9", Columns: []models.Column{{ID: "col-99"}}}}))
		_, found, err := backend.Get(ctx, KeyNextID)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSaveRejectsDuplicateBoardIDs(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)
	b := mustCreateBoard(t, s, "Only")
	before := backend.Snapshot()

	err := s.Save(ctx, []models.Board{b, b})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = s.Save(ctx, []models.Board{{Name: "no id"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, before, backend.Snapshot())
}

func TestMutationsRefreshBoardUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	b := mustCreateBoard(t, s, "Timestamps")
	todo, doing := b.Columns[0], b.Columns[1]
	first := mustCreateTask(t, s, b.ID, todo.ID, "first")
	second := mustCreateTask(t, s, b.ID, todo.ID, "second")
	extra, err := s.CreateColumn(ctx, b.ID, models.CreateColumnData{Title: "Extra"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func() error
	}{
		{name: "move task", mutate: func() error {
			return s.MoveTask(ctx, b.ID, second.ID, todo.ID, doing.ID, 0)
		}},
		{name: "reorder tasks", mutate: func() error {
			return s.ReorderTasksInColumn(ctx, b.ID, todo.ID, []string{first.ID})
		}},
		{name: "delete column", mutate: func() error {
			deleted, err := s.DeleteColumn(ctx, b.ID, extra.ID)
			require.True(t, deleted)
			return err
		}},
		{name: "add comment", mutate: func() error {
			_, err := s.AddComment(ctx, b.ID, first.ID, "noted", owner)
			return err
		}},
		{name: "delete task", mutate: func() error {
			deleted, err := s.DeleteTask(ctx, b.ID, second.ID)
			require.True(t, deleted)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := s.GetBoard(ctx, b.ID)
			require.NoError(t, err)

			require.NoError(t, tt.mutate())

			after, err := s.GetBoard(ctx, b.ID)
			require.NoError(t, err)
			assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "updatedAt %s not after %s", after.UpdatedAt, before.UpdatedAt)
		})
	}
}
