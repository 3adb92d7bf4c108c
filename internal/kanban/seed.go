package kanban

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// DemoUsers is the directory offered for task assignment.
func DemoUsers() []models.User {
	return []models.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Avatar: models.AvatarURL("John Doe", "3b82f6")},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Avatar: models.AvatarURL("Jane Smith", "10b981")},
		{ID: "3", Name: "Bob Johnson", Email: "bob@example.com", Avatar: models.AvatarURL("Bob Johnson", "f59e0b")},
	}
}

// Seed stores the demo boards when the backend holds no collection yet and
// initializes the id counter when it is absent. It reports whether boards
// were written.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.backend.Get(ctx, KeyNextID)
	if err != nil {
		return false, fmt.Errorf("read id counter: %w", err)
	}
	if !ok {
		if err := storage.Set(ctx, s.backend, KeyNextID, strconv.Itoa(initialID)); err != nil {
			return false, fmt.Errorf("seed id counter: %w", err)
		}
	}

	_, ok, err = s.backend.Get(ctx, KeyBoards)
	if err != nil {
		return false, fmt.Errorf("read board index: %w", err)
	}
	if ok {
		s.logger.Info("boards already present, skipping demo data")
		return false, nil
	}

	boards := demoBoards()
	if err := s.save(ctx, boards); err != nil {
		return false, err
	}
	s.logger.Info("demo boards stored", "count", len(boards))
	return true, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func demoTask(id, title, description string, p models.Priority, assignees []models.User, creator models.User, due *time.Time, created, updated time.Time) models.Task {
	return models.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    p,
		Assignees:   assignees,
		Creator:     &creator,
		DueDate:     due,
		CreatedAt:   created,
		UpdatedAt:   updated,
		Comments:    []models.Comment{},
		Attachments: []string{},
	}
}

func demoBoards() []models.Board {
	users := DemoUsers()
	john, jane, bob := users[0], users[1], users[2]

	return []models.Board{
		{
			ID:          "1",
			Name:        "Website Redesign",
			Description: "Complete redesign of company website",
			CreatedAt:   day(2024, time.January, 15),
			UpdatedAt:   day(2024, time.January, 20),
			TeamMembers: users,
			Owner:       john,
			Columns: []models.Column{
				{ID: "col-1", Title: "To Do", Order: 0, Tasks: []models.Task{
					demoTask("task-1", "Design new homepage layout",
						"# Homepage Design\n\nCreate a modern, responsive layout for the homepage that includes:\n- Hero section\n- Feature highlights\n- Testimonials\n- CTA sections",
						models.PriorityHigh, []models.User{john, jane}, john, datePtr(day(2024, time.February, 1)),
						day(2024, time.January, 15), day(2024, time.January, 15)),
					demoTask("task-2", "Setup development environment",
						"Configure development tools and environments for the project.",
						models.PriorityMedium, []models.User{bob}, jane, nil,
						day(2024, time.January, 16), day(2024, time.January, 16)),
				}},
				{ID: "col-2", Title: "In Progress", Order: 1, Tasks: []models.Task{
					demoTask("task-3", "Implement navigation component",
						"Build responsive navigation with mobile menu support.",
						models.PriorityHigh, []models.User{jane}, john, datePtr(day(2024, time.January, 25)),
						day(2024, time.January, 17), day(2024, time.January, 20)),
				}},
				{ID: "col-3", Title: "Done", Order: 2, Tasks: []models.Task{
					demoTask("task-4", "Project planning meeting",
						"Initial project planning and requirement gathering.",
						models.PriorityMedium, users, john, nil,
						day(2024, time.January, 10), day(2024, time.January, 15)),
				}},
			},
		},
		{
			ID:          "2",
			Name:        "Mobile App Development",
			Description: "iOS and Android app development",
			CreatedAt:   day(2024, time.January, 10),
			UpdatedAt:   day(2024, time.January, 18),
			TeamMembers: []models.User{john, bob},
			Owner:       jane,
			Columns: []models.Column{
				{ID: "col-4", Title: "To Do", Order: 0, Tasks: []models.Task{
					demoTask("task-5", "User authentication flow",
						"Implement login, signup, and password reset functionality.",
						models.PriorityHigh, []models.User{john}, jane, datePtr(day(2024, time.February, 5)),
						day(2024, time.January, 12), day(2024, time.January, 12)),
				}},
				{ID: "col-5", Title: "In Progress", Order: 1, Tasks: []models.Task{}},
				{ID: "col-6", Title: "Done", Order: 2, Tasks: []models.Task{}},
			},
		},
	}
}
