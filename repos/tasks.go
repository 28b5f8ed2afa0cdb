package repos

import (
	"context"

	"manager/models"
	"manager/pkg/store"
)

type Tasks struct {
	col store.Collection[models.Task, *models.Task]
}

func NewTasks(db *store.DB) *Tasks {
	return &Tasks{col: store.NewCollection[models.Task](db, "t")}
}

type CreateTaskInput struct {
	Title      string `json:"title"`
	Desc       string `json:"desc"`
	Due        string `json:"due"`
	AssignedTo string `json:"assignedTo"`
}

func (r *Tasks) Create(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, invalidf("missing title")
	}
	if in.AssignedTo == "" {
		return nil, invalidf("missing assignedTo")
	}
	t := models.Task{Title: in.Title, Desc: in.Desc, Due: in.Due, AssignedTo: in.AssignedTo}
	if err := r.col.Create(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all tasks, or only those assigned to user when given.
func (r *Tasks) List(ctx context.Context, user string) ([]models.Task, error) {
	if user == "" {
		return r.col.List(ctx)
	}
	return r.col.List(ctx, store.Eq("AssignedTo", user))
}

// ToggleDone flips the task's done flag and returns the updated record.
func (r *Tasks) ToggleDone(ctx context.Context, id string) (*models.Task, error) {
	return r.col.Update(ctx, id, func(t *models.Task) { t.Done = !t.Done })
}
