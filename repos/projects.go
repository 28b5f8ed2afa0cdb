package repos

import (
	"context"

	"gorm.io/datatypes"

	"manager/models"
	"manager/pkg/store"
)

type Projects struct {
	col store.Collection[models.Project, *models.Project]
}

func NewProjects(db *store.DB) *Projects {
	return &Projects{col: store.NewCollection[models.Project](db, "p")}
}

type CreateProjectInput struct {
	Name  string   `json:"name"`
	Logo  string   `json:"logo"`
	Notes []string `json:"notes"`
}

func (r *Projects) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if in.Name == "" {
		return nil, invalidf("name")
	}
	if in.Notes == nil {
		in.Notes = []string{}
	}
	p := models.Project{
		Name:  in.Name,
		Logo:  in.Logo,
		Notes: datatypes.JSONSlice[string](in.Notes),
	}
	if err := r.col.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Projects) List(ctx context.Context) ([]models.Project, error) {
	return r.col.List(ctx)
}

// AddNote prepends text to the project's notes, newest first. The slice is
// rebuilt so records listed before the update keep their own view.
func (r *Projects) AddNote(ctx context.Context, id, text string) (*models.Project, error) {
	if text == "" {
		return nil, invalidf("text")
	}
	return r.col.Update(ctx, id, func(p *models.Project) {
		notes := make(datatypes.JSONSlice[string], 0, len(p.Notes)+1)
		notes = append(notes, text)
		notes = append(notes, p.Notes...)
		p.Notes = notes
	})
}
