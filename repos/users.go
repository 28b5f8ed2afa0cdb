package repos

import (
	"context"

	"gorm.io/datatypes"

	"manager/models"
	"manager/pkg/store"
)

// Credentials of the administrator created on first startup against an empty
// collection.
const (
	seedAdminLogin    = "Gracjan"
	seedAdminPassword = "Gracjan33201"
)

// Identity is the only thing a successful login discloses.
type Identity struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}

// Users wraps the user collection with credential policy.
type Users struct {
	col   store.Collection[models.User, *models.User]
	creds Credentials
}

func NewUsers(db *store.DB, creds Credentials) *Users {
	return &Users{col: store.NewCollection[models.User](db, "u"), creds: creds}
}

// EnsureSeed creates the administrator when the collection is empty. Safe to
// call on every startup.
func (r *Users) EnsureSeed(ctx context.Context) error {
	existing, err := r.col.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	hashed, err := r.creds.Hash(seedAdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Login:    seedAdminLogin,
		Password: hashed,
		Role:     models.RoleAdmin,
		Profile:  datatypes.JSONMap{},
	}
	return r.col.Create(ctx, &admin)
}

// CreateUserInput carries the accepted fields for a new account.
type CreateUserInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// Create registers an employee account. Logins are unique: the legacy store
// never enforced this, which made first-match-wins lookups ambiguous, so
// duplicates are rejected here at create time instead.
func (r *Users) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Login == "" || in.Password == "" {
		return nil, invalidf("missing")
	}
	taken, err := r.col.List(ctx, store.Eq("Login", in.Login))
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, invalidf("login taken")
	}
	hashed, err := r.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Login:    in.Login,
		Password: hashed,
		Role:     models.RoleEmployee,
		Fullname: in.Fullname,
		Profile:  datatypes.JSONMap{},
	}
	if err := r.col.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	return r.col.List(ctx)
}

// Login checks credentials and discloses nothing beyond login and role. Any
// mismatch yields the same generic failure.
func (r *Users) Login(ctx context.Context, login, password string) (*Identity, error) {
	found, err := r.col.List(ctx, store.Eq("Login", login))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || !r.creds.Verify(found[0].Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &Identity{Login: found[0].Login, Role: found[0].Role}, nil
}

// SetProfile merges data into the user's profile bag, marks the profile done
// and promotes a supplied fullname to the top-level field. The merged map is
// rebuilt rather than mutated in place so previously handed-out records stay
// intact.
func (r *Users) SetProfile(ctx context.Context, login string, data map[string]any) (*models.User, error) {
	found, err := r.col.List(ctx, store.Eq("Login", login))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, store.ErrNotFound
	}
	return r.col.Update(ctx, found[0].ID, func(u *models.User) {
		merged := datatypes.JSONMap{}
		for k, v := range u.Profile {
			merged[k] = v
		}
		for k, v := range data {
			merged[k] = v
		}
		u.Profile = merged
		u.ProfileDone = true
		if fn, ok := data["fullname"].(string); ok && fn != "" {
			u.Fullname = fn
		}
	})
}
