package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scanUser(row interface {
	Scan(dest ...any) error
}) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Username,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Bio,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by OAuth provider or creates a new one
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, username, displayName, avatarURL string,
) (*User, error) {
	return r.scanUser(r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		provider,
		providerID,
		email,
		username,
		displayName,
		avatarURL,
	))
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	return r.scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
}

// finds a user by their username
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.scanUser(r.db.QueryRow(ctx, queryFindByUsername, username))
}

// updates a user's display name, avatar URL, and bio
func (r *Repository) UpdateProfile(
	ctx context.Context,
	userID string,
	req *UpdateProfileRequest,
) (*User, error) {
	return r.scanUser(r.db.QueryRow(
		ctx,
		queryUpdateProfile,
		req.DisplayName,
		req.AvatarURL,
		req.Bio,
		userID,
	))
}

// updates a user's role
func (r *Repository) UpdateRole(ctx context.Context, userID, role string) (*User, error) {
	return r.scanUser(r.db.QueryRow(ctx, queryUpdateRole, role, userID))
}
