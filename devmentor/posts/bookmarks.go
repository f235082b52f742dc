package posts

import (
	"context"
)

// Bookmark saves a post for the user. Saving an already-bookmarked
// post is a no-op.
func (r *Repository) Bookmark(ctx context.Context, userID, postID string) error {
	_, err := r.db.Exec(ctx, queryAddBookmark, userID, postID)
	return err
}

// Unbookmark removes a saved post for the user
func (r *Repository) Unbookmark(ctx context.Context, userID, postID string) error {
	_, err := r.db.Exec(ctx, queryRemoveBookmark, userID, postID)
	return err
}

// ListBookmarked returns the user's saved posts, most recently saved first
func (r *Repository) ListBookmarked(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountBookmarked, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryListBookmarked, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	posts, err := r.scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
