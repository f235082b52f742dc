package posts

import (
	"context"
)

// AddComment inserts a comment and bumps the post's comment counter
func (r *Repository) AddComment(
	ctx context.Context,
	postID, userID string,
	req AddCommentRequest,
) (*Comment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	comment := Comment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}

	err = tx.QueryRow(ctx, queryAddComment, postID, userID, req.Content).Scan(
		&comment.ID,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, queryBumpCommentCount, postID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListComments returns a post's comments, oldest first
func (r *Repository) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := r.db.Query(ctx, queryListComments, postID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var comments []Comment

	for rows.Next() {
		var c Comment
		err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.UserID,
			&c.AuthorUsername,
			&c.AuthorName,
			&c.AuthorAvatarURL,
			&c.Content,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
