package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(
	ctx context.Context,
	userID string,
	req CreatePostRequest,
) (*Post, error) {
	// initialize empty array if nil to avoid null in JSON responses
	tags := req.Tags

	if tags == nil {
		tags = []string{}
	}

	post := Post{
		UserID:  userID,
		Content: req.Content,
		Tags:    tags,
	}

	err := r.db.QueryRow(
		ctx,
		queryCreate,
		userID,
		req.Content,
		tags,
	).Scan(
		&post.ID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *Repository) scanPosts(rows pgx.Rows) ([]Post, error) {
	defer rows.Close()

	var posts []Post

	for rows.Next() {
		var p Post
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.AuthorUsername,
			&p.AuthorName,
			&p.AuthorAvatarURL,
			&p.Content,
			&p.Tags,
			&p.CommentCount,
			&p.Bookmarked,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// ListFeed returns the community feed, newest first. viewerID marks
// which posts the viewer has bookmarked and may be empty for anonymous
// reads.
func (r *Repository) ListFeed(
	ctx context.Context,
	viewerID string,
	filter FeedFilter,
	limit, offset int,
) ([]Post, int, error) {
	tags := filter.Tags

	if tags == nil {
		tags = []string{}
	}

	// get total count first
	var total int
	if err := r.db.QueryRow(ctx, queryCountFeed, filter.Search, tags).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryListFeed, viewerID, filter.Search, tags, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	posts, err := r.scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ListByUser returns a user's posts, newest first
func (r *Repository) ListByUser(
	ctx context.Context,
	viewerID, userID string,
	limit, offset int,
) ([]Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountByUser, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryListByUser, viewerID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	posts, err := r.scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *Repository) Get(ctx context.Context, viewerID, postID string) (*Post, error) {
	var p Post

	err := r.db.QueryRow(ctx, queryGet, viewerID, postID).Scan(
		&p.ID,
		&p.UserID,
		&p.AuthorUsername,
		&p.AuthorName,
		&p.AuthorAvatarURL,
		&p.Content,
		&p.Tags,
		&p.CommentCount,
		&p.Bookmarked,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		return nil, err
	}

	return &p, nil
}

func (r *Repository) Update(
	ctx context.Context,
	postID, userID string,
	req UpdatePostRequest,
) (*Post, error) {
	post, err := r.Get(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(
		ctx,
		queryUpdate,
		req.Content,
		req.Tags,
		postID,
		userID,
	).Scan(&post.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		return nil, err
	}

	if req.Content != nil {
		post.Content = *req.Content
	}

	if req.Tags != nil {
		post.Tags = req.Tags
	}

	return post, nil
}

func (r *Repository) Delete(ctx context.Context, postID, userID string) error {
	result, err := r.db.Exec(ctx, queryDelete, postID, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}
