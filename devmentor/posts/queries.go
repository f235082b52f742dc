package posts

const (
	postColumns = `
		p.id, p.user_id, u.username, u.display_name, u.avatar_url,
		p.content, p.tags, p.comment_count,
		EXISTS (SELECT 1 FROM bookmarks b WHERE b.post_id = p.id AND b.user_id = $1),
		p.created_at, p.updated_at
	`

	queryCreate = `
		INSERT INTO posts (user_id, content, tags)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	queryGet = `
		SELECT ` + postColumns + `
		FROM posts p
		INNER JOIN users u ON p.user_id = u.id
		WHERE p.id = $2
	`

	queryCountFeed = `
		SELECT COUNT(*)
		FROM posts p
		WHERE ($1 = '' OR p.content ILIKE '%' || $1 || '%')
		  AND (cardinality($2::text[]) = 0 OR p.tags && $2::text[])
	`

	queryListFeed = `
		SELECT ` + postColumns + `
		FROM posts p
		INNER JOIN users u ON p.user_id = u.id
		WHERE ($2 = '' OR p.content ILIKE '%' || $2 || '%')
		  AND (cardinality($3::text[]) = 0 OR p.tags && $3::text[])
		ORDER BY p.created_at DESC
		LIMIT $4 OFFSET $5
	`

	queryCountByUser = `
		SELECT COUNT(*)
		FROM posts
		WHERE user_id = $1
	`

	queryListByUser = `
		SELECT ` + postColumns + `
		FROM posts p
		INNER JOIN users u ON p.user_id = u.id
		WHERE p.user_id = $2
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4
	`

	queryUpdate = `
		UPDATE posts
		SET content = COALESCE($1, content),
		    tags = COALESCE($2, tags),
		    updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at
	`

	queryDelete = `
		DELETE FROM posts
		WHERE id = $1 AND user_id = $2
	`

	queryAddComment = `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	queryBumpCommentCount = `
		UPDATE posts
		SET comment_count = comment_count + 1
		WHERE id = $1
	`

	queryListComments = `
		SELECT c.id, c.post_id, c.user_id, u.username, u.display_name, u.avatar_url, c.content, c.created_at
		FROM comments c
		INNER JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	queryAddBookmark = `
		INSERT INTO bookmarks (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`

	queryRemoveBookmark = `
		DELETE FROM bookmarks
		WHERE user_id = $1 AND post_id = $2
	`

	queryCountBookmarked = `
		SELECT COUNT(*)
		FROM bookmarks
		WHERE user_id = $1
	`

	queryListBookmarked = `
		SELECT ` + postColumns + `
		FROM bookmarks b
		INNER JOIN posts p ON b.post_id = p.id
		INNER JOIN users u ON p.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`
)
