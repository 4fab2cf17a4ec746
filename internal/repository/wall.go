package repository

import (
	"context"

	"thewall/internal/model"
)

// ListWithThreads loads all posts and all comments in two queries and
// assembles the tree in memory.
func (r *postRepository) ListWithThreads(ctx context.Context) ([]model.Post, error) {
	var postRows []postRow
	err := r.db.SelectContext(ctx, &postRows, postSelect+`
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	if len(postRows) == 0 {
		return []model.Post{}, nil
	}

	var commentRows []commentRow
	err = r.db.SelectContext(ctx, &commentRows, commentSelect+`
		ORDER BY c.created_at ASC, c.id ASC
	`)
	if err != nil {
		return nil, storeErr("list comments", err)
	}

	return buildThreads(postRows, commentRows), nil
}

// buildThreads expects comments oldest-first. Top-level comments come out
// newest-first and replies keep the input order.
func buildThreads(postRows []postRow, commentRows []commentRow) []model.Post {
	topLevel := make(map[int64]*model.Comment)
	byPost := make(map[int64][]*model.Comment)

	for _, row := range commentRows {
		if row.ParentCommentID != nil {
			continue
		}
		c := row.toModel()
		topLevel[c.ID] = &c
		byPost[c.PostID] = append(byPost[c.PostID], &c)
	}

	for _, row := range commentRows {
		if row.ParentCommentID == nil {
			continue
		}
		parent, ok := topLevel[*row.ParentCommentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, row.toModel())
	}

	posts := make([]model.Post, len(postRows))
	for i, row := range postRows {
		posts[i] = row.toModel()
		comments := byPost[row.ID]
		for j := len(comments) - 1; j >= 0; j-- {
			posts[i].Comments = append(posts[i].Comments, *comments[j])
		}
	}
	return posts
}
