package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"thewall/internal/cache"
	"thewall/internal/model"
	"thewall/internal/queue"
	"thewall/internal/repository"
)

// ContentService applies ownership rules on top of the post and comment
// repositories. The wall cache and publisher are optional.
type ContentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	wallCache   cache.WallCache
	publisher   queue.Publisher
	log         zerolog.Logger
}

func NewContentService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	wallCache cache.WallCache,
	publisher queue.Publisher,
	log zerolog.Logger,
) *ContentService {
	return &ContentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		wallCache:   wallCache,
		publisher:   publisher,
		log:         log.With().Str("component", "content_service").Logger(),
	}
}

// normalizeContent trims content and enforces the length limits.
func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", model.ErrContentRequired
	}
	if utf8.RuneCountInString(content) > model.MaxContentLength {
		return "", model.ErrContentTooLong
	}
	return content, nil
}

// ListWall returns every post with its thread, through the cache when one is configured.
func (s *ContentService) ListWall(ctx context.Context) ([]model.Post, error) {
	if s.wallCache == nil {
		return s.postRepo.ListWithThreads(ctx)
	}

	posts, found, err := s.wallCache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("wall cache read failed")
	} else if found {
		return posts, nil
	}

	// The generation is read before the database so a write committing in
	// between makes the Set below a no-op.
	gen, genErr := s.wallCache.Generation(ctx)
	if genErr != nil {
		s.log.Warn().Err(genErr).Msg("wall cache read failed")
	}

	posts, err = s.postRepo.ListWithThreads(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if err := s.wallCache.Set(ctx, gen, posts); err != nil && !errors.Is(err, cache.ErrStaleSnapshot) {
			s.log.Warn().Err(err).Msg("wall cache write failed")
		}
	}
	return posts, nil
}

func (s *ContentService) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *ContentService) GetComment(ctx context.Context, commentID int64) (*model.Comment, error) {
	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *ContentService) CreatePost(ctx context.Context, callerID int64, content string) (*model.Post, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.Create(ctx, callerID, content)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", callerID).Int64("post_id", post.ID).Msg("post created")
	s.afterWrite(ctx, queue.NewPostEvent(queue.EventPostCreated, post.ID, callerID))
	return post, nil
}

// CreateComment adds a top-level comment to a post.
func (s *ContentService) CreateComment(ctx context.Context, callerID, postID int64, content string) (*model.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Create(ctx, callerID, postID, content, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", callerID).Int64("post_id", postID).Int64("comment_id", comment.ID).Msg("comment created")
	s.afterWrite(ctx, queue.NewCommentEvent(queue.EventCommentCreated, postID, comment.ID, callerID))
	return comment, nil
}

// CreateReply answers a comment. Replying to a reply attaches the new reply
// to the same top-level comment, so threads stay two levels deep.
func (s *ContentService) CreateReply(ctx context.Context, callerID, parentCommentID int64, content string) (*model.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.GetByID(ctx, parentCommentID)
	if err != nil {
		if model.IsNotFound(err) {
			return nil, model.ErrParentCommentNotFound
		}
		return nil, err
	}

	targetID := parent.ID
	if parent.IsReply() {
		targetID = *parent.ParentCommentID
	}

	reply, err := s.commentRepo.Create(ctx, callerID, parent.PostID, content, &targetID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", callerID).
		Int64("post_id", parent.PostID).
		Int64("parent_comment_id", targetID).
		Int64("comment_id", reply.ID).
		Msg("reply created")
	s.afterWrite(ctx, queue.NewCommentEvent(queue.EventReplyCreated, parent.PostID, reply.ID, callerID))
	return reply, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, callerID, postID int64, content string) (*model.Post, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedPost(ctx, callerID, postID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.Update(ctx, postID, content)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, queue.NewPostEvent(queue.EventPostUpdated, postID, callerID))
	return post, nil
}

// DeletePost removes the post and its whole thread.
func (s *ContentService) DeletePost(ctx context.Context, callerID, postID int64) error {
	if _, err := s.ownedPost(ctx, callerID, postID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", callerID).Int64("post_id", postID).Msg("post deleted")
	s.afterWrite(ctx, queue.NewPostEvent(queue.EventPostDeleted, postID, callerID))
	return nil
}

func (s *ContentService) UpdateComment(ctx context.Context, callerID, commentID int64, content string) (*model.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	target, err := s.ownedComment(ctx, callerID, commentID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Update(ctx, commentID, content)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, queue.NewCommentEvent(queue.EventCommentUpdated, target.PostID, commentID, callerID))
	return comment, nil
}

// DeleteComment removes a comment or reply. A top-level comment takes its replies with it.
func (s *ContentService) DeleteComment(ctx context.Context, callerID, commentID int64) error {
	target, err := s.ownedComment(ctx, callerID, commentID)
	if err != nil {
		return err
	}

	deleted, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return err
	}

	s.log.Info().
		Int64("user_id", callerID).
		Int64("post_id", target.PostID).
		Int64("comment_id", commentID).
		Int("rows_deleted", deleted).
		Msg("comment deleted")
	s.afterWrite(ctx, queue.NewCommentEvent(queue.EventCommentDeleted, target.PostID, commentID, callerID))
	return nil
}

func (s *ContentService) ownedPost(ctx context.Context, callerID, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != callerID {
		return nil, model.ErrNotPostOwner
	}
	return post, nil
}

func (s *ContentService) ownedComment(ctx context.Context, callerID, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, model.ErrNotCommentOwner
	}
	return comment, nil
}

// afterWrite drops the wall snapshot and publishes the event. Failures are
// logged only: the write has already committed.
func (s *ContentService) afterWrite(ctx context.Context, event queue.WallEvent) {
	if s.wallCache != nil {
		if err := s.wallCache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Str("event", event.Type).Msg("wall cache invalidation failed")
		}
	}
	if s.publisher != nil {
		if _, err := s.publisher.Publish(ctx, queue.StreamWall, event); err != nil {
			s.log.Warn().Err(err).Str("event", event.Type).Int64("post_id", event.PostID).Msg("failed to publish wall event")
		}
	}
}
