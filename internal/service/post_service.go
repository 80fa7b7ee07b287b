package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/lkzdsb-lab/postsvc/internal/model"
)

// PostRepository is the storage the service needs. *database.PostRepository implements it.
type PostRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Post, bool, error)
	List(ctx context.Context, skip, limit int) ([]model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, id int64, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e model.PostEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.PostEvent) error { return nil }

var _ EventPublisher = NoopPublisher{}

type PostService struct {
	repo   PostRepository
	events EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewPostService(repo PostRepository, events EventPublisher, logger zerolog.Logger) *PostService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &PostService{
		repo:   repo,
		events: events,
		logger: logger.With().Str("component", "post_service").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetPostOr404 is the single existence check shared by every operation on one post.
func (s *PostService) GetPostOr404(ctx context.Context, id int64) (*model.Post, error) {
	post, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	if !found {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, page Page) ([]model.Post, error) {
	list, err := s.repo.List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if list == nil {
		list = []model.Post{}
	}
	return list, nil
}

// CreatePost inserts the post and returns it as stored, re-read by its new id.
func (s *PostService) CreatePost(ctx context.Context, in model.PostCreate) (*model.Post, error) {
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}

	post := in.ToPost(s.now())
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	created, err := s.GetPostOr404(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, model.EventPostCreated, created.ID)
	return created, nil
}

// PatchPost applies only the fields present in the request, filtered by the path id.
func (s *PostService) PatchPost(ctx context.Context, id int64, in model.PostPatch) (*model.Post, error) {
	if err := ValidatePatch(in); err != nil {
		return nil, err
	}

	post, err := s.GetPostOr404(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Empty() {
		return post, nil
	}

	if _, err := s.repo.Update(ctx, id, in.Changes()); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}

	updated, err := s.GetPostOr404(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, model.EventPostUpdated, id)
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	post, err := s.GetPostOr404(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	s.publish(ctx, model.EventPostDeleted, post.ID)
	return nil
}

// publish is best effort: the mutation is already committed.
func (s *PostService) publish(ctx context.Context, eventType string, id int64) {
	if err := s.events.Publish(ctx, model.NewPostEvent(eventType, id)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Int64("post_id", id).Msg("publish post event failed")
	}
}

// ValidateCreate repeats the binding rules so the service is safe to call without gin.
func ValidateCreate(in model.PostCreate) error {
	verr := &ValidationError{}
	if in.Title == nil {
		verr.add("field required", "value_error.missing", "body", model.ColumnTitle)
	} else {
		checkTitle(verr, *in.Title)
	}
	if in.Content == nil {
		verr.add("field required", "value_error.missing", "body", model.ColumnContent)
	}
	return verr.orNil()
}

func ValidatePatch(in model.PostPatch) error {
	verr := &ValidationError{}
	if in.Title.Null {
		verr.add("none is not an allowed value", "type_error.none.not_allowed", "body", model.ColumnTitle)
	} else if in.Title.Set {
		checkTitle(verr, in.Title.Value)
	}
	if in.Content.Null {
		verr.add("none is not an allowed value", "type_error.none.not_allowed", "body", model.ColumnContent)
	}
	if in.PublicationDate.Null {
		verr.add("none is not an allowed value", "type_error.none.not_allowed", "body", model.ColumnPublicationDate)
	}
	return verr.orNil()
}

func checkTitle(verr *ValidationError, title string) {
	if utf8.RuneCountInString(title) > model.TitleMaxLength {
		verr.add(fmt.Sprintf("ensure this value has at most %d characters", model.TitleMaxLength),
			"value_error.any_str.max_length", "body", model.ColumnTitle)
	}
}
