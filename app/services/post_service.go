package services

import (
	"context"
	"fmt"
	"log"

	"inkwell/app/auth"
	"inkwell/app/errs"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// DefaultPageSize is the public listing page size when the caller
// does not specify one.
const DefaultPageSize = 5

const listingCachePrefix = "blogs:approved:"

// ListingCache caches rendered public listing pages. Implementations
// must tolerate concurrent use; a nil cache disables caching.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	DelPrefix(ctx context.Context, prefix string) error
}

// PublicListing is one page of approved posts.
type PublicListing struct {
	Blogs      []*models.Post `json:"blogs"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// PostService runs the moderation workflow over the post store.
type PostService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	cache ListingCache
}

// NewPostService creates a new PostService. cache may be nil.
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, cache ListingCache) *PostService {
	return &PostService{posts: posts, users: users, cache: cache}
}

// Submit validates a draft and enters it into the moderation queue as
// pending, owned by the actor.
func (s *PostService) Submit(ctx context.Context, actor *auth.Identity, draft models.PostDraft) (*models.Post, error) {
	if !Allow(actor, ActionSubmit, nil) {
		return nil, errs.Authentication("authentication required")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	post := draft.NewPost(actor.ID)
	if err := s.posts.Create(post); err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidateListings(ctx)
	return post, nil
}

// Get returns a post by ID regardless of status: direct links to
// pending or rejected posts stay readable when the ID is known.
func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err == repositories.ErrNotFound {
		return nil, errs.NotFound("post not found")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return post, nil
}

// ListPublic returns one page of approved posts, optionally narrowed
// to a category. Only approved posts are ever visible here.
func (s *PostService) ListPublic(ctx context.Context, page, limit int, category *models.Category) (*PublicListing, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	key := listingCacheKey(page, limit, category)
	if s.cache != nil {
		var cached PublicListing
		if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	approved := models.StatusApproved
	filter := repositories.PostFilter{Status: &approved, Category: category}

	total, err := s.posts.Count(filter)
	if err != nil {
		return nil, errs.Internal(err)
	}
	posts, err := s.posts.List(filter, limit, (page-1)*limit)
	if err != nil {
		return nil, errs.Internal(err)
	}

	listing := &PublicListing{
		Blogs:      posts,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, listing); err != nil {
			log.Printf("listing cache set failed: %v", err)
		}
	}
	return listing, nil
}

// ListAdmin returns every post newest-first, each annotated with its
// owner, for moderation decisions.
func (s *PostService) ListAdmin(ctx context.Context, actor *auth.Identity) ([]*models.PostWithOwner, error) {
	if !Allow(actor, ActionListAll, nil) {
		return nil, errs.Authorization("admin access required")
	}

	posts, err := s.posts.ListNewestFirst()
	if err != nil {
		return nil, errs.Internal(err)
	}

	annotated := make([]*models.PostWithOwner, 0, len(posts))
	for _, post := range posts {
		entry := &models.PostWithOwner{Post: *post}
		owner, err := s.users.GetByID(post.UserID)
		if err == nil {
			entry.Owner = owner.OwnerInfo()
		} else if err != repositories.ErrNotFound {
			return nil, errs.Internal(err)
		}
		annotated = append(annotated, entry)
	}
	return annotated, nil
}

// Edit applies a partial update. Permitted for the owner or an admin;
// changed fields are re-validated with the submission rules. Status is
// never touched, so an edited approved post stays approved.
func (s *PostService) Edit(ctx context.Context, actor *auth.Identity, id int, patch models.PostPatch) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Allow(actor, ActionEdit, post) {
		return nil, errs.Authorization("access denied")
	}

	if !patch.Apply(post) {
		return post, nil
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.posts.Update(post); err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidateListings(ctx)
	return post, nil
}

// Approve marks a post publicly visible. Admin only, idempotent.
func (s *PostService) Approve(ctx context.Context, actor *auth.Identity, id int) (*models.Post, error) {
	return s.setStatus(ctx, actor, ActionApprove, id, models.StatusApproved)
}

// Reject marks a post rejected. Admin only, idempotent.
func (s *PostService) Reject(ctx context.Context, actor *auth.Identity, id int) (*models.Post, error) {
	return s.setStatus(ctx, actor, ActionReject, id, models.StatusRejected)
}

// setStatus is an unconditional status write: repeating it is a no-op
// success, and two racing admin calls resolve last-write-wins at the
// store (accepted for this workflow, no version check).
func (s *PostService) setStatus(ctx context.Context, actor *auth.Identity, action Action, id int, status models.Status) (*models.Post, error) {
	if !Allow(actor, action, nil) {
		return nil, errs.Authorization("admin access required")
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Status = status
	if err := s.posts.Update(post); err != nil {
		return nil, errs.Internal(err)
	}
	s.invalidateListings(ctx)
	return post, nil
}

// Delete removes a post permanently. Admin only.
func (s *PostService) Delete(ctx context.Context, actor *auth.Identity, id int) error {
	if !Allow(actor, ActionDelete, nil) {
		return errs.Authorization("admin access required")
	}
	err := s.posts.Delete(id)
	if err == repositories.ErrNotFound {
		return errs.NotFound("post not found")
	}
	if err != nil {
		return errs.Internal(err)
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *PostService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DelPrefix(ctx, listingCachePrefix); err != nil {
		log.Printf("listing cache invalidation failed: %v", err)
	}
}

func listingCacheKey(page, limit int, category *models.Category) string {
	cat := "all"
	if category != nil {
		cat = string(*category)
	}
	return fmt.Sprintf("%sp%d:l%d:c%s", listingCachePrefix, page, limit, cat)
}
