package services

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/logging"
)

// HistoryService keeps the user's post history, newest first.
//
// Deletion is confirmed-then-applied: the item is only removed locally after
// the backend accepted the DELETE.
type HistoryService struct {
	api client.Client
	log logging.Logger

	mu    sync.Mutex
	posts []models.HistoryPost
}

func NewHistoryService(api client.Client, log logging.Logger) *HistoryService {
	if log == nil {
		log = logging.Nop()
	}
	return &HistoryService{api: api, log: log.With("component", "history")}
}

// Load fetches the history and replaces local state. The backend returns
// posts oldest first; they are reversed for display.
func (h *HistoryService) Load(ctx context.Context) ([]models.HistoryPost, error) {
	posts, err := h.api.ListPosts(ctx)
	if err != nil {
		h.log.Warn(ctx, "load history failed", "error", err)
		return nil, err
	}

	posts = slices.Clone(posts)
	slices.Reverse(posts)

	h.mu.Lock()
	h.posts = posts
	h.mu.Unlock()

	h.log.Info(ctx, "history loaded", "posts", len(posts))
	return slices.Clone(posts), nil
}

// Posts returns a copy of the current list.
func (h *HistoryService) Posts() []models.HistoryPost {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.posts)
}

// Find looks a post up by raw or wrapped id.
func (h *HistoryService) Find(rawID string) (models.HistoryPost, bool) {
	id, err := models.NormalizePostID(rawID)
	if err != nil {
		return models.HistoryPost{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.IndexFunc(h.posts, func(p models.HistoryPost) bool { return p.ID == id })
	if i < 0 {
		return models.HistoryPost{}, false
	}
	return h.posts[i], true
}

// Delete removes the post on the backend and, only once that succeeded,
// drops exactly one matching item from the local list. On failure the list
// is untouched.
func (h *HistoryService) Delete(ctx context.Context, rawID string) error {
	id, err := models.NormalizePostID(rawID)
	if err != nil {
		return err
	}

	if err := h.api.DeletePost(ctx, id); err != nil {
		h.log.Warn(ctx, "delete failed", "id", id, "error", err)
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.IndexFunc(h.posts, func(p models.HistoryPost) bool { return p.ID == id })
	if i < 0 {
		h.log.Debug(ctx, "deleted post was not in local list", "id", id)
		return nil
	}
	h.posts = slices.Delete(slices.Clone(h.posts), i, i+1)
	h.log.Info(ctx, "post deleted", "id", id)
	return nil
}

// Reset drops the cached history, e.g. on logout.
func (h *HistoryService) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.posts = nil
}
