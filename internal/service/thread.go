package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agoranews/comment-gateway/internal/cache"
	"github.com/agoranews/comment-gateway/internal/client"
	"github.com/agoranews/comment-gateway/internal/comment"
	"github.com/agoranews/comment-gateway/internal/model"
)

// ErrValidation covers client-side rejections: empty content, empty reason,
// a missing token on a mutating action, an unknown sort or reaction. No
// network request is made for these.
var ErrValidation = errors.New("invalid input")

// CommentAPI is the slice of the remote API the controller needs.
type CommentAPI interface {
	List(ctx context.Context, subject string, sort model.SortMode, token string) (*client.ListResponse, error)
	Create(ctx context.Context, subject, content string, parentID *string, stance model.Stance, token string) (*model.CommentRecord, error)
	Update(ctx context.Context, id, content, token string) (*model.CommentRecord, error)
	Delete(ctx context.Context, id, token string) error
	React(ctx context.Context, id string, reaction model.Reaction, token string) (*model.ReactionState, error)
	ClearReaction(ctx context.Context, id, token string) (*model.ReactionState, error)
	Report(ctx context.Context, id, reason, token string) (*client.ReportResponse, error)
}

// ThreadService reconciles one view's comment forest with the remote API.
// Per action it decides between a targeted local patch (edit, soft-delete,
// react — the server response carries everything needed) and a full refetch
// (create and sort changes, where the server assigns ids and ordering).
//
// The mutex guards the forest's structure only. Two in-flight actions on
// the same comment id are not sequenced against each other: the last server
// response to resolve wins, and the next refetch reconciles any drift.
type ThreadService struct {
	viewID  string
	subject string
	api     CommentAPI
	cache   *cache.ListCache
	session *client.SessionSource
	log     *zap.Logger

	mu        sync.Mutex
	sort      model.SortMode
	forest    model.Forest
	total     int
	loaded    bool
	fetchedAt time.Time
}

func NewThreadService(viewID, subject string, api CommentAPI, listCache *cache.ListCache, session *client.SessionSource, log *zap.Logger) *ThreadService {
	return &ThreadService{
		viewID:  viewID,
		subject: subject,
		api:     api,
		cache:   listCache,
		session: session,
		log:     log,
		sort:    model.SortLatest,
		forest:  model.Forest{},
	}
}

// staleAfter bounds how long a loaded forest is served without asking the
// remote API again. A returning viewer inside the window gets the held
// forest; past it the next Fetch refetches even with an unchanged sort.
const staleAfter = 2 * time.Minute

// Fetch returns the forest for this view, refetching from the remote API on
// first load, when the requested sort differs from the current one, or when
// the held forest has gone stale. The stance filter is a client-local
// projection and never triggers a refetch.
//
// The active sort is committed by refetch, after the list call succeeds: a
// failed sort change leaves both the forest and the sort as they were, so
// retrying the same sort refetches instead of serving the old forest under
// the new label.
func (s *ThreadService) Fetch(ctx context.Context, token string, sort model.SortMode, stance model.Stance) (*model.ThreadResponse, error) {
	if sort != "" && !sort.Valid() {
		return nil, fmt.Errorf("%w: unknown sort mode %q", ErrValidation, sort)
	}

	s.mu.Lock()
	requested := s.sort
	if sort != "" {
		requested = sort
	}
	needRefetch := !s.loaded || requested != s.sort || time.Since(s.fetchedAt) > staleAfter
	s.mu.Unlock()

	if needRefetch {
		if err := s.refetch(ctx, token, requested); err != nil {
			return nil, err
		}
	}

	return s.snapshot(stance), nil
}

// Create posts a new root comment or reply, then refetches the whole
// thread: the server assigns the id and decides where the comment lands
// under the current sort mode, so a local splice would guess wrong.
func (s *ThreadService) Create(ctx context.Context, token, content string, parentID *string, stance model.Stance) (*model.ThreadResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if err := requireToken(token); err != nil {
		return nil, err
	}

	if _, err := s.api.Create(ctx, s.subject, content, parentID, stance, token); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	if err := s.refetch(ctx, token, s.currentSort()); err != nil {
		return nil, err
	}
	return s.snapshot(""), nil
}

// Edit applies the server's updated record to the one matching node.
// No refetch: ids and ordering are unaffected by a content change.
func (s *ThreadService) Edit(ctx context.Context, token, id, content string) (*model.ThreadResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if err := requireToken(token); err != nil {
		return nil, err
	}

	updated, err := s.api.Update(ctx, id, content, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !comment.SetContent(s.forest, id, updated.Content) {
		// Stale id: corrected by the next refetch, not an error.
		s.log.Debug("edit target no longer in forest",
			zap.String("view_id", s.viewID), zap.String("comment_id", id))
	}
	s.mu.Unlock()

	s.invalidate(ctx)
	return s.snapshot(""), nil
}

// SoftDelete marks the node deleted in place. Replies stay attached and
// the node keeps rendering as a placeholder.
func (s *ThreadService) SoftDelete(ctx context.Context, token, id string) (*model.ThreadResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	if err := s.api.Delete(ctx, id, token); err != nil {
		return nil, err
	}

	s.mu.Lock()
	comment.MarkDeleted(s.forest, id)
	s.mu.Unlock()

	s.invalidate(ctx)
	return s.snapshot(""), nil
}

// React sends the reaction and applies the server's authoritative counts.
// Counts are never bumped ahead of the response.
func (s *ThreadService) React(ctx context.Context, token, id string, reaction model.Reaction) (*model.ReactionState, error) {
	if reaction != model.ReactionLike && reaction != model.ReactionDislike {
		return nil, fmt.Errorf("%w: unknown reaction %q", ErrValidation, reaction)
	}
	if err := requireToken(token); err != nil {
		return nil, err
	}

	state, err := s.api.React(ctx, id, reaction, token)
	if err != nil {
		return nil, err
	}

	s.applyReaction(ctx, id, *state)
	return state, nil
}

// ClearReaction removes the caller's reaction, same patch path as React.
func (s *ThreadService) ClearReaction(ctx context.Context, token, id string) (*model.ReactionState, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	state, err := s.api.ClearReaction(ctx, id, token)
	if err != nil {
		return nil, err
	}

	s.applyReaction(ctx, id, *state)
	return state, nil
}

// Report forwards a report. The forest is untouched.
func (s *ThreadService) Report(ctx context.Context, token, id, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if err := requireToken(token); err != nil {
		return "", err
	}

	res, err := s.api.Report(ctx, id, reason, token)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func (s *ThreadService) applyReaction(ctx context.Context, id string, state model.ReactionState) {
	s.mu.Lock()
	comment.SetReaction(s.forest, id, state)
	s.mu.Unlock()
	s.invalidate(ctx)
}

// refetch replaces the forest wholesale from the remote API. Anonymous
// fetches go through the list cache; a caller token bypasses it because
// current_user_reaction is per-user.
func (s *ThreadService) refetch(ctx context.Context, token string, sort model.SortMode) error {
	fetchToken := token
	if fetchToken == "" && s.session != nil {
		sessionToken, err := s.session.Token()
		if err != nil {
			return err
		}
		fetchToken = sessionToken
	}

	var records []model.CommentRecord
	var total int

	cacheable := token == ""
	if cacheable {
		if cached, cachedTotal, ok := s.cache.Get(ctx, s.subject, sort); ok {
			records, total = cached, cachedTotal
		}
	}

	if records == nil {
		res, err := s.api.List(ctx, s.subject, sort, fetchToken)
		if err != nil {
			return err
		}
		records, total = res.Comments, res.Total
		if token == "" && fetchToken != "" {
			// The list was fetched with the gateway's own session, so
			// current_user_reaction belongs to that account, not the
			// anonymous caller.
			records = comment.StripViewerState(records)
		}
		if cacheable {
			s.cache.Set(ctx, s.subject, sort, records, total)
		}
	}

	forest := comment.Build(comment.FromRecords(records))

	s.mu.Lock()
	s.forest = forest
	s.total = total
	s.sort = sort
	s.loaded = true
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.log.Debug("thread refetched",
		zap.String("view_id", s.viewID),
		zap.String("subject", s.subject),
		zap.String("sort", string(sort)),
		zap.Int("total", total))
	return nil
}

// snapshot deep-copies the projected forest while holding the lock. The
// response is serialized after the lock is released, and a concurrent action
// on the same view may be patching nodes by then.
func (s *ThreadService) snapshot(stance model.Stance) *model.ThreadResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &model.ThreadResponse{
		Status:  "success",
		Subject: s.subject,
		Sort:    s.sort,
		Total:   s.total,
		Stance:  stance,
		Forest:  comment.CloneForest(comment.FilterByStance(s.forest, stance)),
	}
}

func (s *ThreadService) currentSort() model.SortMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

func (s *ThreadService) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, s.subject)
}

// requireToken rejects mutating actions without a bearer and short-circuits
// bearers that are already expired locally — the remote API would answer
// 401 anyway, so the session-expired signal is raised without the round trip.
func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: auth token is required", ErrValidation)
	}
	if client.TokenExpired(token) {
		return client.ErrSessionExpired
	}
	return nil
}

