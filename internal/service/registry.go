package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agoranews/comment-gateway/internal/cache"
	"github.com/agoranews/comment-gateway/internal/client"
)

// viewTTL is how long an idle view is kept. Bearers rotate every session,
// so without eviction each one would pin a full forest for the life of the
// process. A viewer returning past the TTL gets a fresh controller and a
// refetch on the next Fetch.
const viewTTL = 30 * time.Minute

// ThreadRegistry hands out one ThreadService per open view. A view is a
// (subject, viewer) pair: each authenticated viewer owns a private forest
// copy, and all anonymous readers of a subject share one. No locking is
// needed across views because no forest is ever shared between them.
type ThreadRegistry struct {
	api     CommentAPI
	cache   *cache.ListCache
	session *client.SessionSource
	log     *zap.Logger

	mu    sync.Mutex
	views map[string]*viewEntry
}

type viewEntry struct {
	svc      *ThreadService
	lastSeen time.Time
}

func NewThreadRegistry(api CommentAPI, listCache *cache.ListCache, session *client.SessionSource, log *zap.Logger) *ThreadRegistry {
	return &ThreadRegistry{
		api:     api,
		cache:   listCache,
		session: session,
		log:     log,
		views:   make(map[string]*viewEntry),
	}
}

// View returns the controller for this subject and viewer, creating it on
// first use. Each lookup also sweeps views idle past the TTL.
func (r *ThreadRegistry) View(subject, token string) *ThreadService {
	key := subject + ":" + viewerKey(token)
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, entry := range r.views {
		if now.Sub(entry.lastSeen) > viewTTL {
			delete(r.views, k)
		}
	}

	if entry, ok := r.views[key]; ok {
		entry.lastSeen = now
		return entry.svc
	}

	svc := NewThreadService(uuid.NewString(), subject, r.api, r.cache, r.session, r.log)
	r.views[key] = &viewEntry{svc: svc, lastSeen: now}
	return svc
}

// viewerKey collapses a bearer into a stable map key without holding the
// token itself in memory longer than the request.
func viewerKey(token string) string {
	if token == "" {
		return "anon"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
