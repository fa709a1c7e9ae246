package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agoranews/comment-gateway/internal/client"
	"github.com/agoranews/comment-gateway/internal/comment"
	"github.com/agoranews/comment-gateway/internal/config"
	"github.com/agoranews/comment-gateway/internal/model"
)

type fakeAPI struct {
	records []model.CommentRecord
	total   int

	listCalls   int
	createCalls int
	updateCalls int

	lastListToken string

	err error
}

func (f *fakeAPI) List(ctx context.Context, subject string, sort model.SortMode, token string) (*client.ListResponse, error) {
	f.listCalls++
	f.lastListToken = token
	if f.err != nil {
		return nil, f.err
	}
	return &client.ListResponse{Total: f.total, Comments: f.records}, nil
}

func (f *fakeAPI) Create(ctx context.Context, subject, content string, parentID *string, stance model.Stance, token string) (*model.CommentRecord, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.CommentRecord{ID: "server-assigned", Content: content}, nil
}

func (f *fakeAPI) Update(ctx context.Context, id, content, token string) (*model.CommentRecord, error) {
	f.updateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.CommentRecord{ID: id, Content: content}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id, token string) error {
	return f.err
}

func (f *fakeAPI) React(ctx context.Context, id string, reaction model.Reaction, token string) (*model.ReactionState, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.ReactionState{LikeCount: 5, DislikeCount: 0, CurrentUserReaction: string(reaction)}, nil
}

func (f *fakeAPI) ClearReaction(ctx context.Context, id, token string) (*model.ReactionState, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.ReactionState{}, nil
}

func (f *fakeAPI) Report(ctx context.Context, id, reason, token string) (*client.ReportResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.ReportResponse{Message: "report received"}, nil
}

func parent(id string) *string { return &id }

func threadRecords() []model.CommentRecord {
	return []model.CommentRecord{
		{ID: "1", Content: "root", Status: model.StatusActive},
		{ID: "2", ParentID: parent("1"), Content: "reply", Status: model.StatusActive},
		{ID: "3", ParentID: parent("1"), Content: "other reply", Status: model.StatusActive},
	}
}

func newTestService(api CommentAPI) *ThreadService {
	return NewThreadService("view-1", "article-7", api, nil, nil, zap.NewNop())
}

func TestFetchBuildsForest(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)

	res, err := svc.Fetch(context.Background(), "", model.SortLatest, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Total != 3 || len(res.Forest) != 1 {
		t.Fatalf("total=%d roots=%d", res.Total, len(res.Forest))
	}
	if len(res.Forest[0].Children) != 2 {
		t.Fatalf("root should have 2 children")
	}
}

func TestFetchReusesForestForSameSort(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)

	svc.Fetch(context.Background(), "", model.SortLatest, "")
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	if api.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1 (no refetch without a sort change)", api.listCalls)
	}
}

func TestSortChangeTriggersRefetch(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)

	svc.Fetch(context.Background(), "", model.SortLatest, "")
	res, err := svc.Fetch(context.Background(), "", model.SortPopular, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if api.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2", api.listCalls)
	}
	if res.Sort != model.SortPopular {
		t.Fatalf("sort = %s", res.Sort)
	}
}

func TestFetchRejectsUnknownSort(t *testing.T) {
	svc := newTestService(&fakeAPI{})

	_, err := svc.Fetch(context.Background(), "", "trending", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateRefetches(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	_, err := svc.Create(context.Background(), "tok", "a new comment", nil, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if api.createCalls != 1 {
		t.Fatalf("createCalls = %d", api.createCalls)
	}
	if api.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 (create must trigger a full refetch)", api.listCalls)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		content string
	}{
		{name: "empty-content", token: "tok", content: "   "},
		{name: "missing-token", token: "", content: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			svc := newTestService(api)

			_, err := svc.Create(context.Background(), tt.token, tt.content, nil, "")
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if api.createCalls != 0 || api.listCalls != 0 {
				t.Fatalf("validation failures must not reach the network")
			}
		})
	}
}

func TestEditPatchesLocally(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	res, err := svc.Edit(context.Background(), "tok", "2", "edited reply")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if api.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1 (edit must not refetch)", api.listCalls)
	}
	node := comment.Find(res.Forest, "2")
	if node == nil || node.Content != "edited reply" {
		t.Fatalf("node 2 not patched")
	}
	if other := comment.Find(res.Forest, "3"); other.Content != "other reply" {
		t.Fatalf("node 3 was touched by an edit of node 2")
	}
}

func TestEditStaleIDIsNoop(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	res, err := svc.Edit(context.Background(), "tok", "gone", "whatever")
	if err != nil {
		t.Fatalf("stale edit should not error, got %v", err)
	}
	if got := comment.Count(res.Forest); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
}

func TestSessionExpiredLeavesForestUnchanged(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	before, _ := svc.Fetch(context.Background(), "", model.SortLatest, "")

	api.err = client.ErrSessionExpired
	_, err := svc.Edit(context.Background(), "tok", "2", "edited")
	if !errors.Is(err, client.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}

	api.err = nil
	after, _ := svc.Fetch(context.Background(), "", model.SortLatest, "")
	if comment.Find(after.Forest, "2").Content != "reply" {
		t.Fatalf("failed edit must leave the forest unchanged")
	}
	if len(before.Forest) != len(after.Forest) {
		t.Fatalf("forest shape changed after a failed action")
	}
}

func TestSoftDeleteKeepsChildren(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	res, err := svc.SoftDelete(context.Background(), "tok", "1")
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	root := comment.Find(res.Forest, "1")
	if root.Status != model.StatusDeleted {
		t.Fatalf("status = %s", root.Status)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children must survive soft-delete")
	}
	if api.listCalls != 1 {
		t.Fatalf("soft-delete must not refetch")
	}
}

func TestReactAppliesServerCounts(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	state, err := svc.React(context.Background(), "tok", "3", model.ReactionLike)
	if err != nil {
		t.Fatalf("React: %v", err)
	}
	if state.LikeCount != 5 {
		t.Fatalf("like count = %d", state.LikeCount)
	}

	res, _ := svc.Fetch(context.Background(), "", model.SortLatest, "")
	node := comment.Find(res.Forest, "3")
	if node.LikeCount != 5 || node.CurrentUserReaction != model.ReactionLike {
		t.Fatalf("reaction not applied to node 3")
	}
}

func TestReactValidation(t *testing.T) {
	svc := newTestService(&fakeAPI{})

	if _, err := svc.React(context.Background(), "tok", "1", "MAYBE"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown reaction should be ErrValidation, got %v", err)
	}
	if _, err := svc.React(context.Background(), "", "1", model.ReactionLike); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing token should be ErrValidation, got %v", err)
	}
}

func TestReportDoesNotTouchForest(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	msg, err := svc.Report(context.Background(), "tok", "2", "spam")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if msg != "report received" {
		t.Fatalf("message = %q", msg)
	}
	if api.listCalls != 1 {
		t.Fatalf("report must not refetch")
	}
}

func TestStanceFilterIsLocal(t *testing.T) {
	api := &fakeAPI{records: []model.CommentRecord{
		{ID: "l", Stance: model.StanceLeft},
		{ID: "r", Stance: model.StanceRight},
	}, total: 2}
	svc := newTestService(api)

	res, err := svc.Fetch(context.Background(), "", model.SortLatest, model.StanceLeft)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Forest) != 1 || res.Forest[0].ID != "l" {
		t.Fatalf("stance filter not applied")
	}

	svc.Fetch(context.Background(), "", "", model.StanceRight)
	if api.listCalls != 1 {
		t.Fatalf("stance change must not refetch, listCalls = %d", api.listCalls)
	}
}

func TestFailedSortChangeDoesNotCommitSort(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	api.err = &client.RemoteError{StatusCode: 500, Message: "upstream down"}
	if _, err := svc.Fetch(context.Background(), "", model.SortPopular, ""); err == nil {
		t.Fatalf("sort-change fetch should surface the upstream failure")
	}

	// The change never took: fetching without a sort still serves latest.
	api.err = nil
	res, err := svc.Fetch(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Sort != model.SortLatest {
		t.Fatalf("sort = %s, want latest (failed change must not stick)", res.Sort)
	}

	// Retrying the same sort must refetch, not serve the old forest under
	// the new label.
	res, err = svc.Fetch(context.Background(), "", model.SortPopular, "")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Sort != model.SortPopular {
		t.Fatalf("sort = %s after successful retry", res.Sort)
	}
	if api.listCalls != 3 {
		t.Fatalf("listCalls = %d, want 3 (initial, failed change, retried change)", api.listCalls)
	}
}

func TestStaleForestRefetches(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)
	svc.Fetch(context.Background(), "", model.SortLatest, "")

	svc.mu.Lock()
	svc.fetchedAt = time.Now().Add(-staleAfter - time.Second)
	svc.mu.Unlock()

	svc.Fetch(context.Background(), "", model.SortLatest, "")
	if api.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 (stale forest must refetch)", api.listCalls)
	}
}

func TestSnapshotUnaffectedByLaterMutations(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	svc := newTestService(api)

	before, err := svc.Fetch(context.Background(), "", model.SortLatest, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if _, err := svc.Edit(context.Background(), "tok", "2", "edited reply"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if _, err := svc.SoftDelete(context.Background(), "tok", "1"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	// The earlier response is a detached copy; serializing it while the
	// view keeps mutating must see the old values.
	if got := comment.Find(before.Forest, "2").Content; got != "reply" {
		t.Fatalf("earlier snapshot changed under a later edit: %q", got)
	}
	if comment.Find(before.Forest, "1").Status != model.StatusActive {
		t.Fatalf("earlier snapshot changed under a later delete")
	}
}

func TestAnonymousFetchWithSessionStripsReactions(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"sess-token","token_type":"Bearer","expires_in":3600}`)
	}))
	defer tokenServer.Close()

	session := client.NewSessionSource(config.AuthConfig{
		TokenURL:     tokenServer.URL,
		ClientID:     "gateway",
		RefreshToken: "seed",
	})

	api := &fakeAPI{records: []model.CommentRecord{
		{ID: "1", Content: "root", CurrentUserReaction: "LIKE"},
	}, total: 1}
	svc := NewThreadService("view-1", "article-7", api, nil, session, zap.NewNop())

	res, err := svc.Fetch(context.Background(), "", model.SortLatest, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if api.lastListToken != "sess-token" {
		t.Fatalf("list token = %q, want the gateway session token", api.lastListToken)
	}
	// The session account's reaction must not leak to the anonymous caller.
	if got := comment.Find(res.Forest, "1").CurrentUserReaction; got != model.ReactionNone {
		t.Fatalf("anonymous caller sees reaction %q", got)
	}

	// An authenticated caller fetches with their own token and keeps theirs.
	authed := NewThreadService("view-2", "article-7", api, nil, session, zap.NewNop())
	res, err = authed.Fetch(context.Background(), "viewer-token", model.SortLatest, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := comment.Find(res.Forest, "1").CurrentUserReaction; got != model.ReactionLike {
		t.Fatalf("authenticated caller lost their reaction, got %q", got)
	}
}

func TestRegistryEvictsIdleViews(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	reg := NewThreadRegistry(api, nil, nil, zap.NewNop())

	first := reg.View("article-7", "token-a")

	reg.mu.Lock()
	for _, entry := range reg.views {
		entry.lastSeen = time.Now().Add(-viewTTL - time.Minute)
	}
	reg.mu.Unlock()

	if again := reg.View("article-7", "token-a"); again == first {
		t.Fatalf("idle view past the TTL must be evicted")
	}

	reg.mu.Lock()
	if len(reg.views) != 1 {
		reg.mu.Unlock()
		t.Fatalf("swept registry should hold exactly the fresh view")
	}
	reg.mu.Unlock()
}

func TestRegistrySeparatesViewers(t *testing.T) {
	api := &fakeAPI{records: threadRecords(), total: 3}
	reg := NewThreadRegistry(api, nil, nil, zap.NewNop())

	a := reg.View("article-7", "token-a")
	b := reg.View("article-7", "token-b")
	anon := reg.View("article-7", "")

	if a == b || a == anon {
		t.Fatalf("viewers must not share a forest")
	}
	if again := reg.View("article-7", "token-a"); again != a {
		t.Fatalf("same viewer should get the same controller")
	}
}
