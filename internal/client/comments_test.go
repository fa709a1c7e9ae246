package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agoranews/comment-gateway/internal/config"
	"github.com/agoranews/comment-gateway/internal/model"
)

func newTestClient(handler http.HandlerFunc) (*CommentAPIClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewCommentAPIClient(config.CommentAPIConfig{BaseURL: srv.URL}), srv
}

func TestListDecodesFlatRecords(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("subject"); got != "article-7" {
			t.Fatalf("subject = %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "latest" {
			t.Fatalf("sort = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":2,"comments":[
			{"id":"1","parent_id":null,"content":"root","status":"ACTIVE"},
			{"id":"2","parent_id":"1","content":"reply","status":"ACTIVE"}
		]}`))
	})
	defer srv.Close()

	res, err := c.List(context.Background(), "article-7", model.SortLatest, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 2 || len(res.Comments) != 2 {
		t.Fatalf("total=%d len=%d", res.Total, len(res.Comments))
	}
	if res.Comments[1].ParentID == nil || *res.Comments[1].ParentID != "1" {
		t.Fatalf("parent_id not decoded")
	}
}

func TestListDecodesPreNestedReplies(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":2,"comments":[
			{"id":"t1","stance":"LEFT","replies":[{"id":"t2","content":"nested"}]}
		]}`))
	})
	defer srv.Close()

	res, err := c.List(context.Background(), "topic-1", model.SortPopular, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Comments) != 1 || len(res.Comments[0].Replies) != 1 {
		t.Fatalf("pre-nested replies not decoded")
	}
	if res.Comments[0].Stance != model.StanceLeft {
		t.Fatalf("stance = %q", res.Comments[0].Stance)
	}
}

func TestUnauthorizedIsSessionExpired(t *testing.T) {
	tests := []struct {
		name string
		call func(c *CommentAPIClient) error
	}{
		{name: "list", call: func(c *CommentAPIClient) error {
			_, err := c.List(context.Background(), "a", model.SortLatest, "tok")
			return err
		}},
		{name: "create", call: func(c *CommentAPIClient) error {
			_, err := c.Create(context.Background(), "a", "hi", nil, "", "tok")
			return err
		}},
		{name: "update", call: func(c *CommentAPIClient) error {
			_, err := c.Update(context.Background(), "1", "hi", "tok")
			return err
		}},
		{name: "delete", call: func(c *CommentAPIClient) error {
			return c.Delete(context.Background(), "1", "tok")
		}},
		{name: "react", call: func(c *CommentAPIClient) error {
			_, err := c.React(context.Background(), "1", model.ReactionLike, "tok")
			return err
		}},
		{name: "report", call: func(c *CommentAPIClient) error {
			_, err := c.Report(context.Background(), "1", "spam", "tok")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			defer srv.Close()

			if err := tt.call(c); !errors.Is(err, ErrSessionExpired) {
				t.Fatalf("err = %v, want ErrSessionExpired", err)
			}
		})
	}
}

func TestRemoteErrorCarriesServerMessage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"content too long"}`))
	})
	defer srv.Close()

	_, err := c.Update(context.Background(), "1", "x", "tok")
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.StatusCode != http.StatusUnprocessableEntity || remote.Message != "content too long" {
		t.Fatalf("remote = %+v", remote)
	}
}

func TestBearerForwarded(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("Authorization = %q", got)
		}
		w.Write([]byte(`{"like_count":3,"dislike_count":1,"current_user_reaction":"LIKE"}`))
	})
	defer srv.Close()

	state, err := c.React(context.Background(), "9", model.ReactionLike, "tok-123")
	if err != nil {
		t.Fatalf("React: %v", err)
	}
	if state.LikeCount != 3 || state.DislikeCount != 1 || state.CurrentUserReaction != "LIKE" {
		t.Fatalf("state = %+v", state)
	}
}

func TestDeleteToleratesEmptyBody(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	if err := c.Delete(context.Background(), "5", "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	signed := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		s, err := tok.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "expired-jwt", token: signed(time.Now().Add(-time.Hour)), want: true},
		{name: "live-jwt", token: signed(time.Now().Add(time.Hour)), want: false},
		{name: "opaque-token", token: "not-a-jwt", want: false},
		{name: "empty", token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token); got != tt.want {
				t.Fatalf("TokenExpired = %v, want %v", got, tt.want)
			}
		})
	}
}
