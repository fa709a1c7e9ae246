// 외부 댓글 API와 통신하는 클라이언트 정의
//
// 환경변수:
//   - COMMENT_API_URL: 댓글 API 베이스 URL
//
// 모든 요청은 호출자가 넘긴 bearer token을 그대로 전달하고,
// 어떤 엔드포인트든 401 응답은 일괄적으로 세션 만료로 분류한다.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agoranews/comment-gateway/internal/config"
	"github.com/agoranews/comment-gateway/internal/model"
)

// ErrSessionExpired is returned for any 401 from the comment API,
// regardless of endpoint. Callers force re-login; it is never retried.
var ErrSessionExpired = errors.New("session expired")

// RemoteError carries a non-2xx status together with the server-provided
// message when one was present in the body.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("comment API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("comment API returned status %d", e.StatusCode)
}

// CommentAPIClient 구조체 정의
type CommentAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// ListResponse - 댓글 목록 응답 (flat 또는 pre-nested)
type ListResponse struct {
	Total    int                   `json:"total"`
	Comments []model.CommentRecord `json:"comments"`
}

type reactRequest struct {
	Type model.Reaction `json:"type"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// ReportResponse - 신고 접수 응답
type ReportResponse struct {
	Message string `json:"message"`
}

type createRequest struct {
	Subject  string       `json:"subject"`
	Content  string       `json:"content"`
	ParentID *string      `json:"parent_id,omitempty"`
	Stance   model.Stance `json:"stance,omitempty"`
}

type editRequest struct {
	Content string `json:"content"`
}

// CommentAPIClient 객체 생성
func NewCommentAPIClient(cfg config.CommentAPIConfig) *CommentAPIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}

	return &CommentAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GET /comments?subject=&sort= - 댓글 목록 조회
func (c *CommentAPIClient) List(ctx context.Context, subject string, sort model.SortMode, token string) (*ListResponse, error) {
	endpoint := fmt.Sprintf("%s/comments?subject=%s&sort=%s",
		c.baseURL, url.QueryEscape(subject), url.QueryEscape(string(sort)))

	var out ListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// POST /comments - 댓글 생성 (루트 또는 답글)
func (c *CommentAPIClient) Create(ctx context.Context, subject, content string, parentID *string, stance model.Stance, token string) (*model.CommentRecord, error) {
	body := createRequest{Subject: subject, Content: content, ParentID: parentID, Stance: stance}

	var out model.CommentRecord
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/comments", body, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PATCH /comments/{id} - 댓글 수정
func (c *CommentAPIClient) Update(ctx context.Context, id, content, token string) (*model.CommentRecord, error) {
	endpoint := fmt.Sprintf("%s/comments/%s", c.baseURL, url.PathEscape(id))

	var out model.CommentRecord
	if err := c.do(ctx, http.MethodPatch, endpoint, editRequest{Content: content}, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DELETE /comments/{id} - 댓글 삭제 (응답 본문 없음)
func (c *CommentAPIClient) Delete(ctx context.Context, id, token string) error {
	endpoint := fmt.Sprintf("%s/comments/%s", c.baseURL, url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, endpoint, nil, token, nil)
}

// POST /comments/{id}/react - 리액션 등록, 서버가 확정한 카운트 반환
func (c *CommentAPIClient) React(ctx context.Context, id string, reaction model.Reaction, token string) (*model.ReactionState, error) {
	endpoint := fmt.Sprintf("%s/comments/%s/react", c.baseURL, url.PathEscape(id))

	var out model.ReactionState
	if err := c.do(ctx, http.MethodPost, endpoint, reactRequest{Type: reaction}, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DELETE /comments/{id}/react - 리액션 해제
func (c *CommentAPIClient) ClearReaction(ctx context.Context, id, token string) (*model.ReactionState, error) {
	endpoint := fmt.Sprintf("%s/comments/%s/react", c.baseURL, url.PathEscape(id))

	var out model.ReactionState
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// POST /comments/{id}/report - 댓글 신고
func (c *CommentAPIClient) Report(ctx context.Context, id, reason, token string) (*ReportResponse, error) {
	endpoint := fmt.Sprintf("%s/comments/%s/report", c.baseURL, url.PathEscape(id))

	var out ReportResponse
	if err := c.do(ctx, http.MethodPost, endpoint, reportRequest{Reason: reason}, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CommentAPIClient) do(ctx context.Context, method, endpoint string, body any, token string, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to comment API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{StatusCode: resp.StatusCode, Message: remoteMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// remoteMessage pulls a human-readable message out of an error body,
// tolerating both {"error": ...} and {"message": ...} envelopes.
func remoteMessage(raw []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
