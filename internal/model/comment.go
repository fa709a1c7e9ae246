package model

import "time"

// Sort modes understood by the remote comment API. Sorting is always
// server-side; the gateway never reorders siblings on its own.
type SortMode string

const (
	SortLatest  SortMode = "latest"
	SortOldest  SortMode = "oldest"
	SortPopular SortMode = "popular"
)

func (m SortMode) Valid() bool {
	switch m {
	case SortLatest, SortOldest, SortPopular:
		return true
	}
	return false
}

// Stance tags a debate-topic comment with the side it argues for.
// StanceNeutral doubles as "no filter" when used as a view filter.
type Stance string

const (
	StanceLeft    Stance = "LEFT"
	StanceRight   Stance = "RIGHT"
	StanceNeutral Stance = "NEUTRAL"
)

type Reaction string

const (
	ReactionLike    Reaction = "LIKE"
	ReactionDislike Reaction = "DISLIKE"
	// ReactionNone is the normalized "no reaction" value. The wire format is
	// inconsistent here (absent field, empty string, or a literal "NONE").
	ReactionNone Reaction = ""
)

type CommentStatus string

const (
	StatusActive  CommentStatus = "ACTIVE"
	StatusDeleted CommentStatus = "DELETED_BY_USER"
)

// CommentRecord is the wire shape returned by the remote comment API.
// Article endpoints return flat lists (parent_id only); debate-topic
// endpoints return pre-nested records via Replies.
type CommentRecord struct {
	ID                  string          `json:"id"`
	ParentID            *string         `json:"parent_id"`
	AuthorID            string          `json:"author_id"`
	AuthorName          string          `json:"author_name"`
	AvatarURL           string          `json:"avatar_url"`
	Content             string          `json:"content"`
	CreatedAt           time.Time       `json:"created_at"`
	Status              CommentStatus   `json:"status"`
	LikeCount           int             `json:"like_count"`
	DislikeCount        int             `json:"dislike_count"`
	CurrentUserReaction string          `json:"current_user_reaction"`
	Stance              Stance          `json:"stance,omitempty"`
	Replies             []CommentRecord `json:"replies,omitempty"`
}

// CommentNode is the in-memory tree shape handed to the rendering layer.
// Children holds exactly the nodes whose parent_id equals this node's id,
// in server order.
type CommentNode struct {
	ID                  string         `json:"id"`
	ParentID            *string        `json:"parent_id,omitempty"`
	AuthorID            string         `json:"author_id"`
	AuthorName          string         `json:"author_name"`
	AvatarURL           string         `json:"avatar_url"`
	Content             string         `json:"content"`
	CreatedAt           time.Time      `json:"created_at"`
	Status              CommentStatus  `json:"status"`
	LikeCount           int            `json:"like_count"`
	DislikeCount        int            `json:"dislike_count"`
	CurrentUserReaction Reaction       `json:"current_user_reaction"`
	Stance              Stance         `json:"stance,omitempty"`
	Children            []*CommentNode `json:"children"`
}

// Forest is the ordered collection of root comment trees for one subject.
// Root order matches the server-provided order exactly.
type Forest []*CommentNode

// ReactionState is the authoritative counts payload the remote API returns
// for every reaction action. Counts are never incremented client-side.
type ReactionState struct {
	LikeCount           int    `json:"like_count"`
	DislikeCount        int    `json:"dislike_count"`
	CurrentUserReaction string `json:"current_user_reaction"`
}
