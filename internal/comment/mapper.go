// Package comment holds the thread synchronization core: mapping wire
// records into tree nodes, building the forest, applying targeted local
// mutations, and projecting filtered views. Everything here is pure
// in-memory work; network access lives in internal/client.
package comment

import "github.com/agoranews/comment-gateway/internal/model"

// PlaceholderAvatar is substituted when the wire record carries no avatar URL.
const PlaceholderAvatar = "/assets/avatar-default.png"

// DeletedPlaceholder replaces the content of a soft-deleted comment.
const DeletedPlaceholder = "[deleted]"

// FromRecord maps one wire record into a tree node. Pre-nested replies
// (debate-topic endpoints) are mapped recursively into Children; flat
// records (article endpoints) come out with empty Children for the tree
// builder to fill in.
func FromRecord(rec model.CommentRecord) *model.CommentNode {
	node := &model.CommentNode{
		ID:                  rec.ID,
		ParentID:            rec.ParentID,
		AuthorID:            rec.AuthorID,
		AuthorName:          rec.AuthorName,
		AvatarURL:           rec.AvatarURL,
		Content:             rec.Content,
		CreatedAt:           rec.CreatedAt,
		Status:              rec.Status,
		LikeCount:           rec.LikeCount,
		DislikeCount:        rec.DislikeCount,
		CurrentUserReaction: NormalizeReaction(rec.CurrentUserReaction),
		Stance:              rec.Stance,
		Children:            []*model.CommentNode{},
	}

	if node.AvatarURL == "" {
		node.AvatarURL = PlaceholderAvatar
	}
	if node.Status == "" {
		node.Status = model.StatusActive
	}

	for _, reply := range rec.Replies {
		child := FromRecord(reply)
		if child.ParentID == nil {
			id := node.ID
			child.ParentID = &id
		}
		node.Children = append(node.Children, child)
	}

	return node
}

// FromRecords maps a batch, preserving server order.
func FromRecords(recs []model.CommentRecord) []*model.CommentNode {
	nodes := make([]*model.CommentNode, 0, len(recs))
	for _, rec := range recs {
		nodes = append(nodes, FromRecord(rec))
	}
	return nodes
}

// StripViewerState blanks current_user_reaction across a batch, replies
// included, without touching the input. A list fetched with the gateway's
// own session on behalf of an anonymous caller carries the session
// account's reactions; those must reach neither the caller nor the shared
// anonymous cache.
func StripViewerState(recs []model.CommentRecord) []model.CommentRecord {
	if recs == nil {
		return nil
	}
	out := make([]model.CommentRecord, len(recs))
	for i, rec := range recs {
		rec.CurrentUserReaction = ""
		rec.Replies = StripViewerState(rec.Replies)
		out[i] = rec
	}
	return out
}

// NormalizeReaction collapses the wire format's inconsistent "no reaction"
// encodings (absent field, empty string, literal "NONE" or "null") into
// ReactionNone. Already-normalized values pass through unchanged, so the
// function is idempotent.
func NormalizeReaction(raw string) model.Reaction {
	switch raw {
	case string(model.ReactionLike):
		return model.ReactionLike
	case string(model.ReactionDislike):
		return model.ReactionDislike
	default:
		return model.ReactionNone
	}
}
