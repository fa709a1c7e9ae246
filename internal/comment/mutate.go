package comment

import "github.com/agoranews/comment-gateway/internal/model"

// The mutation engine patches exactly one node in place and leaves every
// other node untouched, so the rendering layer can diff by object identity.
// All lookups share the visited-id guard from tree.go: a buggy server
// response must not be able to hang the client, only to mis-render.
//
// A target id that is no longer present (deleted elsewhere, stale view) is
// a silent no-op — the next refetch corrects the view. Callers that care
// get the found flag.
//
// None of these touch comment totals. Remove prunes a subtree without any
// count bookkeeping; the thread total is server-owned and reconciled only
// by the next refetch.

// SetContent replaces the content of the node with the given id.
func SetContent(forest model.Forest, id, content string) bool {
	node := Find(forest, id)
	if node == nil {
		return false
	}
	node.Content = content
	return true
}

// MarkDeleted flips the node to DELETED_BY_USER and swaps its content for
// the placeholder. The node stays in the tree and keeps its children:
// replies survive deletion of their parent.
func MarkDeleted(forest model.Forest, id string) bool {
	node := Find(forest, id)
	if node == nil {
		return false
	}
	node.Status = model.StatusDeleted
	node.Content = DeletedPlaceholder
	return true
}

// SetReaction applies the server's authoritative reaction payload — like
// count, dislike count, and the current user's reaction — as one unit.
// Counts are never adjusted locally ahead of the server; drift between an
// optimistic count and server truth is worse than the round-trip.
func SetReaction(forest model.Forest, id string, state model.ReactionState) bool {
	node := Find(forest, id)
	if node == nil {
		return false
	}
	node.LikeCount = state.LikeCount
	node.DislikeCount = state.DislikeCount
	node.CurrentUserReaction = NormalizeReaction(state.CurrentUserReaction)
	return true
}

// Remove detaches the node with the given id from the forest entirely,
// subtree included. This is the hard-removal path for server-initiated
// removals; user deletes go through MarkDeleted.
func Remove(forest model.Forest, id string) (model.Forest, bool) {
	for i, root := range forest {
		if root.ID == id {
			return append(forest[:i:i], forest[i+1:]...), true
		}
	}
	for _, root := range forest {
		if removeChild(root, id, map[string]bool{}) {
			return forest, true
		}
	}
	return forest, false
}

func removeChild(node *model.CommentNode, id string, seen map[string]bool) bool {
	if node == nil || seen[node.ID] {
		return false
	}
	seen[node.ID] = true
	for i, child := range node.Children {
		if child.ID == id {
			node.Children = append(node.Children[:i:i], node.Children[i+1:]...)
			return true
		}
	}
	for _, child := range node.Children {
		if removeChild(child, id, seen) {
			return true
		}
	}
	return false
}
