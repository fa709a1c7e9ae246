package comment

import "github.com/agoranews/comment-gateway/internal/model"

// FilterByStance projects the roots matching the given stance without
// mutating the canonical forest. NEUTRAL (or empty) means no filter.
// Stance is the only client-local filter; latest/oldest/popular are
// realized by requesting a different server sort, since nested reply
// order must remain server-authoritative.
func FilterByStance(forest model.Forest, stance model.Stance) model.Forest {
	if stance == "" || stance == model.StanceNeutral {
		return forest
	}
	view := model.Forest{}
	for _, root := range forest {
		if root.Stance == stance {
			view = append(view, root)
		}
	}
	return view
}

// CloneForest deep-copies the forest. Responses hand a snapshot to the
// serializer outside the controller lock, so the copy must not share nodes
// with the canonical tree that concurrent actions keep patching.
func CloneForest(forest model.Forest) model.Forest {
	view := make(model.Forest, 0, len(forest))
	for _, root := range forest {
		if cloned := cloneNode(root, map[string]bool{}); cloned != nil {
			view = append(view, cloned)
		}
	}
	return view
}

func cloneNode(node *model.CommentNode, seen map[string]bool) *model.CommentNode {
	if node == nil || seen[node.ID] {
		return nil
	}
	seen[node.ID] = true
	cloned := *node
	cloned.Children = make([]*model.CommentNode, 0, len(node.Children))
	for _, child := range node.Children {
		if c := cloneNode(child, seen); c != nil {
			cloned.Children = append(cloned.Children, c)
		}
	}
	return &cloned
}
