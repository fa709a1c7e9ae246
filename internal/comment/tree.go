package comment

import "github.com/agoranews/comment-gateway/internal/model"

// Build assembles a forest from an ordered batch of mapped nodes.
//
// Two passes over the batch: the first indexes every node by id, the second
// attaches each node to its parent's Children or, when parent_id is nil or
// does not resolve within the batch, appends it to the roots. Orphans are
// promoted to roots rather than dropped — a comment whose parent fell out
// of the batch must still render. Both root order and sibling order follow
// the input order; the server owns sorting.
//
// A node whose parent chain loops back onto itself is promoted to a root
// too: attaching cycle members to each other would leave every one of them
// reachable from no root at all.
//
// Nodes arriving pre-nested (topic endpoints) keep their existing Children;
// only top-level batch entries are re-linked.
func Build(nodes []*model.CommentNode) model.Forest {
	index := make(map[string]*model.CommentNode, len(nodes))
	for _, node := range nodes {
		index[node.ID] = node
	}

	forest := model.Forest{}
	for _, node := range nodes {
		if node.ParentID == nil {
			forest = append(forest, node)
			continue
		}
		parent, ok := index[*node.ParentID]
		if !ok || inCycle(node, index) {
			forest = append(forest, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return forest
}

// inCycle reports whether following parent pointers from the node leads
// back to the node itself. Covers self-parents and longer loops; a cycle
// strictly upstream of the node is not the node's problem — its members
// are promoted when their own turn comes.
func inCycle(node *model.CommentNode, index map[string]*model.CommentNode) bool {
	seen := map[string]bool{node.ID: true}
	current := node
	for current.ParentID != nil {
		next, ok := index[*current.ParentID]
		if !ok {
			return false
		}
		if next == node {
			return true
		}
		if seen[next.ID] {
			return false
		}
		seen[next.ID] = true
		current = next
	}
	return false
}

// Count returns the number of nodes in the forest, nested replies included.
func Count(forest model.Forest) int {
	total := 0
	for _, root := range forest {
		total += countNode(root, map[string]bool{})
	}
	return total
}

func countNode(node *model.CommentNode, seen map[string]bool) int {
	if node == nil || seen[node.ID] {
		return 0
	}
	seen[node.ID] = true
	total := 1
	for _, child := range node.Children {
		total += countNode(child, seen)
	}
	return total
}

// Find locates a node by id anywhere in the forest, or nil.
func Find(forest model.Forest, id string) *model.CommentNode {
	for _, root := range forest {
		if found := findNode(root, id, map[string]bool{}); found != nil {
			return found
		}
	}
	return nil
}

func findNode(node *model.CommentNode, id string, seen map[string]bool) *model.CommentNode {
	if node == nil || seen[node.ID] {
		return nil
	}
	seen[node.ID] = true
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := findNode(child, id, seen); found != nil {
			return found
		}
	}
	return nil
}

// IDs returns every id in the forest in depth-first order. Used to check
// batch-level id uniqueness after a refetch.
func IDs(forest model.Forest) []string {
	var ids []string
	for _, root := range forest {
		ids = collectIDs(root, ids, map[string]bool{})
	}
	return ids
}

func collectIDs(node *model.CommentNode, ids []string, seen map[string]bool) []string {
	if node == nil || seen[node.ID] {
		return ids
	}
	seen[node.ID] = true
	ids = append(ids, node.ID)
	for _, child := range node.Children {
		ids = collectIDs(child, ids, seen)
	}
	return ids
}
