package service

import (
	"sort"

	"manhwahub/internal/microservices/http-api/dto"
	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/repository"
)

// BuildThreads turns a flat, reaction-annotated comment list into nested
// reply trees. The input slice is not mutated.
//
// The flat list is sorted by creation time descending exactly once, before
// assembly; replies inherit that order and are not re-sorted per level. A
// comment whose parent_id does not resolve to a comment in the input is an
// orphan and is excluded from the result entirely.
func BuildThreads(comments []models.Comment, counts map[int64]repository.ReactionCounts) []*dto.ThreadResponse {
	sorted := make([]models.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	nodes := make(map[int64]*dto.ThreadResponse, len(sorted))
	for i := range sorted {
		nodes[sorted[i].ID] = dto.FromModelToThreadResponse(&sorted[i], counts[sorted[i].ID])
	}

	roots := make([]*dto.ThreadResponse, 0, len(sorted))
	for i := range sorted {
		node := nodes[sorted[i].ID]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
		// unresolved parent: orphan, dropped
	}
	return roots
}

// previewLimit caps the comment excerpt carried inside a notification.
const previewLimit = 50

// previewOf returns the first previewLimit runes of content, with an
// ellipsis marker when truncated.
func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
