package mock

import (
	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

func paginate[T any](items []T, page shared.Page) []T {
	offset := page.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func snapshotStore[T any](m map[string]T, deleted map[string]bool) ([]T, map[string]bool) {
	entities := make([]T, 0, len(m))
	for _, v := range m {
		entities = append(entities, v)
	}
	deletedCopy := make(map[string]bool, len(deleted))
	for id, v := range deleted {
		deletedCopy[id] = v
	}
	return entities, deletedCopy
}
