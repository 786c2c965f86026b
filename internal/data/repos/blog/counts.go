package blog

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type postCount struct {
	PostID uuid.UUID
	Count  int64
}

// countByPostIDs groups q by post_id. Posts without rows map to zero so
// callers can index the result for every requested id.
func countByPostIDs(q *gorm.DB, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	postIDs = lo.Uniq(postIDs)
	out := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []postCount
	if err := q.
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, id := range postIDs {
		out[id] = 0
	}
	for _, row := range rows {
		out[row.PostID] = row.Count
	}
	return out, nil
}
