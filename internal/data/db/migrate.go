package db

import (
	"fmt"

	types "github.com/yungbote/blog-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserToken{},

		&types.Post{},
		&types.Comment{},
		&types.Like{},
	)
}

// EnsureBlogIndexes adds the ordering indexes used by feed listings. The
// statements are portable across Postgres and SQLite.
func EnsureBlogIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_post_created_id", `CREATE INDEX IF NOT EXISTS idx_post_created_id ON post(created_at DESC, id DESC);`},
		{"idx_comment_created_id", `CREATE INDEX IF NOT EXISTS idx_comment_created_id ON comment(created_at DESC, id DESC);`},
		{"idx_like_user_post", `CREATE UNIQUE INDEX IF NOT EXISTS idx_like_user_post ON post_like(user_id, post_id);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
