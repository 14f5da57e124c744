package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by the listing queries.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Blog listings and detail navigation
		{"posts", "idx_posts_category_created", "category_id, created_at"},
		{"comments", "idx_comments_post_created", "post_id, created_at"},
		{"replies", "idx_replies_comment_created", "comment_id, created_at"},

		// Memo board filters
		{"memos", "idx_memos_status_id", "status, id"},

		// Calendar month window
		{"events", "idx_events_start_end", "start_time, end_time"},

		// Scoreboard ordering
		{"players", "idx_players_ranking", "total_point, total_goal_diff"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}

// MigrateDatabase runs the steps AutoMigrate cannot express.
func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
