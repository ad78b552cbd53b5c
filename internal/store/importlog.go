package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateImportLog 创建导入日志，返回批次 id
func (s *Store) CreateImportLog(ctx context.Context, filename string, fileSize int64) (string, error) {
	batchID := uuid.New().String()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO import_logs (batch_id, filename, file_size, status)
		VALUES ($1, $2, $3, 'processing')
	`, batchID, filename, fileSize)
	if err != nil {
		return "", fmt.Errorf("failed to create import log: %w", err)
	}
	return batchID, nil
}

// FinishImportLog 完成导入日志更新
func (s *Store) FinishImportLog(ctx context.Context, batchID string, totalRows, importedRows, errorRows int, status, errorMessage string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE import_logs SET
			total_rows = $2,
			imported_rows = $3,
			error_rows = $4,
			status = $5,
			error_message = $6,
			completed_at = now()
		WHERE batch_id = $1
	`, batchID, totalRows, importedRows, errorRows, status, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}
