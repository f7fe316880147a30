package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/domain"
	"github.com/netscan/netscan-api/internal/ports"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

// Append inserts the record and evicts rows beyond cap in one transaction, so
// a concurrent reader never observes the collection above its bound.
func (r *historyRepository) Append(ctx context.Context, record domain.TestResult, cap int) (domain.TestResult, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := toResultModel(record)
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if cap <= 0 {
			return nil
		}
		return tx.Exec(`
			DELETE FROM test_results
			WHERE id IN (
				SELECT id FROM test_results
				WHERE user_id = ?
				ORDER BY created_at DESC, id DESC
				OFFSET ?
			)`, record.UserID, cap).Error
	})
	if err != nil {
		return domain.TestResult{}, err
	}
	return record, nil
}

func (r *historyRepository) List(ctx context.Context, ownerID uuid.UUID, page, limit int) (ports.HistoryPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&testResultModel{}).
		Where("user_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return ports.HistoryPage{}, err
	}

	var rows []testResultModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return ports.HistoryPage{}, err
	}

	items := make([]domain.TestResult, len(rows))
	for i, row := range rows {
		items[i] = toDomainResult(row)
	}

	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return ports.HistoryPage{
		Items:      items,
		Total:      int(total),
		Page:       page,
		TotalPages: totalPages,
		Limit:      limit,
	}, nil
}

func (r *historyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.TestResult, error) {
	var rec testResultModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TestResult{}, domain.ErrNotFound
		}
		return domain.TestResult{}, err
	}
	return toDomainResult(rec), nil
}

func (r *historyRepository) Clear(ctx context.Context, ownerID uuid.UUID) (int, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&testResultModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *historyRepository) SnapshotByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TestResult, error) {
	var rows []testResultModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.TestResult, len(rows))
	for i, row := range rows {
		out[i] = toDomainResult(row)
	}
	return out, nil
}
