package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/madtung/sanghak2/internal/model"
	pkgerrors "github.com/madtung/sanghak2/pkg/errors"
)

// RecordRepository 台账快照记录数据访问接口
type RecordRepository interface {
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, key string) (*model.Record, error)
	// SaveAll 在同一事务中写入多条记录。
	// Version 为 0 表示新记录；否则按版本号更新，版本不符时返回 ErrOptimisticLock 并整体回滚。
	// 提交成功后回写各记录的新版本号。
	SaveAll(ctx context.Context, records []*model.Record) error
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepo 创建 RecordRepository 实例
func NewRecordRepo(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) List(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := r.db.WithContext(ctx).Order("key").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepo) Get(ctx context.Context, key string) (*model.Record, error) {
	var rec model.Record
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) SaveAll(ctx context.Context, records []*model.Record) error {
	if len(records) == 0 {
		return nil
	}

	versions := make([]int, len(records))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, rec := range records {
			if rec.Version == 0 {
				row := model.Record{Key: rec.Key, Value: rec.Value}
				row.Version = 1
				result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
				if result.Error != nil {
					return result.Error
				}
				// 并发进程已先写入同名记录
				if result.RowsAffected == 0 {
					return pkgerrors.ErrOptimisticLock
				}
				versions[i] = 1
				continue
			}

			result := tx.Model(&model.Record{}).
				Where("key = ? AND version = ?", rec.Key, rec.Version).
				Updates(map[string]interface{}{
					"value":      rec.Value,
					"version":    rec.Version + 1,
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return pkgerrors.ErrOptimisticLock
			}
			versions[i] = rec.Version + 1
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, rec := range records {
		rec.Version = versions[i]
	}
	return nil
}
