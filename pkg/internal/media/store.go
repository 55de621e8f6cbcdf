package media

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/relicvault/pkg/internal/model"
)

// AssetStore 媒体资产的关系索引。所有状态转换都表达为条件更新
// （UPDATE ... WHERE state = ...），并发的第二次尝试被拒绝而不是静默重放。
type AssetStore struct {
	db *gorm.DB
}

// NewAssetStore 构造 AssetStore.
func NewAssetStore(db *gorm.DB) *AssetStore {
	return &AssetStore{db: db}
}

// WithTx 返回绑定到事务句柄的副本，事务边界由调用方划定.
func (s *AssetStore) WithTx(tx *gorm.DB) *AssetStore {
	return &AssetStore{db: tx}
}

// DB 暴露底层句柄，供调用方开启事务.
func (s *AssetStore) DB() *gorm.DB {
	return s.db
}

// Create 登记一条新资产行.
func (s *AssetStore) Create(ctx context.Context, asset *model.MediaAsset) error {
	return s.db.WithContext(ctx).Create(asset).Error
}

// Get 按 ID 取资产.
func (s *AssetStore) Get(ctx context.Context, id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset

	err := s.db.WithContext(ctx).First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapErr(ErrNotFound, "asset %s", id)
	}

	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// FindStaged 按分组标签（可选再按种类）查暂存资产，按登记时间排序.
func (s *AssetStore) FindStaged(ctx context.Context, groupTag, kind string) ([]model.MediaAsset, error) {
	q := s.db.WithContext(ctx).
		Where("state = ? AND group_tag = ?", model.MediaStateStaged, groupTag)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var assets []model.MediaAsset
	if err := q.Order("created_at ASC").Find(&assets).Error; err != nil {
		return nil, err
	}

	return assets, nil
}

// FindSynced 按藏品（可选再按种类）查已提升资产.
func (s *AssetStore) FindSynced(ctx context.Context, ownerID uint, kind string) ([]model.MediaAsset, error) {
	q := s.db.WithContext(ctx).
		Where("state = ? AND owner_id = ?", model.MediaStateSynced, ownerID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var assets []model.MediaAsset
	if err := q.Order("synced_at ASC").Find(&assets).Error; err != nil {
		return nil, err
	}

	return assets, nil
}

// FindStagedBefore 查早于截止时间登记、从未提升的资产，供保留期清扫.
func (s *AssetStore) FindStagedBefore(ctx context.Context, cutoff time.Time) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset

	err := s.db.WithContext(ctx).
		Where("state = ? AND created_at < ?", model.MediaStateStaged, cutoff).
		Find(&assets).Error
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// TransitionToSynced 认领暂存行：STAGED→SYNCED，同时绑定藏品并打时间戳。
// 条件更新是主要的并发防线——影响行数为零说明资产不存在或已被并发请求
// 认领，分别映射为 NotFound / Conflict。
func (s *AssetStore) TransitionToSynced(ctx context.Context, id string, ownerID uint, syncedAt time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&model.MediaAsset{}).
		Where("id = ? AND state = ?", id, model.MediaStateStaged).
		Updates(map[string]any{
			"state":     model.MediaStateSynced,
			"owner_id":  ownerID,
			"synced_at": syncedAt,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// 区分不存在与已被认领
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}

		return wrapErr(ErrConflict, "asset %s already claimed", id)
	}

	return nil
}

// RevertToStaged 撤销认领：文件系统工作失败后把行恢复为 STAGED。
// 尽力而为——撤销失败只记录，调用方仍然向上游报告原始错误。
func (s *AssetStore) RevertToStaged(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&model.MediaAsset{}).
		Where("id = ? AND state = ?", id, model.MediaStateSynced).
		Updates(map[string]any{
			"state":     model.MediaStateStaged,
			"owner_id":  0,
			"synced_at": nil,
		}).Error
}

// UpdateExtension 修正扩展名（嗅探结果与申报不符时）.
func (s *AssetStore) UpdateExtension(ctx context.Context, id, ext string) error {
	res := s.db.WithContext(ctx).
		Model(&model.MediaAsset{}).
		Where("id = ?", id).
		Update("file_ext", ext)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return wrapErr(ErrNotFound, "asset %s", id)
	}

	return nil
}

// Delete 删除资产行；行不存在返回 NotFound.
func (s *AssetStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.MediaAsset{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return wrapErr(ErrNotFound, "asset %s", id)
	}

	return nil
}
