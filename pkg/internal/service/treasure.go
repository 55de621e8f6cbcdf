package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeisme/relicvault/pkg/internal/media"
	"github.com/yeisme/relicvault/pkg/internal/model"
	"github.com/yeisme/relicvault/pkg/internal/types"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/queue"
)

// TreasureService 藏品管理；删除藏品时级联回收其媒体.
type TreasureService struct{ *MediaService }

// NewTreasureService 构造 TreasureService.
func NewTreasureService(c context.Context) *TreasureService {
	return &TreasureService{NewMediaService(c)}
}

// Create 登记一件藏品；带 group_tag 时把录入期间暂存的媒体整组提升并绑定.
func (t *TreasureService) Create(ctx context.Context, actor string, req types.CreateTreasureRequest) (types.CreateTreasureResponse, error) {
	treasure := &model.Treasure{
		AccessionNumber: req.AccessionNumber,
		Name:            req.Name,
		Description:     req.Description,
		Curator:         actor,
	}

	if err := t.dbClient.GetDB().WithContext(ctx).Create(treasure).Error; err != nil {
		return types.CreateTreasureResponse{}, err
	}

	resp := types.CreateTreasureResponse{Treasure: t.toTreasureInfo(ctx, treasure)}

	if req.GroupTag != "" {
		promoted, err := t.PromoteGroup(ctx, actor, req.GroupTag, "", treasure.ID)
		// 藏品已创建；部分提升失败不回滚登记，失败的资产留在暂存树可重试
		if err != nil {
			log.Logger().Error().Uint("treasure", treasure.ID).Str("group", req.GroupTag).Err(err).
				Msg("partial media promotion on treasure create")
		}

		resp.Promoted = promoted
		resp.Treasure.MediaCount = len(promoted)
	}

	return resp, nil
}

// Get 按 ID 取藏品.
func (t *TreasureService) Get(ctx context.Context, id uint) (types.TreasureInfo, error) {
	var treasure model.Treasure

	err := t.dbClient.GetDB().WithContext(ctx).First(&treasure, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.TreasureInfo{}, media.ErrNotFound
	}

	if err != nil {
		return types.TreasureInfo{}, err
	}

	return t.toTreasureInfo(ctx, &treasure), nil
}

// List 分页列出藏品.
func (t *TreasureService) List(ctx context.Context, page, size int) (types.ListTreasuresResponse, error) {
	if page <= 0 {
		page = 1
	}

	if size <= 0 || size > 200 {
		size = 50
	}

	dbx := t.dbClient.GetDB().WithContext(ctx).Model(&model.Treasure{})

	var total int64
	if err := dbx.Count(&total).Error; err != nil {
		return types.ListTreasuresResponse{}, err
	}

	var rows []model.Treasure
	if err := dbx.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return types.ListTreasuresResponse{}, err
	}

	items := make([]types.TreasureInfo, 0, len(rows))
	for i := range rows {
		items = append(items, t.toTreasureInfo(ctx, &rows[i]))
	}

	return types.ListTreasuresResponse{Total: int(total), Page: page, Size: size, Items: items}, nil
}

// Delete 删除藏品并级联回收其全部媒体。
// 媒体先回收、藏品行后删除：中途失败时藏品仍在，重试删除可收敛。
func (t *TreasureService) Delete(ctx context.Context, actor string, id uint, elevated bool) (types.DeleteTreasureResponse, error) {
	var treasure model.Treasure

	err := t.dbClient.GetDB().WithContext(ctx).First(&treasure, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.DeleteTreasureResponse{}, media.ErrNotFound
	}

	if err != nil {
		return types.DeleteTreasureResponse{}, err
	}

	if !elevated && treasure.Curator != actor {
		return types.DeleteTreasureResponse{}, media.WrapAuthorizationDenied("treasure %d curated by another account", id)
	}

	result, err := t.reaper.ReapCascade(ctx, id)
	if err != nil {
		return types.DeleteTreasureResponse{}, err
	}

	kinds := make([]string, 0, len(result.Reaped))
	for i := range result.Reaped {
		a := &result.Reaped[i]
		kinds = append(kinds, a.Kind)
		t.audit(ctx, model.AuditActionReap, a.ID, id, actor, "cascade", true)
	}

	for _, failedID := range result.Failures {
		t.audit(ctx, model.AuditActionReap, failedID, id, actor, "cascade member failed", false)
	}

	t.invalidateListCache(ctx, id, kinds...)

	if err := t.dbClient.GetDB().WithContext(ctx).Delete(&model.Treasure{}, id).Error; err != nil {
		return types.DeleteTreasureResponse{}, err
	}

	if t.mqClient != nil && t.cfg.Events.Enabled {
		payload := queue.TreasureReapedPayload{
			TreasureID:   id,
			AssetsReaped: len(result.Reaped),
			Failures:     result.Failures,
		}
		if err := queue.PublishTreasureReaped(t.mqClient.Publisher(), payload); err != nil {
			log.Logger().Warn().Uint("treasure", id).Err(err).Msg("publish treasure reaped event failed")
		}
	}

	return types.DeleteTreasureResponse{
		ID:           id,
		AssetsReaped: len(result.Reaped),
		Failures:     result.Failures,
	}, nil
}

// PromoteMedia 把暂存媒体提升并绑定到藏品，先做归属检查.
func (t *TreasureService) PromoteMedia(ctx context.Context, actor string, id uint, req types.PromoteMediaRequest, elevated bool) (types.PromoteMediaResponse, error) {
	if err := t.authorize(ctx, actor, id, elevated); err != nil {
		return types.PromoteMediaResponse{}, err
	}

	if req.AssetID != "" {
		info, err := t.Promote(ctx, actor, req.AssetID, id)
		if err != nil {
			return types.PromoteMediaResponse{}, err
		}

		return types.PromoteMediaResponse{Promoted: []types.MediaAssetInfo{info}}, nil
	}

	promoted, err := t.PromoteGroup(ctx, actor, req.GroupTag, req.Kind, id)
	if err != nil {
		return types.PromoteMediaResponse{Promoted: promoted}, err
	}

	return types.PromoteMediaResponse{Promoted: promoted}, nil
}

// ReplaceMedia 替换藏品名下某条媒体的内容，先做归属检查.
func (t *TreasureService) ReplaceMedia(ctx context.Context, actor string, id uint, existingID, newStagedID string, elevated bool) (types.ReplaceMediaResponse, error) {
	if err := t.authorize(ctx, actor, id, elevated); err != nil {
		return types.ReplaceMediaResponse{}, err
	}

	existing, err := t.store.Get(ctx, existingID)
	if err != nil {
		return types.ReplaceMediaResponse{}, err
	}

	if existing.OwnerID != id {
		return types.ReplaceMediaResponse{}, media.WrapAuthorizationDenied("asset %s not bound to treasure %d", existingID, id)
	}

	return t.Replace(ctx, actor, existingID, newStagedID)
}

// authorize 校验操作者对藏品的权限：馆员本人或 elevated 角色.
func (t *TreasureService) authorize(ctx context.Context, actor string, id uint, elevated bool) error {
	var treasure model.Treasure

	err := t.dbClient.GetDB().WithContext(ctx).First(&treasure, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return media.ErrNotFound
	}

	if err != nil {
		return err
	}

	if !elevated && treasure.Curator != actor {
		return media.WrapAuthorizationDenied("treasure %d curated by another account", id)
	}

	return nil
}

// toTreasureInfo 映射藏品视图并统计已提升媒体数.
func (t *TreasureService) toTreasureInfo(ctx context.Context, treasure *model.Treasure) types.TreasureInfo {
	var count int64

	_ = t.dbClient.GetDB().WithContext(ctx).
		Model(&model.MediaAsset{}).
		Where("state = ? AND owner_id = ?", model.MediaStateSynced, treasure.ID).
		Count(&count).Error

	return types.TreasureInfo{
		ID:              treasure.ID,
		AccessionNumber: treasure.AccessionNumber,
		Name:            treasure.Name,
		Description:     treasure.Description,
		Curator:         treasure.Curator,
		MediaCount:      int(count),
		CreatedAt:       treasure.CreatedAt,
	}
}
