package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yeisme/relicvault/pkg/cache"
	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/media"
	"github.com/yeisme/relicvault/pkg/internal/model"
	"github.com/yeisme/relicvault/pkg/internal/types"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/queue"
)

// Stage 登记一条上传：写暂存树、建 STAGED 行、记审计、发事件.
func (s *MediaService) Stage(ctx context.Context, actor, kind, groupTag, filename string, r io.Reader, size int64) (types.StageMediaResponse, error) {
	if size > 0 && size > s.cfg.Media.MaxUploadBytes {
		return types.StageMediaResponse{}, fmt.Errorf("upload exceeds limit of %d bytes", s.cfg.Media.MaxUploadBytes)
	}

	asset, err := s.stager.Stage(ctx, actor, kind, groupTag, filename, r)
	if err != nil {
		s.audit(ctx, model.AuditActionStage, "", 0, actor, err.Error(), false)

		return types.StageMediaResponse{}, err
	}

	s.audit(ctx, model.AuditActionStage, asset.ID, 0, actor, filename, true)

	if s.eventsEnabled(func(m configs.MediaEventsConfig) bool { return m.Staged }) {
		payload := queue.MediaStagedPayload{Asset: assetRef(asset), Size: size, Actor: actor}
		if err := queue.PublishMediaStaged(s.mqClient.Publisher(), payload); err != nil {
			log.Logger().Warn().Str("asset", asset.ID).Err(err).Msg("publish staged event failed")
		}
	}

	return types.StageMediaResponse{Asset: s.toAssetInfo(asset)}, nil
}

// Promote 把单个暂存资产提升并绑定到藏品.
func (s *MediaService) Promote(ctx context.Context, actor, assetID string, ownerID uint) (types.MediaAssetInfo, error) {
	asset, err := s.syncer.Promote(ctx, assetID, ownerID)
	if err != nil {
		s.audit(ctx, model.AuditActionPromote, assetID, ownerID, actor, err.Error(), false)

		return types.MediaAssetInfo{}, err
	}

	s.audit(ctx, model.AuditActionPromote, asset.ID, ownerID, actor, "", true)
	s.invalidateListCache(ctx, ownerID, asset.Kind)
	s.publishSynced(asset, false)

	return s.toAssetInfo(asset), nil
}

// PromoteGroup 批量提升一个分组并绑定到藏品.
func (s *MediaService) PromoteGroup(ctx context.Context, actor, groupTag, kind string, ownerID uint) ([]types.MediaAssetInfo, error) {
	promoted, err := s.syncer.PromoteGroup(ctx, groupTag, kind, ownerID)

	kinds := make([]string, 0, len(promoted))
	infos := make([]types.MediaAssetInfo, 0, len(promoted))

	for i := range promoted {
		a := &promoted[i]
		kinds = append(kinds, a.Kind)
		infos = append(infos, s.toAssetInfo(a))

		s.audit(ctx, model.AuditActionPromote, a.ID, ownerID, actor, "group="+groupTag, true)
		s.publishSynced(a, true)
	}

	if len(promoted) > 0 {
		s.invalidateListCache(ctx, ownerID, kinds...)
	}

	if err != nil {
		s.audit(ctx, model.AuditActionPromote, "", ownerID, actor, fmt.Sprintf("group=%s: %v", groupTag, err), false)

		return infos, err
	}

	return infos, nil
}

// Replace 用新的暂存资产替换已提升资产的内容.
func (s *MediaService) Replace(ctx context.Context, actor, existingID, newStagedID string) (types.ReplaceMediaResponse, error) {
	before, err := s.store.Get(ctx, existingID)
	if err != nil {
		return types.ReplaceMediaResponse{}, err
	}

	oldExt := before.FileExt

	updated, err := s.syncer.Replace(ctx, existingID, newStagedID)
	if err != nil {
		s.audit(ctx, model.AuditActionReplace, existingID, before.OwnerID, actor, err.Error(), false)

		return types.ReplaceMediaResponse{}, err
	}

	s.audit(ctx, model.AuditActionReplace, updated.ID, updated.OwnerID, actor, "consumed="+newStagedID, true)
	s.invalidateListCache(ctx, updated.OwnerID, updated.Kind)

	if s.eventsEnabled(func(m configs.MediaEventsConfig) bool { return m.Replaced }) {
		payload := queue.MediaReplacedPayload{Asset: assetRef(updated), ConsumedID: newStagedID, OldExt: oldExt}
		if err := queue.PublishMediaReplaced(s.mqClient.Publisher(), payload); err != nil {
			log.Logger().Warn().Str("asset", updated.ID).Err(err).Msg("publish replaced event failed")
		}
	}

	return types.ReplaceMediaResponse{Asset: s.toAssetInfo(updated)}, nil
}

// Detach 回收单条资产。暂存资产只有上传者本人（或 elevated 角色）可回收；
// 已提升资产的归属检查由藏品层完成。
func (s *MediaService) Detach(ctx context.Context, actor, assetID string, elevated bool) (types.ReapMediaResponse, error) {
	asset, err := s.store.Get(ctx, assetID)
	if err != nil {
		return types.ReapMediaResponse{}, err
	}

	if asset.State == model.MediaStateStaged && !elevated && asset.StagedBy != actor {
		return types.ReapMediaResponse{}, media.WrapAuthorizationDenied("asset %s staged by another account", assetID)
	}

	reaped, removed, err := s.reaper.Reap(ctx, assetID)
	if err != nil {
		s.audit(ctx, model.AuditActionDetach, assetID, asset.OwnerID, actor, err.Error(), false)

		return types.ReapMediaResponse{}, err
	}

	s.audit(ctx, model.AuditActionDetach, reaped.ID, reaped.OwnerID, actor, "", true)
	s.invalidateListCache(ctx, reaped.OwnerID, reaped.Kind)
	s.publishReaped(reaped, removed)

	return types.ReapMediaResponse{ID: reaped.ID, FilesRemoved: removed}, nil
}

// ListSynced 列出藏品的已提升媒体，带列表缓存.
func (s *MediaService) ListSynced(ctx context.Context, ownerID uint, kind string) (types.ListMediaResponse, error) {
	query := func() (types.ListMediaResponse, error) {
		assets, err := s.store.FindSynced(ctx, ownerID, kind)
		if err != nil {
			return types.ListMediaResponse{}, err
		}

		items := make([]types.MediaAssetInfo, 0, len(assets))
		for i := range assets {
			items = append(items, s.toAssetInfo(&assets[i]))
		}

		return types.ListMediaResponse{Total: len(items), Items: items}, nil
	}

	if s.cache == nil {
		return query()
	}

	return cache.GetOrSet(ctx, s.cache, cache.MediaListKey(ownerID, kind), query, listCacheTTL)
}

// SweepStaged 清扫保留窗口外的暂存资产；cutoff 为零值时使用配置的保留期.
func (s *MediaService) SweepStaged(ctx context.Context, actor string, cutoff time.Time) (types.SweepResponse, error) {
	if cutoff.IsZero() {
		cutoff = time.Now().UTC().Add(-s.cfg.Media.StagedRetention)
	}

	swept, err := s.reaper.SweepStaged(ctx, cutoff)
	if err != nil {
		s.audit(ctx, model.AuditActionSweep, "", 0, actor, err.Error(), false)

		return types.SweepResponse{Swept: swept, Cutoff: cutoff}, err
	}

	s.audit(ctx, model.AuditActionSweep, "", 0, actor, fmt.Sprintf("swept=%d", swept), true)

	if swept > 0 && s.eventsEnabled(func(m configs.MediaEventsConfig) bool { return m.Swept }) {
		payload := queue.MediaSweptPayload{Count: swept, Cutoff: cutoff}
		if err := queue.PublishMediaSwept(s.mqClient.Publisher(), payload); err != nil {
			log.Logger().Warn().Err(err).Msg("publish swept event failed")
		}
	}

	return types.SweepResponse{Swept: swept, Cutoff: cutoff}, nil
}

// publishSynced 发布提升事件，失败只记录.
func (s *MediaService) publishSynced(asset *model.MediaAsset, batch bool) {
	if !s.eventsEnabled(func(m configs.MediaEventsConfig) bool { return m.Synced }) {
		return
	}

	syncedAt := time.Now().UTC()
	if asset.SyncedAt != nil {
		syncedAt = *asset.SyncedAt
	}

	payload := queue.MediaSyncedPayload{Asset: assetRef(asset), SyncedAt: syncedAt, Batch: batch}
	if err := queue.PublishMediaSynced(s.mqClient.Publisher(), payload); err != nil {
		log.Logger().Warn().Str("asset", asset.ID).Err(err).Msg("publish synced event failed")
	}
}

// publishReaped 发布回收事件，失败只记录.
func (s *MediaService) publishReaped(asset *model.MediaAsset, removed int) {
	if !s.eventsEnabled(func(m configs.MediaEventsConfig) bool { return m.Reaped }) {
		return
	}

	expected := 1
	if model.IsImageKind(asset.Kind) {
		expected = 2
	}

	payload := queue.MediaReapedPayload{Asset: assetRef(asset), FilesRemoved: removed >= expected}
	if err := queue.PublishMediaReaped(s.mqClient.Publisher(), payload); err != nil {
		log.Logger().Warn().Str("asset", asset.ID).Err(err).Msg("publish reaped event failed")
	}
}
