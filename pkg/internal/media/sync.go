package media

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yeisme/relicvault/pkg/internal/model"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/metrics"
)

// Synchronizer 驱动资产状态机：提升（STAGED→SYNCED）、替换（同 ID 换内容）、
// 批量提升。每个转换都是三步协议：
//
//	(a) 条件更新认领源行（拒绝重复提升）
//	(b) 执行文件系统工作，rename 是提交点
//	(c) 文件系统失败时尽力撤销认领并上报错误
//
// 行绝不会停留在"已认领但持久树里没有对应文件"的状态。
type Synchronizer struct {
	store  *AssetStore
	fs     *fsc.Client
	proc   *Processor
	codec  *PathCodec
	logger zerolog.Logger
}

// NewSynchronizer 构造 Synchronizer.
func NewSynchronizer(store *AssetStore, fs *fsc.Client, proc *Processor, codec *PathCodec) *Synchronizer {
	return &Synchronizer{
		store:  store,
		fs:     fs,
		proc:   proc,
		codec:  codec,
		logger: log.Component("synchronizer"),
	}
}

// Promote 把一条暂存资产提升到持久树并绑定藏品.
//
// 并发的第二次提升收到 Conflict——对重复提交的表单这是良性的"无事可做"。
// 处理或移动失败时资产回到 STAGED，暂存文件原样保留。
func (s *Synchronizer) Promote(ctx context.Context, assetID string, ownerID uint) (*model.MediaAsset, error) {
	started := time.Now()
	now := started.UTC()

	// (a) 认领
	if err := s.store.TransitionToSynced(ctx, assetID, ownerID, now); err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.PromoteConflicts.Inc()
		}

		return nil, err
	}

	asset, err := s.store.Get(ctx, assetID)
	if err != nil {
		// 认领刚成功，行应当存在；到这里说明并发 reap 抢先了
		return nil, err
	}

	// (b) 文件系统工作
	if err := s.moveIntoDurable(ctx, asset); err != nil {
		// (c) 撤销认领，资产回到 STAGED
		if revErr := s.store.RevertToStaged(ctx, assetID); revErr != nil {
			s.logger.Error().Str("asset", assetID).Err(revErr).Msg("claim revert failed, row needs sweep")
		}

		return nil, err
	}

	// 提升完成后暂存目录应当已空，删不掉不影响正确性
	s.fs.RemoveDirIfEmpty(s.codec.StagingDir(asset))

	metrics.AssetsPromoted.WithLabelValues(asset.Kind).Inc()
	metrics.PromoteDuration.WithLabelValues(asset.Kind).Observe(time.Since(started).Seconds())

	s.logger.Info().
		Str("asset", asset.ID).
		Uint("owner", ownerID).
		Str("kind", asset.Kind).
		Msg("asset promoted")

	return asset, nil
}

// moveIntoDurable 派生缩略副本并把主文件（及副本）移入持久树.
// 任何一步失败都把已落位的文件搬回去，让暂存文件保持可重试。
func (s *Synchronizer) moveIntoDurable(ctx context.Context, asset *model.MediaAsset) error {
	stagingPrimary := s.codec.StagingPath(asset)

	der, err := s.proc.Derive(stagingPrimary, asset.Kind)
	if err != nil {
		return err
	}

	// 嗅探修正扩展名：先把暂存文件搬到修正后的名字，再落库。
	// 文件与行始终一致，之后任何失败回到的 STAGED 状态都能直接重试。
	if der.SniffedExt != "" {
		corrected := *asset
		corrected.FileExt = der.SniffedExt
		stagingCorrected := s.codec.StagingPath(&corrected)

		if err := s.fs.Move(stagingPrimary, stagingCorrected); err != nil {
			s.removeBestEffort(der.RenditionRel)

			return wrapErr(ErrStorageMoveFailed, "correct staging name %s: %v", asset.ID, err)
		}

		if err := s.store.UpdateExtension(ctx, asset.ID, der.SniffedExt); err != nil {
			if backErr := s.fs.Move(stagingCorrected, stagingPrimary); backErr != nil {
				metrics.OrphanFiles.Inc()
				s.logger.Error().Str("asset", asset.ID).Err(backErr).Msg("staging file stranded under corrected name")
			}

			s.removeBestEffort(der.RenditionRel)

			return err
		}

		asset.FileExt = der.SniffedExt
		stagingPrimary = stagingCorrected
	}

	durablePrimary := s.codec.DurablePath(asset)

	if err := s.fs.Move(stagingPrimary, durablePrimary); err != nil {
		s.removeBestEffort(der.RenditionRel)

		return wrapErr(ErrStorageMoveFailed, "promote %s: %v", asset.ID, err)
	}

	if der.RenditionRel != "" {
		if err := s.fs.Move(der.RenditionRel, RenditionPath(durablePrimary)); err != nil {
			// 把主文件搬回暂存，维持 STAGED 不变量
			if backErr := s.fs.Move(durablePrimary, stagingPrimary); backErr != nil {
				metrics.OrphanFiles.Inc()
				s.logger.Error().Str("asset", asset.ID).Err(backErr).Msg("primary stranded in durable tree")
			}

			s.removeBestEffort(der.RenditionRel)

			return wrapErr(ErrStorageMoveFailed, "promote rendition %s: %v", asset.ID, err)
		}
	}

	return nil
}

// PromoteGroup 批量提升共享同一 group_tag 的暂存资产.
// 并发已处理的成员跳过（良性），硬错误中止并返回已提升的部分。
// 调用方留空的槽位根本不会出现在分组里，由保留期清扫回收，不算错误。
func (s *Synchronizer) PromoteGroup(ctx context.Context, groupTag, kind string, ownerID uint) ([]model.MediaAsset, error) {
	staged, err := s.store.FindStaged(ctx, groupTag, kind)
	if err != nil {
		return nil, err
	}

	promoted := make([]model.MediaAsset, 0, len(staged))

	for i := range staged {
		asset, err := s.Promote(ctx, staged[i].ID, ownerID)
		if err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}

			return promoted, err
		}

		promoted = append(promoted, *asset)
	}

	return promoted, nil
}

// Replace 用一条新暂存资产替换已提升资产的内容，保留其 ID 与 storage_dir.
//
// 顺序规则：新文件先落位、既有行再更新、旧文件最后删除——替换中途失败
// 留下的是仍然完整可用的旧版本（行和旧文件都没动过），绝不会出现两个
// 版本都不在的空档。被消费的暂存行在既有行更新的同一事务里带 state
// 条件删除，它从不经过 SYNCED 状态，并发的第二次消费在删除处收到
// Conflict，整个事务回滚。
func (s *Synchronizer) Replace(ctx context.Context, existingID, newStagedID string) (*model.MediaAsset, error) {
	existing, err := s.store.Get(ctx, existingID)
	if err != nil {
		return nil, err
	}

	if existing.State != model.MediaStateSynced {
		return nil, wrapErr(ErrConflict, "replace target %s is %s", existingID, existing.State)
	}

	newAsset, err := s.store.Get(ctx, newStagedID)
	if err != nil {
		return nil, err
	}

	if newAsset.State != model.MediaStateStaged {
		return nil, wrapErr(ErrConflict, "replacement %s is %s", newStagedID, newAsset.State)
	}

	if newAsset.Kind != existing.Kind {
		return nil, wrapErr(ErrConflict, "kind mismatch: %s vs %s", newAsset.Kind, existing.Kind)
	}

	now := time.Now().UTC()
	oldPrimary := s.codec.DurablePath(existing)

	newExt, err := s.swapDurableFiles(existing, newAsset)
	if err != nil {
		return nil, err
	}

	// 新文件已落位：更新既有行、条件删除被消费的行，同一事务。
	// 影响行数为零说明暂存行已被并发消费，事务整体回滚。
	err = s.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.MediaAsset{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{"file_ext": newExt, "synced_at": now}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND state = ?", newStagedID, model.MediaStateStaged).
			Delete(&model.MediaAsset{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return wrapErr(ErrConflict, "replacement %s already consumed", newStagedID)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.PromoteConflicts.Inc()
		}

		// 旧文件尚未删除、既有行未更新，旧版本保持权威
		s.logger.Error().Str("asset", existing.ID).Err(err).Msg("replace bookkeeping failed, old version stays authoritative")

		return nil, err
	}

	// 行已落定，再清掉扩展名不同而留下的旧文件；失败只占磁盘
	replaced := *existing
	replaced.FileExt = newExt
	newPrimary := s.codec.DurablePath(&replaced)

	if oldPrimary != newPrimary {
		s.removeBestEffort(oldPrimary)
	}

	if model.IsImageKind(existing.Kind) && RenditionPath(oldPrimary) != RenditionPath(newPrimary) {
		s.removeBestEffort(RenditionPath(oldPrimary))
	}

	s.fs.RemoveDirIfEmpty(s.codec.StagingDir(newAsset))

	existing.FileExt = newExt
	existing.SyncedAt = &now

	metrics.AssetsReplaced.WithLabelValues(existing.Kind).Inc()

	s.logger.Info().
		Str("asset", existing.ID).
		Str("consumed", newStagedID).
		Msg("asset content replaced")

	return existing, nil
}

// swapDurableFiles 把新暂存文件落位到既有资产的持久名下，返回替换后的
// 扩展名。旧文件不在这里动——要等行更新提交之后才轮到它们。
func (s *Synchronizer) swapDurableFiles(existing, newAsset *model.MediaAsset) (string, error) {
	stagingPrimary := s.codec.StagingPath(newAsset)

	der, err := s.proc.Derive(stagingPrimary, existing.Kind)
	if err != nil {
		return "", err
	}

	newExt := newAsset.FileExt
	if der.SniffedExt != "" {
		newExt = der.SniffedExt
	}

	target := *existing
	target.FileExt = newExt
	durablePrimary := s.codec.DurablePath(&target)

	// 新主文件落位；扩展名未变时 rename 直接原子覆盖旧文件
	if err := s.fs.Move(stagingPrimary, durablePrimary); err != nil {
		s.removeBestEffort(der.RenditionRel)

		return "", wrapErr(ErrStorageMoveFailed, "replace %s: %v", existing.ID, err)
	}

	if der.RenditionRel != "" {
		if err := s.fs.Move(der.RenditionRel, RenditionPath(durablePrimary)); err != nil {
			if backErr := s.fs.Move(durablePrimary, stagingPrimary); backErr != nil {
				metrics.OrphanFiles.Inc()
				s.logger.Error().Str("asset", existing.ID).Err(backErr).Msg("new primary stranded in durable tree")
			}

			s.removeBestEffort(der.RenditionRel)

			return "", wrapErr(ErrStorageMoveFailed, "replace rendition %s: %v", existing.ID, err)
		}
	}

	return newExt, nil
}

// removeBestEffort 尽力删除文件，失败计入孤儿指标并记录.
func (s *Synchronizer) removeBestEffort(rel string) {
	if rel == "" {
		return
	}

	if err := s.fs.Remove(rel); err != nil {
		metrics.OrphanFiles.Inc()
		s.logger.Warn().Str("path", rel).Err(err).Msg("best-effort removal failed")
	}
}
