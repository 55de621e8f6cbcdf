package media

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/relicvault/pkg/internal/model"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/metrics"
)

// reapConcurrency 级联回收的并发上限.
const reapConcurrency = 4

// Reaper 回收资产：先删行，后尽力删文件。
//
// 顺序是有意的——行删除提交后资产即告消失，即便文件删除半途崩溃，
// 留下的也只是不可达的孤儿文件（磁盘问题），而不是指向缺失文件的
// 活记录（正确性问题）。
type Reaper struct {
	store  *AssetStore
	fs     *fsc.Client
	codec  *PathCodec
	logger zerolog.Logger
}

// NewReaper 构造 Reaper.
func NewReaper(store *AssetStore, fs *fsc.Client, codec *PathCodec) *Reaper {
	return &Reaper{
		store:  store,
		fs:     fs,
		codec:  codec,
		logger: log.Component("reaper"),
	}
}

// Reap 回收单条资产，返回被删行的快照与实际删除的文件数.
// 文件删除失败不影响回收结果，只计入孤儿指标。
func (r *Reaper) Reap(ctx context.Context, assetID string) (*model.MediaAsset, int, error) {
	asset, err := r.store.Get(ctx, assetID)
	if err != nil {
		return nil, 0, err
	}

	// 行先删；并发的第二次 Reap 在这里收到 NotFound
	if err := r.store.Delete(ctx, assetID); err != nil {
		return nil, 0, err
	}

	removed := r.removeFiles(asset)

	metrics.AssetsReaped.WithLabelValues(asset.Kind).Inc()

	r.logger.Info().
		Str("asset", asset.ID).
		Str("state", asset.State).
		Int("files_removed", removed).
		Msg("asset reaped")

	return asset, removed, nil
}

// removeFiles 按行删除前的状态定位文件树，尽力删除主文件与缩略副本.
func (r *Reaper) removeFiles(asset *model.MediaAsset) int {
	var primary, dir string

	if asset.State == model.MediaStateSynced {
		primary = r.codec.DurablePath(asset)
		dir = r.codec.DurableDir(asset)
	} else {
		primary = r.codec.StagingPath(asset)
		dir = r.codec.StagingDir(asset)
	}

	targets := []string{primary}
	if model.IsImageKind(asset.Kind) {
		targets = append(targets, RenditionPath(primary))
	}

	removed := 0

	for _, rel := range targets {
		if !r.fs.Exists(rel) {
			continue
		}

		if err := r.fs.Remove(rel); err != nil {
			metrics.OrphanFiles.Inc()
			r.logger.Warn().Str("asset", asset.ID).Str("path", rel).Err(err).Msg("orphan file left behind")

			continue
		}

		removed++
	}

	r.fs.RemoveDirIfEmpty(dir)

	return removed
}

// CascadeResult 一次级联回收的汇总.
type CascadeResult struct {
	Reaped   []model.MediaAsset
	Failures []string
}

// ReapCascade 回收某件藏品名下的全部已提升资产。
// 成员之间互相独立：单个失败记入 Failures，不中止其余成员。
func (r *Reaper) ReapCascade(ctx context.Context, ownerID uint) (*CascadeResult, error) {
	assets, err := r.store.FindSynced(ctx, ownerID, "")
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result CascadeResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reapConcurrency)

	for i := range assets {
		asset := assets[i]

		g.Go(func() error {
			reaped, _, err := r.Reap(gctx, asset.ID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				result.Reaped = append(result.Reaped, *reaped)
			case errors.Is(err, ErrNotFound):
				// 并发请求抢先回收，视作已完成
			default:
				result.Failures = append(result.Failures, asset.ID)
				r.logger.Error().Str("asset", asset.ID).Uint("owner", ownerID).Err(err).Msg("cascade member reap failed")
			}

			return nil
		})
	}

	// goroutine 不返回错误，Wait 只用于收拢
	_ = g.Wait()

	return &result, nil
}

// SweepStaged 回收早于截止时间登记、从未提升的资产，返回回收条数.
// 这是暂存保留期的执行者，由调度器周期触发。
func (r *Reaper) SweepStaged(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := r.store.FindStagedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0

	for i := range stale {
		if _, _, err := r.Reap(ctx, stale[i].ID); err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
				// 清扫窗口内被提升或被回收，放行
				continue
			}

			return swept, err
		}

		swept++
	}

	if swept > 0 {
		r.logger.Info().Int("swept", swept).Time("cutoff", cutoff).Msg("stale staged assets swept")
	}

	return swept, nil
}
