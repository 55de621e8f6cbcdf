// Package service 实现业务逻辑：媒体流水线编排、藏品管理、审计与事件发布.
package service

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid"

	"github.com/yeisme/relicvault/pkg/cache"
	"github.com/yeisme/relicvault/pkg/configs"
	ctxPkg "github.com/yeisme/relicvault/pkg/context"
	"github.com/yeisme/relicvault/pkg/internal/media"
	"github.com/yeisme/relicvault/pkg/internal/model"
	"github.com/yeisme/relicvault/pkg/internal/storage/db"
	"github.com/yeisme/relicvault/pkg/internal/storage/fs"
	"github.com/yeisme/relicvault/pkg/internal/storage/kv"
	"github.com/yeisme/relicvault/pkg/internal/storage/mq"
	"github.com/yeisme/relicvault/pkg/internal/types"
	"github.com/yeisme/relicvault/pkg/log"
	"github.com/yeisme/relicvault/pkg/queue"
)

// listCacheTTL 媒体列表缓存的有效期；所有写路径都会主动失效，
// TTL 只是兜底。
const listCacheTTL = time.Minute

// MediaService 媒体流水线的业务门面，组合 Stager/Synchronizer/Reaper
// 并补上审计、事件发布与列表缓存。
type MediaService struct {
	dbClient *db.Client
	fsClient *fs.Client
	mqClient *mq.Client
	kvClient *kv.Client

	cfg    *configs.AppConfig
	codec  *media.PathCodec
	store  *media.AssetStore
	stager *media.Stager
	syncer *media.Synchronizer
	reaper *media.Reaper
	cache  *cache.Cache
}

// NewMediaService 从 request context 取出存储客户端并组装流水线.
func NewMediaService(c context.Context) *MediaService {
	dbc := ctxPkg.GetDBClient(c)
	fsc := ctxPkg.GetFSClient(c)
	mqc := ctxPkg.GetMQClient(c)
	kvc := ctxPkg.GetKVClient(c)

	cfg := configs.GetConfig()
	codec := media.NewPathCodec(&cfg.Media)
	store := media.NewAssetStore(dbc.GetDB())
	proc := media.NewProcessor(fsc, &cfg.Media)

	s := &MediaService{
		dbClient: dbc,
		fsClient: fsc,
		mqClient: mqc,
		kvClient: kvc,
		cfg:      cfg,
		codec:    codec,
		store:    store,
		stager:   media.NewStager(store, fsc, codec),
		syncer:   media.NewSynchronizer(store, fsc, proc, codec),
		reaper:   media.NewReaper(store, fsc, codec),
	}

	if kvc != nil {
		s.cache = cache.NewCache(kvc)
	}

	return s
}

// toAssetInfo 把索引行映射为对外视图；暂存资产不暴露 URL.
func (s *MediaService) toAssetInfo(a *model.MediaAsset) types.MediaAssetInfo {
	info := types.MediaAssetInfo{
		ID:        a.ID,
		Kind:      a.Kind,
		State:     a.State,
		OwnerID:   a.OwnerID,
		GroupTag:  a.GroupTag,
		FileExt:   a.FileExt,
		SyncedAt:  a.SyncedAt,
		CreatedAt: a.CreatedAt,
	}

	if a.State == model.MediaStateSynced {
		info.URL = s.codec.PublicURL(a)
		info.ThumbnailURL = s.codec.PublicRenditionURL(a)
	}

	return info
}

// newULID 生成按时间排序的审计 ID.
func newULID() string {
	return ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
}

// audit 写一行审计日志；审计失败不影响业务结果，只记录.
func (s *MediaService) audit(ctx context.Context, action, assetID string, ownerID uint, actor, detail string, success bool) {
	entry := &model.AuditEntry{
		ID:      newULID(),
		Action:  action,
		AssetID: assetID,
		OwnerID: ownerID,
		Actor:   actor,
		Detail:  detail,
		Success: success,
	}

	if err := s.dbClient.GetDB().WithContext(ctx).Create(entry).Error; err != nil {
		log.Logger().Warn().Str("action", action).Str("asset", assetID).Err(err).Msg("audit write failed")
	}
}

// invalidateListCache 使藏品的媒体列表缓存失效.
func (s *MediaService) invalidateListCache(ctx context.Context, ownerID uint, kinds ...string) {
	if s.cache == nil || ownerID == 0 {
		return
	}

	s.cache.InvalidateOwner(ctx, ownerID, kinds...)
}

// assetRef 构造事件负载里的资产引用.
func assetRef(a *model.MediaAsset) queue.AssetRef {
	return queue.AssetRef{
		ID:         a.ID,
		Kind:       a.Kind,
		OwnerID:    a.OwnerID,
		StorageDir: a.StorageDir,
		FileExt:    a.FileExt,
		GroupTag:   a.GroupTag,
		State:      a.State,
	}
}

// eventsEnabled 判断某类媒体事件是否应发布.
func (s *MediaService) eventsEnabled(pick func(configs.MediaEventsConfig) bool) bool {
	if s.mqClient == nil || !s.cfg.Events.Enabled {
		return false
	}

	return pick(s.cfg.Events.Media)
}
