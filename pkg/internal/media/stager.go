package media

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/relicvault/pkg/internal/model"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
	"github.com/yeisme/relicvault/pkg/log"
)

// Stager 接收上传流，分配身份，写入暂存树并登记 STAGED 行.
type Stager struct {
	store  *AssetStore
	fs     *fsc.Client
	codec  *PathCodec
	logger zerolog.Logger
}

// NewStager 构造 Stager.
func NewStager(store *AssetStore, fs *fsc.Client, codec *PathCodec) *Stager {
	return &Stager{
		store:  store,
		fs:     fs,
		codec:  codec,
		logger: log.Component("stager"),
	}
}

// Stage 登记一条暂存资产：生成 ID 与 storage_dir（相互独立的随机值），
// 把流写入暂存路径，然后才创建 STAGED 行。
//
// 写文件先于写记录：崩溃最多留下一个无引用的临时文件，绝不会留下指向
// 缺失文件的记录。
func (s *Stager) Stage(ctx context.Context, stagedBy, kind, groupTag, filename string, r io.Reader) (*model.MediaAsset, error) {
	if !model.ValidKind(kind) {
		return nil, wrapErr(ErrInvalidKind, "%q", kind)
	}

	asset := &model.MediaAsset{
		ID:         uuid.NewString(),
		StorageDir: NewStorageDir(),
		Kind:       kind,
		StagedBy:   stagedBy,
		GroupTag:   groupTag,
		// 申报扩展名是暂定的，嗅探修正发生在提升时
		FileExt: NormalizeExt(path.Ext(filename)),
		State:   model.MediaStateStaged,
	}

	dst := s.codec.StagingPath(asset)

	size, err := s.fs.WriteStream(dst, r)
	if err != nil {
		return nil, wrapErr(ErrStorageWriteFailed, "stage %s: %v", asset.ID, err)
	}

	if err := s.store.Create(ctx, asset); err != nil {
		// 记录创建失败，回收刚写入的文件；失败只记录
		if rmErr := s.fs.Remove(dst); rmErr != nil {
			s.logger.Warn().Str("asset", asset.ID).Err(rmErr).Msg("orphan staging file left behind")
		}

		s.fs.RemoveDirIfEmpty(s.codec.StagingDir(asset))

		return nil, err
	}

	s.logger.Info().
		Str("asset", asset.ID).
		Str("kind", kind).
		Str("group_tag", groupTag).
		Int64("size", size).
		Msg("asset staged")

	return asset, nil
}
