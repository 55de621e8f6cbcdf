package media

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/model"
)

// renditionSuffix 缩略副本在扩展名前插入的固定后缀.
const renditionSuffix = "_resized"

// PathCodec 资产标识与磁盘位置之间的确定性映射，无副作用.
// 所有返回路径均为相对媒体根的 slash 路径，由 fs 客户端转为绝对路径。
type PathCodec struct {
	stagingRoot  string
	durableRoot  string
	publicPrefix string
}

// NewPathCodec 从媒体配置构造 PathCodec.
func NewPathCodec(cfg *configs.MediaConfig) *PathCodec {
	return &PathCodec{
		stagingRoot:  cfg.StagingDir,
		durableRoot:  cfg.DurableDir,
		publicPrefix: cfg.PublicPrefix,
	}
}

// NewStorageDir 生成高熵随机目录段（sha256 hex）。
// 与资产 ID 相互独立，避免通过 ID 猜测路径。
func NewStorageDir() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))

	return hex.EncodeToString(sum[:])
}

// StagingPath 暂存树中的主文件路径.
func (p *PathCodec) StagingPath(asset *model.MediaAsset) string {
	return path.Join(p.stagingRoot, asset.StorageDir, asset.ID+asset.FileExt)
}

// DurablePath 持久树中的主文件路径.
func (p *PathCodec) DurablePath(asset *model.MediaAsset) string {
	return path.Join(p.durableRoot, asset.StorageDir, asset.ID+asset.FileExt)
}

// StagingDir 资产的暂存目录，提升后尽力删除.
func (p *PathCodec) StagingDir(asset *model.MediaAsset) string {
	return path.Join(p.stagingRoot, asset.StorageDir)
}

// DurableDir 资产的持久目录.
func (p *PathCodec) DurableDir(asset *model.MediaAsset) string {
	return path.Join(p.durableRoot, asset.StorageDir)
}

// RenditionPath 在扩展名前插入固定后缀，得到缩略副本路径.
// 仅需正向推导；同样的输入永远得到同样的输出，重试安全。
func RenditionPath(primary string) string {
	ext := path.Ext(primary)

	return strings.TrimSuffix(primary, ext) + renditionSuffix + ext
}

// PublicURL 持久文件对外暴露的 URL 路径.
func (p *PathCodec) PublicURL(asset *model.MediaAsset) string {
	return p.publicPrefix + "/" + p.DurablePath(asset)
}

// PublicRenditionURL 缩略副本对外暴露的 URL 路径；非图像族返回空串.
func (p *PathCodec) PublicRenditionURL(asset *model.MediaAsset) string {
	if !model.IsImageKind(asset.Kind) {
		return ""
	}

	return p.publicPrefix + "/" + RenditionPath(p.DurablePath(asset))
}

// NormalizeExt 规范化扩展名：保留点前缀、转小写；空输入返回空串.
func NormalizeExt(ext string) string {
	if ext == "" {
		return ""
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return strings.ToLower(ext)
}
