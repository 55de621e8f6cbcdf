package configs

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultMediaRoot         = "protected_media"             // 媒体文件根目录
	DefaultMediaStagingDir   = "media/temporary"             // 暂存子树（未绑定的上传）
	DefaultMediaDurableDir   = "media/synced"                // 持久子树（已绑定的媒体）
	DefaultMediaPublicPrefix = "/backend/protected_media"    // 对外 URL 前缀
	DefaultThumbnailWidth    = 800                           // 缩略图宽度上限
	DefaultThumbnailHeight   = 600                           // 缩略图高度上限
	DefaultThumbnailQuality  = 85                            // JPEG 重编码质量
	DefaultStagedRetention   = 24 * time.Hour                // 未晋升暂存资产的保留窗口
	DefaultMaxUploadBytes    = int64(100) * 1024 * 1024      // 单文件上传大小上限
)

// MediaConfig 媒体存储树与处理配置.
// 暂存树与持久树共享同一个本地文件系统根目录，保证 rename 提交点的原子性.
type MediaConfig struct {
	Root         string `mapstructure:"root"          rule:"required"` // 本地文件系统根目录
	StagingDir   string `mapstructure:"staging_dir"`                   // 暂存子树（相对 Root）
	DurableDir   string `mapstructure:"durable_dir"`                   // 持久子树（相对 Root）
	PublicPrefix string `mapstructure:"public_prefix"`                 // 生成访问 URL 时的前缀

	ThumbnailWidth   int `mapstructure:"thumbnail_width"   rule:"min=16,max=4096"`
	ThumbnailHeight  int `mapstructure:"thumbnail_height"  rule:"min=16,max=4096"`
	ThumbnailQuality int `mapstructure:"thumbnail_quality" rule:"min=1,max=100"`

	// StagedRetention 暂存资产多久未晋升后允许被清扫回收
	StagedRetention time.Duration `mapstructure:"staged_retention"`
	// MaxUploadBytes 单个上传流的大小上限（字节）
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" rule:"min=1"`
}

// StagingRoot 返回暂存树的绝对根路径.
func (c *MediaConfig) StagingRoot() string {
	return filepath.Join(c.Root, filepath.FromSlash(c.StagingDir))
}

// DurableRoot 返回持久树的绝对根路径.
func (c *MediaConfig) DurableRoot() string {
	return filepath.Join(c.Root, filepath.FromSlash(c.DurableDir))
}

// setDefaults 设置媒体配置的默认值.
func (c *MediaConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("media.root", DefaultMediaRoot)
	v.SetDefault("media.staging_dir", DefaultMediaStagingDir)
	v.SetDefault("media.durable_dir", DefaultMediaDurableDir)
	v.SetDefault("media.public_prefix", DefaultMediaPublicPrefix)
	v.SetDefault("media.thumbnail_width", DefaultThumbnailWidth)
	v.SetDefault("media.thumbnail_height", DefaultThumbnailHeight)
	v.SetDefault("media.thumbnail_quality", DefaultThumbnailQuality)
	v.SetDefault("media.staged_retention", DefaultStagedRetention)
	v.SetDefault("media.max_upload_bytes", DefaultMaxUploadBytes)
}
