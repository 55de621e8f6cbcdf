// Package fs 处理本地媒体文件树的存储操作.
//
// 媒体树分为暂存区与持久区两棵子树，提升操作通过 rename 在同一文件系统内
// 原子移动文件，因此两棵子树必须位于同一挂载点。
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yeisme/relicvault/pkg/configs"
	nlog "github.com/yeisme/relicvault/pkg/log"
)

const dirPerm = 0o755

// Client 本地媒体树客户端，所有路径参数均为相对媒体根的相对路径.
type Client struct {
	root string
}

// New 初始化媒体树客户端，确保暂存与持久两棵子树存在.
func New() (*Client, error) {
	cfg := configs.GetConfig().Media

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}

	for _, sub := range []string{cfg.StagingDir, cfg.DurableDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), dirPerm); err != nil {
			return nil, fmt.Errorf("create media tree %s: %w", sub, err)
		}
	}

	nlog.Logger().Info().Str("root", root).Msg("media tree ready")

	return &Client{root: root}, nil
}

// NewAt 以指定根目录初始化客户端，不读取全局配置，供测试与一次性工具使用.
func NewAt(root string) (*Client, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}

	return &Client{root: root}, nil
}

// Root 返回媒体根的绝对路径.
func (c *Client) Root() string {
	return c.root
}

// Abs 把相对媒体根的路径转换为绝对路径.
func (c *Client) Abs(rel string) string {
	return filepath.Join(c.root, filepath.FromSlash(rel))
}

// WriteStream 将 r 的内容写入相对路径 rel，自动创建父目录.
// 先写临时文件再 rename，避免半截文件出现在最终路径上。
func (c *Client) WriteStream(rel string, r io.Reader) (int64, error) {
	dst := c.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return 0, fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return 0, fmt.Errorf("write stream: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return 0, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())

		return 0, fmt.Errorf("commit temp file: %w", err)
	}

	return n, nil
}

// Move 在媒体树内原子移动文件，自动创建目标父目录.
func (c *Client) Move(fromRel, toRel string) error {
	from, to := c.Abs(fromRel), c.Abs(toRel)

	if err := os.MkdirAll(filepath.Dir(to), dirPerm); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}

	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("move %s -> %s: %w", fromRel, toRel, err)
	}

	return nil
}

// Remove 删除相对路径 rel 的文件；文件不存在不算错误.
func (c *Client) Remove(rel string) error {
	err := os.Remove(c.Abs(rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", rel, err)
	}

	return nil
}

// RemoveDirIfEmpty 删除目录（仅当为空），清理提升后遗留的暂存目录.
func (c *Client) RemoveDirIfEmpty(rel string) {
	if err := os.Remove(c.Abs(rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		// 目录非空或权限问题，留着不影响正确性
		nlog.Logger().Debug().Str("dir", rel).Err(err).Msg("leave staging dir in place")
	}
}

// Exists 判断相对路径 rel 的文件是否存在.
func (c *Client) Exists(rel string) bool {
	_, err := os.Stat(c.Abs(rel))

	return err == nil
}

// Open 打开相对路径 rel 的文件用于读取.
func (c *Client) Open(rel string) (*os.File, error) {
	f, err := os.Open(c.Abs(rel))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rel, err)
	}

	return f, nil
}

// HealthCheck 校验媒体根仍可访问.
func (c *Client) HealthCheck() error {
	if _, err := os.Stat(c.root); err != nil {
		return fmt.Errorf("media root unavailable: %w", err)
	}

	return nil
}

// Close 关闭客户端（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}
