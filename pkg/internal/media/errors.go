// Package media 实现媒体资产的暂存-同步流水线：上传登记、缩略图派生、
// 提升/替换/摘除状态机与清除协议.
//
// 正确性纪律：关系索引是权威记录；文件系统 rename 是提交点。每个转换要么
// 完整生效，要么让资产停留在先前状态——孤儿文件只占磁盘，悬空记录才是错误。
package media

import (
	"errors"
	"fmt"
)

// 流水线错误分类。调用方用 errors.Is 判别，HTTP 层据此映射状态码。
var (
	// ErrNotFound 资产或藏品不存在.
	ErrNotFound = errors.New("media: not found")
	// ErrConflict 状态转换前置条件不满足（资产已被并发请求处理）。
	// 对重复提交的表单而言是良性结果，不是硬错误。
	ErrConflict = errors.New("media: conflict")
	// ErrUnsupportedOrCorruptMedia 内容无法解码或格式不受支持，需重新上传.
	ErrUnsupportedOrCorruptMedia = errors.New("media: unsupported or corrupt media")
	// ErrStorageWriteFailed 写入暂存树失败，未产生任何记录.
	ErrStorageWriteFailed = errors.New("media: storage write failed")
	// ErrStorageMoveFailed 暂存到持久树的移动失败，资产保持先前状态.
	ErrStorageMoveFailed = errors.New("media: storage move failed")
	// ErrAuthorizationDenied 归属或角色检查未通过.
	ErrAuthorizationDenied = errors.New("media: authorization denied")
	// ErrInvalidKind 未知的媒体种类.
	ErrInvalidKind = errors.New("media: invalid kind")
)

// WrapAuthorizationDenied 附带细节的授权拒绝错误，供上层做归属与角色检查.
func WrapAuthorizationDenied(format string, args ...any) error {
	return wrapErr(ErrAuthorizationDenied, format, args...)
}

// wrapErr 在保留分类哨兵的同时附加细节.
func wrapErr(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
