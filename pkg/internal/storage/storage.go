// Package storage 聚合媒体流水线依赖的存储资源：数据库索引、本地媒体树、
// KV 缓存与消息队列.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
//	fsClient := mgr.GetFSClient()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/relicvault/pkg/configs"
	dbc "github.com/yeisme/relicvault/pkg/internal/storage/db"
	fsc "github.com/yeisme/relicvault/pkg/internal/storage/fs"
	kvc "github.com/yeisme/relicvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/relicvault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/relicvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
	FS *fsc.Client
	KV *kvc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.DB = dbi

		// 本地媒体树
		fsi, e := fsc.New()
		if e != nil {
			err = e
			return
		}

		m.FS = fsi

		// KV 缓存
		kvi, e := kvc.NewKVClient(ctx)
		if e != nil {
			err = e
			return
		}

		m.KV = kvi

		// MQ（事件关闭时不连接）
		if configs.GetConfig().Events.Enabled {
			mqi, e := mqc.New(ctx)
			if e != nil {
				err = e
				return
			}

			m.MQ = mqi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetFSClient 获取本地媒体树客户端.
func (m *Manager) GetFSClient() *fsc.Client {
	return m.FS
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端，事件关闭时为 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 释放全部存储资源.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.KV != nil {
		if e := m.KV.Close(); e != nil {
			err = e
		}
	}

	if m.FS != nil {
		if e := m.FS.Close(); e != nil {
			err = e
		}
	}

	if m.DB != nil {
		if sqlDB, e := m.DB.DB.DB(); e == nil {
			if e := sqlDB.Close(); e != nil {
				err = e
			}
		}
	}

	return err
}
