// Package main 启动应用程序
package main

import "github.com/yeisme/relicvault/pkg/cmd"

//	@title			RelicVault API
//	@version		1.0
//	@description	RelicVault 是博物馆藏品媒体的暂存-同步服务，提供上传暂存、提升绑定、替换与级联回收等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
