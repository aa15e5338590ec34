package main

import (
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/book-inventory/internal/infrastructure/config"
)

// main 主程序入口
// 依赖通过Wire组装(wire_gen.go)
//
// @title        Book Inventory API
// @version      1.0
// @description  图书库存管理服务:图书列表(分页、搜索、销量)、详情(含销售记录)、添加、更新、软删除
// @host         localhost:8080
// @BasePath     /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}

	// 2. 组装依赖
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化应用失败")
	}
	defer cleanup()

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("driver", cfg.Database.Driver).
		Bool("events", cfg.Events.Enabled).
		Bool("tracing", cfg.Tracing.Enabled).
		Msg("配置加载成功")

	// 3. 启动服务(阻塞直到收到退出信号)
	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("服务异常退出")
	}
}
