// @title WikiQuiz 后端 API
// @version 1.0
// @description 从维基百科文章生成学习教材(摘要+判断题)并管理答题会话的后端服务。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"

	"wikiquiz_backend/internal/app"
	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/pkg/configwatcher"
	"wikiquiz_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置热更新
	go configwatcher.WatchConfig(filepath.Join(*configDir, "config.yaml"), application.ReloadConfig)

	application.Run()
}
