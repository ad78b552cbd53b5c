package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/config"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/server"
)

var (
	port       = flag.Int("port", 0, "服务端口 (覆盖 config.toml)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dbURL      = flag.String("db", "", "PostgreSQL 连接串 (覆盖配置文件)")
	saveConfig = flag.Bool("save-config", false, "将当前生效配置写入 config.toml 后退出")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Demand Planning - 需求计划数据服务")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dbURL != "" {
		cfg.Database.URL = *dbURL
	}

	if *saveConfig {
		if err := config.SaveConfig(cfg); err != nil {
			log.Fatalf("写入配置失败: %v", err)
		}
		fmt.Println("配置已写入 config.toml")
		return
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("服务初始化失败: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	srv.Close()
}
