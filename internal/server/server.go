package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/api"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/config"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/store"
)

// storage 服务器依赖的存储能力
type storage interface {
	api.Store
	Ping(ctx context.Context) error
	Close()
}

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  storage
}

// New 创建服务器并初始化存储
func New(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	pgStore, err := store.New(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, err
	}

	return newWithStorage(cfg, pgStore), nil
}

func newWithStorage(cfg *config.AppConfig, st storage) *Server {
	s := &Server{
		router: gin.Default(),
		store:  st,
	}

	handler := api.NewHandler(st, cfg.Business)
	s.setupRoutes(cfg, handler)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(cfg *config.AppConfig, handler *api.Handler) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.Server.CORSOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 请求 id
	s.router.Use(func(c *gin.Context) {
		c.Header("X-Request-Id", uuid.New().String())
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		handler.RegisterRoutes(apiGroup)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend API is running")
	})

	s.router.GET("/healthz", func(c *gin.Context) {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放数据库连接
func (s *Server) Close() {
	s.store.Close()
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
