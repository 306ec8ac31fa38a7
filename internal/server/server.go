package server

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/config"
	"github.com/tatsukoohno1441/temutool/internal/logger"
)

//go:embed static
var staticFiles embed.FS

// maxUploadMemory multipart 解析时保留在内存中的上限，超出部分落临时文件
const maxUploadMemory = 32 << 20

// Server HTTP服务器
type Server struct {
	router    *gin.Engine
	cfg       *config.AppConfig
	logger    *zap.Logger
	downloads *downloadStore
	ttl       time.Duration
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory
	router.Use(logger.Recovery(log), logger.GinMiddleware(log))

	s := &Server{
		router:    router,
		cfg:       cfg,
		logger:    log,
		downloads: newDownloadStore(),
		ttl:       DefaultDownloadTTL,
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.Health)
		api.POST("/report", s.Report)
		api.POST("/manifest", s.Manifest)
		api.GET("/download/:token", s.Download)
	}

	sub, _ := fs.Sub(staticFiles, "static")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(index)
}

// Handler 返回 http.Handler（测试用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	s.logger.Info("server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}
