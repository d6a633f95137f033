package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"atlas/internal/config"
	"atlas/internal/gateway"
	"atlas/internal/handler"
	authHandler "atlas/internal/handler/auth"
	"atlas/internal/manager"
	"atlas/internal/permission"
	"atlas/internal/pkg/cache"
	"atlas/internal/pkg/jwt"
	"atlas/internal/search"
	"atlas/internal/seed"
	"atlas/internal/server/middleware"
	"atlas/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mgr    *manager.Manager
	redis  *cache.RedisCache
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 远端存储客户端
	gw := gateway.New(gateway.Options{
		BaseURL:      cfg.Upstream.BaseURL,
		Timeout:      cfg.Upstream.Timeout,
		RetryCount:   cfg.Upstream.RetryCount,
		RetryWait:    cfg.Upstream.RetryWait,
		RetryMaxWait: cfg.Upstream.RetryMaxWait,
	})

	// 兜底快照；加载失败降级为空数据源，服务仍可启动
	src, err := seed.Embedded()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load embedded seed, starting with empty fallback")
		src = seed.Empty()
	}

	// 检索器；分词器初始化失败时自动退回纯子串匹配
	matcher := search.Plain()
	if cfg.Search.Segmentation {
		matcher = search.New()
	}

	mgr := manager.New(gw, src, matcher)

	// Redis (可选)，仅用于刷新令牌存储
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, refresh tokens kept in memory")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mgr:    mgr,
		redis:  redisCache,
	}

	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.mgr)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	jwtUtil := jwt.NewJWT(jwtSecret, accessTokenExpiry)
	authSvc := service.NewAuthService(
		s.mgr.Users,
		cache.NewTokenStore(s.redis),
		jwtSecret,
		accessTokenExpiry,
		refreshTokenExpiry,
	)
	perm := permission.NewEvaluator(nil)

	authHdl := authHandler.NewHandler(authSvc)
	regionHdl := handler.NewRegionHandler(s.mgr, perm)
	articleHdl := handler.NewArticleHandler(s.mgr, perm)
	userHdl := handler.NewUserHandler(s.mgr, perm)
	roleHdl := handler.NewRoleHandler(s.mgr, perm)
	taxonomyHdl := handler.NewTaxonomyHandler(s.mgr, perm)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		// 认证接口（公开）
		v1.POST("/auth/register", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)
		v1.POST("/auth/refresh", authHdl.Refresh)

		// 公开读取接口
		v1.GET("/regions", regionHdl.List)
		v1.GET("/regions/:id", regionHdl.Get)
		v1.GET("/regions/:id/children", regionHdl.Children)
		v1.GET("/topics", articleHdl.List)
		v1.GET("/topics/:id", articleHdl.Get)
		v1.GET("/topics/:id/versions", articleHdl.Versions)
		v1.GET("/categories", taxonomyHdl.ListCategories)
		v1.GET("/tags", taxonomyHdl.ListTags)

		// 需要认证的接口
		authed := v1.Group("")
		authed.Use(middleware.Auth(jwtUtil))
		{
			authed.POST("/auth/logout", authHdl.Logout)
			authed.GET("/auth/me", authHdl.GetMe)

			authed.POST("/regions", regionHdl.Create)
			authed.PATCH("/regions/:id", regionHdl.Update)
			authed.DELETE("/regions/:id", regionHdl.Delete)

			authed.POST("/topics", articleHdl.Create)
			authed.PATCH("/topics/:id", articleHdl.Update)
			authed.PUT("/topics/:id/status", articleHdl.ChangeStatus)
			authed.DELETE("/topics/:id", articleHdl.Delete)

			authed.GET("/users", userHdl.List)
			authed.GET("/users/:id", userHdl.Get)
			authed.POST("/users", userHdl.Create)
			authed.PATCH("/users/:id", userHdl.Update)
			authed.DELETE("/users/:id", userHdl.Delete)

			authed.GET("/roles", roleHdl.List)
			authed.GET("/roles/:id/permissions", roleHdl.RolePermissions)
			authed.GET("/permissions", roleHdl.Permissions)
			authed.POST("/roles", roleHdl.Create)
			authed.PATCH("/roles/:id", roleHdl.Update)
			authed.DELETE("/roles/:id", roleHdl.Delete)

			authed.POST("/categories", taxonomyHdl.CreateCategory)
			authed.PATCH("/categories/:id", taxonomyHdl.UpdateCategory)
			authed.DELETE("/categories/:id", taxonomyHdl.DeleteCategory)
			authed.POST("/tags", taxonomyHdl.CreateTag)
			authed.DELETE("/tags/:id", taxonomyHdl.DeleteTag)
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
