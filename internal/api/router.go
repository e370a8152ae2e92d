package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"BoatraceAPI/internal/config"
	"BoatraceAPI/internal/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册中间件与全部路由；recorder 可为 nil
func NewRouter(cfg *config.Config, source interfaces.RaceDataSource, recorder interfaces.AccessRecorder, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORS)))

	// 注册ppof 方便调试和监测性能问题
	if cfg.Server.Pprof {
		pprof.Register(r)
	}

	raceHandler := NewRaceHandler(source, recorder, logger)

	r.GET("/", Root)
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", Health)
		apiGroup.GET("/programs/:race_date/:stadium_number/:race_number", raceHandler.GetPrograms)
		apiGroup.GET("/odds/:race_date/:stadium_number/:race_number", raceHandler.GetOdds)
		apiGroup.GET("/previews/:race_date/:stadium_number/:race_number", raceHandler.GetPreviews)
		apiGroup.GET("/results/:race_date/:stadium_number/:race_number", raceHandler.GetResults)
		apiGroup.GET("/stadiums", raceHandler.ListStadiumCatalog)
		apiGroup.GET("/stadiums/:race_date", raceHandler.GetStadiums)
	}

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, ErrKindNotFound, "接口不存在: "+c.Request.URL.Path)
	})
	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = cfg.AllowOrigins
	cc.AllowCredentials = true
	return cc
}

// Server 包装 http.Server，支持随 context 优雅退出
type Server struct {
	srv    *http.Server
	logger *logrus.Logger
}

func NewServer(port int, handler http.Handler, logger *logrus.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run 启动服务并阻塞，ctx 取消后在 10 秒内完成关闭
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Infof("服务启动成功，监听地址：%s", s.srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("收到退出信号，开始关闭服务")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
