package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/quizsmith/quizsmith/internal/completion"
	"github.com/quizsmith/quizsmith/internal/logger"
	"github.com/quizsmith/quizsmith/internal/mathseg"
)

const serviceName = "quizsmith"

// Server exposes the completion tasks and the math renderer over HTTP.
type Server struct {
	cfg      Config
	log      *logger.Logger
	runner   *completion.Runner
	renderer mathseg.Renderer
	engine   *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithRenderer replaces the default math renderer.
func WithRenderer(r mathseg.Renderer) Option {
	return func(s *Server) { s.renderer = r }
}

// New builds the router. A nil logger discards output.
func New(cfg Config, runner *completion.Runner, log *logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		cfg:      cfg,
		log:      log,
		runner:   runner,
		renderer: mathseg.DelimiterRenderer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(CORS())
	r.Use(secure.New(securityConfig()))
	r.Use(otelgin.Middleware(serviceName))
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))
	r.Use(Recovery(s.log))
	if s.cfg.MaxBodyBytes > 0 {
		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
			c.Next()
		})
	}

	r.GET("/healthz", s.healthz)

	fn := r.Group("/functions/v1")
	{
		for _, task := range completion.Tasks() {
			fn.POST("/"+task.Name, s.completionHandler(task))
		}
		fn.POST("/render-latex", s.renderLatex)
	}
	return r
}

// securityConfig keeps the library's browser hardening headers. TLS is
// terminated in front of the service, so no redirect or HSTS here.
func securityConfig() secure.Config {
	cfg := secure.DefaultConfig()
	cfg.SSLRedirect = false
	cfg.STSSeconds = 0
	cfg.ContentSecurityPolicy = "default-src 'none'"
	return cfg
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
