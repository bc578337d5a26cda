package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"finoverse.com/brandbook/internal/config"
	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/index"
	mw "finoverse.com/brandbook/internal/middleware"
	"finoverse.com/brandbook/internal/observability"
	"finoverse.com/brandbook/internal/shell"
	"finoverse.com/brandbook/internal/site"
	"finoverse.com/brandbook/public"
	"finoverse.com/brandbook/templates"
)

func main() {
	var (
		configPath string
		addr       string
		tmplPath   string
		pubPath    string
	)
	flag.StringVar(&configPath, "config", config.DefaultFile, "config file (optional)")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&tmplPath, "templates", "", "templates directory (default: embedded)")
	flag.StringVar(&pubPath, "public", "", "public assets directory (default: embedded)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	// Port resolution: -addr, then Cloud Run's PORT, then config.
	if addr != "" {
		cfg.Addr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if tmplPath != "" {
		cfg.TemplatesDir = tmplPath
	}
	if pubPath != "" {
		cfg.PublicDir = pubPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(observability.LoggerOptions{
		Level:   cfg.LogLevel,
		Console: !cfg.IsProd(),
		Service: "brandbook-web",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Fatal("init app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening", zap.String("addr", cfg.Addr), zap.Bool("dev", cfg.Dev), zap.Int("pages", a.shell.Index().Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("listen", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("web stopped")
}

// app holds everything the handlers share. It is read-only after newApp.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	shell     *shell.Shell
	site      *site.Templates
	assets    fs.FS
	downloads fs.FS
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bb, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(bb)
	if err != nil {
		return nil, err
	}
	for _, w := range content.Warnings(bb) {
		logger.Warn("content", zap.String("warning", w))
	}

	var tfs fs.FS = templates.FS()
	if cfg.TemplatesDir != "" {
		tfs = os.DirFS(cfg.TemplatesDir)
	}
	// Parse once; dev mode reparses on each request but still fails fast here.
	tpl, err := site.Load(tfs, cfg.Dev)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		shell:     shell.New(bb, idx),
		site:      tpl,
		assets:    public.Assets(),
		downloads: public.Downloads(),
	}
	if cfg.PublicDir != "" {
		a.assets = os.DirFS(filepath.Join(cfg.PublicDir, "assets"))
		a.downloads = os.DirFS(filepath.Join(cfg.PublicDir, "downloads"))
	}
	mw.ConfigureSession(cfg.SessionKey, cfg.IsProd())
	return a, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(observability.TraceMiddleware)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.HTMX)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(a.assets)))
	r.Handle("/downloads/*", http.StripPrefix("/downloads", mw.Downloads(a.downloads)))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/navigation", a.apiNavigation)
		r.Get("/pages/{section}/{page}", a.apiPage)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.Session)
		r.Use(mw.CSRF)
		r.Get("/", a.home)
		r.Get("/{section}/{page}", a.page)
		r.Post("/prefs/theme", a.toggleTheme)
		r.Post("/prefs/clock", a.toggleClock)
		r.Post("/nav/{id}/toggle", a.toggleNav)
	})

	r.NotFound(a.home)
	return r
}
