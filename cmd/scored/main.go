package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mind-engage/introscore/internal/analysis"
	api "github.com/mind-engage/introscore/internal/api/http"
	"github.com/mind-engage/introscore/internal/config"
	"github.com/mind-engage/introscore/internal/db"
	"github.com/mind-engage/introscore/internal/rubric"
	"github.com/mind-engage/introscore/internal/scorelog"
	"github.com/mind-engage/introscore/internal/scoring"
	"github.com/mind-engage/introscore/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- Engine ---
	rb := rubric.Default()
	if cfg.RubricPath != "" {
		var err error
		if rb, err = rubric.Load(cfg.RubricPath); err != nil {
			log.Fatalf("rubric load failed: %v", err)
		}
	}
	set, err := analysis.FromConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("analysers: %v", err)
	}
	engine := scoring.NewEngine(append([]scoring.Option{scoring.WithRubric(rb)}, set.Options()...)...)
	log.Printf("engine: %s", set)

	// --- Score log (optional) ---
	var (
		repo *scorelog.Repo
		rec  api.Recorder
	)
	if cfg.ScoreLogEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		cancel()
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		repo = scorelog.NewRepo(dbh)
		rec = repo
	}

	r, err := newRouter(cfg, engine, rec, repo)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (mode=%s, scorelog=%t)", cfg.HTTPAddr, cfg.Mode, cfg.ScoreLogEnabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("stopped")
}

func newRouter(cfg config.Config, engine api.Scorer, rec api.Recorder, repo *scorelog.Repo) (chi.Router, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins(),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length", "X-Score-ID"},
		MaxAge:         300,
	}))

	r.Post("/score", api.ScoreHandler(engine, rec, cfg.MaxBodyBytes))
	r.Post("/score/upload", api.ScoreUploadHandler(engine, rec, cfg.MaxBodyBytes))

	if repo != nil {
		r.Route("/results", func(rr chi.Router) {
			api.MountResults(rr, repo)
		})
	}

	if cfg.ServeDashboard {
		if err := api.MountDashboard(r, web.Assets); err != nil {
			return nil, err
		}
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	return r, nil
}
