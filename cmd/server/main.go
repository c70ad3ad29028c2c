package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/signworks/estimator/internal/config"
	"github.com/signworks/estimator/internal/db"
	"github.com/signworks/estimator/internal/estimate"
	"github.com/signworks/estimator/internal/logger"
	"github.com/signworks/estimator/internal/migrations"
	"github.com/signworks/estimator/internal/seed"
	"github.com/signworks/estimator/internal/store"
)

type server struct {
	store     *store.Store
	engine    *estimate.Engine
	log       *zap.Logger
	backupDir string
}

func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	var database *sql.DB
	var dialect store.Dialect
	switch cfg.DBBackend {
	case "postgres":
		database, err = db.OpenPostgres(cfg.PostgresDSN)
		dialect = store.DialectPostgres
	default:
		database, err = db.OpenSQLite(cfg.DBPath)
		dialect = store.DialectSQLite
	}
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := migrations.Up(database, cfg.MigrationsDir, cfg.DBBackend); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	st := store.New(database, dialect)
	if cfg.SeedDemo {
		stats, err := seed.Run(context.Background(), st)
		if err != nil {
			log.Fatal("failed to seed demo data", zap.Error(err))
		}
		if stats.Inserts > 0 {
			log.Info("seeded demo data", zap.Int("inserts", stats.Inserts))
		}
	}

	srv := &server{
		store:     st,
		engine:    estimate.New(st),
		log:       log,
		backupDir: cfg.BackupDir,
	}

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("backend", cfg.DBBackend))
	if err := http.ListenAndServe(addr, newRouter(srv)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newRouter(s *server) chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleListProjects)
		r.Post("/projects", s.handleCreateProject)
		r.Get("/projects/{id}", s.handleGetProject)
		r.Put("/projects/{id}", s.handleUpdateProject)
		r.Delete("/projects/{id}", s.handleDeleteProject)
		r.Get("/projects/{id}/buildings", s.handleListBuildings)
		r.Post("/projects/{id}/buildings", s.handleCreateBuilding)
		r.Get("/projects/{id}/estimate", s.handleProjectEstimate)
		r.Post("/projects/{id}/estimate/custom", s.handleCustomEstimate)
		r.Get("/projects/{id}/estimate.xlsx", s.handleEstimateExport)

		r.Put("/buildings/{id}", s.handleUpdateBuilding)
		r.Delete("/buildings/{id}", s.handleDeleteBuilding)
		r.Post("/buildings/{id}/signs", s.handleAssignSign)
		r.Delete("/buildings/{id}/signs/{signTypeID}", s.handleUnassignSign)
		r.Post("/buildings/{id}/groups", s.handleAssignGroup)
		r.Delete("/buildings/{id}/groups/{groupID}", s.handleUnassignGroup)

		r.Get("/sign-types", s.handleListSignTypes)
		r.Post("/sign-types", s.handleCreateSignType)
		r.Put("/sign-types/{id}", s.handleUpdateSignType)
		r.Delete("/sign-types/{id}", s.handleDeleteSignType)
		r.Get("/sign-types/{id}/cost", s.handleSignCost)

		r.Get("/sign-groups", s.handleListSignGroups)
		r.Post("/sign-groups", s.handleCreateSignGroup)
		r.Put("/sign-groups/{id}", s.handleUpdateSignGroup)
		r.Delete("/sign-groups/{id}", s.handleDeleteSignGroup)
		r.Get("/sign-groups/{id}/members", s.handleListGroupMembers)
		r.Post("/sign-groups/{id}/members", s.handleAddGroupMember)
		r.Delete("/sign-groups/{id}/members/{signTypeID}", s.handleRemoveGroupMember)

		r.Get("/materials", s.handleListMaterials)
		r.Post("/materials", s.handleCreateMaterial)
		r.Put("/materials/{id}", s.handleUpdateMaterial)
		r.Delete("/materials/{id}", s.handleDeleteMaterial)
		r.Post("/materials/recalc", s.handleRecalcMaterials)

		r.Get("/pricing-profiles", s.handleListPricingProfiles)
		r.Post("/pricing-profiles", s.handleCreatePricingProfile)
		r.Put("/pricing-profiles/{id}", s.handleUpdatePricingProfile)
		r.Delete("/pricing-profiles/{id}", s.handleDeletePricingProfile)

		r.Post("/admin/backup", s.handleBackup)
	})

	return r
}
