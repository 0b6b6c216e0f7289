package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderdesk/internal/config"
	"orderdesk/internal/db"
	"orderdesk/internal/domain"
	"orderdesk/internal/httpserver"
	"orderdesk/internal/importer"
	"orderdesk/internal/logging"
	"orderdesk/internal/migrate"
	"orderdesk/internal/repository/draft"
	"orderdesk/internal/seed"
	agencysvc "orderdesk/internal/service/agency"
	clientsvc "orderdesk/internal/service/client"
	discountsvc "orderdesk/internal/service/discount"
	ordersvc "orderdesk/internal/service/order"
	productsvc "orderdesk/internal/service/product"
	"orderdesk/internal/store"
	"orderdesk/internal/upload"
	"orderdesk/internal/wizard"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var (
		dbpool *pgxpool.Pool
		drafts draft.Repository
	)
	if cfg.DBConnString != "" {
		dbpool, err = db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer dbpool.Close()
		if err := migrate.Apply(ctx, dbpool, logger); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		drafts = draft.NewPostgres(dbpool, logger)
	} else {
		logger.Info("DB_DSN not set, drafts kept in memory")
		drafts = draft.NewMemory()
	}

	loader := seed.Load
	if cfg.CatalogCSV != "" {
		extra, err := loadCatalog(ctx, cfg.CatalogCSV)
		if err != nil {
			logger.Fatal("load catalogue", zap.String("file", cfg.CatalogCSV), zap.Error(err))
		}
		logger.Info("catalogue loaded", zap.String("file", cfg.CatalogCSV), zap.Int("products", len(extra)))
		loader = seed.WithProducts(extra)
	}
	st := store.New(loader, logger)

	var uploads upload.Writer
	if cfg.UploadS3Bucket != "" {
		s3w, err := upload.NewS3(ctx, cfg.AWSRegion, cfg.UploadS3Bucket, cfg.AssetsBaseURL)
		if err != nil {
			logger.Fatal("init s3 uploads", zap.Error(err))
		}
		uploads = s3w
	} else {
		uploads = upload.NewLocal(cfg.PublicDir)
	}

	orderService := ordersvc.New(st.Orders, seed.Archive, logger)
	newWizard := func(session string, privileged bool) *wizard.Wizard {
		return wizard.New(wizard.Options{
			Session:       session,
			Privileged:    privileged,
			DefaultAgency: seed.DefaultAgencyID,
			Agencies:      st.Agencies,
			Orders:        orderService,
			Drafts:        drafts,
			Logger:        logger,
		})
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ClientSvc:   clientsvc.New(st.Clients, logger),
		ProductSvc:  productsvc.New(st.Products, seed.DefaultAgencyID, logger),
		AgencySvc:   agencysvc.New(st.Agencies, st.Clients, seed.DefaultAgencyID, logger),
		DiscountSvc: discountsvc.New(st.Discounts, st.Clients, st.Products, logger),
		OrderSvc:    orderService,
		Uploads:     uploads,
		NewWizard:   newWizard,
		PublicDir:   cfg.PublicDir,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func loadCatalog(ctx context.Context, path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return importer.NewCSVImporter(f).Run(ctx)
}
