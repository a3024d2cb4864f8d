package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/config"
	"github.com/mesh05/Techolution-PRM/prm/configs"
	"github.com/mesh05/Techolution-PRM/prm/controllers"
	"github.com/mesh05/Techolution-PRM/prm/routes"
	"github.com/mesh05/Techolution-PRM/prm/services/llm"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/sources/storage"
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logging.ErrorLogger.Error("minio connection error", zap.Error(err))
		os.Exit(1)
	}

	userDAO := dao.NewUserDAO(db.DB)
	convDAO := dao.NewConversationDAO(db.DB)
	resourceDAO := dao.NewResourceDAO(db.DB)
	projectDAO := dao.NewProjectDAO(db.DB)
	fileDAO := dao.NewFileDAO(db.DB)

	prompt := configs.LoadPromptConfig(cfg.PromptFile)
	llmClient := llm.NewClient(cfg)

	healthCtrl := controllers.NewHealthController()
	authCtrl := controllers.NewAuthController(userDAO, convDAO, cfg)
	convCtrl := controllers.NewConversationController(convDAO)
	dataCtrl := controllers.NewDataController(resourceDAO, projectDAO)
	ingestCtrl := controllers.NewIngestController(resourceDAO, projectDAO)
	askCtrl := controllers.NewAskController(convDAO, dataCtrl, llmClient, prompt)
	fileCtrl := controllers.NewFileController(fileDAO, convDAO, minioClient)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/conversations", routes.ConversationRoutes(convCtrl))
	r.Mount("/data", routes.DataRoutes(dataCtrl, ingestCtrl))
	r.Mount("/ai", routes.AIRoutes(askCtrl, cfg))
	r.Mount("/files", routes.FileRoutes(fileCtrl))

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
