package main

import (
	"net/http"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/gorilla/mux"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/advisor"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/config"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/extractor"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/notifications"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/printer"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/processor"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/report"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/repo"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get postgres")
	}

	dataRepo, err := repo.NewPostgres(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup repo")
	}

	waNotifier := notifications.NewWhatsApp(
		cfg.WhatsApp.BaseURL,
		cfg.WhatsApp.APIToken,
		req.DefaultClient(),
	)

	completionClient := extractor.NewOpenAI(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		float32(cfg.OpenAI.Temperature),
	)

	processorSvc := processor.NewProcessor(&processor.Config{
		Repo:            dataRepo,
		Extractor:       extractor.NewService(completionClient),
		NotificationSvc: waNotifier,
		Printer:         printer.NewPrinter(),
		Advisor:         advisor.NewService(completionClient),
		Report:          report.NewBuilder(),
	})

	pool := workerpool.New(cfg.Server.PoolSize)
	defer pool.StopWait()

	handle := NewHandler(
		processorSvc,
		pool,
		cfg.Server.WebhookKey,
		time.Duration(cfg.Server.JobTimeoutSeconds)*time.Second,
		log.Logger,
	)

	r := mux.NewRouter()
	r.Handle("/api/whatsapp/webhook", handle)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.ListenAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", cfg.Server.ListenAddr).Msg("listening")

	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
