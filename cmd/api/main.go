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

	"github.com/joho/godotenv"

	"github.com/plantpal/backend/internal/config"
	"github.com/plantpal/backend/internal/handler"
	"github.com/plantpal/backend/internal/model/plant"
	speechmodel "github.com/plantpal/backend/internal/model/speech"
	"github.com/plantpal/backend/internal/observability"
	"github.com/plantpal/backend/internal/policy"
	"github.com/plantpal/backend/internal/service/ai"
	convservice "github.com/plantpal/backend/internal/service/conversation"
	speechservice "github.com/plantpal/backend/internal/service/speech"
	turnservice "github.com/plantpal/backend/internal/service/turn"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	profiles := plant.NewMemoryStore()
	convs := convservice.NewService()
	guard := policy.NewGuard(cfg.Auth.SecretToken)
	metrics := observability.NewMetrics("plantpal")

	if !cfg.AI.Enabled() {
		log.Fatal("Ark credentials missing: the chat model must be available before the first request")
	}
	aiService, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	log.Println("AI service initialized successfully")

	var synth turnservice.Synthesizer
	if cfg.Speech.Enabled {
		speechConfig := &speechmodel.Config{
			AppID:       cfg.Speech.AppID,
			AccessToken: cfg.Speech.AccessToken,
			APIKey:      cfg.Speech.APIKey,
			TTSVoice:    cfg.Speech.TTSVoice,
			TTSSpeed:    cfg.Speech.TTSSpeed,
			TTSVolume:   cfg.Speech.TTSVolume,
			TTSLanguage: cfg.Speech.TTSLanguage,
			Timeout:     cfg.Speech.Timeout,
		}
		synth = speechservice.NewService(speechConfig)
		log.Println("Speech service initialized successfully")
	} else {
		log.Println("speech credentials not configured, replies will be text only")
	}

	turns := turnservice.NewService(profiles, convs, aiService, synth, metrics)
	router := handler.NewRouter(profiles, convs, turns, guard)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("PlantPal backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
