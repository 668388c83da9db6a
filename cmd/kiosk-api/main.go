// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Alfredcrmn/hardware-kiosk/internal/ai"
	"github.com/Alfredcrmn/hardware-kiosk/internal/config"
	httptransport "github.com/Alfredcrmn/hardware-kiosk/internal/http"
	"github.com/Alfredcrmn/hardware-kiosk/internal/infra"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/assistant"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	catalogStore := catalog.NewStore(dbPool)
	catalogSvc := catalog.NewService(catalogStore)

	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)

	engine := assistant.NewEngine(catalogSvc, assistant.DefaultPinnedFallbacks())
	assistantSvc := assistant.NewService(catalogSvc, provider, engine, cfg.Session.HistoryWindow)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Assistant: assistantSvc,
		Catalog:   catalogSvc,
		Sessions:  sessionStore,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
