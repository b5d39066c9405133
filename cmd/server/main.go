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

	"ytextract/config"
	"ytextract/extract"
	"ytextract/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	extractor := extract.NewExtractor(ctx, &extract.Config{
		APIKey:       cfg.APIKey,
		Fetcher:      cfg.FetcherConfig(),
		ProbeTimeout: cfg.ProbeTimeout,
	})

	srv := server.New(extractor, cfg.CallerRPM, cfg.RequestTimeout)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
	}

	go func() {
		mode := "scraping-only"
		if cfg.APIKey != "" {
			mode = "api+scraping"
		}
		log.Printf("listening on %s (%s mode)", cfg.Addr, mode)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
