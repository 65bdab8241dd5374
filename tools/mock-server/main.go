// Package main implements a fake eBay seller API server for local
// development. It keeps inventory locations, items, offers, and published
// listings in memory and answers the OAuth, Identity, Media, Sell
// Inventory, Trading GetMyeBaySelling, and Analytics calls the listing
// engine makes, so the full publish and sync flow runs without real
// eBay credentials.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	rejectPrefix := flag.String("reject-sku-prefix", "", "publish fails for offers whose SKU has this prefix")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	addr := fmt.Sprintf(":%d", *port)
	baseURL := fmt.Sprintf("http://localhost:%d", *port)

	fake := newFakeEbay(baseURL, logger)
	fake.rejectPrefix = *rejectPrefix

	logger.Info("starting mock eBay server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, fake.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}
