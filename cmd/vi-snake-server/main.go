package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/metrics"
	"github.com/lixenwraith/vi-snake/server"
	"github.com/lixenwraith/vi-snake/store"
)

const shutdownTimeout = 10 * time.Second

var (
	configFlag = flag.String("config", "", "Config file (default: user config dir/vi-snake/config.toml)")
	addrFlag   = flag.String("addr", "", "Listen address (overrides [server] addr)")
	storeFlag  = flag.String("store", "", "High score backend: file, redis, postgres, memory")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if *storeFlag != "" {
		cfg.Store.Backend = *storeFlag
	}

	keys, err := cfg.KeyTable()
	if err != nil {
		log.Fatalf("key bindings: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(ctx, cfg.Store)
	cancel()
	if err != nil {
		log.Printf("high scores are kept in memory only")
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gameServer := server.New(cfg.Server, st,
		server.WithMetrics(m, reg),
		server.WithDifficulty(cfg.Game.Difficulty),
		server.WithKeyTable(keys),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           gameServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Println("server started on", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	// Hijacked websocket connections are not tracked by Shutdown
	if err := gameServer.Close(ctx); err != nil {
		log.Printf("sessions did not close in time: %v", err)
	}

	log.Println("server exited")
}
