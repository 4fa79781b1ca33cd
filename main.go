package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"

	"bus-route-server/config"
	"bus-route-server/handlers"
	"bus-route-server/preprocessing"
	"bus-route-server/routing"
	"bus-route-server/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config.yml (searches ./config.yml and ./config/config.yml when empty)")
	pflag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	format, err := preprocessing.ParseFormat(cfg.Dataset.Format)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Loading bus lines from %s...", cfg.Dataset.Path)
	lines, err := preprocessing.Load(cfg.Dataset.Path, preprocessing.LoadOptions{
		Format:     format,
		SplitLoops: cfg.Dataset.SplitLoops,
	})
	if err != nil {
		log.Fatalf("Failed to load required line data: %v", err)
	}

	log.Println("Building bus network (one-time)...")
	start := time.Now()
	engine, err := routing.NewEngine(lines, cfg.RoutingOptions())
	if err != nil {
		log.Fatalf("Failed to build bus network: %v", err)
	}
	log.Printf("Bus network ready in %v. Nodes: %d, Edges: %d",
		time.Since(start), engine.Graph().NodeCount(), engine.Graph().EdgeCount())

	routingService := services.NewRoutingService(engine, services.ServiceOptions{
		CacheSize:     cfg.Cache.Size,
		CacheTTL:      cfg.CacheTTL(),
		SearchTimeout: cfg.SearchTimeout(),
	})
	r := handlers.NewRouter(routingService, cfg.Server.AllowOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Bus Route Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
