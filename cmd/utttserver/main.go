// Command utttserver runs the utttengine REST/WebSocket API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/utttengine/internal/config"
	"github.com/yourusername/utttengine/pkg/api"
	"github.com/yourusername/utttengine/pkg/engine"
)

const version = "0.1.0"

func main() {
	configFile := flag.String("config", "", "Path to YAML config file")
	host := flag.String("host", "", "Host to bind to (overrides config)")
	port := flag.Int("port", 0, "Port to listen on (overrides config)")
	budget := flag.Duration("budget", 0, "Deep search budget (overrides config)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("utttengine API Server v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *budget != 0 {
		cfg.Search.BudgetMs = int(budget.Milliseconds())
	}

	log.Printf("utttengine API Server v%s", version)

	eng, err := engine.NewEngine(engineOptions(cfg))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	serverCfg := api.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: cfg.Server.FastWorkers,
		MaxSlowWorkers: cfg.Server.SlowWorkers,
	}

	server := api.NewServer(eng, serverCfg, version)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// engineOptions maps the file config onto engine options. Zero-valued
// weight overrides keep the engine defaults.
func engineOptions(cfg config.Config) engine.Options {
	opts := engine.Options{
		Search: engine.SearchConfig{
			Budget:           time.Duration(cfg.Search.BudgetMs) * time.Millisecond,
			StartDepth:       cfg.Search.StartDepth,
			MaxDepth:         cfg.Search.MaxDepth,
			UseOpponentModel: cfg.Search.UseOpponentModel,
		},
		CacheSize: uint32(cfg.Search.CacheSize),
	}

	w := cfg.Weights
	if w != (config.WeightsConfig{}) {
		weights := engine.DefaultWeights()
		if w.Win != 0 {
			weights.Win = w.Win
		}
		if w.MacroTwoOwn != 0 {
			weights.MacroTwoOwn = w.MacroTwoOwn
		}
		if w.MacroTwoOpp != 0 {
			weights.MacroTwoOpp = w.MacroTwoOpp
		}
		if w.MacroOneOwn != 0 {
			weights.MacroOneOwn = w.MacroOneOwn
		}
		if w.MacroOneOpp != 0 {
			weights.MacroOneOpp = w.MacroOneOpp
		}
		if w.SubCenter != 0 {
			weights.SubCenter = w.SubCenter
		}
		if w.SubCorner != 0 {
			weights.SubCorner = w.SubCorner
		}
		if w.SubEdge != 0 {
			weights.SubEdge = w.SubEdge
		}
		if w.SubDraw != 0 {
			weights.SubDraw = w.SubDraw
		}
		if w.SendFree != 0 {
			weights.SendFree = w.SendFree
		}
		if w.SendWinnable != 0 {
			weights.SendWinnable = w.SendWinnable
		}
		opts.Weights = weights
	}
	return opts
}
