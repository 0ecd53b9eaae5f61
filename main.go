package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/daniel-torresc/emerald-backend-sub002/cmd"
	"github.com/daniel-torresc/emerald-backend-sub002/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app, err := cmd.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
