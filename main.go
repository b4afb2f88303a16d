package main

import (
	"github.com/bookshare/bookshare/internal/config"
	"github.com/bookshare/bookshare/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
