package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/app"
	"tourismBooking/internal/config"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending migrations and exit")
	rollback := flag.Bool("rollback", false, "roll back the last applied migration and exit")
	dev := flag.Bool("dev", false, "fill development defaults for missing secrets")
	flag.Parse()

	load := config.Load
	if *dev {
		load = config.LoadWithDefaults
	}
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if *migrate || *rollback {
		if err := app.Migrate(cfg, *rollback); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	app.Run(cfg)
}
