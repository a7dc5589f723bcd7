package main

import (
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/app"
	"github.com/niksmo/storefront/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	application := app.New(cfg, os.Stdout)
	driver := app.NewDriver(application)

	go func() {
		driver.Run(sigCtx, os.Stdin)
		closeApp()
	}()

	application.Run(sigCtx)
}
