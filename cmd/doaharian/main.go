package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"doaharian/internal/commands"
	"doaharian/internal/config"
	"doaharian/internal/crash"
	"doaharian/internal/printers"
	"doaharian/internal/util/logx"
	"doaharian/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	crash.Setup(crash.Stderr)
	defer func() {
		if v := recover(); v != nil {
			crash.Report("main", v)
			os.Exit(2)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	// Setup cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting doaharian %s", version.String())
	if err := commands.New(cfg).ExecuteContext(ctx); err != nil {
		logx.Errorf("doaharian exited with error: %v", err)
		pp := printers.New()
		pp.Out = color.Error
		pp.Error(err.Error())
		cancel()
		os.Exit(1)
	}
}
