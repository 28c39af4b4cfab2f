package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"codepanel/internal/application"
	"codepanel/internal/command"
	"codepanel/internal/config"
	"codepanel/internal/db"
	"codepanel/internal/editordetect"
	_ "codepanel/internal/editordetect/builtin"
	"codepanel/internal/historydb"
	"codepanel/internal/install"
	"codepanel/internal/logging"
)

var version = "dev"

func main() {
	app := command.BuildApp(command.Deps{
		RunServe:     runServe,
		RunInstall:   runInstall,
		ListRecents:  listRecents,
		ClearRecents: clearRecents,
	})
	app.Version = version
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := application.Start(ctx, application.StartOptions{
		DBPath:     cfg.DBPath,
		LocalHost:  cfg.LocalHost,
		LocalPort:  cfg.LocalPort,
		AgentWSURL: cfg.AgentWSURL,
		LogLevel:   cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func runInstall(ctx context.Context, cfg config.Config) error {
	log := logging.NewLogger(logging.Options{Level: cfg.LogLevel, Component: "installer"})
	installer := install.NewInstaller(
		execRunner,
		editordetect.EditorDetectorRegistry,
		cfg.InstallFlagDir,
		install.BundledVSIXPath(),
		log,
	)
	outcome := installer.Attempt(ctx, editordetect.EnvFromOS(os.Environ()))
	fmt.Fprintln(os.Stdout, outcome)
	return nil
}

func listRecents(_ context.Context, cfg config.Config, limit int) error {
	store, closeFn, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := store.List(limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%s\topened %d times, last %s\n", e.Path, e.OpenCount, e.LastOpened.Format("2006-01-02 15:04"))
	}
	return nil
}

func clearRecents(_ context.Context, cfg config.Config) error {
	store, closeFn, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return store.Clear()
}

func openHistory(cfg config.Config) (*historydb.Store, func(), error) {
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	store, err := historydb.NewStore(gdb)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
