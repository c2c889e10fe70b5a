package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/app"
)

type ServeCmd struct{}

// execSelf replaces the running process with a fresh copy of itself.
var execSelf = func() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return syscall.Exec(exe, os.Args, os.Environ())
}

func (s *ServeCmd) Run() error {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	err = application.Run()
	if errors.Is(err, app.ErrRestartRequested) {
		return execSelf()
	}
	return err
}
