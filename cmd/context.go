package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Gyu-bot/myspot/internal/app"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type commandContext struct {
	logModeFlag *string

	once sync.Once
	log  *logger.Logger
	cfg  app.Config
	err  error
}

func newCommandContext(logModeFlag *string) *commandContext {
	return &commandContext{logModeFlag: logModeFlag}
}

// ensure builds the logger and configuration once per process.
func (c *commandContext) ensure() (*logger.Logger, app.Config, error) {
	c.once.Do(func() {
		mode := ""
		if c.logModeFlag != nil {
			mode = strings.TrimSpace(*c.logModeFlag)
		}
		if mode == "" {
			mode = strings.TrimSpace(os.Getenv("LOG_MODE"))
		}
		if mode == "" {
			mode = "development"
		}
		log, err := logger.New(mode)
		if err != nil {
			c.err = fmt.Errorf("init logger: %w", err)
			return
		}
		app.LoadDotEnv(log)
		c.log = log
		c.cfg = app.LoadConfig(log)
	})
	return c.log, c.cfg, c.err
}

// withApp wires the full application for one command and tears it down
// afterwards.
func (c *commandContext) withApp(ctx context.Context, fn func(*app.App) error) error {
	log, cfg, err := c.ensure()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
