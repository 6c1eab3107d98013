package main

import (
	"strings"
	"sync"

	"github.com/mmcdole/reel/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.LoadConfig(c.configPath())
	})
	return c.config, c.configErr
}

// withApp builds the application for one command and tears it down after fn
func (c *commandContext) withApp(fn func(*application) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	app := newApplication(cfg)
	defer app.Close()
	return fn(app)
}
