package main

import (
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/yt-summarize/internal/config"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

const defaultConfigPath = "config.yaml"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     logger.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads .env files and the YAML config once per process.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		config.LoadDefaultEnv()

		cfg, err := config.LoadOrDefault(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if p := strings.TrimSpace(*c.configFlag); p != "" {
			return p
		}
	}
	if p := strings.TrimSpace(os.Getenv("YTS_CONFIG")); p != "" {
		return p
	}
	return defaultConfigPath
}
