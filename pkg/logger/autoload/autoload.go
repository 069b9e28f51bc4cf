// Package autoload initialises the global logger from LOG_* settings on import.
package autoload

import (
	configx "github.com/tanpawarit/statlingua/pkg/config"
	logx "github.com/tanpawarit/statlingua/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
