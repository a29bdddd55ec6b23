package container

import (
	"github.com/rs/zerolog"

	"github.com/aurumbay/aurumbay/internal/config"
	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/store"
)

// Container holds all application dependencies
type Container struct {
	Logger zerolog.Logger
	Config *config.Config
	Store  store.Store
	Core   *core.Core
}

// NewContainer creates a new dependency injection container
func NewContainer(logger zerolog.Logger, cfg *config.Config, st store.Store, co *core.Core) *Container {
	return &Container{
		Logger: logger,
		Config: cfg,
		Store:  st,
		Core:   co,
	}
}
