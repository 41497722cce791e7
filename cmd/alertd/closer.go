package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/alertkit/pkg/logger"
)

type closer struct {
	name string
	fn   func() error
}

// closerList releases resources in reverse order of acquisition.
type closerList []closer

func (c *closerList) add(name string, fn func() error) {
	*c = append(*c, closer{name: name, fn: fn})
}

func (c closerList) closeAll(log *slog.Logger) {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].fn(); err != nil {
			log.LogAttrs(context.Background(), slog.LevelWarn, "Failed to close resource",
				logger.Component(c[i].name),
				logger.Error(err),
			)
		}
	}
}
