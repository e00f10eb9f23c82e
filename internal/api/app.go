package api

import (
	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Store() storage.Store
}

type app struct {
	logger internal.Logger
	store  storage.Store
}

func NewApp(logger internal.Logger, store storage.Store) App {
	return &app{logger: logger, store: store}
}

func (a *app) Logger() internal.Logger { return a.logger }
func (a *app) Store() storage.Store    { return a.store }
