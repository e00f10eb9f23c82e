package storage

import "github.com/UK-Mindset/mind-set/internal"

func NewFileStore(usersFile, moodsFile string, logger internal.Logger) (Store, error) {
	return NewFileStorage(usersFile, moodsFile, logger)
}

func NewPostgresStore(dsn string, logger internal.Logger) (Store, error) {
	return NewPostgresStorage(dsn, logger)
}
