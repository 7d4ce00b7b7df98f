package app

import (
	"context"
	"fmt"
	"log"

	"inkbook/internal/config"
	"inkbook/internal/database"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"

	"gorm.io/gorm"
)

// Stores holds the primary database and the secondary mirror.
type Stores struct {
	DB        *gorm.DB
	Secondary mirror.SecondaryStore
	closers   []func() error
}

// OpenStores connects both stores and migrates the primary schema. An empty
// RedisAddr selects the in-process mirror.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	s := &Stores{DB: db}
	if sqlDB, err := db.DB(); err == nil {
		s.closers = append(s.closers, sqlDB.Close)
	}
	if err := repository.AutoMigrate(db); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR is empty, mirroring to in-process store")
		s.Secondary = mirror.NewMemoryStore()
		return s, nil
	}

	client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, client.Close)
	s.Secondary = mirror.NewRedisStore(client, cfg.RedisPrefix)
	return s, nil
}

func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Printf("store_close_failed err=%v", err)
		}
	}
}
