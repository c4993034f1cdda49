package inventory

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"Moulinette/internal/serviceiface"
	"Moulinette/internal/session"
)

// InventoryService is the appmanager wrapper around the reconciliation
// HTTP service.
type InventoryService struct {
	cfg   map[string]interface{}
	pool  *pgxpool.Pool
	cache *session.Cache
}

func NewInventoryService(cfg map[string]interface{}, pool *pgxpool.Pool, cache *session.Cache) serviceiface.Service {
	return &InventoryService{cfg: cfg, pool: pool, cache: cache}
}

func (s *InventoryService) Name() string {
	return "inventory"
}

func (s *InventoryService) Start() error {
	if s.pool == nil {
		return fmt.Errorf("inventory service requires a database pool")
	}
	if err := NewStore(s.pool).EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("schema setup failed: %v", err)
	}
	go StartInventoryService(s.pool, s.cache)
	return nil
}

func (s *InventoryService) Stop() error {
	log.Println("[INFO] Inventory service stopping")
	return nil
}
