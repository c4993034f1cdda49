package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"Moulinette/internal/logger"
	"Moulinette/internal/serviceiface"
	"Moulinette/internal/session"
)

// MonitorService periodically reports how many reconciliations are in
// progress and sweeps the resume cache. It starts last so the other
// services are already up when the first heartbeat fires.
type MonitorService struct {
	pool              *pgxpool.Pool
	cache             *session.Cache
	stopChan          chan struct{}
	heartbeatInterval time.Duration
}

func NewMonitorService(cfg map[string]interface{}, pool *pgxpool.Pool, cache *session.Cache) serviceiface.Service {
	interval := 60 * time.Second
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case int:
			interval = time.Duration(v) * time.Second
		case float64:
			interval = time.Duration(v) * time.Second
		}
	}
	return &MonitorService{
		pool:              pool,
		cache:             cache,
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
	}
}

func (m *MonitorService) Name() string { return "resourcemanager" }

func (m *MonitorService) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Monitor started")
	}
	go m.heartbeatLoop()
	return nil
}

func (m *MonitorService) Stop() error {
	close(m.stopChan)
	return nil
}

func (m *MonitorService) heartbeatLoop() {
	ticker := time.NewTicker(m.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.cache.CleanupExpired()
			m.logActiveSessions()
		}
	}
}

func (m *MonitorService) logActiveSessions() {
	if m.pool == nil || logger.GlobalLogger == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var active int
	err := m.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sessions WHERE is_completed = FALSE`).Scan(&active)
	if err != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Monitor: session count failed: %v", err))
		return
	}
	logger.GlobalLogger.LogAudit(fmt.Sprintf("Monitor: %d reconciliation(s) in progress", active))
}
