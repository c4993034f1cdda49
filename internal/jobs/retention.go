package jobs

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"Moulinette/internal/config"
	"Moulinette/internal/logger"
	"Moulinette/internal/serviceiface"
)

// RetentionService purges completed reconciliation sessions after a
// configurable number of days. Files and audit rows follow by cascade.
type RetentionService struct {
	cfg  map[string]interface{}
	db   *sql.DB
	cron *cron.Cron
}

func NewRetentionService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &RetentionService{cfg: cfg, db: db}
}

func (s *RetentionService) Name() string { return "retention" }

func (s *RetentionService) Start() error {
	schedule := config.DefaultRetentionSchedule
	days := config.DefaultRetentionDays
	if s.cfg != nil {
		if v, ok := s.cfg["schedule"].(string); ok && v != "" {
			schedule = v
		}
		switch v := s.cfg["retention_days"].(type) {
		case int:
			if v > 0 {
				days = v
			}
		case float64:
			if v > 0 {
				days = int(v)
			}
		}
	}

	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		loc = time.UTC
	}
	s.cron = cron.New(cron.WithLocation(loc))
	_, err = s.cron.AddFunc(schedule, func() { s.purge(days) })
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %v", err)
	}
	s.cron.Start()
	log.Printf("[INFO] Retention job scheduled (%s, keep %d days)", schedule, days)
	return nil
}

func (s *RetentionService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func (s *RetentionService) purge(days int) {
	res, err := s.db.Exec(
		`DELETE FROM sessions WHERE is_completed = TRUE AND created_at < NOW() - ($1 || ' days')::interval`,
		days,
	)
	if err != nil {
		log.Printf("[ERROR] Retention purge failed: %v", err)
		return
	}
	n, _ := res.RowsAffected()
	msg := fmt.Sprintf("Retention: purged %d completed session(s) older than %d days", n, days)
	log.Println("[INFO]", msg)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
	}
}
