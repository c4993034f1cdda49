package inventory

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps the Postgres persistence for sessions, inventories, stored
// files and audit rows. Hierarchy: sessions -> inventory -> files/audits,
// cascade on delete.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type Session struct {
	SessionID   int64     `json:"sessionID"`
	SessionNum  string    `json:"sessionNUM"`
	SessionName string    `json:"sessionNAME"`
	CurrentStep int       `json:"currentStep"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Inventory struct {
	InventoryID  int64     `json:"inventoryID"`
	InventoryNum string    `json:"inventoryNUM"`
	SessionID    int64     `json:"sessionID"`
	DepotType    string    `json:"depotType"`
	Site         string    `json:"site"`
	IsCompleted  bool      `json:"isCompleted"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StoredFile struct {
	FileID      int64     `json:"fileID"`
	InventoryID int64     `json:"inventoryID"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	Content     []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Audit struct {
	ID          int64     `json:"id"`
	InventoryID int64     `json:"inventoryID"`
	ActionType  string    `json:"actionType"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EnsureSchema creates the tables on first start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   BIGSERIAL PRIMARY KEY,
	session_num  VARCHAR(100) NOT NULL,
	session_name VARCHAR(100) NOT NULL,
	current_step INT NOT NULL DEFAULT 1,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS inventory (
	inventory_id   BIGSERIAL PRIMARY KEY,
	inventory_num  VARCHAR(100) NOT NULL,
	session_id     BIGINT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
	depot_type     VARCHAR(20) NOT NULL,
	inventory_site VARCHAR(100) NOT NULL,
	is_completed   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS files (
	file_id      BIGSERIAL PRIMARY KEY,
	inventory_id BIGINT NOT NULL REFERENCES inventory(inventory_id) ON DELETE CASCADE,
	file_name    VARCHAR(255) NOT NULL,
	file_type    VARCHAR(20) NOT NULL,
	content      BYTEA NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS inventory_audits (
	id           BIGSERIAL PRIMARY KEY,
	inventory_id BIGINT NOT NULL REFERENCES inventory(inventory_id) ON DELETE CASCADE,
	action_type  VARCHAR(50) NOT NULL,
	details      TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`)
	return err
}

func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.pool.Begin(ctx)
}

func (s *Store) CreateSession(ctx context.Context, tx pgx.Tx, num, name string, step int) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO sessions (session_num, session_name, current_step) VALUES ($1, $2, $3) RETURNING session_id`,
		num, name, step,
	).Scan(&id)
	return id, err
}

func (s *Store) CreateInventory(ctx context.Context, tx pgx.Tx, sessionID int64, num, depotType, site string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO inventory (inventory_num, session_id, depot_type, inventory_site) VALUES ($1, $2, $3, $4) RETURNING inventory_id`,
		num, sessionID, depotType, site,
	).Scan(&id)
	return id, err
}

func (s *Store) SaveFile(ctx context.Context, tx pgx.Tx, inventoryID int64, fileName, fileType string, content []byte) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO files (inventory_id, file_name, file_type, content) VALUES ($1, $2, $3, $4)`,
		inventoryID, fileName, fileType, content,
	)
	return err
}

func (s *Store) AddAudit(ctx context.Context, tx pgx.Tx, inventoryID int64, actionType, details string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO inventory_audits (inventory_id, action_type, details) VALUES ($1, $2, $3)`,
		inventoryID, actionType, details,
	)
	return err
}

func (s *Store) SetSessionStep(ctx context.Context, tx pgx.Tx, sessionID int64, step int, completed bool) error {
	_, err := tx.Exec(ctx,
		`UPDATE sessions SET current_step = $2, is_completed = $3 WHERE session_id = $1`,
		sessionID, step, completed,
	)
	return err
}

func (s *Store) SetInventoryCompleted(ctx context.Context, tx pgx.Tx, inventoryID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE inventory SET is_completed = TRUE WHERE inventory_id = $1`,
		inventoryID,
	)
	return err
}

func (s *Store) GetSession(ctx context.Context, sessionID int64) (*Session, error) {
	var sess Session
	err := s.pool.QueryRow(ctx,
		`SELECT session_id, session_num, session_name, current_step, is_completed, created_at
		 FROM sessions WHERE session_id = $1`, sessionID,
	).Scan(&sess.SessionID, &sess.SessionNum, &sess.SessionName, &sess.CurrentStep, &sess.IsCompleted, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) GetInventoryBySession(ctx context.Context, sessionID int64) (*Inventory, error) {
	var inv Inventory
	err := s.pool.QueryRow(ctx,
		`SELECT inventory_id, inventory_num, session_id, depot_type, inventory_site, is_completed, created_at
		 FROM inventory WHERE session_id = $1 ORDER BY inventory_id LIMIT 1`, sessionID,
	).Scan(&inv.InventoryID, &inv.InventoryNum, &inv.SessionID, &inv.DepotType, &inv.Site, &inv.IsCompleted, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Store) GetFile(ctx context.Context, inventoryID int64, fileType string) (*StoredFile, error) {
	var f StoredFile
	err := s.pool.QueryRow(ctx,
		`SELECT file_id, inventory_id, file_name, file_type, content, created_at
		 FROM files WHERE inventory_id = $1 AND file_type = $2 ORDER BY file_id DESC LIMIT 1`,
		inventoryID, fileType,
	).Scan(&f.FileID, &f.InventoryID, &f.FileName, &f.FileType, &f.Content, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFileTypes returns the distinct stored file types for an inventory,
// used to compute where a resumed session stands.
func (s *Store) ListFileTypes(ctx context.Context, inventoryID int64) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT file_type FROM files WHERE inventory_id = $1`, inventoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make(map[string]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types[t] = true
	}
	return types, rows.Err()
}

// SessionWithInventory joins a session with its inventory for listings.
type SessionWithInventory struct {
	Session
	Inventory *Inventory
}

func (s *Store) ListActiveSessions(ctx context.Context) ([]SessionWithInventory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT se.session_id, se.session_num, se.session_name, se.current_step, se.is_completed, se.created_at,
		       inv.inventory_id, inv.inventory_num, inv.depot_type, inv.inventory_site, inv.is_completed, inv.created_at
		FROM sessions se
		LEFT JOIN inventory inv ON inv.session_id = se.session_id
		WHERE se.is_completed = FALSE
		ORDER BY se.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionWithInventory
	for rows.Next() {
		var item SessionWithInventory
		var invID *int64
		var invNum, depot, site *string
		var invCompleted *bool
		var invCreated *time.Time
		err := rows.Scan(
			&item.SessionID, &item.SessionNum, &item.SessionName, &item.CurrentStep, &item.IsCompleted, &item.CreatedAt,
			&invID, &invNum, &depot, &site, &invCompleted, &invCreated,
		)
		if err != nil {
			return nil, err
		}
		if invID != nil {
			item.Inventory = &Inventory{
				InventoryID:  *invID,
				InventoryNum: *invNum,
				SessionID:    item.SessionID,
				DepotType:    *depot,
				Site:         *site,
				IsCompleted:  *invCompleted,
				CreatedAt:    *invCreated,
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) ListAudits(ctx context.Context, inventoryID int64) ([]Audit, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, inventory_id, action_type, details, created_at
		 FROM inventory_audits WHERE inventory_id = $1 ORDER BY created_at DESC, id DESC`, inventoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Audit
	for rows.Next() {
		var a Audit
		if err := rows.Scan(&a.ID, &a.InventoryID, &a.ActionType, &a.Details, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSession(ctx context.Context, sessionID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
