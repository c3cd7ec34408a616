// Package store provides sqlite-backed persistence for the equipment
// inventory and the sync run history.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// Equipment is a single inventory record eligible for monitoring
type Equipment struct {
	ID                 int64      `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Category           string     `db:"category" json:"category"`
	Hostname           string     `db:"hostname" json:"hostname"`
	IPAddress          string     `db:"ip_address" json:"ip_address"`
	MACAddress         string     `db:"mac_address" json:"mac_address,omitempty"`
	SerialNumber       string     `db:"serial_number" json:"serial_number,omitempty"`
	AssetTag           string     `db:"asset_tag" json:"asset_tag,omitempty"`
	Manufacturer       string     `db:"manufacturer" json:"manufacturer,omitempty"`
	Model              string     `db:"model" json:"model,omitempty"`
	Location           string     `db:"location" json:"location,omitempty"`
	Notes              string     `db:"notes" json:"notes,omitempty"`
	MonitoringEnabled  bool       `db:"monitoring_enabled" json:"monitoring_enabled"`
	ZabbixHostID       string     `db:"zabbix_hostid" json:"zabbix_hostid,omitempty"`
	PurchaseDate       *time.Time `db:"purchase_date" json:"purchase_date,omitempty"`
	WarrantyExpiration *time.Time `db:"warranty_expiration" json:"warranty_expiration,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Run records a single execution of a scheduled task
type Run struct {
	ID           int64     `db:"id" json:"id"`
	Task         string    `db:"task" json:"task"`
	StartedAt    time.Time `db:"started_at" json:"started_at"`
	FinishedAt   time.Time `db:"finished_at" json:"finished_at"`
	Status       string    `db:"status" json:"status"` // "ok" or "failed"
	SuccessCount int       `db:"success_count" json:"success_count"`
	ErrorCount   int       `db:"error_count" json:"error_count"`
	Details      string    `db:"details" json:"details,omitempty"`
}

// Store wraps sqlite access, safe for concurrent use
type Store struct {
	db *sqlx.DB
}

// NewSQLite opens (or creates) the database and migrates the schema
func NewSQLite(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// WAL for better concurrency between scheduler and web
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	res := &Store{db: db}
	if err := res.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return res, nil
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS equipment (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'desktop',
			hostname TEXT NOT NULL DEFAULT '',
			ip_address TEXT NOT NULL DEFAULT '',
			mac_address TEXT NOT NULL DEFAULT '',
			serial_number TEXT NOT NULL DEFAULT '',
			asset_tag TEXT NOT NULL DEFAULT '',
			manufacturer TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			monitoring_enabled BOOLEAN NOT NULL DEFAULT 0,
			zabbix_hostid TEXT NOT NULL DEFAULT '',
			purchase_date TIMESTAMP,
			warranty_expiration TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_equipment_monitoring ON equipment(monitoring_enabled)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL,
			status TEXT NOT NULL,
			success_count INTEGER NOT NULL DEFAULT 0,
			error_count INTEGER NOT NULL DEFAULT 0,
			details TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// CreateEquipment inserts a record and returns its id
func (s *Store) CreateEquipment(ctx context.Context, eq Equipment) (int64, error) {
	now := time.Now()
	eq.CreatedAt, eq.UpdatedAt = now, now
	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO equipment (name, category, hostname, ip_address, mac_address, serial_number, asset_tag,
			manufacturer, model, location, notes, monitoring_enabled, zabbix_hostid,
			purchase_date, warranty_expiration, created_at, updated_at)
		VALUES (:name, :category, :hostname, :ip_address, :mac_address, :serial_number, :asset_tag,
			:manufacturer, :model, :location, :notes, :monitoring_enabled, :zabbix_hostid,
			:purchase_date, :warranty_expiration, :created_at, :updated_at)`, eq)
	if err != nil {
		return 0, fmt.Errorf("failed to create equipment %q: %w", eq.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get equipment id: %w", err)
	}
	return id, nil
}

// UpdateEquipment replaces all mutable fields of the record
func (s *Store) UpdateEquipment(ctx context.Context, eq Equipment) error {
	eq.UpdatedAt = time.Now()
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE equipment SET name=:name, category=:category, hostname=:hostname, ip_address=:ip_address,
			mac_address=:mac_address, serial_number=:serial_number, asset_tag=:asset_tag,
			manufacturer=:manufacturer, model=:model, location=:location, notes=:notes,
			monitoring_enabled=:monitoring_enabled, zabbix_hostid=:zabbix_hostid,
			purchase_date=:purchase_date, warranty_expiration=:warranty_expiration, updated_at=:updated_at
		WHERE id=:id`, eq)
	if err != nil {
		return fmt.Errorf("failed to update equipment %d: %w", eq.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("equipment %d not found", eq.ID)
	}
	return nil
}

// GetEquipment returns a record by id
func (s *Store) GetEquipment(ctx context.Context, id int64) (Equipment, error) {
	var eq Equipment
	if err := s.db.GetContext(ctx, &eq, "SELECT * FROM equipment WHERE id=?", id); err != nil {
		return Equipment{}, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}
	return eq, nil
}

// DeleteEquipment removes a record by id
func (s *Store) DeleteEquipment(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM equipment WHERE id=?", id); err != nil {
		return fmt.Errorf("failed to delete equipment %d: %w", id, err)
	}
	return nil
}

// ListEquipment returns all records ordered by name
func (s *Store) ListEquipment(ctx context.Context) ([]Equipment, error) {
	var res []Equipment
	if err := s.db.SelectContext(ctx, &res, "SELECT * FROM equipment ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return res, nil
}

// ListMonitored returns records with monitoring enabled and an IP address set
func (s *Store) ListMonitored(ctx context.Context) ([]Equipment, error) {
	var res []Equipment
	err := s.db.SelectContext(ctx, &res,
		"SELECT * FROM equipment WHERE monitoring_enabled=1 AND ip_address != '' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list monitored equipment: %w", err)
	}
	return res, nil
}

// ListOrphaned returns records with monitoring disabled but still registered in zabbix
func (s *Store) ListOrphaned(ctx context.Context) ([]Equipment, error) {
	var res []Equipment
	err := s.db.SelectContext(ctx, &res,
		"SELECT * FROM equipment WHERE monitoring_enabled=0 AND zabbix_hostid != '' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned equipment: %w", err)
	}
	return res, nil
}

// SetHostID stores the zabbix host id assigned to the record
func (s *Store) SetHostID(ctx context.Context, id int64, hostID string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE equipment SET zabbix_hostid=?, updated_at=? WHERE id=?",
		hostID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set host id for equipment %d: %w", id, err)
	}
	return nil
}

// ClearHostID drops the zabbix host id from the record
func (s *Store) ClearHostID(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "UPDATE equipment SET zabbix_hostid='', updated_at=? WHERE id=?",
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to clear host id for equipment %d: %w", id, err)
	}
	return nil
}

// RecordRun appends a task execution record
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO runs (task, started_at, finished_at, status, success_count, error_count, details)
		VALUES (:task, :started_at, :finished_at, :status, :success_count, :error_count, :details)`, run)
	if err != nil {
		return fmt.Errorf("failed to record run for %s: %w", run.Task, err)
	}
	return nil
}

// LastRuns returns up to limit most recent runs, newest first
func (s *Store) LastRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var res []Run
	err := s.db.SelectContext(ctx, &res, "SELECT * FROM runs ORDER BY started_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return res, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
