package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

// SQLiteStore is the file-backed RecordStore. The three datasets live in
// three tables, but reads and writes still follow the whole-document
// contract: Read scans everything in one transaction, Write replaces
// everything in one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database file and bootstraps the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	if err := s.configure(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to configure store: %w", err)
	}

	if err := s.createSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (s *SQLiteStore) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payload TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		order_id TEXT NOT NULL,
		provider TEXT NOT NULL,
		booked_slot TEXT NOT NULL,
		bundle_count INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_reservations_order ON reservations(order_id);
	CREATE TABLE IF NOT EXISTS management (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id TEXT NOT NULL,
		provider TEXT NOT NULL,
		bundle_count INTEGER NOT NULL DEFAULT 0,
		arrival_time TEXT,
		service_start TEXT,
		service_end TEXT,
		wait_minutes INTEGER,
		service_minutes INTEGER,
		total_minutes INTEGER,
		delay_minutes INTEGER,
		week_number INTEGER,
		reservation_hour INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_management_order ON management(order_id);
	`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// Read loads all three datasets inside a single read transaction so callers
// see one consistent document.
func (s *SQLiteStore) Read(ctx context.Context) (models.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: begin read: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	var snap models.Snapshot

	if snap.Credentials, err = readCredentials(ctx, tx); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: credentials: %v", ErrStoreUnavailable, err)
	}
	if snap.Reservations, err = readReservations(ctx, tx); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: reservations: %v", ErrStoreUnavailable, err)
	}
	if snap.Management, err = readManagement(ctx, tx); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: management: %v", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: commit read: %v", ErrStoreUnavailable, err)
	}

	return snap, nil
}

// Write replaces the entire persisted document with snap. Concurrent writers
// are last-write-wins at this granularity.
func (s *SQLiteStore) Write(ctx context.Context, snap models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin write: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"credentials", "reservations", "management"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("%w: clear %s: %v", ErrStoreUnavailable, table, err)
		}
	}

	if err := writeCredentials(ctx, tx, snap.Credentials); err != nil {
		return fmt.Errorf("%w: credentials: %v", ErrStoreUnavailable, err)
	}
	if err := writeReservations(ctx, tx, snap.Reservations); err != nil {
		return fmt.Errorf("%w: reservations: %v", ErrStoreUnavailable, err)
	}
	if err := writeManagement(ctx, tx, snap.Management); err != nil {
		return fmt.Errorf("%w: management: %v", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit write: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Close checkpoints the WAL and closes the connection.
func (s *SQLiteStore) Close() error {
	_, _ = s.db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

func readCredentials(ctx context.Context, tx *sql.Tx) ([]models.CredentialRow, error) {
	rows, err := tx.QueryContext(ctx, "SELECT payload FROM credentials ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CredentialRow
	for rows.Next() {
		var row models.CredentialRow
		if err := rows.Scan(&row.Payload); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func readReservations(ctx context.Context, tx *sql.Tx) ([]models.Reservation, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT date, order_id, provider, booked_slot, bundle_count FROM reservations ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Reservation
	for rows.Next() {
		var (
			res  models.Reservation
			date string
		)
		if err := rows.Scan(&date, &res.OrderID, &res.Provider, &res.BookedSlot, &res.BundleCount); err != nil {
			return nil, err
		}
		if res.Date, err = time.ParseInLocation(models.DateLayout, date, time.Local); err != nil {
			return nil, fmt.Errorf("reservation %s: bad date %q: %v", res.OrderID, date, err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func readManagement(ctx context.Context, tx *sql.Tx) ([]models.ManagementRecord, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT order_id, provider, bundle_count,
			arrival_time, service_start, service_end,
			wait_minutes, service_minutes, total_minutes,
			delay_minutes, week_number, reservation_hour
		FROM management ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ManagementRecord
	for rows.Next() {
		var (
			rec                  models.ManagementRecord
			arrival, start, end  sql.NullString
			wait, service, total sql.NullInt64
			delay, week, hour    sql.NullInt64
		)
		if err := rows.Scan(&rec.OrderID, &rec.Provider, &rec.BundleCount,
			&arrival, &start, &end, &wait, &service, &total, &delay, &week, &hour); err != nil {
			return nil, err
		}
		if rec.ArrivalTime, err = nullTime(arrival); err != nil {
			return nil, fmt.Errorf("record %s: %v", rec.OrderID, err)
		}
		if rec.ServiceStart, err = nullTime(start); err != nil {
			return nil, fmt.Errorf("record %s: %v", rec.OrderID, err)
		}
		if rec.ServiceEnd, err = nullTime(end); err != nil {
			return nil, fmt.Errorf("record %s: %v", rec.OrderID, err)
		}
		rec.WaitMinutes = nullInt(wait)
		rec.ServiceMinutes = nullInt(service)
		rec.TotalMinutes = nullInt(total)
		rec.DelayMinutes = nullInt(delay)
		rec.WeekNumber = nullInt(week)
		rec.ReservationHour = nullInt(hour)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func writeCredentials(ctx context.Context, tx *sql.Tx, rows []models.CredentialRow) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO credentials (payload) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.Payload); err != nil {
			return err
		}
	}
	return nil
}

func writeReservations(ctx context.Context, tx *sql.Tx, rows []models.Reservation) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO reservations (date, order_id, provider, booked_slot, bundle_count) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, res := range rows {
		date := res.Date.Format(models.DateLayout)
		if _, err := stmt.ExecContext(ctx, date, res.OrderID, res.Provider, res.BookedSlot, res.BundleCount); err != nil {
			return err
		}
	}
	return nil
}

func writeManagement(ctx context.Context, tx *sql.Tx, rows []models.ManagementRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO management (order_id, provider, bundle_count,
			arrival_time, service_start, service_end,
			wait_minutes, service_minutes, total_minutes,
			delay_minutes, week_number, reservation_hour)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range rows {
		if _, err := stmt.ExecContext(ctx, rec.OrderID, rec.Provider, rec.BundleCount,
			timeNull(rec.ArrivalTime), timeNull(rec.ServiceStart), timeNull(rec.ServiceEnd),
			intNull(rec.WaitMinutes), intNull(rec.ServiceMinutes), intNull(rec.TotalMinutes),
			intNull(rec.DelayMinutes), intNull(rec.WeekNumber), intNull(rec.ReservationHour)); err != nil {
			return err
		}
	}
	return nil
}

func nullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.ParseInLocation(models.TimestampLayout, v.String, time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %v", v.String, err)
	}
	return &t, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func timeNull(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.TimestampLayout)
}

func intNull(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
