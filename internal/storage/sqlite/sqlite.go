// Package sqlite is the embedded single-file backend used when no
// networked database is configured.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/sippsearcher/sippsearcher-backend/internal/geo"
	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"github.com/sippsearcher/sippsearcher-backend/internal/logging"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(ctx context.Context, path string, logger *zap.Logger) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dsn := fmt.Sprintf("%s?_time_format=sqlite&_txlock=immediate&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrateDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{
		db:     db,
		logger: logger,
	}, nil
}

func migrateDB(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Storage) Kind() storage.Kind {
	return storage.KindSQLite
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListStores(ctx context.Context) ([]store.Store, error) {
	query := `
		SELECT id, name, address, latitude, longitude, phone, created_at
		FROM stores
		ORDER BY name
	`

	logging.LogSQLQuery(s.logger, query)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]store.Store, 0)
	for rows.Next() {
		var st store.Store

		if err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Address,
			&st.Latitude,
			&st.Longitude,
			&st.Phone,
			&st.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}

		stores = append(stores, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %v", err)
	}

	return stores, nil
}

// FindStoresNear filters in Go rather than SQL: the SQLite math
// functions are a build option, and the store table is small.
func (s *Storage) FindStoresNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error) {
	stores, err := s.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	near := make([]store.StoreWithDistance, 0)
	for _, st := range stores {
		distance := geo.Distance(lat, lng, st.Latitude, st.Longitude)
		if distance < radiusKm {
			near = append(near, store.StoreWithDistance{Store: st, Distance: distance})
		}
	}

	sort.Slice(near, func(i, j int) bool {
		return near[i].Distance < near[j].Distance
	})

	return near, nil
}

func (s *Storage) AddStore(ctx context.Context, data store.Store) (int, error) {
	query := `
		INSERT INTO stores (name, address, latitude, longitude, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	logging.LogSQLQuery(s.logger, query)

	result, err := s.db.ExecContext(
		ctx,
		query,
		data.Name,
		data.Address,
		data.Latitude,
		data.Longitude,
		data.Phone,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

func (s *Storage) CountStores(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM stores`

	logging.LogSQLQuery(s.logger, query)

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Storage) StoreInventory(ctx context.Context, storeID int) ([]inventory.Item, error) {
	query := `
		SELECT i.id, i.store_id, i.drink_id, i.size, i.price, i.in_stock,
			i.last_updated, i.updated_by, i.photo_path,
			(SELECT COUNT(*) FROM verifications v WHERE v.inventory_id = i.id) AS verification_count
		FROM inventory i
		WHERE i.store_id = ?
		ORDER BY i.last_updated DESC
	`

	logging.LogSQLQuery(s.logger, query)

	rows, err := s.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]inventory.Item, 0)
	for rows.Next() {
		var item inventory.Item

		if err := rows.Scan(
			&item.ID,
			&item.StoreID,
			&item.DrinkID,
			&item.Size,
			&item.Price,
			&item.InStock,
			&item.LastUpdated,
			&item.UpdatedBy,
			&item.PhotoPath,
			&item.VerificationCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %v", err)
	}

	return items, nil
}

func (s *Storage) UpsertInventory(ctx context.Context, item inventory.Item) (int, error) {
	query := `
		INSERT INTO inventory (store_id, drink_id, size, price, in_stock, last_updated, updated_by, photo_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (store_id, drink_id, size) DO UPDATE SET
			price = excluded.price,
			in_stock = excluded.in_stock,
			last_updated = excluded.last_updated,
			updated_by = excluded.updated_by,
			photo_path = excluded.photo_path
	`

	logging.LogSQLQuery(s.logger, query)

	if _, err := s.db.ExecContext(
		ctx,
		query,
		item.StoreID,
		item.DrinkID,
		item.Size,
		item.Price,
		item.InStock,
		time.Now().UTC(),
		item.UpdatedBy,
		item.PhotoPath,
	); err != nil {
		return 0, err
	}

	// LastInsertId is not meaningful for the DO UPDATE branch, so the
	// row id is read back by key in both cases.
	var id int
	if err := s.db.QueryRowContext(
		ctx,
		`SELECT id FROM inventory WHERE store_id = ? AND drink_id = ? AND size = ?`,
		item.StoreID,
		item.DrinkID,
		item.Size,
	).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Storage) AddVerification(ctx context.Context, inventoryID int, userIP string) error {
	query := `INSERT INTO verifications (inventory_id, user_ip, verified_at) VALUES (?, ?, ?)`

	logging.LogSQLQuery(s.logger, query)

	_, err := s.db.ExecContext(ctx, query, inventoryID, userIP, time.Now().UTC())

	return err
}

func (s *Storage) IncrementVisitorCount(ctx context.Context) (int, error) {
	query := `UPDATE visitors SET count = count + 1 WHERE id = 1 RETURNING count`

	logging.LogSQLQuery(s.logger, query)

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Storage) VisitorCount(ctx context.Context) (int, error) {
	query := `SELECT count FROM visitors WHERE id = 1`

	logging.LogSQLQuery(s.logger, query)

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Storage) GuestbookEntries(ctx context.Context) ([]guestbook.Entry, error) {
	query := `
		SELECT id, name, message, created_at
		FROM guestbook
		ORDER BY created_at DESC, id DESC
	`

	logging.LogSQLQuery(s.logger, query)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]guestbook.Entry, 0)
	for rows.Next() {
		var entry guestbook.Entry

		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Message,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %v", err)
	}

	return entries, nil
}

func (s *Storage) AddGuestbookEntry(ctx context.Context, name, message string) (int, error) {
	query := `INSERT INTO guestbook (name, message, created_at) VALUES (?, ?, ?)`

	logging.LogSQLQuery(s.logger, query)

	result, err := s.db.ExecContext(ctx, query, name, message, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}
