// Package postgres is the networked relational backend.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	// database/sql driver used by the migration runner
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"github.com/sippsearcher/sippsearcher-backend/internal/logging"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
	pgclient "github.com/sippsearcher/sippsearcher-backend/pkg/client/postgresql"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	client pgclient.Client
	// pool is retained only so Close can release the connections; all
	// queries go through the client interface.
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func New(ctx context.Context, cfg pgclient.Config, logger *zap.Logger) (*Storage, error) {
	migrationDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	if err := MigrateDB(migrationDB); err != nil {
		_ = migrationDB.Close()
		return nil, err
	}

	if err := migrationDB.Close(); err != nil {
		return nil, fmt.Errorf("failed to close migration connection: %w", err)
	}

	pool, err := pgclient.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Storage{
		client: pool,
		pool:   pool,
		logger: logger,
	}, nil
}

// MigrateDB applies the embedded migrations. Re-running at startup is a
// no-op, so repeated boots against the same database are safe.
func MigrateDB(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Storage) Kind() storage.Kind {
	return storage.KindPostgres
}

func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Storage) ListStores(ctx context.Context) ([]store.Store, error) {
	query := `
		SELECT id, name, address, latitude, longitude, phone, created_at
		FROM stores
		ORDER BY name
	`

	logging.LogSQLQuery(s.logger, query)

	rows, err := s.client.Query(ctx, query)
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

// FindStoresNear computes the haversine distance in a derived table so
// the expression is written once and the projection and the filter read
// the same column.
func (s *Storage) FindStoresNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error) {
	query := `
		SELECT id, name, address, latitude, longitude, phone, created_at, distance
		FROM (
			SELECT s.*, 2 * 6371 * asin(sqrt(
				pow(sin(radians($1 - s.latitude) / 2), 2) +
				cos(radians(s.latitude)) * cos(radians($1)) *
				pow(sin(radians($2 - s.longitude) / 2), 2)
			)) AS distance
			FROM stores s
		) near
		WHERE distance < $3
		ORDER BY distance
	`

	logging.LogSQLQuery(s.logger, query)

	rows, err := s.client.Query(ctx, query, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]store.StoreWithDistance, 0)
	for rows.Next() {
		var st store.StoreWithDistance

		if err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Address,
			&st.Latitude,
			&st.Longitude,
			&st.Phone,
			&st.CreatedAt,
			&st.Distance,
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

func (s *Storage) AddStore(ctx context.Context, data store.Store) (int, error) {
	query := `
		INSERT INTO stores (name, address, latitude, longitude, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	logging.LogSQLQuery(s.logger, query)

	var id int
	if err := s.client.QueryRow(
		ctx,
		query,
		data.Name,
		data.Address,
		data.Latitude,
		data.Longitude,
		data.Phone,
	).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Storage) CountStores(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM stores`

	logging.LogSQLQuery(s.logger, query)

	var count int
	if err := s.client.QueryRow(ctx, query).Scan(&count); err != nil {
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
		WHERE i.store_id = $1
		ORDER BY i.last_updated DESC
	`

	logging.LogSQLQuery(s.logger, query)

	rows, err := s.client.Query(ctx, query, storeID)
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

// UpsertInventory relies on the database's conflict resolution, so the
// one-row-per-key invariant holds even under concurrent writers.
func (s *Storage) UpsertInventory(ctx context.Context, item inventory.Item) (int, error) {
	query := `
		INSERT INTO inventory (store_id, drink_id, size, price, in_stock, last_updated, updated_by, photo_path)
		VALUES ($1, $2, $3, $4, $5, now(), $6, $7)
		ON CONFLICT (store_id, drink_id, size) DO UPDATE SET
			price = EXCLUDED.price,
			in_stock = EXCLUDED.in_stock,
			last_updated = now(),
			updated_by = EXCLUDED.updated_by,
			photo_path = EXCLUDED.photo_path
		RETURNING id
	`

	logging.LogSQLQuery(s.logger, query)

	var id int
	if err := s.client.QueryRow(
		ctx,
		query,
		item.StoreID,
		item.DrinkID,
		item.Size,
		item.Price,
		item.InStock,
		item.UpdatedBy,
		item.PhotoPath,
	).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Storage) AddVerification(ctx context.Context, inventoryID int, userIP string) error {
	query := `INSERT INTO verifications (inventory_id, user_ip) VALUES ($1, $2)`

	logging.LogSQLQuery(s.logger, query)

	_, err := s.client.Exec(ctx, query, inventoryID, userIP)

	return err
}

func (s *Storage) IncrementVisitorCount(ctx context.Context) (int, error) {
	query := `UPDATE visitors SET count = count + 1 WHERE id = 1 RETURNING count`

	logging.LogSQLQuery(s.logger, query)

	var count int
	if err := s.client.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Storage) VisitorCount(ctx context.Context) (int, error) {
	query := `SELECT count FROM visitors WHERE id = 1`

	logging.LogSQLQuery(s.logger, query)

	var count int
	if err := s.client.QueryRow(ctx, query).Scan(&count); err != nil {
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

	rows, err := s.client.Query(ctx, query)
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
	query := `INSERT INTO guestbook (name, message) VALUES ($1, $2) RETURNING id`

	logging.LogSQLQuery(s.logger, query)

	var id int
	if err := s.client.QueryRow(ctx, query, name, message).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}
