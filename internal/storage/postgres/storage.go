package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/dukahub/storefront/internal/domain/errors"
	"github.com/dukahub/storefront/internal/domain/model"
	"github.com/dukahub/storefront/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; pgxmock
// satisfies it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            order_number TEXT UNIQUE NOT NULL,
            cart_items JSONB NOT NULL,
            customer_info JSONB NOT NULL,
            delivery_info JSONB NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            delivery_cost DOUBLE PRECISION NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            payment_status TEXT NOT NULL,
            order_status TEXT NOT NULL,
            tracking_id TEXT UNIQUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending ON orders(payment_status, created_at) WHERE tracking_id IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, order_number, cart_items, customer_info, delivery_info,
       subtotal, delivery_cost, total_amount, payment_status, order_status, tracking_id,
       created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o          model.Order
		items      []byte
		customer   []byte
		delivery   []byte
		trackingID *string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.Number, &items, &customer, &delivery,
		&o.Subtotal, &o.DeliveryCost, &o.TotalAmount, &o.Payment, &o.Fulfillment, &trackingID,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("decode customer info: %w", err)
	}
	if err := json.Unmarshal(delivery, &o.Delivery); err != nil {
		return nil, fmt.Errorf("decode delivery info: %w", err)
	}
	if trackingID != nil {
		o.TrackingID = *trackingID
	}
	return &o, nil
}

func (r *orderRepository) CreatePending(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, user_id, order_number, cart_items, customer_info, delivery_info,
                       subtotal, delivery_cost, total_amount, payment_status, order_status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING created_at, updated_at`

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Payment = model.PaymentStatusPending
	order.Fulfillment = model.FulfillmentProcessing

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode cart items: %w", err)
	}
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return nil, fmt.Errorf("encode customer info: %w", err)
	}
	delivery, err := json.Marshal(order.Delivery)
	if err != nil {
		return nil, fmt.Errorf("encode delivery info: %w", err)
	}

	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.UserID, order.Number, items, customer, delivery,
		order.Subtotal, order.DeliveryCost, order.TotalAmount, order.Payment, order.Fulfillment,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByTrackingID(ctx context.Context, trackingID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tracking_id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, trackingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, onlyTracked bool) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1`
	if onlyTracked {
		query += ` AND tracking_id IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) AttachTrackingID(ctx context.Context, id uuid.UUID, trackingID string) error {
	const query = `UPDATE orders SET tracking_id=$1, updated_at=NOW() WHERE id=$2 AND tracking_id IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, trackingID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domainErrors.ErrTrackingAttached
	}
	return nil
}

// UpdatePaymentStatusByTracking applies a settlement result. The WHERE
// clause enforces terminal priority: a settled order never matches, so
// redelivered or stale notifications degrade to no-ops. A failed payment
// cancels fulfillment that has not progressed past processing.
func (r *orderRepository) UpdatePaymentStatusByTracking(ctx context.Context, trackingID string, status model.PaymentStatus) error {
	const query = `UPDATE orders
                   SET payment_status=$1,
                       order_status=CASE
                           WHEN $1 IN ('failed', 'cancelled') AND order_status='processing' THEN 'cancelled'
                           ELSE order_status
                       END,
                       updated_at=NOW()
                   WHERE tracking_id=$2 AND payment_status='pending'`

	tag, err := r.storage.pool.Exec(ctx, query, status, trackingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either unknown tracking id or the order already settled.
		if _, err := r.GetByTrackingID(ctx, trackingID); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) UpdateFulfillment(ctx context.Context, id uuid.UUID, status model.FulfillmentStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT order_status FROM orders WHERE id=$1 FOR UPDATE`
		var current model.FulfillmentStatus
		if err := tx.QueryRow(ctx, selectQuery, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if !current.CanAdvanceTo(status) {
			return domainErrors.ErrInvalidTransition
		}
		const updateQuery = `UPDATE orders SET order_status=$1, updated_at=NOW() WHERE id=$2`
		_, err := tx.Exec(ctx, updateQuery, status, id)
		return err
	})
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM orders WHERE id=$1 AND tracking_id IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domainErrors.ErrTrackingAttached
	}
	return nil
}

func (r *orderRepository) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE payment_status='pending' AND tracking_id IS NOT NULL
                    ORDER BY created_at
                    LIMIT $1
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
