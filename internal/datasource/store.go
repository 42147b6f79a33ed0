package datasource

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// MemoryPath opens a throwaway in-memory store.
const MemoryPath = ":memory:"

var tradeColumns = []string{
	"id", "counterparty", "creator",
	"token_to_sell", "amount_to_sell",
	"token_to_buy", "amount_to_buy",
	"status", "created_at", "expires_at",
}

// Store keeps trades in an embedded DuckDB or SQLite database.
// Amounts are stored as decimal strings and timestamps as unix milliseconds
// so both engines share one schema.
type Store struct {
	db     *sql.DB
	driver string
	sq     squirrel.StatementBuilderType
	logger *logger.Logger
	mu     sync.Mutex
}

// NewStore opens (creating if needed) the trade database at path.
func NewStore(driver, path string, log *logger.Logger) (*Store, error) {
	if driver != DriverDuckDB && driver != DriverSQLite {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported store driver %q", driver)
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to create data directory", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		log.Error("Failed to open database", zap.String("driver", driver), zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open database", err)
	}

	if driver == DriverSQLite {
		// every sqlite connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		log.Error("Failed to connect to database", zap.String("driver", driver), zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to connect to database", err)
	}

	store := &Store{
		db:     db,
		driver: driver,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger: log,
		mu:     sync.Mutex{},
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			counterparty TEXT NOT NULL,
			creator TEXT,
			token_to_sell TEXT,
			amount_to_sell TEXT,
			token_to_buy TEXT,
			amount_to_buy TEXT,
			status TEXT,
			created_at BIGINT NOT NULL,
			expires_at BIGINT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to create trades table", err)
	}

	return nil
}

// FetchTrades implements TradeSource.
func (s *Store) FetchTrades(ctx context.Context, limit int) ([]types.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, errStoreClosed()
	}

	query := s.sq.
		Select(tradeColumns...).
		From("trades").
		OrderBy("created_at DESC", "id ASC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build trades query", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	trades := make([]types.TradeRecord, 0)

	for rows.Next() {
		trade, err := s.scan(rows)
		if err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read trades", err)
	}

	s.logger.Debug("Fetched trades", zap.Int("limit", limit), zap.Int("count", len(trades)))

	return trades, nil
}

// GetTrade returns the trade with the given id.
func (s *Store) GetTrade(ctx context.Context, id string) (types.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.TradeRecord{}, errStoreClosed()
	}

	sqlStr, args, err := s.sq.
		Select(tradeColumns...).
		From("trades").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return types.TradeRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build trade query", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return types.TradeRecord{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query trade %s", id)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return types.TradeRecord{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read trade %s", id)
		}

		return types.TradeRecord{}, errors.Newf(errors.ErrCodeTradeNotFound, "trade %s not found", id)
	}

	return s.scan(rows)
}

// SaveTrade implements TradeWriter.
func (s *Store) SaveTrade(ctx context.Context, trade types.TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errStoreClosed()
	}

	var expiresAt any
	if !trade.ExpiresAt.IsZero() {
		expiresAt = trade.ExpiresAt.UnixMilli()
	}

	sqlStr, args, err := s.sq.
		Insert("trades").
		Columns(tradeColumns...).
		Values(
			trade.ID, trade.Counterparty, trade.Creator,
			trade.TokenToSell, trade.AmountToSell.String(),
			trade.TokenToBuy, trade.AmountToBuy.String(),
			string(trade.Status), trade.CreatedAt.UnixMilli(), expiresAt,
		).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to build insert", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to insert trade %s", trade.ID)
	}

	s.logger.Info("Saved trade",
		zap.String("id", trade.ID),
		zap.String("counterparty", trade.Counterparty),
		zap.String("status", trade.Status.String()),
	)

	return nil
}

// UpdateStatus moves a trade to status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status types.TradeStatus) error {
	if !status.IsKnown() {
		return errors.Newf(errors.ErrCodeInvalidStatus, "unknown trade status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errStoreClosed()
	}

	sqlStr, args, err := s.sq.
		Update("trades").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to build update", err)
	}

	result, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to update trade %s", id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to update trade %s", id)
	}

	if affected == 0 {
		return errors.Newf(errors.ErrCodeTradeNotFound, "trade %s not found", id)
	}

	s.logger.Info("Updated trade status", zap.String("id", id), zap.String("status", string(status)))

	return nil
}

// Seed inserts trades one by one, stopping at the first failure.
func (s *Store) Seed(ctx context.Context, trades []types.TradeRecord) error {
	for _, trade := range trades {
		if err := s.SaveTrade(ctx, trade); err != nil {
			return err
		}
	}

	return nil
}

// Driver returns the database driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Close releases database resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to close database", err)
	}

	s.db = nil

	return nil
}

func errStoreClosed() error {
	return errors.New(errors.ErrCodeStoreUnavailable, "store is closed")
}

// scan reads one row. Unparseable amounts and statuses degrade to zero and
// missing instead of failing the whole list.
func (s *Store) scan(rows *sql.Rows) (types.TradeRecord, error) {
	var (
		trade                         types.TradeRecord
		creator, tokenSell, tokenBuy  sql.NullString
		amountSell, amountBuy, status sql.NullString
		createdAt                     int64
		expiresAt                     sql.NullInt64
	)

	if err := rows.Scan(
		&trade.ID, &trade.Counterparty, &creator,
		&tokenSell, &amountSell,
		&tokenBuy, &amountBuy,
		&status, &createdAt, &expiresAt,
	); err != nil {
		return types.TradeRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
	}

	trade.Creator = creator.String
	trade.TokenToSell = tokenSell.String
	trade.TokenToBuy = tokenBuy.String
	trade.AmountToSell = s.parseAmount(trade.ID, amountSell.String)
	trade.AmountToBuy = s.parseAmount(trade.ID, amountBuy.String)
	trade.Status = types.ParseTradeStatus(status.String)
	trade.CreatedAt = time.UnixMilli(createdAt).UTC()

	if expiresAt.Valid {
		trade.ExpiresAt = time.UnixMilli(expiresAt.Int64).UTC()
	}

	return trade, nil
}

func (s *Store) parseAmount(id, raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		s.logger.Warn("Unparseable trade amount", zap.String("id", id), zap.String("amount", raw))

		return decimal.Zero
	}

	return amount
}
