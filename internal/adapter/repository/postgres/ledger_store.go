package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

// LedgerStore implements usecase.LedgerStore on PostgreSQL. The ledger is
// small enough to live in memory, so Load reads every table in insertion
// order and Save replaces the whole ledger inside one transaction. That keeps
// the persisted state an exact image of the last committed mutation.
type LedgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// Load reads the full ledger.
func (s *LedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin load tx: %w", err)
	}
	defer tx.Rollback(ctx)

	l := &domain.Ledger{
		FeeConfig: domain.FeeConfig{Overrides: map[int64]domain.FeeOverride{}},
	}

	if l.Investors, err = loadInvestors(ctx, tx); err != nil {
		return nil, err
	}
	if l.Tranches, err = loadTranches(ctx, tx); err != nil {
		return nil, err
	}
	if l.Transactions, err = loadTransactions(ctx, tx); err != nil {
		return nil, err
	}
	if l.FeeRecords, err = loadFeeRecords(ctx, tx); err != nil {
		return nil, err
	}
	if l.NAVHistory, err = loadNAVHistory(ctx, tx); err != nil {
		return nil, err
	}
	if l.FeeConfig, err = loadFeeConfig(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit load tx: %w", err)
	}

	return l, nil
}

// Save replaces the persisted ledger with the given one atomically.
func (s *LedgerStore) Save(ctx context.Context, l *domain.Ledger) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"fee_overrides", "fee_config", "nav_history", "fee_records", "transactions", "tranches", "investors"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := saveInvestors(ctx, tx, l.Investors); err != nil {
		return err
	}
	if err := saveTranches(ctx, tx, l.Tranches); err != nil {
		return err
	}
	if err := saveTransactions(ctx, tx, l.Transactions); err != nil {
		return err
	}
	if err := saveFeeRecords(ctx, tx, l.FeeRecords); err != nil {
		return err
	}
	if err := saveNAVHistory(ctx, tx, l.NAVHistory); err != nil {
		return err
	}
	if err := saveFeeConfig(ctx, tx, l.FeeConfig); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}

	return nil
}

func loadInvestors(ctx context.Context, tx pgx.Tx) ([]*domain.Investor, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, name, email, phone, join_date, is_operator
		FROM investors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load investors: %w", err)
	}
	defer rows.Close()

	var investors []*domain.Investor
	for rows.Next() {
		var (
			inv      domain.Investor
			joinDate pgtype.Timestamptz
		)
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Email, &inv.Phone, &joinDate, &inv.IsOperator); err != nil {
			return nil, fmt.Errorf("scan investor: %w", err)
		}
		inv.JoinDate = joinDate.Time
		investors = append(investors, &inv)
	}

	return investors, rows.Err()
}

func loadTranches(ctx context.Context, tx pgx.Tx) ([]*domain.Tranche, error) {
	rows, err := tx.Query(ctx, `
		SELECT tranche_id, investor_id, entry_date, original_entry_date,
		       entry_price, original_entry_price, units, high_water_mark,
		       cumulative_fees_paid, invested_value, original_invested_value
		FROM tranches ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load tranches: %w", err)
	}
	defer rows.Close()

	var tranches []*domain.Tranche
	for rows.Next() {
		var (
			t                   domain.Tranche
			entryDate, origDate pgtype.Timestamptz
			entryPrice, origP   pgtype.Numeric
			units, hwm          pgtype.Numeric
			fees, inv, origInv  pgtype.Numeric
		)
		if err := rows.Scan(&t.TrancheID, &t.InvestorID, &entryDate, &origDate,
			&entryPrice, &origP, &units, &hwm, &fees, &inv, &origInv); err != nil {
			return nil, fmt.Errorf("scan tranche: %w", err)
		}
		t.EntryDate = entryDate.Time
		t.OriginalEntryDate = origDate.Time
		t.EntryPrice = numericToDecimal(entryPrice)
		t.OriginalEntryPrice = numericToDecimal(origP)
		t.Units = numericToDecimal(units)
		t.HighWaterMark = numericToDecimal(hwm)
		t.CumulativeFeesPaid = numericToDecimal(fees)
		t.InvestedValue = numericToDecimal(inv)
		t.OriginalInvestedValue = numericToDecimal(origInv)
		tranches = append(tranches, &t)
	}

	return tranches, rows.Err()
}

func loadTransactions(ctx context.Context, tx pgx.Tx) ([]*domain.Transaction, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, investor_id, tranche_id, type, amount, nav_at_time, units_delta, date
		FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var (
			txn                     domain.Transaction
			txType                  string
			amount, nav, unitsDelta pgtype.Numeric
			date                    pgtype.Timestamptz
		)
		if err := rows.Scan(&txn.ID, &txn.InvestorID, &txn.TrancheID, &txType,
			&amount, &nav, &unitsDelta, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txn.Type = domain.TransactionType(txType)
		txn.Amount = numericToDecimal(amount)
		txn.NAVAtTime = numericToDecimal(nav)
		txn.UnitsDelta = numericToDecimal(unitsDelta)
		txn.Date = date.Time
		transactions = append(transactions, &txn)
	}

	return transactions, rows.Err()
}

func loadFeeRecords(ctx context.Context, tx pgx.Tx) ([]*domain.FeeRecord, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, period, investor_id, tranche_id, fee_amount, fee_units,
		       units_before, units_after, price_per_unit, calculation_date, description
		FROM fee_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load fee records: %w", err)
	}
	defer rows.Close()

	var records []*domain.FeeRecord
	for rows.Next() {
		var (
			rec                            domain.FeeRecord
			feeAmount, feeUnits            pgtype.Numeric
			unitsBefore, unitsAfter, price pgtype.Numeric
			calcDate                       pgtype.Timestamptz
		)
		if err := rows.Scan(&rec.ID, &rec.Period, &rec.InvestorID, &rec.TrancheID,
			&feeAmount, &feeUnits, &unitsBefore, &unitsAfter, &price, &calcDate, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan fee record: %w", err)
		}
		rec.FeeAmount = numericToDecimal(feeAmount)
		rec.FeeUnits = numericToDecimal(feeUnits)
		rec.UnitsBefore = numericToDecimal(unitsBefore)
		rec.UnitsAfter = numericToDecimal(unitsAfter)
		rec.PricePerUnit = numericToDecimal(price)
		rec.CalculationDate = calcDate.Time
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func loadNAVHistory(ctx context.Context, tx pgx.Tx) ([]domain.NAVSnapshot, error) {
	rows, err := tx.Query(ctx, `
		SELECT date, source, total_nav FROM nav_history ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load nav history: %w", err)
	}
	defer rows.Close()

	var history []domain.NAVSnapshot
	for rows.Next() {
		var (
			snap   domain.NAVSnapshot
			source string
			date   pgtype.Timestamptz
			nav    pgtype.Numeric
		)
		if err := rows.Scan(&date, &source, &nav); err != nil {
			return nil, fmt.Errorf("scan nav snapshot: %w", err)
		}
		snap.Date = date.Time
		snap.Source = domain.TransactionType(source)
		snap.TotalNAV = numericToDecimal(nav)
		history = append(history, snap)
	}

	return history, rows.Err()
}

func loadFeeConfig(ctx context.Context, tx pgx.Tx) (domain.FeeConfig, error) {
	cfg := domain.FeeConfig{Overrides: map[int64]domain.FeeOverride{}}

	var perfRate, hurdleRate pgtype.Numeric
	err := tx.QueryRow(ctx, `
		SELECT performance_fee_rate, hurdle_rate_annual FROM fee_config WHERE id = 1`).
		Scan(&perfRate, &hurdleRate)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Fresh database: zero rates until configured.
	case err != nil:
		return cfg, fmt.Errorf("load fee config: %w", err)
	default:
		cfg.Global.PerformanceFeeRate = numericToDecimal(perfRate)
		cfg.Global.HurdleRateAnnual = numericToDecimal(hurdleRate)
	}

	rows, err := tx.Query(ctx, `
		SELECT investor_id, performance_fee_rate, hurdle_rate_annual FROM fee_overrides`)
	if err != nil {
		return cfg, fmt.Errorf("load fee overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			investorID int64
			perf, hur  pgtype.Numeric
		)
		if err := rows.Scan(&investorID, &perf, &hur); err != nil {
			return cfg, fmt.Errorf("scan fee override: %w", err)
		}

		var override domain.FeeOverride
		if perf.Valid {
			d := numericToDecimal(perf)
			override.PerformanceFeeRate = &d
		}
		if hur.Valid {
			d := numericToDecimal(hur)
			override.HurdleRateAnnual = &d
		}
		cfg.Overrides[investorID] = override
	}

	return cfg, rows.Err()
}

func saveInvestors(ctx context.Context, tx pgx.Tx, investors []*domain.Investor) error {
	for _, inv := range investors {
		_, err := tx.Exec(ctx, `
			INSERT INTO investors (id, name, email, phone, join_date, is_operator)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			inv.ID, inv.Name, inv.Email, inv.Phone, timeToPgTimestamptz(inv.JoinDate), inv.IsOperator)
		if err != nil {
			return fmt.Errorf("insert investor %d: %w", inv.ID, err)
		}
	}

	return nil
}

func saveTranches(ctx context.Context, tx pgx.Tx, tranches []*domain.Tranche) error {
	for _, t := range tranches {
		_, err := tx.Exec(ctx, `
			INSERT INTO tranches (tranche_id, investor_id, entry_date, original_entry_date,
				entry_price, original_entry_price, units, high_water_mark,
				cumulative_fees_paid, invested_value, original_invested_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			t.TrancheID, t.InvestorID,
			timeToPgTimestamptz(t.EntryDate), timeToPgTimestamptz(t.OriginalEntryDate),
			decimalToNumeric(t.EntryPrice), decimalToNumeric(t.OriginalEntryPrice),
			decimalToNumeric(t.Units), decimalToNumeric(t.HighWaterMark),
			decimalToNumeric(t.CumulativeFeesPaid),
			decimalToNumeric(t.InvestedValue), decimalToNumeric(t.OriginalInvestedValue))
		if err != nil {
			return fmt.Errorf("insert tranche %s: %w", t.TrancheID, err)
		}
	}

	return nil
}

func saveTransactions(ctx context.Context, tx pgx.Tx, transactions []*domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(transactions))
	for _, txn := range transactions {
		rows = append(rows, []any{
			txn.ID, txn.InvestorID, txn.TrancheID, string(txn.Type),
			decimalToNumeric(txn.Amount), decimalToNumeric(txn.NAVAtTime),
			decimalToNumeric(txn.UnitsDelta), timeToPgTimestamptz(txn.Date),
		})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{"id", "investor_id", "tranche_id", "type", "amount", "nav_at_time", "units_delta", "date"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy transactions: %w", err)
	}

	return nil
}

func saveFeeRecords(ctx context.Context, tx pgx.Tx, records []*domain.FeeRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{
			rec.ID, rec.Period, rec.InvestorID, rec.TrancheID,
			decimalToNumeric(rec.FeeAmount), decimalToNumeric(rec.FeeUnits),
			decimalToNumeric(rec.UnitsBefore), decimalToNumeric(rec.UnitsAfter),
			decimalToNumeric(rec.PricePerUnit), timeToPgTimestamptz(rec.CalculationDate),
			rec.Description,
		})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"fee_records"},
		[]string{"id", "period", "investor_id", "tranche_id", "fee_amount", "fee_units",
			"units_before", "units_after", "price_per_unit", "calculation_date", "description"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy fee records: %w", err)
	}

	return nil
}

func saveNAVHistory(ctx context.Context, tx pgx.Tx, history []domain.NAVSnapshot) error {
	for _, snap := range history {
		_, err := tx.Exec(ctx, `
			INSERT INTO nav_history (date, source, total_nav) VALUES ($1, $2, $3)`,
			timeToPgTimestamptz(snap.Date), string(snap.Source), decimalToNumeric(snap.TotalNAV))
		if err != nil {
			return fmt.Errorf("insert nav snapshot: %w", err)
		}
	}

	return nil
}

func saveFeeConfig(ctx context.Context, tx pgx.Tx, cfg domain.FeeConfig) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO fee_config (id, performance_fee_rate, hurdle_rate_annual)
		VALUES (1, $1, $2)`,
		decimalToNumeric(cfg.Global.PerformanceFeeRate), decimalToNumeric(cfg.Global.HurdleRateAnnual))
	if err != nil {
		return fmt.Errorf("insert fee config: %w", err)
	}

	for investorID, override := range cfg.Overrides {
		_, err := tx.Exec(ctx, `
			INSERT INTO fee_overrides (investor_id, performance_fee_rate, hurdle_rate_annual)
			VALUES ($1, $2, $3)`,
			investorID, optionalDecimalToNumeric(override.PerformanceFeeRate), optionalDecimalToNumeric(override.HurdleRateAnnual))
		if err != nil {
			return fmt.Errorf("insert fee override %d: %w", investorID, err)
		}
	}

	return nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func optionalDecimalToNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(*d)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
