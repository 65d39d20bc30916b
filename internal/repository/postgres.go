package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbridge/cashkick-service/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repository provides database operations backed by Postgres
type Repository struct {
	db *sql.DB
	q  querier
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, q: db}
}

// Tx runs fn inside a database transaction
func (r *Repository) Tx(ctx context.Context, fn func(Store) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Repository{db: r.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, name, email, password_hash, rate, credit_balance, term_cap, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.q.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash,
		user.Rate, user.CreditBalance, user.TermCap).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, rate, credit_balance, term_cap, created_at
		FROM users
		WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Rate, &user.CreditBalance, &user.TermCap, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, rate, credit_balance, term_cap, created_at
		FROM users
		WHERE email = $1`
	err := r.q.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Rate, &user.CreditBalance, &user.TermCap, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, password_hash, rate, credit_balance, term_cap, created_at
		FROM users
		ORDER BY created_at`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Rate, &user.CreditBalance, &user.TermCap, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser updates the mutable user fields; nil arguments are left untouched
func (r *Repository) UpdateUser(ctx context.Context, id string, passwordHash *string, creditBalance *float64) error {
	query := `
		UPDATE users
		SET password_hash = COALESCE($2, password_hash),
		    credit_balance = COALESCE($3, credit_balance)
		WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, id, passwordHash, creditBalance)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementUserBalance subtracts amount from the user's credit balance
func (r *Repository) DecrementUserBalance(ctx context.Context, id string, amount float64) error {
	query := `
		UPDATE users
		SET credit_balance = credit_balance - $2
		WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCashkick creates a new cashkick in the database
func (r *Repository) CreateCashkick(ctx context.Context, cashkick *models.Cashkick) error {
	if cashkick.ID == "" {
		cashkick.ID = uuid.NewString()
	}
	query := `
		INSERT INTO cashkicks (id, name, status, maturity, total_received, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.q.QueryRowContext(ctx, query, cashkick.ID, cashkick.Name, cashkick.Status,
		cashkick.Maturity, cashkick.TotalReceived, cashkick.UserID).Scan(&cashkick.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cashkick: %w", err)
	}
	return nil
}

// ListCashkicksByUser retrieves all cashkicks owned by a user
func (r *Repository) ListCashkicksByUser(ctx context.Context, userID string) ([]models.Cashkick, error) {
	query := `
		SELECT id, name, status, maturity, total_received, user_id, created_at
		FROM cashkicks
		WHERE user_id = $1
		ORDER BY created_at`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashkicks: %w", err)
	}
	defer rows.Close()

	var cashkicks []models.Cashkick
	for rows.Next() {
		var ck models.Cashkick
		if err := rows.Scan(&ck.ID, &ck.Name, &ck.Status, &ck.Maturity,
			&ck.TotalReceived, &ck.UserID, &ck.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cashkick: %w", err)
		}
		cashkicks = append(cashkicks, ck)
	}
	return cashkicks, rows.Err()
}

// ListCashkicksWithContracts retrieves a user's cashkicks, each joined with
// the contracts linked through cashkick_contracts
func (r *Repository) ListCashkicksWithContracts(ctx context.Context, userID string) ([]models.CashkickWithContracts, error) {
	query := `
		SELECT ck.id, ck.name, ck.status, ck.maturity, ck.total_received, ck.user_id, ck.created_at,
		       c.id, c.name, c.status, c.type, c.per_payment, c.term_length, c.payment_amount, c.created_at
		FROM cashkicks ck
		LEFT JOIN cashkick_contracts cc ON cc.cashkick_id = ck.id
		LEFT JOIN contracts c ON c.id = cc.contract_id
		WHERE ck.user_id = $1
		ORDER BY ck.created_at, c.created_at`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashkicks with contracts: %w", err)
	}
	defer rows.Close()

	var result []models.CashkickWithContracts
	index := map[string]int{}
	for rows.Next() {
		var ck models.Cashkick
		var cID, cName sql.NullString
		var cStatus, cType sql.NullString
		var cPerPayment, cPaymentAmount sql.NullFloat64
		var cTermLength sql.NullInt64
		var cCreatedAt sql.NullTime
		if err := rows.Scan(&ck.ID, &ck.Name, &ck.Status, &ck.Maturity,
			&ck.TotalReceived, &ck.UserID, &ck.CreatedAt,
			&cID, &cName, &cStatus, &cType, &cPerPayment, &cTermLength,
			&cPaymentAmount, &cCreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cashkick with contracts: %w", err)
		}

		i, ok := index[ck.ID]
		if !ok {
			result = append(result, models.CashkickWithContracts{Cashkick: ck})
			i = len(result) - 1
			index[ck.ID] = i
		}
		if cID.Valid {
			result[i].Contracts = append(result[i].Contracts, models.Contract{
				ID:            cID.String,
				Name:          cName.String,
				Status:        models.ContractStatus(cStatus.String),
				Type:          models.ContractType(cType.String),
				PerPayment:    cPerPayment.Float64,
				TermLength:    int(cTermLength.Int64),
				PaymentAmount: cPaymentAmount.Float64,
				CreatedAt:     cCreatedAt.Time,
			})
		}
	}
	return result, rows.Err()
}

// ListMaturedPendingCashkicks retrieves pending cashkicks whose maturity has passed
func (r *Repository) ListMaturedPendingCashkicks(ctx context.Context, asOf time.Time) ([]models.Cashkick, error) {
	query := `
		SELECT id, name, status, maturity, total_received, user_id, created_at
		FROM cashkicks
		WHERE status = $1 AND maturity <= $2
		ORDER BY maturity`
	rows, err := r.q.QueryContext(ctx, query, models.CashkickStatusPending, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list matured cashkicks: %w", err)
	}
	defer rows.Close()

	var cashkicks []models.Cashkick
	for rows.Next() {
		var ck models.Cashkick
		if err := rows.Scan(&ck.ID, &ck.Name, &ck.Status, &ck.Maturity,
			&ck.TotalReceived, &ck.UserID, &ck.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cashkick: %w", err)
		}
		cashkicks = append(cashkicks, ck)
	}
	return cashkicks, rows.Err()
}

// UpdateCashkickStatus sets the status of a cashkick
func (r *Repository) UpdateCashkickStatus(ctx context.Context, id string, status models.CashkickStatus) error {
	res, err := r.q.ExecContext(ctx, `UPDATE cashkicks SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update cashkick status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update cashkick status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAssociation creates a cashkick-contract association row
func (r *Repository) CreateAssociation(ctx context.Context, assoc *models.CashkickContract) error {
	if assoc.ID == "" {
		assoc.ID = uuid.NewString()
	}
	query := `
		INSERT INTO cashkick_contracts (id, cashkick_id, contract_id, total_financed)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.ExecContext(ctx, query, assoc.ID, assoc.CashkickID, assoc.ContractID, assoc.TotalFinanced); err != nil {
		return fmt.Errorf("failed to create association: %w", err)
	}
	return nil
}

// FindAssociation retrieves the association for a (cashkick, contract) pair
func (r *Repository) FindAssociation(ctx context.Context, cashkickID, contractID string) (*models.CashkickContract, error) {
	assoc := &models.CashkickContract{}
	query := `
		SELECT id, cashkick_id, contract_id, total_financed
		FROM cashkick_contracts
		WHERE cashkick_id = $1 AND contract_id = $2`
	err := r.q.QueryRowContext(ctx, query, cashkickID, contractID).
		Scan(&assoc.ID, &assoc.CashkickID, &assoc.ContractID, &assoc.TotalFinanced)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find association: %w", err)
	}
	return assoc, nil
}

// CreateContract creates a new contract in the database
func (r *Repository) CreateContract(ctx context.Context, contract *models.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	query := `
		INSERT INTO contracts (id, name, status, type, per_payment, term_length, payment_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.q.QueryRowContext(ctx, query, contract.ID, contract.Name, contract.Status,
		contract.Type, contract.PerPayment, contract.TermLength, contract.PaymentAmount).
		Scan(&contract.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// ListContracts retrieves the full contract catalog
func (r *Repository) ListContracts(ctx context.Context) ([]models.Contract, error) {
	query := `
		SELECT id, name, status, type, per_payment, term_length, payment_amount, created_at
		FROM contracts
		ORDER BY created_at`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.Type,
			&c.PerPayment, &c.TermLength, &c.PaymentAmount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
