package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type ExpenseRepo interface {
	Store(ctx context.Context, expense Expense) (int, error)
	FindByUid(ctx context.Context, uid string) (*Expense, error)
	GetAll(ctx context.Context) ([]Expense, error)
	// FindCreatedBetween returns expenses with created_at in [from, to).
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

const expenseColumns = "id, uid, amount, category, quotation_id, ticket_id, description, created_at"

func (r *ExpenseRepoImpl) Store(ctx context.Context, expense Expense) (int, error) {
	query := `INSERT INTO expense (uid, amount, category, quotation_id, ticket_id, description)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var quotationParam, ticketParam interface{}
	if expense.QuotationId != nil {
		quotationParam = *expense.QuotationId
	}
	if expense.TicketId != nil {
		ticketParam = *expense.TicketId
	}

	var id int
	err := r.db.QueryRowContext(ctx, query,
		expense.Uid,
		expense.Amount,
		string(expense.Category),
		quotationParam,
		ticketParam,
		expense.Description,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *ExpenseRepoImpl) FindByUid(ctx context.Context, uid string) (*Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expense WHERE uid = $1", expenseColumns)
	row := r.db.QueryRowContext(ctx, query, uid)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not query expense: %w", err)
		log.Error(err)
		return nil, err
	}
	return expense, nil
}

func (r *ExpenseRepoImpl) GetAll(ctx context.Context) ([]Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expense ORDER BY created_at DESC", expenseColumns)
	return r.queryMany(ctx, query)
}

func (r *ExpenseRepoImpl) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Expense, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM expense WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at",
		expenseColumns,
	)
	return r.queryMany(ctx, query, from, to)
}

func (r *ExpenseRepoImpl) queryMany(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepoImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expense SET
				  amount = $1,
				  category = $2,
				  description = $3
			  WHERE uid = $4`
	result, err := r.db.ExecContext(ctx, query,
		expense.Amount,
		string(expense.Category),
		expense.Description,
		expense.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *ExpenseRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM expense WHERE uid = $1"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*Expense, error) {
	var e Expense
	var category string
	var quotationId, ticketId sql.NullInt64
	if err := row.Scan(
		&e.Id,
		&e.Uid,
		&e.Amount,
		&category,
		&quotationId,
		&ticketId,
		&e.Description,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Category = Category(category)
	if quotationId.Valid {
		id := int(quotationId.Int64)
		e.QuotationId = &id
	}
	if ticketId.Valid {
		id := int(ticketId.Int64)
		e.TicketId = &id
	}
	return &e, nil
}
