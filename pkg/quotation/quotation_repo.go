package quotation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type QuotationRepo interface {
	Store(ctx context.Context, quotation Quotation) (int, error)
	FindByUid(ctx context.Context, uid string) (*Quotation, error)
	GetAll(ctx context.Context) ([]Quotation, error)
	// FindCreatedBetween returns quotations with created_at in [from, to).
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Quotation, error)
	Update(ctx context.Context, quotation Quotation) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type QuotationRepoImpl struct {
	db *sql.DB
}

func NewQuotationRepo(db *sql.DB) *QuotationRepoImpl {
	return &QuotationRepoImpl{db: db}
}

const quotationColumns = "id, uid, client_id, ticket_id, number, grand_total, expected_expense, status, created_at"

func (r *QuotationRepoImpl) Store(ctx context.Context, quotation Quotation) (int, error) {
	query := `INSERT INTO quotation (uid, client_id, ticket_id, number, grand_total, expected_expense, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var ticketParam interface{}
	if quotation.TicketId != nil {
		ticketParam = *quotation.TicketId
	}

	var id int
	err := r.db.QueryRowContext(ctx, query,
		quotation.Uid,
		quotation.ClientId,
		ticketParam,
		quotation.Number,
		quotation.GrandTotal,
		quotation.ExpectedExpense,
		string(quotation.Status),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store quotation: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *QuotationRepoImpl) FindByUid(ctx context.Context, uid string) (*Quotation, error) {
	query := fmt.Sprintf("SELECT %s FROM quotation WHERE uid = $1", quotationColumns)
	row := r.db.QueryRowContext(ctx, query, uid)

	quotation, err := scanQuotation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not query quotation: %w", err)
		log.Error(err)
		return nil, err
	}
	return quotation, nil
}

func (r *QuotationRepoImpl) GetAll(ctx context.Context) ([]Quotation, error) {
	query := fmt.Sprintf("SELECT %s FROM quotation ORDER BY created_at DESC", quotationColumns)
	return r.queryMany(ctx, query)
}

func (r *QuotationRepoImpl) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Quotation, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM quotation WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at",
		quotationColumns,
	)
	return r.queryMany(ctx, query, from, to)
}

func (r *QuotationRepoImpl) queryMany(ctx context.Context, query string, args ...any) ([]Quotation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query quotations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		quotation, err := scanQuotation(rows)
		if err != nil {
			err := fmt.Errorf("could not scan quotation: %w", err)
			log.Error(err)
			return nil, err
		}
		quotations = append(quotations, *quotation)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return quotations, nil
}

func (r *QuotationRepoImpl) Update(ctx context.Context, quotation Quotation) (bool, error) {
	query := `UPDATE quotation SET
				  number = $1,
				  grand_total = $2,
				  expected_expense = $3,
				  status = $4
			  WHERE uid = $5`
	result, err := r.db.ExecContext(ctx, query,
		quotation.Number,
		quotation.GrandTotal,
		quotation.ExpectedExpense,
		string(quotation.Status),
		quotation.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update quotation: %w", err)
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

func (r *QuotationRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM quotation WHERE uid = $1"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete quotation: %w", err)
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

func scanQuotation(row rowScanner) (*Quotation, error) {
	var q Quotation
	var status string
	var ticketId sql.NullInt64
	if err := row.Scan(
		&q.Id,
		&q.Uid,
		&q.ClientId,
		&ticketId,
		&q.Number,
		&q.GrandTotal,
		&q.ExpectedExpense,
		&status,
		&q.CreatedAt,
	); err != nil {
		return nil, err
	}
	q.Status = QuotationStatus(status)
	if ticketId.Valid {
		id := int(ticketId.Int64)
		q.TicketId = &id
	}
	return &q, nil
}
