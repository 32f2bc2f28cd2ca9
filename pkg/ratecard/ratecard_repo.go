package ratecard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type RateCardRepo interface {
	Store(ctx context.Context, card RateCard) (int, error)
	FindByUid(ctx context.Context, uid string) (*RateCard, error)
	GetAll(ctx context.Context, activeOnly bool) ([]RateCard, error)
	Update(ctx context.Context, card RateCard) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RateCardRepoImpl struct {
	db *sql.DB
}

func NewRateCardRepo(db *sql.DB) *RateCardRepoImpl {
	return &RateCardRepoImpl{db: db}
}

const rateCardColumns = "id, uid, name, category, unit, unit_price, active, created_at"

func (r *RateCardRepoImpl) Store(ctx context.Context, card RateCard) (int, error) {
	query := `INSERT INTO rate_card (uid, name, category, unit, unit_price, active)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		card.Uid,
		card.Name,
		card.Category,
		card.Unit,
		card.UnitPrice,
		card.Active,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store rate card: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RateCardRepoImpl) FindByUid(ctx context.Context, uid string) (*RateCard, error) {
	query := fmt.Sprintf("SELECT %s FROM rate_card WHERE uid = $1", rateCardColumns)
	row := r.db.QueryRowContext(ctx, query, uid)

	card, err := scanRateCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not query rate card: %w", err)
		log.Error(err)
		return nil, err
	}
	return card, nil
}

func (r *RateCardRepoImpl) GetAll(ctx context.Context, activeOnly bool) ([]RateCard, error) {
	query := fmt.Sprintf("SELECT %s FROM rate_card", rateCardColumns)
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query rate cards: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var cards []RateCard
	for rows.Next() {
		card, err := scanRateCard(rows)
		if err != nil {
			err := fmt.Errorf("could not scan rate card: %w", err)
			log.Error(err)
			return nil, err
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return cards, nil
}

func (r *RateCardRepoImpl) Update(ctx context.Context, card RateCard) (bool, error) {
	query := `UPDATE rate_card SET
				  name = $1,
				  category = $2,
				  unit = $3,
				  unit_price = $4,
				  active = $5
			  WHERE uid = $6`
	result, err := r.db.ExecContext(ctx, query,
		card.Name,
		card.Category,
		card.Unit,
		card.UnitPrice,
		card.Active,
		card.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update rate card: %w", err)
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

func (r *RateCardRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM rate_card WHERE uid = $1"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete rate card: %w", err)
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

func scanRateCard(row rowScanner) (*RateCard, error) {
	var c RateCard
	if err := row.Scan(
		&c.Id,
		&c.Uid,
		&c.Name,
		&c.Category,
		&c.Unit,
		&c.UnitPrice,
		&c.Active,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
