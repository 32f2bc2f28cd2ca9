package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type ClientRepo interface {
	Store(ctx context.Context, client Client) (int, error)
	FindByUid(ctx context.Context, uid string) (*Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, client Client) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ClientRepoImpl struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepoImpl {
	return &ClientRepoImpl{db: db}
}

const clientColumns = "id, uid, name, contact_name, email, phone, address, created_at"

func (r *ClientRepoImpl) Store(ctx context.Context, client Client) (int, error) {
	query := `INSERT INTO client (uid, name, contact_name, email, phone, address)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		client.Uid,
		client.Name,
		client.ContactName,
		client.Email,
		client.Phone,
		client.Address,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store client: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *ClientRepoImpl) FindByUid(ctx context.Context, uid string) (*Client, error) {
	query := fmt.Sprintf("SELECT %s FROM client WHERE uid = $1", clientColumns)
	row := r.db.QueryRowContext(ctx, query, uid)

	var c Client
	if err := row.Scan(&c.Id, &c.Uid, &c.Name, &c.ContactName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not query client: %w", err)
		log.Error(err)
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepoImpl) GetAll(ctx context.Context) ([]Client, error) {
	query := fmt.Sprintf("SELECT %s FROM client ORDER BY name", clientColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query clients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.Id, &c.Uid, &c.Name, &c.ContactName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan client: %w", err)
			log.Error(err)
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepoImpl) Update(ctx context.Context, client Client) (bool, error) {
	query := `UPDATE client SET
				  name = $1,
				  contact_name = $2,
				  email = $3,
				  phone = $4,
				  address = $5
			  WHERE uid = $6`
	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.ContactName,
		client.Email,
		client.Phone,
		client.Address,
		client.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update client: %w", err)
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

func (r *ClientRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM client WHERE uid = $1"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete client: %w", err)
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
