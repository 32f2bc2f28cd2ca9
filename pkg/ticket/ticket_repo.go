package ticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Filter narrows a ticket listing. Zero values mean "no filter".
type Filter struct {
	Status   TicketStatus
	ClientId int
}

type TicketRepo interface {
	Store(ctx context.Context, ticket Ticket) (int, error)
	FindByUid(ctx context.Context, uid string) (*Ticket, error)
	GetAll(ctx context.Context, filter Filter) ([]Ticket, error)
	Update(ctx context.Context, ticket Ticket) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type TicketRepoImpl struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepoImpl {
	return &TicketRepoImpl{db: db}
}

const ticketColumns = "id, uid, client_id, title, description, status, assignee_id, created_at"

func (r *TicketRepoImpl) Store(ctx context.Context, ticket Ticket) (int, error) {
	query := `INSERT INTO ticket (uid, client_id, title, description, status, assignee_id)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var assigneeParam interface{}
	if ticket.AssigneeId != nil {
		assigneeParam = *ticket.AssigneeId
	}

	var id int
	err := r.db.QueryRowContext(ctx, query,
		ticket.Uid,
		ticket.ClientId,
		ticket.Title,
		ticket.Description,
		string(ticket.Status),
		assigneeParam,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store ticket: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *TicketRepoImpl) FindByUid(ctx context.Context, uid string) (*Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM ticket WHERE uid = $1", ticketColumns)
	row := r.db.QueryRowContext(ctx, query, uid)

	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not query ticket: %w", err)
		log.Error(err)
		return nil, err
	}
	return ticket, nil
}

func (r *TicketRepoImpl) GetAll(ctx context.Context, filter Filter) ([]Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM ticket", ticketColumns)
	where := ""
	args := []any{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if filter.ClientId != 0 {
		args = append(args, filter.ClientId)
		if where == "" {
			where = fmt.Sprintf(" WHERE client_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND client_id = $%d", len(args))
		}
	}
	query += where + " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query tickets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			err := fmt.Errorf("could not scan ticket: %w", err)
			log.Error(err)
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepoImpl) Update(ctx context.Context, ticket Ticket) (bool, error) {
	query := `UPDATE ticket SET
				  title = $1,
				  description = $2,
				  status = $3,
				  assignee_id = $4
			  WHERE uid = $5`

	var assigneeParam interface{}
	if ticket.AssigneeId != nil {
		assigneeParam = *ticket.AssigneeId
	}

	result, err := r.db.ExecContext(ctx, query,
		ticket.Title,
		ticket.Description,
		string(ticket.Status),
		assigneeParam,
		ticket.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update ticket: %w", err)
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

func (r *TicketRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM ticket WHERE uid = $1"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete ticket: %w", err)
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

func scanTicket(row rowScanner) (*Ticket, error) {
	var t Ticket
	var status string
	var assigneeId sql.NullInt64
	if err := row.Scan(
		&t.Id,
		&t.Uid,
		&t.ClientId,
		&t.Title,
		&t.Description,
		&status,
		&assigneeId,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = TicketStatus(status)
	if assigneeId.Valid {
		id := int(assigneeId.Int64)
		t.AssigneeId = &id
	}
	return &t, nil
}
