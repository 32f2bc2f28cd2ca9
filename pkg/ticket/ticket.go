package ticket

import (
	"errors"
	"time"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

var ErrUnknownStatus = errors.New("unknown ticket status")

func ParseStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return TicketStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// Ticket is a maintenance job raised for a client.
type Ticket struct {
	Id          int
	Uid         string
	ClientId    int
	Title       string
	Description string
	Status      TicketStatus
	AssigneeId  *int
	CreatedAt   time.Time
}
