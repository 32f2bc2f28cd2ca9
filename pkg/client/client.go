package client

import "time"

// Client is a customer of the maintenance business.
type Client struct {
	Id          int
	Uid         string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
}
