package user

import (
	"time"

	"github.com/fieldkeep/fieldkeep/pkg/rbac"
)

type User struct {
	Id           int
	Uid          string
	Username     string
	DisplayName  string
	Role         rbac.Role
	PasswordHash string
	CreatedAt    time.Time
}
