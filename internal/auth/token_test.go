package auth

import (
	"testing"
	"time"

	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/fieldkeep/fieldkeep/pkg/rbac"
	"github.com/stretchr/testify/assert"
)

func testSession() Session {
	return Session{
		UserID:   7,
		UserUID:  "7f9c7f3a-0000-0000-0000-000000000001",
		Username: "jdoe",
		Role:     rbac.RoleRM,
	}
}

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue(testSession())
	assert.NoError(t, err)

	session, err := tokens.Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, testSession(), session)
}

func TestVerify_WrongSecret(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	other := NewTokens("other-secret", time.Hour)

	signed, err := tokens.Issue(testSession())
	assert.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)}
	tokens := NewTokens("test-secret", time.Hour)
	tokens.clock = clock

	signed, err := tokens.Issue(testSession())
	assert.NoError(t, err)

	clock.SetNow(clock.FixedNow.Add(2 * time.Hour))
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnknownRoleClaim(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	s := testSession()
	s.Role = rbac.Role("SUPERUSER")

	signed, err := tokens.Issue(s)
	assert.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
