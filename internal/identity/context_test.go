package identity

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/rbac"
)

func TestFromUser(t *testing.T) {
	id := uuid.New()
	user := &models.User{
		ID:          id,
		UserName:    "alice",
		Email:       "alice@example.com",
		PhoneNumber: "+49 30 1234",
	}
	roles := []string{rbac.Publisher}

	uc := FromUser(user, roles)
	roles[0] = rbac.Admin

	assert.Equal(t, id, uc.UserID())
	assert.Equal(t, "alice", uc.UserName())
	assert.Equal(t, "alice@example.com", uc.Description(), "description falls back to email")
	assert.Equal(t, "+49 30 1234", uc.Phone())
	assert.True(t, uc.IsAuthenticated())
	assert.Equal(t, []string{rbac.Publisher}, uc.CurrentRoles())
	assert.True(t, uc.IsInRole(rbac.Publisher))
	assert.True(t, uc.CanPublish())
	assert.False(t, uc.CanDesign())
	assert.False(t, uc.CanModifyRights())

	user.DisplayName = "Alice A."
	assert.Equal(t, "Alice A.", FromUser(user, nil).Description())
}

func TestFromUserNameFallsBackToEmail(t *testing.T) {
	uc := FromUser(&models.User{Email: "x@example.com"}, nil)
	assert.Equal(t, "x@example.com", uc.UserName())
}

func TestFromClaims(t *testing.T) {
	uc := FromClaims(Claims{UserName: "bob", Roles: []string{rbac.Designer}})
	assert.True(t, uc.IsAuthenticated())
	assert.Equal(t, uuid.Nil, uc.UserID())
	assert.True(t, uc.CanDesign())
	assert.False(t, uc.CanPublish())

	lower := FromClaims(Claims{UserName: "carol", Roles: []string{"publisher"}})
	assert.True(t, lower.CanPublish())
	assert.True(t, lower.IsInRole(rbac.Publisher), "role names compare without case")
	assert.True(t, lower.IsInRole("PUBLISHER"))
	assert.False(t, lower.IsInRole(rbac.Designer))

	empty := FromClaims(Claims{Roles: []string{rbac.Admin}})
	assert.False(t, empty.IsAuthenticated())
	assert.False(t, empty.CanPublish())
}

func TestAnonymous(t *testing.T) {
	uc := Anonymous()

	assert.Equal(t, uuid.Nil, uc.UserID())
	assert.Equal(t, AnonymousName, uc.UserName())
	assert.False(t, uc.IsAuthenticated())
	assert.Empty(t, uc.CurrentRoles())
	assert.False(t, uc.CanPublish())
	assert.False(t, uc.CanModifyRights())
	assert.False(t, uc.CanDesign())
	assert.False(t, FromUser(nil, nil).IsAuthenticated())
}

func TestAlerts(t *testing.T) {
	uc := FromClaims(Claims{UserName: "bob"})

	uc.Alert("", PriorityHigh)
	uc.Alert("first", PriorityLow)
	uc.Alert("second", PriorityCritical)

	alerts := uc.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, "first", alerts[0].Message)
	assert.Equal(t, PriorityCritical, alerts[1].Priority)
	assert.Equal(t, "critical", alerts[1].Priority.String())
}

func TestAlertsBoundedAndConcurrent(t *testing.T) {
	uc := Anonymous()

	var wg sync.WaitGroup

	for i := range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 50 {
				uc.Alert(fmt.Sprintf("%d-%d", i, j), PriorityNormal)
			}
		}()
	}

	wg.Wait()
	assert.Len(t, uc.Alerts(), maxAlerts)
}

func TestContextRoundTrip(t *testing.T) {
	assert.False(t, FromContext(context.Background()).IsAuthenticated())

	uc := FromClaims(Claims{UserName: "bob"})
	ctx := NewContext(context.Background(), uc)
	assert.Equal(t, "bob", FromContext(ctx).UserName())
}
