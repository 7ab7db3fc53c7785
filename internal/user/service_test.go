package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))
	return NewService(NewRepository(db), nil)
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret",
		Address:  Address{Street: "Calle 10 #5-23", City: "Medellín", PostalCode: "050021"},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	require.NotZero(t, id)

	token, err := svc.Login(ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident := svc.Identify(ctx, token)
	assert.True(t, ident.OK)
	assert.Equal(t, id, ident.UserID)

	u, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Medellín", u.Address.City)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty name", func(in *RegisterInput) { in.Name = " " }},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"email with spaces", func(in *RegisterInput) { in.Email = "a b@example.com" }},
		{"short password", func(in *RegisterInput) { in.Password = "ab" }},
		{"missing street", func(in *RegisterInput) { in.Address.Street = "" }},
		{"missing postal code", func(in *RegisterInput) { in.Address.PostalCode = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Register(ctx, in)
			assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.Register(ctx, validInput())
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestIdentifyUnknownToken(t *testing.T) {
	svc := newTestService(t)
	assert.False(t, svc.Identify(context.Background(), "").OK)
	assert.False(t, svc.Identify(context.Background(), "bogus").OK)
}
