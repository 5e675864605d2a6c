package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    service.RegisterInput
		existing *service.RegisterInput
		wantErr  error
	}{
		{
			name:  "successful registration",
			input: service.RegisterInput{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "engine"},
		},
		{
			name:    "missing full name",
			input:   service.RegisterInput{Email: "ada@example.com", Password: "engine"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing email",
			input:   service.RegisterInput{FullName: "Ada", Password: "engine"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing password",
			input:   service.RegisterInput{FullName: "Ada", Email: "ada@example.com"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:     "duplicate email",
			input:    service.RegisterInput{FullName: "Other", Email: "ada@example.com", Password: "different"},
			existing: &service.RegisterInput{FullName: "Ada", Email: "ada@example.com", Password: "engine"},
			wantErr:  domain.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, codec := newAccountService(t)

			if tt.existing != nil {
				_, err := svc.Register(ctx, *tt.existing)
				require.NoError(t, err)
			}

			result, err := svc.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.FullName, result.User.FullName)
			assert.Equal(t, tt.input.Email, result.User.Email)
			assert.NotEqual(t, tt.input.Password, result.User.PasswordHash)
			assert.False(t, result.User.CreatedOn.IsZero())

			claims, err := codec.Verify(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, result.User.ID, claims.UserID)
		})
	}
}

func TestAccountService_RegisterConcurrentDuplicates(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, service.RegisterInput{
				FullName: "Racer",
				Email:    "race@example.com",
				Password: "secret",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAccountService_Login(t *testing.T) {
	svc, codec := newAccountService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, service.RegisterInput{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: "cobol",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{Email: "grace@example.com", Password: "cobol"},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Email: "grace@example.com", Password: "fortran"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown email",
			input:   service.LoginInput{Email: "nobody@example.com", Password: "cobol"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "missing email",
			input:   service.LoginInput{Password: "cobol"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing password",
			input:   service.LoginInput{Email: "grace@example.com"},
			wantErr: domain.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, result.User.ID)

			claims, err := codec.Verify(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, claims.UserID)
		})
	}
}

func TestAccountService_LoginErrorsAreIndistinguishable(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{FullName: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, service.LoginInput{Email: "a@example.com", Password: "nope"})
	_, unknownEmail := svc.Login(ctx, service.LoginInput{Email: "b@example.com", Password: "pw"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, domain.KindOf(wrongPassword), domain.KindOf(unknownEmail))
}
