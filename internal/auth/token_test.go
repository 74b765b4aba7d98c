package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := &User{ID: 7, Email: "ops@example.org", Role: RoleCoordinator}

	token, err := issuer.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ops@example.org", claims.Subject)
	assert.Equal(t, RoleCoordinator, claims.Role)
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(&User{ID: 1, Email: "a@b.c", Role: RoleAdmin})
	assert.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(&User{ID: 1, Email: "a@b.c", Role: RoleAdmin})
	assert.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
