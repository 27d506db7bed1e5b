package dto_test

import (
	"testing"

	"daybooker/infras/jwt"
	"daybooker/internal/domains/auth/model/dto"
	"daybooker/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RegisterRequest
		wantRole string
	}{
		{
			name:     "defaults to client",
			req:      dto.RegisterRequest{Email: " Jane@Example.com ", FullName: "Jane"},
			wantRole: constant.RoleClient,
		},
		{
			name:     "keeps partner role",
			req:      dto.RegisterRequest{Email: "hotel@example.com", FullName: "Hotel", Role: constant.RolePartner},
			wantRole: constant.RolePartner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.req.ToUserModel(constant.ContextGuest, "hashed")

			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Equal(t, "hashed", user.Password)
			assert.True(t, user.Active)
			assert.False(t, user.IsVerified)
			assert.Equal(t, constant.ContextGuest, user.CreatedBy)
		})
	}
}

func TestRegisterRequest_NormalisesEmail(t *testing.T) {
	req := dto.RegisterRequest{Email: " Jane@Example.com "}

	assert.Equal(t, "jane@example.com", req.ToUserModel("guest", "x").Email)
}

func TestRegisterRequest_ToPartnerSettings(t *testing.T) {
	req := dto.RegisterRequest{Email: "Hotel@Example.com"}

	settings := req.ToPartnerSettings("partner-1", 15, 24)

	assert.NotEmpty(t, settings.ID)
	assert.Equal(t, "partner-1", settings.PartnerID)
	assert.InDelta(t, 15.0, settings.CommissionRate, 0.0001)
	assert.Equal(t, 24, settings.FreeCancellationHours)
	assert.False(t, settings.AutoConfirm)
	assert.Equal(t, "hotel@example.com", settings.NotificationEmail)
}
