package dto

import (
	"strings"
	"time"

	"daybooker/infras/jwt"
	partnerModel "daybooker/internal/domains/partner/model"
	partnerDto "daybooker/internal/domains/partner/model/dto"
	userModel "daybooker/internal/domains/user/model"
	"daybooker/shared/constant"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone"     validate:"omitempty,max=30"`
	Role     string `json:"role"      validate:"omitempty,oneof=client partner"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	role := r.Role
	if role == "" {
		role = constant.RoleClient
	}

	return userModel.User{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Password:   hashedPassword,
		Role:       role,
		FullName:   r.FullName,
		Phone:      r.Phone,
		IsVerified: false,
		Active:     true,
		Metadata:   gModel.NewMetadata(username, timezone.Now()),
	}
}

// ToPartnerSettings returns the default settings row created with a partner account.
func (r *RegisterRequest) ToPartnerSettings(partnerID string, commissionRate float64, cancellationHours int) partnerModel.PartnerSettings {
	return partnerDto.NewSettings(partnerID, strings.ToLower(strings.TrimSpace(r.Email)), partnerID, commissionRate, cancellationHours)
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
