package service_test

import (
	"context"
	"errors"
	"testing"

	"daybooker/config"
	"daybooker/infras/jwt"
	jwtMocks "daybooker/infras/jwt/mocks"
	"daybooker/infras/otel/mocks"
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	"daybooker/internal/domains/auth/model/dto"
	"daybooker/internal/domains/auth/service"
	partnerMocks "daybooker/internal/domains/partner/mocks"
	partnerModel "daybooker/internal/domains/partner/model"
	userMocks "daybooker/internal/domains/user/mocks"
	userModel "daybooker/internal/domains/user/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gModel "daybooker/shared/model"
	repoMocks "daybooker/shared/repository/mocks"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// bcrypt hash of "password"
const hashedPassword = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	userRepo    *userMocks.MockUser
	partnerRepo *partnerMocks.MockPartner
	transactor  *repoMocks.MockTransactor
	activity    *activityMocks.MockActivityLog
	jwt         *jwtMocks.MockJWT
	svc         service.Auth
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.DefaultCommissionRate = 15
	cfg.Booking.DefaultCancellationHours = 24

	f := &fixture{
		userRepo:    userMocks.NewMockUser(ctrl),
		partnerRepo: partnerMocks.NewMockPartner(ctrl),
		transactor:  repoMocks.NewMockTransactor(ctrl),
		activity:    activityMocks.NewMockActivityLog(ctrl),
		jwt:         jwtMocks.NewMockJWT(ctrl),
	}

	f.activity.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()
	f.svc = service.New(f.userRepo, f.partnerRepo, f.transactor, f.activity, cfg, mocks.NewOtel(), f.jwt)

	return f
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "client registration",
			req:  dto.RegisterRequest{Email: "client@example.com", Password: "password123", FullName: "Client"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleClient, user.Role)

						return nil
					})
			},
		},
		{
			name: "partner registration creates settings in a transaction",
			req:  dto.RegisterRequest{Email: "hotel@example.com", Password: "password123", FullName: "Hotel", Role: constant.RolePartner},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				f.userRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.partnerRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, settings partnerModel.PartnerSettings) error {
						assert.InDelta(t, 15.0, settings.CommissionRate, 0.0001)
						assert.Equal(t, 24, settings.FreeCancellationHours)

						return nil
					})
			},
		},
		{
			name: "duplicate email",
			req:  dto.RegisterRequest{Email: "client@example.com", Password: "password123", FullName: "Client"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "insert error",
			req:  dto.RegisterRequest{Email: "client@example.com", Password: "password123", FullName: "Client"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.Email, res.Email)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	validUser := userModel.User{
		ID:         "user-id-123",
		Email:      "test@example.com",
		Password:   hashedPassword,
		Role:       constant.RolePartner,
		FullName:   "Test User",
		IsVerified: true,
		Active:     true,
		Metadata:   gModel.NewMetadata("system", timezone.Now()),
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), validUser.ID, validUser.Email, constant.RolePartner).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure does not block login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				inactiveUser := validUser
				inactiveUser.Active = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, constant.RolePartner, res.Role)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := userModel.User{ID: "user-1", Password: hashedPassword, Active: true}
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "success",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotEqual(t, "new-password", fields["password"])

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: true,
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setupMock: func(f *fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(ctx, tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
