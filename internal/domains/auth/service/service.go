package service

import (
	"context"
	"fmt"
	"strings"

	"daybooker/config"
	"daybooker/infras/jwt"
	"daybooker/infras/otel"
	activityDto "daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"
	"daybooker/internal/domains/auth/model/dto"
	partnerRepo "daybooker/internal/domains/partner/repository"
	userModel "daybooker/internal/domains/user/model"
	userRepo "daybooker/internal/domains/user/repository"
	"daybooker/shared"
	"daybooker/shared/constant"
	"daybooker/shared/failure"
	"daybooker/shared/password"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo    userRepo.User
	partnerRepo partnerRepo.Partner
	transactor  gRepo.Transactor
	activity    activityService.ActivityLog
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(
	userRepo userRepo.User,
	partnerRepo partnerRepo.Partner,
	transactor gRepo.Transactor,
	activity activityService.ActivityLog,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
		transactor:  transactor,
		activity:    activity,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(strings.ToLower(strings.TrimSpace(req.Email)), userModel.FieldEmail, userModel.TableName)

	exists, err := s.userRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered")
	}

	if err = password.CheckPolicy(req.Password); err != nil {
		return res, failure.BadRequest(err)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashedPassword)

	if user.Role == constant.RolePartner {
		settings := req.ToPartnerSettings(user.ID, s.cfg.Booking.DefaultCommissionRate, s.cfg.Booking.DefaultCancellationHours)

		err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
			if err := s.userRepo.InsertTx(ctx, tx, user); err != nil {
				return err //nolint:wrapcheck
			}

			return s.partnerRepo.InsertTx(ctx, tx, settings) //nolint:wrapcheck
		})
	} else {
		err = s.userRepo.Insert(ctx, user)
	}

	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.BadRequestFromString("email already registered")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	s.activity.Record(ctx, activityDto.Event{
		UserID:   user.ID,
		Action:   activityDto.ActionRegister,
		Entity:   userModel.EntityName,
		EntityID: user.ID,
		Details:  map[string]any{"role": user.Role},
	})

	res = dto.RegisterResponse{ID: user.ID, Email: user.Email, Role: user.Role}

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(strings.ToLower(strings.TrimSpace(req.Email)), userModel.FieldEmail, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password")
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, user.ID)

	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	s.activity.Record(ctx, activityDto.Event{
		UserID:   user.ID,
		Action:   activityDto.ActionLogin,
		Entity:   userModel.EntityName,
		EntityID: user.ID,
	})

	res.FromTokenPair(tokenPair)
	res.Role = user.Role

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.InvalidRefreshToken
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	if err = password.CheckPolicy(req.NewPassword); err != nil {
		return failure.BadRequest(err)
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
