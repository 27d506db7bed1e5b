package service_test

import (
	"context"
	"testing"

	"daybooker/config"
	"daybooker/infras/otel/mocks"
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	partnerMocks "daybooker/internal/domains/partner/mocks"
	"daybooker/internal/domains/partner/model"
	"daybooker/internal/domains/partner/model/dto"
	"daybooker/internal/domains/partner/service"
	userMocks "daybooker/internal/domains/user/mocks"
	userModel "daybooker/internal/domains/user/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *partnerMocks.MockPartner
	users *userMocks.MockUser
	svc   service.Partner
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.DefaultCommissionRate = 15
	cfg.Booking.DefaultCancellationHours = 24

	activity := activityMocks.NewMockActivityLog(ctrl)
	activity.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	f := &fixture{
		repo:  partnerMocks.NewMockPartner(ctrl),
		users: userMocks.NewMockUser(ctrl),
	}

	f.svc = service.New(f.repo, f.users, activity, cfg, mocks.NewOtel())

	return f
}

func withUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestPartnerService_SetCommissionRate(t *testing.T) {
	t.Run("persists and reads back", func(t *testing.T) {
		f := newFixture(t)
		stored := model.PartnerSettings{ID: "s1", PartnerID: "p1", CommissionRate: 15}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.PartnerSettings, error) {
			return stored, nil
		}).Times(2)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			stored.CommissionRate, _ = fields[model.FieldCommissionRate].(float64)

			return nil
		})

		rate := 12.5
		ctx := withUser("admin-1", constant.RoleAdmin)

		err := f.svc.SetCommissionRate(ctx, "p1", dto.SetCommissionRequest{CommissionRate: &rate})
		assert.NoError(t, err)

		res, err := f.svc.Get(ctx, "p1")
		assert.NoError(t, err)
		assert.Equal(t, 12.5, res.CommissionRate)
	})

	t.Run("zero rate is stored", func(t *testing.T) {
		f := newFixture(t)
		zero := 0.0

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.PartnerSettings{ID: "s1", PartnerID: "p1", CommissionRate: 15}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, 0.0, fields[model.FieldCommissionRate])

			return nil
		})

		assert.NoError(t, f.svc.SetCommissionRate(withUser("admin-1", constant.RoleAdmin), "p1", dto.SetCommissionRequest{CommissionRate: &zero}))
	})

	t.Run("unknown partner", func(t *testing.T) {
		f := newFixture(t)
		rate := 10.0

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.PartnerSettings{}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := f.svc.SetCommissionRate(withUser("admin-1", constant.RoleAdmin), "p9", dto.SetCommissionRequest{CommissionRate: &rate})

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPartnerService_GetSettings(t *testing.T) {
	t.Run("creates defaults for promoted partners", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.PartnerSettings{}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "p1", Email: "partner@example.com", Role: constant.RolePartner}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, settings model.PartnerSettings) error {
			assert.Equal(t, 15.0, settings.CommissionRate)
			assert.Equal(t, 24, settings.FreeCancellationHours)

			return nil
		})

		res, err := f.svc.GetSettings(withUser("p1", constant.RolePartner))

		assert.NoError(t, err)
		assert.Equal(t, "partner@example.com", res.NotificationEmail)
	})
}

func TestPartnerService_UpdateSettings(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpdateSettings(withUser("p1", constant.RolePartner), dto.UpdateSettingsRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("auto confirm", func(t *testing.T) {
		f := newFixture(t)
		enabled := true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.PartnerSettings{ID: "s1", PartnerID: "p1"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, &enabled, fields[model.FieldAutoConfirm])
			assert.NotContains(t, fields, model.FieldCommissionRate)

			return nil
		})

		assert.NoError(t, f.svc.UpdateSettings(withUser("p1", constant.RolePartner), dto.UpdateSettingsRequest{AutoConfirm: &enabled}))
	})
}

func TestPartnerService_ListPartners(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().CountPartners(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAllPartners(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Partner{{PartnerID: "p1", Email: "a@b.c", CommissionRate: 10}}, nil)

	res, err := f.svc.ListPartners(withUser("admin-1", constant.RoleAdmin), gDto.QueryParams{Page: 1, Limit: 10}, dto.PartnerFilter{Email: "a@"})

	assert.NoError(t, err)
	assert.Len(t, res.Partners, 1)
	assert.Equal(t, 10.0, res.Partners[0].CommissionRate)
}
