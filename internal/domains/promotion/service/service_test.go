package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"daybooker/infras/otel/mocks"
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	promotionMocks "daybooker/internal/domains/promotion/mocks"
	"daybooker/internal/domains/promotion/model"
	"daybooker/internal/domains/promotion/model/dto"
	"daybooker/internal/domains/promotion/service"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*promotionMocks.MockPromotion, service.Promotion) {
	ctrl := gomock.NewController(t)

	repo := promotionMocks.NewMockPromotion(ctrl)
	activity := activityMocks.NewMockActivityLog(ctrl)
	activity.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	return repo, service.New(repo, activity, mocks.NewOtel())
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func activePromotion(now time.Time) model.Promotion {
	return model.Promotion{
		ID:            "promo-1",
		Code:          "SUMMER",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
		MinAmount:     5000,
		MaxUses:       3,
		UsedCount:     1,
		StartsAt:      now.Add(-time.Hour),
		EndsAt:        now.Add(time.Hour),
		Active:        true,
	}
}

func TestCheck(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	hotelID := "hotel-1"
	otherHotel := "hotel-2"

	tests := []struct {
		name    string
		mutate  func(p *model.Promotion)
		amount  int64
		wantErr string
	}{
		{name: "applicable", mutate: func(_ *model.Promotion) {}, amount: 10000},
		{name: "unknown code", mutate: func(p *model.Promotion) { p.ID = "" }, amount: 10000, wantErr: "invalid promotion code"},
		{name: "inactive", mutate: func(p *model.Promotion) { p.Active = false }, amount: 10000, wantErr: "invalid promotion code"},
		{name: "not started", mutate: func(p *model.Promotion) { p.StartsAt = now.Add(time.Minute) }, amount: 10000, wantErr: "promotion has not started yet"},
		{name: "expired", mutate: func(p *model.Promotion) { p.EndsAt = now.Add(-time.Minute) }, amount: 10000, wantErr: "promotion has expired"},
		{name: "other hotel", mutate: func(p *model.Promotion) { p.HotelID = &otherHotel }, amount: 10000, wantErr: "promotion is not valid for this hotel"},
		{name: "same hotel", mutate: func(p *model.Promotion) { p.HotelID = &hotelID }, amount: 10000},
		{name: "below minimum", mutate: func(_ *model.Promotion) {}, amount: 4999, wantErr: "order amount is below the promotion minimum"},
		{name: "exhausted", mutate: func(p *model.Promotion) { p.UsedCount = 3 }, amount: 10000, wantErr: "promotion usage limit reached"},
		{name: "unlimited", mutate: func(p *model.Promotion) { p.MaxUses = 0; p.UsedCount = 99 }, amount: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promotion := activePromotion(now)
			tt.mutate(&promotion)

			err := service.Check(promotion, hotelID, tt.amount, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestPromotionService_Create(t *testing.T) {
	valid := dto.CreatePromotionRequest{
		Code:          "summer",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 15,
		StartsAt:      "2026-06-01T00:00:00Z",
		EndsAt:        "2026-09-01T00:00:00Z",
	}

	tests := []struct {
		name      string
		req       func() dto.CreatePromotionRequest
		setupMock func(repo *promotionMocks.MockPromotion)
		wantCode  int
	}{
		{
			name: "success",
			req:  func() dto.CreatePromotionRequest { return valid },
			setupMock: func(repo *promotionMocks.MockPromotion) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p model.Promotion) error {
					assert.Equal(t, "SUMMER", p.Code)

					return nil
				})
			},
		},
		{
			name: "percentage above 100",
			req: func() dto.CreatePromotionRequest {
				req := valid
				req.DiscountValue = 120

				return req
			},
			setupMock: func(_ *promotionMocks.MockPromotion) {},
			wantCode:  400,
		},
		{
			name: "window reversed",
			req: func() dto.CreatePromotionRequest {
				req := valid
				req.StartsAt, req.EndsAt = req.EndsAt, req.StartsAt

				return req
			},
			setupMock: func(_ *promotionMocks.MockPromotion) {},
			wantCode:  400,
		},
		{
			name: "duplicate code",
			req:  func() dto.CreatePromotionRequest { return valid },
			setupMock: func(repo *promotionMocks.MockPromotion) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(adminContext(), tt.req())
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "SUMMER", res.Code)
		})
	}
}

func TestPromotionService_Validate(t *testing.T) {
	t.Run("percentage discount", func(t *testing.T) {
		repo, svc := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activePromotion(time.Now()), nil)

		res, err := svc.Validate(context.Background(), dto.ValidatePromotionRequest{Code: "summer", Amount: 20000})

		assert.NoError(t, err)
		assert.Equal(t, int64(2000), res.Discount)
		assert.Equal(t, int64(18000), res.Total)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo, svc := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Promotion{}, nil)

		_, err := svc.Validate(context.Background(), dto.ValidatePromotionRequest{Code: "nope", Amount: 20000})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		repo, svc := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Promotion{}, errors.New("db down"))

		_, err := svc.Validate(context.Background(), dto.ValidatePromotionRequest{Code: "summer", Amount: 20000})

		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestPromotionService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		_, svc := newService(t)

		err := svc.Update(adminContext(), dto.UpdatePromotionRequest{}, "promo-1")

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("ends before current start", func(t *testing.T) {
		repo, svc := newService(t)
		current := activePromotion(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := svc.Update(adminContext(), dto.UpdatePromotionRequest{EndsAt: "2026-01-01T00:00:00Z"}, "promo-1")

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("deactivate", func(t *testing.T) {
		repo, svc := newService(t)
		active := false
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activePromotion(time.Now()), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, &active, fields[model.FieldActive])

			return nil
		})

		err := svc.Update(adminContext(), dto.UpdatePromotionRequest{Active: &active}, "promo-1")

		assert.NoError(t, err)
	})

	t.Run("missing promotion", func(t *testing.T) {
		repo, svc := newService(t)
		active := true
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Promotion{}, nil)

		err := svc.Update(adminContext(), dto.UpdatePromotionRequest{Active: &active}, "promo-1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
