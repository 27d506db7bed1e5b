package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"daybooker/config"
	"daybooker/infras/otel/mocks"
	s3Mocks "daybooker/infras/s3/mocks"
	userMocks "daybooker/internal/domains/user/mocks"
	"daybooker/internal/domains/user/model"
	"daybooker/internal/domains/user/model/dto"
	"daybooker/internal/domains/user/service"
	cacheMocks "daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*userMocks.MockUser, *cacheMocks.MockRedisCache, service.User) {
	mockRepo, mockCache, _, svc := newServiceWithStorage(t)

	return mockRepo, mockCache, svc
}

func newServiceWithStorage(t *testing.T) (*userMocks.MockUser, *cacheMocks.MockRedisCache, *s3Mocks.MockS3, service.User) {
	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "daybooker"

	return mockRepo, mockCache, mockS3, service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockS3)
}

func TestUserService_GetAll(t *testing.T) {
	mockRepo, mockCache, svc := newService(t)

	users := []model.User{
		{ID: "u1", Email: "a@example.com", Role: constant.RoleClient, Metadata: gModel.NewMetadata("system", timezone.Now())},
		{ID: "u2", Email: "b@example.com", Role: constant.RolePartner, Metadata: gModel.NewMetadata("system", timezone.Now())},
	}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(users, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 1}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUserService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Email: "a@example.com"}, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "cache hit",
			setupMock: func(_ *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, dest any) error {
						res, _ := dest.(*dto.UserResponse)
						res.ID = "u1"

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, mockCache, svc := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), "u1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "u1", res.ID)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	active := false
	adminCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateUserRequest
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "deactivate user",
			id:   "u1",
			req:  dto.UpdateUserRequest{Active: &active},
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &active, fields[model.FieldActive])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "empty request",
			id:        "u1",
			req:       dto.UpdateUserRequest{},
			setupMock: func(_ *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {},
			wantCode:  400,
		},
		{
			name:      "admin cannot demote self",
			id:        "admin-1",
			req:       dto.UpdateUserRequest{Role: constant.RoleClient},
			setupMock: func(_ *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {},
			wantCode:  400,
		},
		{
			name: "user not found",
			id:   "missing",
			req:  dto.UpdateUserRequest{Role: constant.RolePartner},
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, mockCache, svc := newService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.Update(adminCtx, tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo, mockCache, svc := newService(t)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "New Name", fields[model.FieldFullName])
			assert.NotContains(t, fields, model.FieldPhone)

			return nil
		})
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{FullName: "New Name"})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestUserService_UploadAvatar(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")
	image := "data:image/png;base64,aGVsbG8="

	t.Run("replaces previous avatar", func(t *testing.T) {
		mockRepo, mockCache, mockS3, svc := newServiceWithStorage(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "u1", AvatarURL: "https://cdn.example.com/user/u1/old.png"}, nil)
		mockS3.EXPECT().UploadFileBytes(gomock.Any(), "daybooker", "user/u1", gomock.Any(), "image/png", []byte("hello")).
			DoAndReturn(func(_ context.Context, _, _, fileName, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://cdn.example.com/user/u1/" + fileName, nil
			})
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields[model.FieldAvatarURL], "https://cdn.example.com/user/u1/")

				return nil
			})
		mockS3.EXPECT().GetObjectNameFromURL("daybooker", "https://cdn.example.com/user/u1/old.png").Return("user/u1/old.png")
		mockS3.EXPECT().DeleteFile(gomock.Any(), "daybooker", constant.Empty, "user/u1/old.png").Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.UploadAvatar(ctx, dto.UploadAvatarRequest{Image: image})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.AvatarURL, "https://cdn.example.com/user/u1/"))
	})

	t.Run("rejects non data url", func(t *testing.T) {
		_, _, _, svc := newServiceWithStorage(t)

		_, err := svc.UploadAvatar(ctx, dto.UploadAvatarRequest{Image: "aGVsbG8="})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("removes upload when update fails", func(t *testing.T) {
		mockRepo, _, mockS3, svc := newServiceWithStorage(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1"}, nil)
		mockS3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/user/u1/new.png", nil)
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		mockS3.EXPECT().DeleteFile(gomock.Any(), "daybooker", "user/u1", gomock.Any()).Return(nil)

		_, err := svc.UploadAvatar(ctx, dto.UploadAvatarRequest{Image: image})

		assert.Error(t, err)
	})
}
