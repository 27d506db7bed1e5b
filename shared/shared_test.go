package shared_test

import (
	"context"
	"strings"
	"testing"

	"daybooker/shared"
	"daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	"daybooker/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))

	active := shared.ConvertStringToBool("true")
	require.NotNil(t, active)
	assert.True(t, *active)

	inactive := shared.ConvertStringToBool("0")
	require.NotNil(t, inactive)
	assert.False(t, *inactive)
}

func TestConvertStringToInt(t *testing.T) {
	rooms, err := shared.ConvertStringToInt(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, rooms)

	amount, err := shared.ConvertStringToInt64("125000")
	require.NoError(t, err)
	assert.Equal(t, int64(125000), amount)

	_, err = shared.ConvertStringToInt("three")
	assert.Error(t, err)
}

func TestUserFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "partner-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RolePartner)

	id, role := shared.UserFromContext(ctx)
	assert.Equal(t, "partner-1", id)
	assert.Equal(t, constant.RolePartner, role)
	assert.False(t, shared.IsAdmin(ctx))

	admin := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)
	assert.True(t, shared.IsAdmin(admin))

	id, role = shared.UserFromContext(context.Background())
	assert.Empty(t, id)
	assert.Empty(t, role)
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 1, shared.CalculateTotalPage(10, 10))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name       string  `db:"name"`
		TotalRooms int     `db:"total_rooms"`
		BasePrice  *int64  `db:"base_price"`
		Active     *bool   `db:"active"`
		Ignored    string  `db:"-"`
		Untagged   string
		Rating     float64 `db:"rating"`
	}

	inactive := false
	fields := shared.TransformFields(update{Name: "Deluxe", Active: &inactive, Ignored: "x", Untagged: "y"}, "partner-1")

	assert.Equal(t, "Deluxe", fields["name"])
	assert.Equal(t, &inactive, fields["active"])
	assert.Equal(t, "partner-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, "total_rooms")
	assert.NotContains(t, fields, "base_price")
	assert.NotContains(t, fields, "rating")
	assert.NotContains(t, fields, "-")
	assert.Len(t, fields, 4)
}

func TestFilterByFields(t *testing.T) {
	group := shared.FilterByFields("room_types", map[string]any{"id": "rt-1", "hotel_id": "h-1"})

	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	require.Len(t, group.Filters, 2)
	assert.Equal(t, dto.Filter{Field: "hotel_id", Value: "h-1", Operator: dto.FilterOperatorEq, Table: "room_types"}, group.Filters[0])
	assert.Equal(t, dto.Filter{Field: "id", Value: "rt-1", Operator: dto.FilterOperatorEq, Table: "room_types"}, group.Filters[1])

	byID := shared.FilterByID("b-1", "id", "bookings")
	assert.Equal(t, []any{dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq, Table: "bookings"}}, byID.Filters)
}

func TestBuildFileName(t *testing.T) {
	name := shared.BuildFileName("Lobby.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.Len(t, name, 36+len(".jpg"))

	assert.NotEqual(t, shared.BuildFileName("a.png"), shared.BuildFileName("a.png"))
	assert.Len(t, shared.BuildFileName("noext"), 36)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "hotel:get", shared.BuildCacheKey("hotel:get"))
	assert.Equal(t, "hotel:get:h-1", shared.BuildCacheKey("hotel:get", "h-1"))
	assert.Equal(t, "availability:calendar:h-1:2025-06", shared.BuildCacheKey("availability:calendar", "h-1", "2025-06"))

	params := dto.QueryParams{Page: 1, Limit: 10}
	city := shared.FilterByID("Lisbon", "city", "hotels")

	first := shared.BuildCacheKeyWithQuery("hotel:gets", params, city)
	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("hotel:gets", params, city))
	assert.True(t, strings.HasPrefix(first, "hotel:gets:"))

	other := shared.BuildCacheKeyWithQuery("hotel:gets", dto.QueryParams{Page: 2, Limit: 10}, city)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "hotel:gets"+constant.Asterix).Return(nil)

	shared.InvalidateCaches(context.Background(), redisCache, "hotel:gets")
}
