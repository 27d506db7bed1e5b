package dto

import (
	"mime/multipart"
	"strings"

	"daybooker/internal/domains/hotel/model"
	roomTypeDto "daybooker/internal/domains/roomtype/model/dto"
	timeSlotDto "daybooker/internal/domains/timeslot/model/dto"
	"daybooker/shared"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Hotels that can host at least the requested guests on the date, counting missing
// availability rows as full inventory.
const availableOnDateQuery = `EXISTS (
	SELECT 1 FROM room_types rt
	JOIN time_slots ts ON ts.hotel_id = rt.hotel_id AND ts.active
	LEFT JOIN availabilities a ON a.room_type_id = rt.id AND a.time_slot_id = ts.id AND a.date = :search_date
	WHERE rt.hotel_id = hotels.id AND rt.active AND rt.capacity >= :search_guests
	AND COALESCE(a.available_rooms, rt.total_rooms) > 0 AND NOT COALESCE(a.is_closed, FALSE))`

type SearchHotelRequest struct {
	City     string `json:"city"      validate:"omitempty,max=100"`
	Name     string `json:"name"      validate:"omitempty,max=100"`
	MinStars int    `json:"min_stars" validate:"omitempty,min=0,max=5"`
	Amenity  string `json:"amenity"   validate:"omitempty,max=50"`
	Date     string `json:"date"      validate:"omitempty,day"`
	Guests   int    `json:"guests"    validate:"omitempty,min=1"`
}

// ToFilter restricts results to approved hotels matching every given criterion.
func (s *SearchHotelRequest) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusApproved, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if s.City != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldCity, Value: s.City, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if s.Name != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldName, Value: s.Name, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if s.MinStars > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldStars, Value: s.MinStars, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if s.Amenity != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value:    ":search_amenity = ANY(hotels.amenities)",
			Args:     map[string]any{"search_amenity": strings.ToLower(s.Amenity)},
		})
	}

	if s.Date != "" {
		guests := s.Guests
		if guests < 1 {
			guests = 1
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value:    availableOnDateQuery,
			Args:     map[string]any{"search_date": s.Date, "search_guests": guests},
		})
	}

	return filter
}

type CreateHotelRequest struct {
	Name        string   `json:"name"        validate:"required,max=150"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Address     string   `json:"address"     validate:"required,max=255"`
	City        string   `json:"city"        validate:"required,max=100"`
	Country     string   `json:"country"     validate:"required,max=100"`
	Latitude    *float64 `json:"latitude"    validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude"   validate:"omitempty,longitude"`
	Stars       int      `json:"stars"       validate:"min=0,max=5"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=50"`
}

func (c *CreateHotelRequest) ToModel(partnerID, user string) model.Hotel {
	return model.Hotel{
		ID:          uuid.NewString(),
		PartnerID:   partnerID,
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		City:        c.City,
		Country:     c.Country,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Stars:       c.Stars,
		Amenities:   NormaliseAmenities(c.Amenities),
		Images:      pq.StringArray{},
		Status:      model.StatusPending,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// NormaliseAmenities lower-cases, trims and de-duplicates amenity tags.
func NormaliseAmenities(amenities []string) pq.StringArray {
	res := pq.StringArray{}
	seen := map[string]bool{}

	for _, amenity := range amenities {
		amenity = strings.ToLower(strings.TrimSpace(amenity))
		if amenity == "" || seen[amenity] {
			continue
		}

		seen[amenity] = true
		res = append(res, amenity)
	}

	return res
}

type UpdateHotelRequest struct {
	Name        string         `db:"name"        json:"name"        validate:"omitempty,max=150"`
	Description string         `db:"description" json:"description" validate:"omitempty,max=5000"`
	Address     string         `db:"address"     json:"address"     validate:"omitempty,max=255"`
	City        string         `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Country     string         `db:"country"     json:"country"     validate:"omitempty,max=100"`
	Latitude    *float64       `db:"latitude"    json:"latitude"    validate:"omitempty,latitude"`
	Longitude   *float64       `db:"longitude"   json:"longitude"   validate:"omitempty,longitude"`
	Stars       *int           `db:"stars"       json:"stars"       validate:"omitempty,min=0,max=5"`
	Amenities   pq.StringArray `db:"amenities"   json:"amenities"   validate:"omitempty,dive,max=50"`
}

type SetStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=approved rejected suspended"`
}

type UploadPhotoRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type DeletePhotoRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type HotelResponse struct {
	ID          string   `json:"id"`
	PartnerID   string   `json:"partner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Stars       int      `json:"stars"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.PartnerID = model.PartnerID
	r.Name = model.Name
	r.Description = model.Description
	r.Address = model.Address
	r.City = model.City
	r.Country = model.Country
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.Stars = model.Stars
	r.Amenities = append([]string{}, model.Amenities...)
	r.Images = append([]string{}, model.Images...)
	r.Status = model.Status
	r.Rating = model.Rating
	r.ReviewCount = model.ReviewCount
	r.Metadata.FromModel(model.Metadata)
}

type HotelDetailResponse struct {
	HotelResponse
	RoomTypes []roomTypeDto.RoomTypeResponse `json:"room_types"`
	TimeSlots []timeSlotDto.TimeSlotResponse `json:"time_slots"`
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
