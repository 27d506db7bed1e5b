package dto

import (
	"encoding/json"

	"daybooker/internal/domains/activitylog/model"
	"daybooker/shared"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"
)

const (
	ActionRegister          = "user.registered"
	ActionLogin             = "user.login"
	ActionUserUpdated       = "user.updated"
	ActionHotelCreated      = "hotel.created"
	ActionHotelStatus       = "hotel.status_changed"
	ActionHotelDeleted      = "hotel.deleted"
	ActionBookingCreated    = "booking.created"
	ActionBookingCancelled  = "booking.cancelled"
	ActionBookingStatus     = "booking.status_changed"
	ActionReviewCreated     = "review.created"
	ActionCommissionUpdated = "partner.commission_updated"
	ActionPromotionCreated  = "promotion.created"
)

// Event is the payload published on the activity topic.
type Event struct {
	ID       string         `json:"id"`
	UserID   string         `json:"user_id"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id"`
	Details  map[string]any `json:"details,omitempty"`
	IP       string         `json:"ip,omitempty"`
}

func (e *Event) ToModel() (model.ActivityLog, error) {
	details := []byte("{}")

	if len(e.Details) > 0 {
		var err error

		details, err = json.Marshal(e.Details)
		if err != nil {
			return model.ActivityLog{}, err //nolint:wrapcheck
		}
	}

	user := e.UserID
	if user == "" {
		user = "system"
	}

	return model.ActivityLog{
		ID:       e.ID,
		UserID:   e.UserID,
		Action:   e.Action,
		Entity:   e.Entity,
		EntityID: e.EntityID,
		Details:  string(details),
		IP:       e.IP,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type ActivityLogResponse struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Action   string          `json:"action"`
	Entity   string          `json:"entity"`
	EntityID string          `json:"entity_id"`
	Details  json.RawMessage `json:"details"`
	IP       string          `json:"ip"`
	gDto.Metadata
}

func (r *ActivityLogResponse) FromModel(model model.ActivityLog) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Action = model.Action
	r.Entity = model.Entity
	r.EntityID = model.EntityID
	r.Details = json.RawMessage(model.Details)
	r.IP = model.IP
	r.Metadata.FromModel(model.Metadata)
}

type GetActivityLogsResponse struct {
	ActivityLogs []ActivityLogResponse `json:"activity_logs"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetActivityLogsResponse) FromModels(models []model.ActivityLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ActivityLogs = make([]ActivityLogResponse, len(models))
	for i, mod := range models {
		r.ActivityLogs[i].FromModel(mod)
	}
}
