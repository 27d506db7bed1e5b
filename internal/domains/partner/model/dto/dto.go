package dto

import (
	"daybooker/internal/domains/partner/model"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

// NewSettings returns the default settings of a partner.
func NewSettings(partnerID, notificationEmail, user string, commissionRate float64, cancellationHours int) model.PartnerSettings {
	return model.PartnerSettings{
		ID:                    uuid.NewString(),
		PartnerID:             partnerID,
		CommissionRate:        commissionRate,
		FreeCancellationHours: cancellationHours,
		NotificationEmail:     notificationEmail,
		Metadata:              gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateSettingsRequest holds the partner editable settings. The commission
// rate is managed by admins only.
type UpdateSettingsRequest struct {
	AutoConfirm           *bool  `db:"auto_confirm"            json:"auto_confirm"            validate:"omitempty"`
	FreeCancellationHours *int   `db:"free_cancellation_hours" json:"free_cancellation_hours" validate:"omitempty,min=0,max=720"`
	NotificationEmail     string `db:"notification_email"      json:"notification_email"      validate:"omitempty,email,max=100"`
	PayoutIBAN            string `db:"payout_iban"             json:"payout_iban"             validate:"omitempty,alphanum,min=15,max=34"`
	PayoutHolder          string `db:"payout_holder"           json:"payout_holder"           validate:"omitempty,max=100"`
}

type SetCommissionRequest struct {
	CommissionRate *float64 `db:"commission_rate" json:"commission_rate" validate:"required,min=0,max=100"`
}

type SettingsResponse struct {
	PartnerID             string  `json:"partner_id"`
	CommissionRate        float64 `json:"commission_rate"`
	AutoConfirm           bool    `json:"auto_confirm"`
	FreeCancellationHours int     `json:"free_cancellation_hours"`
	NotificationEmail     string  `json:"notification_email"`
	PayoutIBAN            string  `json:"payout_iban"`
	PayoutHolder          string  `json:"payout_holder"`
	gDto.Metadata
}

func (r *SettingsResponse) FromModel(model model.PartnerSettings) {
	r.PartnerID = model.PartnerID
	r.CommissionRate = model.CommissionRate
	r.AutoConfirm = model.AutoConfirm
	r.FreeCancellationHours = model.FreeCancellationHours
	r.NotificationEmail = model.NotificationEmail
	r.PayoutIBAN = model.PayoutIBAN
	r.PayoutHolder = model.PayoutHolder
	r.Metadata.FromModel(model.Metadata)
}

type PartnerFilter struct {
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

func (p *PartnerFilter) ToFilter() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if p.Email != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: "email", Value: p.Email, Operator: gDto.FilterOperatorLike, Table: "users"})
	}

	if p.Active != nil {
		group.Filters = append(group.Filters, gDto.Filter{Field: "active", Value: *p.Active, Operator: gDto.FilterOperatorEq, Table: "users"})
	}

	return group
}

type PartnerResponse struct {
	PartnerID             string  `json:"partner_id"`
	Email                 string  `json:"email"`
	FullName              string  `json:"full_name"`
	Phone                 string  `json:"phone"`
	Active                bool    `json:"active"`
	CommissionRate        float64 `json:"commission_rate"`
	AutoConfirm           bool    `json:"auto_confirm"`
	FreeCancellationHours int     `json:"free_cancellation_hours"`
}

type GetPartnersResponse struct {
	Partners  []PartnerResponse `json:"partners"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPartnersResponse) FromModels(models []model.Partner, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Partners = make([]PartnerResponse, len(models))
	for i, mod := range models {
		r.Partners[i] = PartnerResponse{
			PartnerID:             mod.PartnerID,
			Email:                 mod.Email,
			FullName:              mod.FullName,
			Phone:                 mod.Phone,
			Active:                mod.Active,
			CommissionRate:        mod.CommissionRate,
			AutoConfirm:           mod.AutoConfirm,
			FreeCancellationHours: mod.FreeCancellationHours,
		}
	}
}
