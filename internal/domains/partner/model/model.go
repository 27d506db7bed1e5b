package model

import "daybooker/shared/model"

const (
	TableName  = "partner_settings"
	EntityName = "partner_settings"

	FieldID                    = "id"
	FieldPartnerID             = "partner_id"
	FieldCommissionRate        = "commission_rate"
	FieldAutoConfirm           = "auto_confirm"
	FieldFreeCancellationHours = "free_cancellation_hours"
	FieldNotificationEmail     = "notification_email"
	FieldPayoutIBAN            = "payout_iban"
	FieldPayoutHolder          = "payout_holder"
)

type PartnerSettings struct {
	ID                    string  `db:"id"`
	PartnerID             string  `db:"partner_id"`
	CommissionRate        float64 `db:"commission_rate"`
	AutoConfirm           bool    `db:"auto_confirm"`
	FreeCancellationHours int     `db:"free_cancellation_hours"`
	NotificationEmail     string  `db:"notification_email"`
	PayoutIBAN            string  `db:"payout_iban"`
	PayoutHolder          string  `db:"payout_holder"`
	model.Metadata
}

// Partner is a partner account joined with its settings.
type Partner struct {
	ID                    string  `db:"id"`
	Email                 string  `db:"email"                   table:"users"`
	FullName              string  `db:"full_name"               table:"users"`
	Phone                 string  `db:"phone"                   table:"users"`
	Active                bool    `db:"active"                  table:"users"`
	PartnerID             string  `db:"partner_id"`
	CommissionRate        float64 `db:"commission_rate"`
	AutoConfirm           bool    `db:"auto_confirm"`
	FreeCancellationHours int     `db:"free_cancellation_hours"`
}

func (Partner) GetJoinQuery() string {
	return "JOIN users ON users.id = partner_settings.partner_id"
}
