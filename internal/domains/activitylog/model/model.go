package model

import "daybooker/shared/model"

const (
	TableName  = "activity_logs"
	EntityName = "activity_log"

	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldAction   = "action"
	FieldEntity   = "entity"
	FieldEntityID = "entity_id"
	FieldDetails  = "details"
	FieldIP       = "ip"
)

type ActivityLog struct {
	ID       string `db:"id"`
	UserID   string `db:"user_id"`
	Action   string `db:"action"`
	Entity   string `db:"entity"`
	EntityID string `db:"entity_id"`
	Details  string `db:"details"`
	IP       string `db:"ip"`
	model.Metadata
}
