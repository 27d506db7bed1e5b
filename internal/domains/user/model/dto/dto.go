package dto

import (
	"time"

	"daybooker/internal/domains/user/model"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/timezone"
)

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	FullName   string  `json:"full_name"`
	Phone      string  `json:"phone"`
	AvatarURL  string  `json:"avatar_url"`
	IsVerified bool    `json:"is_verified"`
	LastLogin  *string `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.AvatarURL = model.AvatarURL
	r.IsVerified = model.IsVerified
	r.LastLogin = formatOptional(model.LastLogin)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

// UpdateUserRequest is used by admins to change a user's role or status.
type UpdateUserRequest struct {
	Role   string `db:"role"   json:"role"   validate:"omitempty,oneof=client partner admin"`
	Active *bool  `db:"active" json:"active" validate:"omitempty"`
}

type UpdateProfileRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
}

// UploadAvatarRequest carries the picture as a data URL, e.g. "data:image/png;base64,...".
type UploadAvatarRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `db:"avatar_url"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
