package model

import "time"

// User is a registered account. Password holds the bcrypt hash, never the
// plain text.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password    string    `gorm:"size:120;not null" json:"-"`
	DisplayName string    `gorm:"size:120" json:"display_name"`
	AvatarURL   string    `gorm:"size:500" json:"avatar_url,omitempty"`
	Bio         string    `gorm:"size:1000" json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for users.
func (User) TableName() string {
	return "users"
}

// UserResponse is the public view of a user, without credential fields.
type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Bio:         u.Bio,
	}
}

// UpdateUserPayload carries a partial profile update.
type UpdateUserPayload struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}
