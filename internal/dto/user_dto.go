package dto

import "github.com/sahajm/Civet/internal/model"

// UserResponseDTO is the role-projected user shape. Type is populated for
// students only; the admin projection drops the field rather than nulling it
// during generic serialization.
type UserResponseDTO struct {
	ID       uint    `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Role     string  `json:"role"`
	Type     *string `json:"type,omitempty"`
}

// ProjectUser builds the role-appropriate view of a user.
func ProjectUser(u *model.User) UserResponseDTO {
	resp := UserResponseDTO{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
	}
	if u.Role == model.RoleStudent {
		resp.Type = u.Type
	}
	return resp
}
