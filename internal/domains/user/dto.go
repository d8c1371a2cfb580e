package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.Email),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (r RefreshReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required.Error("refreshToken is required")),
	)
}

type CreateUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r CreateUserReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.Email),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72),
		),
		validation.Field(&r.Role, validation.In("", "admin", "editor").Error("role must be admin or editor")),
	)
}

type UpdateUserReq struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

func (r UpdateUserReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Length(8, 72)),
		validation.Field(&r.Role, validation.In("admin", "editor").Error("role must be admin or editor")),
		validation.Field(&r.Status, validation.In("active", "disabled").Error("status must be active or disabled")),
	)
}

type UserResp struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthResp struct {
	User         UserResp `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int64    `json:"expiresIn"`
}

func UserToResp(u *User) *UserResp {
	if u == nil {
		return nil
	}
	return &UserResp{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func UsersToResp(users []User) []UserResp {
	out := make([]UserResp, 0, len(users))
	for i := range users {
		out = append(out, *UserToResp(&users[i]))
	}
	return out
}
