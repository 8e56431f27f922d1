// internal/domain/user/entity.go
package user

// User is a storefront account. Username uniqueness is enforced by this
// service with a full scan, not by the store.
type User struct {
	ID        string `json:"-"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Avatar    string `json:"avatar,omitempty"`
}

// Profile is the user without credentials
type Profile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
}

// Profile strips the password
func (u User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		Email:     u.Email,
		Mobile:    u.Mobile,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

// SignupRequest represents signup request. Field order sets which rule is
// reported first.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Mobile    string `json:"mobile" validate:"required,mobile"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents login request; Identifier may be a username,
// mobile number or email
type LoginRequest struct {
	Identifier string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents update profile request; empty fields are
// left unchanged
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Mobile    string `json:"mobile" validate:"omitempty,mobile"`
	Email     string `json:"email" validate:"omitempty,email"`
	Username  string `json:"username"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Avatar    string `json:"avatar" validate:"omitempty,url"`
}
