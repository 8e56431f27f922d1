// internal/domain/storefront/account.go
package storefront

import (
	"context"

	"github.com/your-org/ecart-storefront/internal/domain/user"
)

// Signup creates the account and logs the session into it
func (s *Shopper) Signup(ctx context.Context, req user.SignupRequest) (*user.Profile, error) {
	u, err := s.users.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Session.Login(ctx, u.Username, u.Avatar); err != nil {
		return nil, err
	}
	profile := u.Profile()
	return &profile, nil
}

// Login authenticates identifier and logs the session in
func (s *Shopper) Login(ctx context.Context, identifier, password string) (*user.Profile, error) {
	u, err := s.users.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if err := s.Session.Login(ctx, u.Username, u.Avatar); err != nil {
		return nil, err
	}
	profile := u.Profile()
	return &profile, nil
}

// Logout clears the session
func (s *Shopper) Logout(ctx context.Context) error {
	return s.Session.Logout(ctx)
}

// Profile returns the current user's profile
func (s *Shopper) Profile(ctx context.Context) (*user.Profile, error) {
	username, err := s.Session.RequireUserTo("view your profile")
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := u.Profile()
	return &profile, nil
}

// UpdateProfile edits the current user's profile; a renamed account keeps
// the session logged in under its new username
func (s *Shopper) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (*user.Profile, error) {
	username, err := s.Session.RequireUserTo("edit your profile")
	if err != nil {
		return nil, err
	}
	u, err := s.users.UpdateProfile(ctx, username, req)
	if err != nil {
		return nil, err
	}
	state := s.Session.State()
	if u.Username != username || u.Avatar != state.Avatar {
		if err := s.Session.Login(ctx, u.Username, u.Avatar); err != nil {
			return nil, err
		}
	}
	profile := u.Profile()
	return &profile, nil
}

// DeleteAccount removes the current user's account and clears the session
func (s *Shopper) DeleteAccount(ctx context.Context) error {
	username, err := s.Session.RequireUserTo("delete your account")
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	return s.Session.Logout(ctx)
}
