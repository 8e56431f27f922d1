// internal/domain/user/service.go
package user

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
	"github.com/your-org/ecart-storefront/internal/pkg/auth"
)

// DefaultCollection is the remote collection holding accounts
const DefaultCollection = "users"

// Service handles account business logic
type Service struct {
	users     *remote.Collection
	passwords *auth.PasswordManager
	validate  *validator.Validate
	logger    logrus.FieldLogger
}

// NewService creates a new user service
func NewService(store remote.Store, collection string, passwords *auth.PasswordManager, logger logrus.FieldLogger) *Service {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Service{
		users:     remote.NewCollection(store, collection),
		passwords: passwords,
		validate:  newValidator(),
		logger:    logger.WithFields(logrus.Fields{"component": "user", "collection": collection}),
	}
}

func (s *Service) listAll(ctx context.Context) ([]User, error) {
	users, err := remote.DecodeAll(ctx, s.users,
		remote.JSONDecoder(func(u *User, id string) { u.ID = id }),
		func(rec remote.Record, err error) {
			s.logger.WithError(err).WithField("record_id", rec.ID).Warn("Skipping malformed user")
		})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users")
		return nil, err
	}
	return users, nil
}

// conflicts reports whether any user other than skipID shares the username,
// email or mobile
func conflicts(users []User, skipID, username, email, mobile string) bool {
	for _, u := range users {
		if u.ID == skipID {
			continue
		}
		if (username != "" && u.Username == username) ||
			(email != "" && strings.EqualFold(u.Email, email)) ||
			(mobile != "" && u.Mobile == mobile) {
			return true
		}
	}
	return false
}

// Signup validates the request, checks uniqueness with a full scan and
// creates the account with a hashed password
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	users, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	if conflicts(users, "", req.Username, req.Email, req.Mobile) {
		return nil, apperr.Validation(msgUserExists)
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Validation(msgShortPassword)
	}

	u := User{
		Username:  req.Username,
		Email:     req.Email,
		Mobile:    req.Mobile,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	rec, err := s.users.Create(ctx, u)
	if err != nil {
		s.logger.WithError(err).WithField("username", u.Username).Error("Failed to create user")
		return nil, err
	}
	u.ID = rec.ID

	s.logger.WithField("username", u.Username).Info("User signed up")
	return &u, nil
}

// Authenticate finds the user whose username, mobile or email equals
// identifier and whose password matches
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperr.Validation(msgFillAllFields)
	}

	users, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username != identifier && u.Mobile != identifier && u.Email != identifier {
			continue
		}
		if s.passwords.VerifyPassword(password, u.Password) {
			return &u, nil
		}
	}

	s.logger.WithField("identifier", identifier).Info("Login rejected")
	return nil, apperr.AuthRequired(msgInvalidLogin)
}

// FindByUsername returns the account for username
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	users, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperr.Validation(msgUserNotFound)
}

// UpdateProfile patches the non-empty fields of req onto the user's record
func (s *Service) UpdateProfile(ctx context.Context, username string, req UpdateProfileRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	users, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	var current *User
	for i := range users {
		if users[i].Username == username {
			current = &users[i]
			break
		}
	}
	if current == nil {
		return nil, apperr.Validation(msgUserNotFound)
	}

	updated := *current
	patch := map[string]any{}
	set := func(field string, dst *string, value string) {
		if value != "" && value != *dst {
			*dst = value
			patch[field] = value
		}
	}
	set("firstName", &updated.FirstName, req.FirstName)
	set("lastName", &updated.LastName, req.LastName)
	set("mobile", &updated.Mobile, req.Mobile)
	set("email", &updated.Email, req.Email)
	set("username", &updated.Username, req.Username)
	set("avatar", &updated.Avatar, req.Avatar)

	if conflicts(users, current.ID, stringField(patch, "username"), stringField(patch, "email"), stringField(patch, "mobile")) {
		return nil, apperr.Validation(msgUserExists)
	}

	if req.Password != "" {
		hash, err := s.passwords.HashPassword(req.Password)
		if err != nil {
			return nil, apperr.Validation(msgShortPassword)
		}
		updated.Password = hash
		patch["password"] = hash
	}

	if len(patch) == 0 {
		return &updated, nil
	}
	if err := s.users.Patch(ctx, current.ID, patch); err != nil {
		s.logger.WithError(err).WithField("username", username).Error("Failed to update profile")
		return nil, err
	}

	s.logger.WithField("username", updated.Username).Info("Profile updated")
	return &updated, nil
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

// Delete removes the user's account
func (s *Service) Delete(ctx context.Context, username string) error {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		s.logger.WithError(err).WithField("username", username).Error("Failed to delete user")
		return err
	}
	s.logger.WithField("username", username).Info("User deleted")
	return nil
}

// MigratePasswords hashes every plaintext password in place and returns the
// number of records rewritten
func (s *Service) MigratePasswords(ctx context.Context) (int, error) {
	users, err := s.listAll(ctx)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, u := range users {
		if u.Password == "" || auth.IsHashed(u.Password) {
			continue
		}
		// legacy passwords may be shorter than the current minimum
		hash, err := s.passwords.HashLegacy(u.Password)
		if err != nil {
			return migrated, err
		}
		if err := s.users.Patch(ctx, u.ID, map[string]any{"password": hash}); err != nil {
			return migrated, err
		}
		migrated++
		s.logger.WithField("username", u.Username).Info("Password hashed")
	}
	return migrated, nil
}
