package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/N2Core/N2Identity/internal/credential"
	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/token"
)

// CreateUser validates and persists a new user with the given password.
// Normalized fields, security stamp and password hash are set on user.
func (m *Manager) CreateUser(ctx context.Context, user *models.User, password string) (Result, error) {
	if user == nil {
		return badRequest("User is required"), nil
	}

	if user.UserName == "" {
		return badRequest("User name is required"), nil
	}

	if password == "" {
		return badRequest("Password is required"), nil
	}

	if err := m.validate.Var(user.Email, "required,email"); err != nil {
		return badRequest(fmt.Sprintf("Invalid email address '%s'", user.Email)), nil
	}

	phone, valid := m.normalizePhone(user.PhoneNumber)
	if !valid {
		return badRequest(fmt.Sprintf("Invalid phone number '%s'", user.PhoneNumber)), nil
	}

	user.PhoneNumber = phone

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	normalizedName := Normalize(user.UserName)
	normalizedEmail := Normalize(user.Email)

	existing, err := lookup(s.UserByNormalizedName(ctx, normalizedName))
	if err != nil {
		return Result{}, err
	}

	if existing != nil {
		return conflict(fmt.Sprintf("User '%s' already exists", user.UserName)), nil
	}

	existing, err = lookup(s.UserByNormalizedEmail(ctx, normalizedEmail))
	if err != nil {
		return Result{}, err
	}

	if existing != nil {
		return conflict(fmt.Sprintf("Email '%s' is already taken", user.Email)), nil
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	user.NormalizedUserName = normalizedName
	user.NormalizedEmail = normalizedEmail
	user.EmailConfirmed = false

	if err = m.rehash(user, password); err != nil {
		return Result{}, err
	}

	uow := s.Begin()
	uow.AddUser(user)

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		m.record(ctx, tableUsers, user.ID.String(), fmt.Sprintf("User '%s' created", user.UserName))
	}

	return res, err
}

// rehash rotates the security stamp and stores a new password hash.
func (m *Manager) rehash(user *models.User, password string) error {
	stamp, err := credential.NewSecurityStamp()
	if err != nil {
		return err //nolint:wrapcheck
	}

	hash, err := m.hasher.Hash(user.NormalizedUserName, stamp, password)
	if err != nil {
		return err //nolint:wrapcheck
	}

	user.SecurityStamp = stamp
	user.PasswordHash = hash

	return nil
}

func rotateStamp(user *models.User) error {
	stamp, err := credential.NewSecurityStamp()
	if err != nil {
		return err //nolint:wrapcheck
	}

	user.SecurityStamp = stamp

	return nil
}

// SetUserName stages a user name change and rotates the security stamp.
// Since the stamp is part of the password hash, a new password must be staged
// with SetPassword before the user can sign in again.
func (m *Manager) SetUserName(ctx context.Context, user *models.User, userName string) (Result, error) {
	if user == nil || userName == "" {
		return badRequest("User name is required"), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	normalized := Normalize(userName)

	owner, err := lookup(s.UserByNormalizedName(ctx, normalized))
	if err != nil {
		return Result{}, err
	}

	if owner != nil && owner.ID != user.ID {
		return conflict(fmt.Sprintf("User '%s' already exists", userName)), nil
	}

	if err = rotateStamp(user); err != nil {
		return Result{}, err
	}

	user.UserName = userName
	user.NormalizedUserName = normalized

	return ok("User name changed"), nil
}

// SetEmail stages an email change, clears the confirmation flag and rotates the security stamp.
func (m *Manager) SetEmail(ctx context.Context, user *models.User, email string) (Result, error) {
	if user == nil {
		return badRequest("User is required"), nil
	}

	if err := m.validate.Var(email, "required,email"); err != nil {
		return badRequest(fmt.Sprintf("Invalid email address '%s'", email)), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	normalized := Normalize(email)

	owner, err := lookup(s.UserByNormalizedEmail(ctx, normalized))
	if err != nil {
		return Result{}, err
	}

	if owner != nil && owner.ID != user.ID {
		return conflict(fmt.Sprintf("Email '%s' is already taken", email)), nil
	}

	if err = rotateStamp(user); err != nil {
		return Result{}, err
	}

	user.Email = email
	user.NormalizedEmail = normalized
	user.EmailConfirmed = false

	return ok("Email changed"), nil
}

// SetPassword stages a new password hash under a fresh security stamp.
func (m *Manager) SetPassword(_ context.Context, user *models.User, password string) (Result, error) {
	if user == nil || password == "" {
		return badRequest("Password is required"), nil
	}

	if user.NormalizedUserName == "" {
		user.NormalizedUserName = Normalize(user.UserName)
	}

	if err := m.rehash(user, password); err != nil {
		return Result{}, err
	}

	return ok("Password changed"), nil
}

// Update persists the user including all staged changes.
func (m *Manager) Update(ctx context.Context, user *models.User) (Result, error) {
	if user == nil || user.ID == uuid.Nil {
		return badRequest("User is required"), nil
	}

	phone, valid := m.normalizePhone(user.PhoneNumber)
	if !valid {
		return badRequest(fmt.Sprintf("Invalid phone number '%s'", user.PhoneNumber)), nil
	}

	user.PhoneNumber = phone

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	uow := s.Begin()
	uow.UpdateUser(user)

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		m.record(ctx, tableUsers, user.ID.String(), fmt.Sprintf("User '%s' updated", user.UserName))
	}

	return res, err
}

// GenerateEmailConfirmationToken mints a confirmation token with the codec's validity.
func (m *Manager) GenerateEmailConfirmationToken(user *models.User) (string, error) {
	return m.codec.Mint(user, 0) //nolint:wrapcheck
}

// ConfirmEmail verifies token against the stored user and marks the email as confirmed.
// Lockout tracking is enabled for confirmed accounts.
func (m *Manager) ConfirmEmail(ctx context.Context, user *models.User, tok string) (Result, error) {
	if user == nil {
		return badRequest("User is required"), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	canonical, err := lookup(s.UserByID(ctx, user.ID))
	if err != nil {
		return Result{}, err
	}

	if canonical == nil || canonical.UserName != user.UserName || canonical.Email != user.Email {
		return notFound(msgNotFound), nil
	}

	switch m.codec.Verify(canonical, tok) {
	case token.Ok:
	case token.Expired:
		return timeout("Token expired"), nil
	default:
		return badRequest("Invalid token"), nil
	}

	canonical.EmailConfirmed = true
	canonical.LockoutEnabled = true
	uow := s.Begin()
	uow.UpdateUser(canonical)

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		user.EmailConfirmed = true
		user.LockoutEnabled = true
		m.record(ctx, tableUsers, user.ID.String(), fmt.Sprintf("Email '%s' confirmed", canonical.Email))
	}

	return res, err
}

// Validate checks password against the stored record of user.
func (m *Manager) Validate(ctx context.Context, user *models.User, password string) (Result, error) {
	if user == nil {
		return notFound(msgNotFound), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	canonical, err := lookup(s.UserByID(ctx, user.ID))
	if err != nil {
		return Result{}, err
	}

	if canonical == nil {
		return notFound(msgNotFound), nil
	}

	if !m.hasher.Verify(canonical, password) {
		return unauthorized("Not accepted"), nil
	}

	return ok("Accepted"), nil
}

// CanSignIn reports whether the user exists and is not locked out.
func (m *Manager) CanSignIn(ctx context.Context, userID uuid.UUID) (bool, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return false, err
	}

	user, err := lookup(s.UserByID(ctx, userID))
	if err != nil || user == nil {
		return false, err
	}

	return user.CanSignIn(m.now()), nil
}

// Delete removes the user together with its role assignments.
func (m *Manager) Delete(ctx context.Context, user *models.User) (Result, error) {
	if user == nil {
		return notFound(msgNotFound), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	canonical, err := lookup(s.UserByID(ctx, user.ID))
	if err != nil {
		return Result{}, err
	}

	if canonical == nil {
		return notFound(msgNotFound), nil
	}

	uow := s.Begin()
	uow.RemoveUser(canonical)

	res, err := m.commit(ctx, uow)
	if err != nil || !res.IsSuccess() {
		return res, err
	}

	m.record(ctx, tableUsers, canonical.ID.String(), fmt.Sprintf("User '%s' removed", canonical.UserName))

	return removed(), nil
}
