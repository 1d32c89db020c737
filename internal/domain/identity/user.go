package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/runmarket/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the portal a user belongs to. Roles are mutually exclusive
// and immutable after sign-up; there is no role-change operation.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents an authenticated identity on the platform.
// It is the aggregate root for profile-related operations.
type User struct {
	shared.BaseAggregateRoot
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash   string `gorm:"type:varchar(100);not null"`
	Role           Role   `gorm:"type:varchar(20);not null;default:'customer'"`
	FullName       string `gorm:"type:varchar(200)"`
	Phone          string `gorm:"type:varchar(50)"`
	EncryptedPhone string `gorm:"type:text"`
	AvatarURL      string `gorm:"type:varchar(500)"`
	MatricNumber   string `gorm:"type:varchar(50)"`
	EmailVerified  bool   `gorm:"not null;default:false"`
	LastLoginAt    *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the given credentials and role.
func NewUser(email, password string, role Role) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be customer, vendor, or admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      string(hash),
		Role:              role,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored password hash.
func (u *User) SetPassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetFullName sets the user's display name.
func (u *User) SetFullName(name string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}
	u.FullName = strings.TrimSpace(name)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetPhone stores the raw phone number alongside its encrypted form.
// The encrypted form is what gets exposed to other parties.
func (u *User) SetPhone(raw, encrypted string) error {
	if raw != "" && len(raw) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	u.Phone = strings.TrimSpace(raw)
	u.EncryptedPhone = encrypted
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetAvatarURL sets the user's avatar image URL.
func (u *User) SetAvatarURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 500 characters")
	}
	u.AvatarURL = url
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetMatricNumber sets the student matriculation number.
func (u *User) SetMatricNumber(matric string) error {
	if matric != "" && len(matric) > 50 {
		return shared.NewDomainError("INVALID_MATRIC", "Matric number cannot exceed 50 characters")
	}
	u.MatricNumber = strings.TrimSpace(matric)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// VerifyEmail marks the user's email address as verified.
func (u *User) VerifyEmail() {
	if u.EmailVerified {
		return
	}
	u.EmailVerified = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLogin stamps the last successful sign-in time.
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsVendor reports whether the user holds the vendor role.
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("PASSWORD_TOO_SHORT", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("PASSWORD_TOO_LONG", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
