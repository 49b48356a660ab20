package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodRecipesWebsite/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles accounts: registration, login and profiles
type AuthService struct {
	store    *Store
	tokens   *TokenIssuer
	hashCost int
}

// NewAuthService creates a new authentication service
func NewAuthService(store *Store, tokens *TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// WithHashCost sets the bcrypt cost for new password hashes.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) error {
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = normalizeEmail(reg.Email)
	reg.Country = strings.TrimSpace(reg.Country)
	if reg.FirstName == "" || reg.LastName == "" || reg.Email == "" || reg.Country == "" || reg.Password == "" {
		return ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.store.WithTransaction(ctx, func(tx *sql.Tx) error {
		ok, err := countryExists(ctx, tx, reg.Country)
		if err != nil {
			return fmt.Errorf("check country: %w", err)
		}
		if !ok {
			return ErrUnknownCountry
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (first_name, last_name, email, country, password_hash) VALUES (?, ?, ?, ?, ?)`,
			reg.FirstName, reg.LastName, reg.Email, reg.Country, string(hash))
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var (
		user models.User
		hash string
	)
	err := s.store.DB.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, country, password_hash FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Country, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Authenticate returns the user the token was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return 0, err
	}

	var exists int
	err = s.store.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE id = ?", userID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("query user: %w", err)
	}
	if exists == 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int) (*models.Profile, error) {
	var p models.Profile
	err := s.store.DB.QueryRowContext(ctx,
		`SELECT first_name, last_name, email, country FROM users WHERE id = ?`, userID).
		Scan(&p.FirstName, &p.LastName, &p.Email, &p.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile replaces the profile fields. A non-empty NewPassword
// changes the password and requires the correct CurrentPassword.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) error {
	upd.FirstName = strings.TrimSpace(upd.FirstName)
	upd.LastName = strings.TrimSpace(upd.LastName)
	upd.Email = normalizeEmail(upd.Email)
	upd.Country = strings.TrimSpace(upd.Country)
	if upd.FirstName == "" || upd.LastName == "" || upd.Email == "" || upd.Country == "" {
		return ErrMissingFields
	}
	if upd.NewPassword != "" && upd.CurrentPassword == "" {
		return ErrCurrentPasswordRequired
	}

	return s.store.WithTransaction(ctx, func(tx *sql.Tx) error {
		var hash string
		err := tx.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE id = ?", userID).Scan(&hash)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("query user: %w", err)
		}

		ok, err := countryExists(ctx, tx, upd.Country)
		if err != nil {
			return fmt.Errorf("check country: %w", err)
		}
		if !ok {
			return ErrUnknownCountry
		}

		if upd.NewPassword != "" {
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte(upd.CurrentPassword)) != nil {
				return ErrWrongPassword
			}
			newHash, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), s.hashCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			hash = string(newHash)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET first_name = ?, last_name = ?, email = ?, country = ?, password_hash = ? WHERE id = ?`,
			upd.FirstName, upd.LastName, upd.Email, upd.Country, hash, userID)
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
}
