package services

import (
	"database/sql"
	"errors"
	"fmt"

	"procurement/internal/domain"
	"procurement/internal/mail"
	"procurement/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users  *repos.UserRepo
	Mailer mail.Mailer
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Company   string
	Position  string
	Type      string
}

func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	if _, err := s.Users.ByEmail(in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Position:  in.Position,
		Hash:      string(hash),
		Type:      in.Type,
	}
	if err := s.Users.Create(u); err != nil {
		// unique index on email is the source of truth under races
		if repos.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Mailer != nil {
		_ = s.Mailer.Send(u.Email, "Registration confirmed",
			fmt.Sprintf("Welcome, %s! Your account has been created.", u.Email))
	}
	return u, nil
}

// Login verifies credentials and returns the user's bearer token, issuing
// one on first login and reusing it afterwards.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	token, err := s.Users.Token(u.ID)
	if err == sql.ErrNoRows {
		token = uuid.NewString()
		err = s.Users.BindToken(token, u.ID)
	}
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Logout(token string) error {
	return s.Users.RevokeToken(token)
}

func (s *AuthService) CurrentUser(token string) (*domain.User, error) {
	return s.Users.TokenUser(token)
}

// UpdateProfile applies a partial profile update; nil fields keep their
// current value. Email and role stay fixed.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Company   *string
	Position  *string
}

func (s *AuthService) UpdateProfile(u *domain.User, upd ProfileUpdate) (*domain.User, error) {
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Company != nil {
		u.Company = *upd.Company
	}
	if upd.Position != nil {
		u.Position = *upd.Position
	}
	if err := s.Users.UpdateProfile(u); err != nil {
		return nil, err
	}
	return u, nil
}
