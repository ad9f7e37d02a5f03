package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/phenrril/repairshop/internal/domain"
)

type AuthUC struct {
	Staff domain.StaffRepo
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Login checks an email+password pair against the staff table. Failures are
// deliberately coarse: a bad email format gets its own message, everything
// else about the pair collapses into ErrWrongCredentials.
func (uc *AuthUC) Login(ctx context.Context, email, password string) (*domain.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	st, err := uc.Staff.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrWrongCredentials
	}
	return st, nil
}

// LookupByEmail backs the OAuth callback: a Google identity only signs in
// when it matches a registered staff account.
func (uc *AuthUC) LookupByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	st, err := uc.Staff.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, err
	}
	return st, nil
}

func (uc *AuthUC) Register(ctx context.Context, email, name, password string) (*domain.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, errors.New("password too short")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	st := &domain.Staff{Email: email, Name: name, PasswordHash: string(hash)}
	if err := uc.Staff.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
