package shop

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminVerifier decides whether a username/password pair grants the admin flag.
type AdminVerifier interface {
	Verify(username, password string) bool
}

// StaticAdmin is a single fixed credential pair.
type StaticAdmin struct {
	Username string
	Password string
}

func (a StaticAdmin) Verify(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password))
	return u&p == 1
}

type Auth struct {
	Users UserStore
	Admin AdminVerifier
	Cost  int // bcrypt cost, bcrypt.DefaultCost when zero
}

func (a *Auth) Signup(ctx context.Context, form SignupForm) (User, error) {
	form.normalize()
	if err := check(&form); err != nil {
		return User{}, err
	}
	cost := a.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	u := User{Name: form.Name, Email: form.Email, PasswordHash: string(hash), Address: form.Address}
	if err := a.Users.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login records the user's identity in the session. Nothing is written on failure.
func (a *Auth) Login(ctx context.Context, sess Session, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrAuth
	}
	u, err := a.Users.ByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrAuth
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrAuth
	}
	if err := sess.SetJSON(ctx, SessionUserEmail, u.Email); err != nil {
		return User{}, err
	}
	if err := sess.SetJSON(ctx, SessionUserName, u.Name); err != nil {
		return User{}, err
	}
	return u, nil
}

// Logout forgets who the visitor is; cart and wishlist stay.
func (a *Auth) Logout(ctx context.Context, sess Session) error {
	return sess.Delete(ctx, SessionUserEmail, SessionUserName)
}

// CurrentUser returns the logged-in email and name, empty when anonymous.
func (a *Auth) CurrentUser(ctx context.Context, sess Session) (email, name string, err error) {
	if _, err = sess.GetJSON(ctx, SessionUserEmail, &email); err != nil {
		return "", "", err
	}
	if _, err = sess.GetJSON(ctx, SessionUserName, &name); err != nil {
		return "", "", err
	}
	return email, name, nil
}

func (a *Auth) AdminLogin(ctx context.Context, sess Session, username, password string) error {
	if a.Admin == nil || !a.Admin.Verify(username, password) {
		return ErrAuth
	}
	return sess.SetJSON(ctx, SessionAdmin, true)
}

func (a *Auth) AdminLogout(ctx context.Context, sess Session) error {
	return sess.Delete(ctx, SessionAdmin)
}

func (a *Auth) IsAdmin(ctx context.Context, sess Session) (bool, error) {
	var ok bool
	if _, err := sess.GetJSON(ctx, SessionAdmin, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
