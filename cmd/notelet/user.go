package main

import (
	"net/http"
	"net/mail"
	"slices"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/calebns/notelet/lib/apperr"
	"github.com/calebns/notelet/types"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func getUserByID(db *gorm.DB, id uint) (types.User, error) {
	var user types.User
	err := db.First(&user, "id = ?", id).Error

	return user, errors.Wrap(err, "Finding user")
}

func userExists(email string, db *gorm.DB) bool {
	var user types.User
	err := db.First(&user, "email = ?", email).Error

	return err != gorm.ErrRecordNotFound
}

func signUpWithEmailAndPassword(db *gorm.DB, cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		parsedEmail, err := mail.ParseAddress(req.Email)
		if err != nil {
			return httpError(errors.Wrap(apperr.ErrValidation, "invalid email address"))
		}
		email := parsedEmail.Address

		if len(req.Password) < 8 {
			return httpError(errors.Wrap(apperr.ErrValidation, "password must be at least 8 characters"))
		}

		if len(cfg.AllowSignupEmails) > 0 && !slices.Contains(cfg.AllowSignupEmails, email) {
			return httpError(errors.Wrap(apperr.ErrValidation, "email is not allowed to sign up"))
		}

		if userExists(email, db) {
			return httpError(errors.Wrap(apperr.ErrValidation, "already registered"))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			return errors.Wrap(err, "hashing sign up password")
		}

		// First user to register becomes the admin.
		var count int64
		if err := db.Model(&types.User{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "counting users")
		}
		role := "user"
		if count == 0 {
			role = "admin"
		}

		user := types.User{
			Email:     email,
			Password:  string(hash),
			Role:      role,
			CreatedAt: time.Now(),
		}

		if err := db.Create(&user).Error; err != nil {
			return httpError(errors.Wrapf(apperr.ErrStoreWrite, "creating user: %v", err))
		}

		return c.NoContent(http.StatusCreated)
	}
}

func signInWithEmailAndPassword(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		if _, err := mail.ParseAddress(req.Email); err != nil {
			return httpError(errors.Wrap(apperr.ErrValidation, "invalid email address"))
		}

		var user types.User
		db.First(&user, "email = ?", req.Email)
		if compareErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); compareErr != nil {
			return httpError(errors.Wrap(apperr.ErrUnauthorized, "invalid email or password"))
		}

		sess, _ := session.Get(SessionKey, c)
		sess.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   3600 * 24 * 365,
			HttpOnly: true,
		}

		sess.Values[SessionUserIDKey] = user.ID

		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.NoContent(http.StatusOK)
	}
}

func signOut() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := session.Get(SessionKey, c)
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.NoContent(http.StatusOK)
	}
}
