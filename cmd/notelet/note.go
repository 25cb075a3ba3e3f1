package main

import (
	errs "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/calebns/notelet/lib/apperr"
	"github.com/calebns/notelet/lib/noteservice"
	"github.com/calebns/notelet/types"
)

// httpError maps the error taxonomy onto status codes. Anything outside the
// taxonomy falls through to echo's default 500 handling.
func httpError(err error) error {
	switch {
	case errs.Is(err, apperr.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errs.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errs.Is(err, apperr.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errs.Is(err, apperr.ErrSummaryGeneration):
		return echo.NewHTTPError(http.StatusBadGateway, "summary generation failed")
	case errs.Is(err, apperr.ErrStoreWrite):
		return echo.NewHTTPError(http.StatusInternalServerError, "store write failed")
	}
	return err
}

// requireUser resolves the session user or fails with the unauthorized
// taxonomy error. Every note and summary handler re-authenticates this way.
func requireUser(c echo.Context) (types.User, error) {
	user, ok := GetSessionUser(c)
	if !ok {
		return types.User{}, errors.Wrap(apperr.ErrUnauthorized, "no session user")
	}
	return user, nil
}

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Body    *string `json:"body"`
	Summary *string `json:"summary"`
}

func listNotes(notes *noteservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		ret, err := notes.List(c.Request().Context(), user.ID)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, ret)
	}
}

func getNote(notes *noteservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		note, err := notes.Get(c.Request().Context(), c.Param("id"), user.ID)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, note)
	}
}

func createNote(notes *noteservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		var req createNoteRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		note, err := notes.Create(c.Request().Context(), user.ID, req.Title, req.Body)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusCreated, note)
	}
}

func updateNote(notes *noteservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		var req updateNoteRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		note, err := notes.Update(c.Request().Context(), c.Param("id"), user.ID, noteservice.Patch{
			Title:   req.Title,
			Body:    req.Body,
			Summary: req.Summary,
		})
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, note)
	}
}

func deleteNote(notes *noteservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		if err := notes.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
			return httpError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
