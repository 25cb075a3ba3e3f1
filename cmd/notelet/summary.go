package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calebns/notelet/lib/summarize"
)

type saveSummaryRequest struct {
	Summary string `json:"summary"`
	Text    string `json:"text"`
}

func listModels() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string][]summarize.Model{
			"data": summarize.Models(),
		})
	}
}

// generateSummary is the stateless endpoint: text in, summary out, nothing
// persisted. The editor uses it for ad-hoc previews.
func generateSummary(gen summarize.Generator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := requireUser(c); err != nil {
			return httpError(err)
		}

		var req summarize.Request
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		summary, err := gen.Generate(c.Request().Context(), req)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, map[string]string{"summary": summary})
	}
}

// ensureSummary backs the first load of the summary page: return the stored
// summary, or generate one from the current body and persist it.
func ensureSummary(orch *summarize.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		var opts summarize.Options
		if err := c.Bind(&opts); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		note, err := orch.EnsureSummary(c.Request().Context(), c.Param("id"), user.ID, opts)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, note)
	}
}

func regenerateSummary(orch *summarize.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		var opts summarize.Options
		if err := c.Bind(&opts); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		draft, err := orch.Regenerate(c.Request().Context(), c.Param("id"), user.ID, opts)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, draft)
	}
}

func saveSummary(orch *summarize.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := requireUser(c)
		if err != nil {
			return httpError(err)
		}

		var req saveSummaryRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		note, err := orch.SaveDraft(c.Request().Context(), c.Param("id"), user.ID, summarize.Draft{
			NoteID:     c.Param("id"),
			SourceText: req.Text,
			Summary:    req.Summary,
		})
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, note)
	}
}
