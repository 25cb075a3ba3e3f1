package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/calebns/notelet/lib/noteservice"
	"github.com/calebns/notelet/lib/summarize"
	"github.com/calebns/notelet/types"

	_ "github.com/ncruces/go-sqlite3/embed"
	sqlite "github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
)

func init() {
	goli.InitLogrus(logrus.DebugLevel)
}

const SessionKey = "session"
const UserKey = "session-user"
const SessionUserIDKey = "userid"

func main() {
	err := run()
	if err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Error(errors.Wrap(err, "Failed to load .env"))
	}

	tz := os.Getenv("TZ")
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return errors.Wrap(err, "failed to load timezone")
		}
		time.Local = loc
	}

	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "Loading config from env")
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to connect database")
	}

	err = db.AutoMigrate(&types.User{}, &types.Note{})
	if err != nil {
		return errors.Wrap(err, "Failed to migrate")
	}

	gemini, err := summarize.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		return errors.Wrap(err, "creating summarization client")
	}

	notes := noteservice.New(db)
	orch := summarize.NewOrchestrator(notes, gemini, cfg.SummaryTimeout)

	e := newServer(cfg, db, notes, orch, gemini)

	return e.Start(":8080")
}

// newServer assembles the router. Dependencies come in explicitly so tests
// can swap the generator and point at a scratch database.
func newServer(cfg types.Config, db *gorm.DB, notes *noteservice.Service, orch *summarize.Orchestrator, gen summarize.Generator) *echo.Echo {
	e := echo.New()

	origErrHandler := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logrus.Error(err)
		origErrHandler(err, c)
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		Skipper:           middleware.DefaultSkipper,
		StackSize:         4 << 10, // 4 KB
		DisableStackAll:   false,
		DisablePrintStack: false,
		LogLevel:          log.ERROR,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logrus.Error(errors.Wrap(err, "recovered panic:"))
			for _, l := range strings.Split(string(stack), "\n") {
				logrus.Errorf("stack: %s", strings.ReplaceAll(l, "\t", "  "))
			}
			return nil
		},
		DisableErrorHandler: false,
	}))

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
	}))

	store := sessions.NewCookieStore(cfg.CookieSecret)
	e.Use(session.Middleware(store))
	e.Use(UserMiddleware(db))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Auth
	e.POST("/auth/sign-in", signInWithEmailAndPassword(db))
	if cfg.AllowSignup || len(cfg.AllowSignupEmails) > 0 {
		e.POST("/auth/sign-up", signUpWithEmailAndPassword(db, cfg))
	}
	e.POST("/auth/sign-out", signOut())

	// Notes
	e.GET("/api/notes", listNotes(notes))
	e.POST("/api/notes", createNote(notes))
	e.GET("/api/notes/:id", getNote(notes))
	e.PATCH("/api/notes/:id", updateNote(notes))
	e.DELETE("/api/notes/:id", deleteNote(notes))

	// Summaries
	e.GET("/api/ai/models", listModels())
	e.POST("/api/ai/summary", generateSummary(gen))
	e.POST("/api/notes/:id/summary", ensureSummary(orch))
	e.POST("/api/notes/:id/summary/regenerate", regenerateSummary(orch))
	e.POST("/api/notes/:id/summary/save", saveSummary(orch))

	return e
}

func UserMiddleware(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := session.Get(SessionKey, c)
			if sess.Values[SessionUserIDKey] != nil {
				userID := sess.Values[SessionUserIDKey].(uint)
				user, err := getUserByID(db, userID)
				if err != nil {
					return errors.Wrap(err, "getting user by id")
				}
				c.Set(UserKey, user)
			}
			return next(c)
		}
	}
}

func GetSessionUser(c echo.Context) (types.User, bool) {
	u := c.Get(UserKey)
	if u != nil {
		user := u.(types.User)
		logrus.Debugf("Found session user %s", user.Email)
		return user, true
	}
	return types.User{}, false
}
