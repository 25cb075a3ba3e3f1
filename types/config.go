package types

import (
	errs "errors"
	"fmt"
	"net/mail"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AllowSignup       bool
	AllowSignupEmails []string
	CookieSecret      []byte
	DBPath            string
	GeminiAPIKey      string
	SummaryTimeout    time.Duration
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.AllowSignup, err = strconv.ParseBool(goli.DefaultEnv("NOTELET_ALLOW_SIGNUP", "false"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTELET_ALLOW_SIGNUP"))
	}

	allowedEmails := strings.Split(os.Getenv("NOTELET_ALLOW_SIGNUP_EMAILS"), ",")
	for _, e := range allowedEmails {
		if e == "" {
			continue
		}
		email, err := mail.ParseAddress(e)
		if err != nil {
			retErr = errs.Join(retErr, errors.Wrapf(err, "parsing email %q", e))
		} else {
			ret.AllowSignupEmails = append(ret.AllowSignupEmails, email.Address)
		}
	}
	logrus.Infof("Allowed signup emails: %v", ret.AllowSignupEmails)

	cookieSecret, ok := os.LookupEnv("NOTELET_COOKIE_STORE_SECRET")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTELET_COOKIE_STORE_SECRET"))
	} else {
		ret.CookieSecret = []byte(cookieSecret)
	}

	ret.DBPath, ok = os.LookupEnv("NOTELET_DB_PATH")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTELET_DB_PATH"))
	} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "Directory for NOTELET_DB_PATH must exist"))
	}

	ret.GeminiAPIKey, ok = os.LookupEnv("GEMINI_API_KEY")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env GEMINI_API_KEY"))
	}

	ret.SummaryTimeout, err = time.ParseDuration(goli.DefaultEnv("NOTELET_SUMMARY_TIMEOUT", "60s"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTELET_SUMMARY_TIMEOUT"))
	}

	return ret, retErr
}
