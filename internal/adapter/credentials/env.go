package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
)

// ErrMissing is returned when an app's credentials are not present in the environment.
var ErrMissing = errors.New("onesignal credentials not found")

// Env resolves credentials from {APP}_ONESIGNAL_APP_ID and {APP}_ONESIGNAL_API_KEY.
type Env struct {
	lookup func(string) (string, bool)
}

var _ ports.CredentialProvider = (*Env)(nil)

// NewEnv reads from the process environment.
func NewEnv() *Env {
	return &Env{lookup: os.LookupEnv}
}

// NewLookup reads from an arbitrary lookup function.
func NewLookup(lookup func(string) (string, bool)) *Env {
	return &Env{lookup: lookup}
}

// Credentials returns both values for app or an error naming every missing variable.
func (e *Env) Credentials(app string) (model.Credentials, error) {
	creds := model.Credentials{App: app}
	if app == "" {
		return creds, fmt.Errorf("%w: app prefix is empty", ErrMissing)
	}

	var missing []string
	creds.AppID = e.value(model.AppIDVar(app), &missing)
	creds.APIKey = e.value(model.APIKeyVar(app), &missing)
	if len(missing) > 0 {
		return creds, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	return creds, nil
}

func (e *Env) value(key string, missing *[]string) string {
	val, _ := e.lookup(key)
	val = strings.TrimSpace(val)
	if val == "" {
		*missing = append(*missing, key)
	}
	return val
}
