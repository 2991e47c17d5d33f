package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Platform identifies a OneSignal delivery channel.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
	PlatformHuawei  Platform = "huawei"
	PlatformAmazon  Platform = "adm"
	PlatformChrome  Platform = "chrome"
	PlatformFirefox Platform = "firefox"
	PlatformSafari  Platform = "safari"
	PlatformWindows Platform = "wns"
)

// DefaultPlatforms is used when a message does not select any platform.
var DefaultPlatforms = []Platform{PlatformAndroid}

// DefaultSegment targets every subscribed user.
const DefaultSegment = "All"

// ParsePlatform maps a user supplied platform name onto a Platform.
func ParsePlatform(value string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(value)))
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformWeb, PlatformHuawei, PlatformAmazon,
		PlatformChrome, PlatformFirefox, PlatformSafari, PlatformWindows:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", value)
}

// Notification is a push message as configured for a job.
type Notification struct {
	Name           string
	Heading        string
	Message        string
	URL            string
	Segment        string
	BigPicture     string
	ShowRateButton bool
	Data           map[string]any
	Platforms      []Platform
}

// Targets reports whether the notification is delivered to p.
func (n Notification) Targets(p Platform) bool {
	platforms := n.Platforms
	if len(platforms) == 0 {
		platforms = DefaultPlatforms
	}
	for _, candidate := range platforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// Delivery is the provider's acknowledgement of an accepted notification.
type Delivery struct {
	ID         string
	Recipients int
}

// Credentials authenticate against a single OneSignal app.
type Credentials struct {
	App    string
	AppID  string
	APIKey string
}

// String never exposes the API key.
func (c Credentials) String() string {
	key := "<empty>"
	if c.APIKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("%s(app_id=%s, api_key=%s)", c.App, c.AppID, key)
}

// AppIDVar returns the environment variable holding the app identifier.
func AppIDVar(app string) string {
	return app + "_ONESIGNAL_APP_ID"
}

// APIKeyVar returns the environment variable holding the REST API key.
func APIKeyVar(app string) string {
	return app + "_ONESIGNAL_API_KEY"
}

// DisplayName turns a credential prefix such as ASTRO_VISTA into AstroVista.
func DisplayName(app string) string {
	caser := cases.Title(language.English)
	var builder strings.Builder
	for _, part := range strings.Split(app, "_") {
		if part == "" {
			continue
		}
		builder.WriteString(caser.String(strings.ToLower(part)))
	}
	return builder.String()
}
