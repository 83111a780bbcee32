// Package device reports what kind of client is calling: a desktop browser, an installed PWA,
// or the Capacitor native shell.
package device

import (
	"net/http"
	"regexp"
	"strings"
)

// Platform names returned in Info.Platform.
const (
	PlatformWeb       = "web"
	PlatformPWA       = "pwa"
	PlatformCapacitor = "capacitor"
)

// Request headers the web and native clients send alongside the User-Agent.
const (
	CapacitorPlatformHeader   = "X-Capacitor-Platform"
	DisplayModeHeader         = "X-Display-Mode"
	NavigatorStandaloneHeader = "X-Navigator-Standalone"
)

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Hints are the client-reported signals that cannot be derived from the User-Agent.
type Hints struct {
	// CapacitorPlatform is Capacitor.getPlatform(): "ios", "android" or "web".
	CapacitorPlatform string
	// DisplayMode is the matched display-mode media query.
	DisplayMode string
	// NavigatorStandalone is iOS Safari's navigator.standalone.
	NavigatorStandalone bool
}

// Info describes the calling client.
type Info struct {
	IsPWA        bool   `json:"isPWA"`
	IsNative     bool   `json:"isNative"`
	IsMobile     bool   `json:"isMobile"`
	IsStandalone bool   `json:"isStandalone"`
	Platform     string `json:"platform"`
}

// Detect derives platform information from the User-Agent and client hints.
func Detect(userAgent string, hints Hints) Info {
	info := Info{
		IsNative: IsNativePlatform(hints.CapacitorPlatform),
		IsMobile: mobileUA.MatchString(userAgent),
	}

	switch strings.ToLower(strings.TrimSpace(hints.DisplayMode)) {
	case "standalone", "fullscreen", "minimal-ui":
		info.IsStandalone = true
	}
	if hints.NavigatorStandalone {
		info.IsStandalone = true
	}
	info.IsPWA = info.IsStandalone && !info.IsNative

	switch {
	case info.IsNative:
		info.Platform = PlatformCapacitor
	case info.IsPWA:
		info.Platform = PlatformPWA
	default:
		info.Platform = PlatformWeb
	}
	return info
}

// IsNativePlatform reports whether a Capacitor platform name is a native shell.
func IsNativePlatform(capacitorPlatform string) bool {
	switch strings.ToLower(strings.TrimSpace(capacitorPlatform)) {
	case "ios", "android":
		return true
	}
	return false
}

// HintsFromRequest reads Hints from request headers.
func HintsFromRequest(r *http.Request) Hints {
	standalone := strings.ToLower(strings.TrimSpace(r.Header.Get(NavigatorStandaloneHeader)))
	return Hints{
		CapacitorPlatform:   r.Header.Get(CapacitorPlatformHeader),
		DisplayMode:         r.Header.Get(DisplayModeHeader),
		NavigatorStandalone: standalone == "true" || standalone == "1",
	}
}

// FromRequest runs Detect over an incoming request.
func FromRequest(r *http.Request) Info {
	return Detect(r.UserAgent(), HintsFromRequest(r))
}
