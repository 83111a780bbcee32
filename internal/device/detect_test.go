package device

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	desktopChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	iPhoneSafariUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	androidWebView  = "Mozilla/5.0 (Linux; Android 14; Pixel 8; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/124.0 Mobile Safari/537.36"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		ua    string
		hints Hints
		want  Info
	}{
		{
			name: "desktop browser",
			ua:   desktopChromeUA,
			want: Info{Platform: PlatformWeb},
		},
		{
			name:  "desktop browser with capacitor web shim",
			ua:    desktopChromeUA,
			hints: Hints{CapacitorPlatform: "web"},
			want:  Info{Platform: PlatformWeb},
		},
		{
			name:  "capacitor android",
			ua:    androidWebView,
			hints: Hints{CapacitorPlatform: "android"},
			want:  Info{IsNative: true, IsMobile: true, Platform: PlatformCapacitor},
		},
		{
			name:  "capacitor ios reports standalone but is not a pwa",
			ua:    iPhoneSafariUA,
			hints: Hints{CapacitorPlatform: "iOS", DisplayMode: "standalone"},
			want:  Info{IsNative: true, IsMobile: true, IsStandalone: true, Platform: PlatformCapacitor},
		},
		{
			name:  "installed pwa on desktop",
			ua:    desktopChromeUA,
			hints: Hints{DisplayMode: "standalone"},
			want:  Info{IsPWA: true, IsStandalone: true, Platform: PlatformPWA},
		},
		{
			name:  "home screen app on iphone",
			ua:    iPhoneSafariUA,
			hints: Hints{NavigatorStandalone: true},
			want:  Info{IsPWA: true, IsMobile: true, IsStandalone: true, Platform: PlatformPWA},
		},
		{
			name:  "mobile browser tab",
			ua:    iPhoneSafariUA,
			hints: Hints{DisplayMode: "browser"},
			want:  Info{IsMobile: true, Platform: PlatformWeb},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.ua, tt.hints))
		})
	}
}

func TestHintsFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CapacitorPlatformHeader, "android")
	req.Header.Set(DisplayModeHeader, "fullscreen")
	req.Header.Set(NavigatorStandaloneHeader, "1")

	hints := HintsFromRequest(req)
	assert.Equal(t, Hints{CapacitorPlatform: "android", DisplayMode: "fullscreen", NavigatorStandalone: true}, hints)
}

func TestHandler_GetPlatformInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/platform", nil)
	req.Header.Set("User-Agent", desktopChromeUA)
	req.Header.Set(DisplayModeHeader, "standalone")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Platform Info `json:"platform"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, PlatformPWA, body.Data.Platform.Platform)
	assert.True(t, body.Data.Platform.IsPWA)
}
