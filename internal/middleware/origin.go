package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/halcyonpress/halcyon/internal/logger"
	"github.com/halcyonpress/halcyon/internal/metrics"
)

// SameOriginAllowed decides whether a mutating request came from the site's
// own pages, by comparing the Origin (or Referer) host against the expected
// host. The expected host is the forwarded host when behind a proxy, the
// Host header otherwise. A request carrying neither Origin nor Referer is
// rejected; privacy-hardened clients that strip both headers are knowingly
// over-blocked.
func SameOriginAllowed(origin, referer, host, forwardedHost string) bool {
	expected := strings.ToLower(strings.TrimSpace(forwardedHost))
	if expected == "" {
		expected = strings.ToLower(strings.TrimSpace(host))
	}
	if expected == "" {
		return false
	}

	originHost := hostOf(origin)
	if originHost == "" {
		originHost = hostOf(referer)
	}
	return originHost != "" && originHost == expected
}

// hostOf extracts the lowercase host (including port) from an absolute URL,
// or "" when the value is absent or unparseable.
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Host)
}

// SameOrigin is the request guard for unauthenticated mutation endpoints
// (newsletter subscribe, analytics beacon). Failing requests get a 403.
func SameOrigin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed := SameOriginAllowed(
			c.Get(fiber.HeaderOrigin),
			c.Get(fiber.HeaderReferer),
			c.Get("Host"),
			c.Get("X-Forwarded-Host"),
		)
		if !allowed {
			metrics.OriginRejections.Inc()
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Str("origin", c.Get(fiber.HeaderOrigin)).
				Msg("same-origin check failed")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}
