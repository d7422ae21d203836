package middleware

import (
	"errors"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "hotel:ratelimit"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per front desk terminal (client address and user
// agent) in a fixed Redis window. Requests pass when Redis is unavailable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			ctx := r.Context()
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			var count int

			err := a.cache.Get(ctx, key, &count)

			switch {
			case errors.Is(err, cache.Nil):
				count = 1
			case err != nil:
				log.Warn().Err(err).Str("key", key).Msg("rate limiter could not read counter, letting request through")
				next.ServeHTTP(w, r)

				return
			default:
				count++
			}

			if count > limiter.MaxRequests {
				log.Debug().Str("key", key).Int("count", count).Msg("request limit exceeded")
				response.WithRequestLimitExceeded(w, limiter.WindowSeconds)

				return
			}

			if err = a.cache.Save(ctx, key, count, limiter.WindowSeconds); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter could not store counter, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownUserAgent
}

// clientIP prefers the first forwarded address, then the remote host without its port.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get(constant.RequestHeaderRealIP); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
