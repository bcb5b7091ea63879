// Package middleware provides HTTP middleware for the SnapGala API.
//
// # Available Middleware
//
//   - RequestID: attaches a unique ID to each request
//   - Logger: structured request logging
//   - Recovery: panic recovery with a 500 Problem Details response
//   - CORS: cross-origin handling for the guest web client
//   - Compress: gzip response compression
//   - RateLimit: per-client-address token bucket limiting
//
// # Rate Limiting
//
// Guest endpoints are rate limited by client address. RateLimit wraps
// individual routes rather than the whole chain, leaving health checks
// and static media unthrottled:
//
//	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{...})
//	mux.Handle("POST /v1/events/{eventId}/photos", middleware.RateLimit(limiter)(uploadHandler))
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
