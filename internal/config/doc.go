// Package config manages application configuration for the SnapGala API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, public base URL)
//   - DatabaseConfig: SurrealDB connection settings
//   - MediaConfig: local media storage settings
//   - RateLimitConfig: guest endpoint rate limiting
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	PUBLIC_BASE_URL      - base URL guests use to reach event pages
//	DB_HOST / DB_PORT    - SurrealDB address
//	DB_NAMESPACE / DB_DATABASE
//	DB_USER / DB_PASSWORD
//	MEDIA_BASE_DIR       - directory for stored photos
//	MEDIA_PUBLIC_PREFIX  - URL prefix media is served from
package config
