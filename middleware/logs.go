package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the request logging middleware
type LogConfig struct {
	// Skip logging for specific paths
	SkipPaths []string
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		SkipPaths: []string{"/health"},
	}
}

// RequestLogger logs method, path, status, latency and the authenticated
// user (when Verify ran earlier in the chain).
func RequestLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		userID := "-"
		if user, ok := CurrentUser(c); ok {
			userID = user.Email
		}

		status := c.Response().StatusCode()
		if err != nil {
			log.Printf("%s %s %d %s user=%s error=%v", c.Method(), c.Path(), status, latency, userID, err)
		} else {
			log.Printf("%s %s %d %s user=%s", c.Method(), c.Path(), status, latency, userID)
		}
		return err
	}
}
