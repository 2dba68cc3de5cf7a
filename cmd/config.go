package cmd

import "time"

// Config carries the environment-driven settings of the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TaxRate is applied to the cart subtotal at submission, as a fraction
	// (0.18 for 18%).
	TaxRate float64

	// NotificationsDriver selects the fan-out backend: noop, memory, redis.
	NotificationsDriver string

	// CacheDriver selects the catalog cache backend: noop, redis.
	CacheDriver string

	RedisAddr string

	// SequenceRetentionDays is how many past days of order-number counters
	// the cleanup job keeps.
	SequenceRetentionDays int

	// PaymentTimeout bounds one gateway charge attempt.
	PaymentTimeout time.Duration

	// PaymentLatency is the simulated gateway's answer time.
	PaymentLatency time.Duration
}
