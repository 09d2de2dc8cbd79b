package cmd

import "time"

// Config carries everything the service reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// APISecret is the value checked against the x-api-key header.
	APISecret string

	// OrderIDPrefix prefixes generated order identifiers. Defaults to "ORD".
	OrderIDPrefix string

	// PaymentMismatchThreshold is the largest tolerated shortfall between
	// the order total and a reported payment. Defaults to 0.10.
	PaymentMismatchThreshold float64

	// StaleOrderTTL is how long an order may stay pending before the sweep
	// requests its cancellation. Zero disables the sweep.
	StaleOrderTTL time.Duration
}
