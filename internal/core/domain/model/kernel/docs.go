// Package kernel contains shared value objects used across the domain model.
package kernel
