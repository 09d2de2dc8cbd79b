// Package events defines the canonical event vocabulary of the order
// lifecycle and the external notification shapes that feed it.
//
// Providers speak their own dialects: a payment processor says "approved",
// a carrier says "delivered". MapEventType translates every notification
// into one of four canonical events (CONFIRMED, CANCELLED, SHIPPED,
// DELIVERED), each pointing at exactly one target order status. Everything
// downstream of the mapper works only with canonical events.
package events
