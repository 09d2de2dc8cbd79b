// Package order contains the purchase order aggregate and its value
// objects: the lifecycle Status state machine, the order identifier, and the
// immutable line Item. The aggregate enforces that status only moves along
// the fixed transition table and that the order total is always derived from
// the line items.
package order
