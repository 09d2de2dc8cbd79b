package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"ordertrack/internal/pkg/errs"
)

// DefaultIDPrefix is used when no prefix is configured.
const DefaultIDPrefix = "ORD"

// ErrIDIsNotConstructed is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("order ID must be created via GenerateID or ParseID")

// idPattern matches PREFIX-YY-XXXXXNNNNN: an uppercase prefix, a two-digit
// year, five uppercase alphanumerics and five digits.
var idPattern = regexp.MustCompile(`^[A-Z]+-\d{2}-[A-Z0-9]{5}\d{5}$`)

const idAlphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ID is the order identifier value object, e.g. "ORD-25-0WH1B71878".
// The zero value is invalid; construct via GenerateID or ParseID.
type ID struct {
	value string
}

// GenerateID creates a fresh identifier for the given prefix and the current
// year. An empty prefix falls back to DefaultIDPrefix.
func GenerateID(prefix string) ID {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}

	alnum := make([]byte, 5)
	for i := range alnum {
		alnum[i] = idAlphanumerics[rand.IntN(len(idAlphanumerics))]
	}

	return ID{value: fmt.Sprintf("%s-%02d-%s%05d",
		prefix, time.Now().Year()%100, alnum, rand.IntN(100000))}
}

// ParseID validates an identifier received from the outside.
// Fails with a ValueIsInvalidError when the format does not match.
func ParseID(s string) (ID, error) {
	if !IsValidID(s) {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%s does not match the order ID format", s))
	}
	return ID{value: s}, nil
}

// IsValidID reports whether s matches the order identifier format.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// String returns the identifier text.
func (id ID) String() string {
	return id.value
}

// IsEqual reports whether two identifiers carry the same value.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// Validate fails with ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}
