package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReferenceCode builds a short, human-quotable booking reference
// like "RSV-5F3A2B1C" from a fresh UUID.
func GenerateReferenceCode() string {
	id := uuid.NewString()
	return "RSV-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
