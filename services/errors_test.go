package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibleConflictedErrorChain(t *testing.T) {
	// Controllers map this to the no-availability response, while the
	// conflict sentinel stays matchable for diagnosis.
	assert.ErrorIs(t, errEligibleConflicted, ErrNoAvailability)
	assert.ErrorIs(t, errEligibleConflicted, ErrAllocationConflict)
}
