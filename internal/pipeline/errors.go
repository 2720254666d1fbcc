package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/matchly/internal/types"
)

// ErrUnsupportedRole is reported when a job description has no IT signal
var ErrUnsupportedRole = errors.New("unsupported role: job description is not an IT position")

// RejectionError carries the classifier evidence for a rejected job description.
// errors.Is(err, ErrUnsupportedRole) holds for every RejectionError.
type RejectionError struct {
	Scores map[types.JobType]int
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s (no domain keywords or IT markers found)", ErrUnsupportedRole.Error())
}

// Unwrap returns ErrUnsupportedRole
func (e *RejectionError) Unwrap() error {
	return ErrUnsupportedRole
}
