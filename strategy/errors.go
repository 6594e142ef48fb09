package strategy

import (
	"fmt"

	"github.com/arloliu/balancer/types"
)

// validatePartitionCount rejects partition counts below one.
func validatePartitionCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: partition count must be >= 1, got %d", types.ErrInvalidArgument, n)
	}

	return nil
}
