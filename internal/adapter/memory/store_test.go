package memory

import (
	"testing"

	"github.com/InterNutter/instants/internal/core/port"
	"github.com/InterNutter/instants/internal/core/port/testsuite"
)

func TestStore(t *testing.T) {
	testsuite.TestStore(t, func(t *testing.T) (port.Store, error) {
		return NewStore(), nil
	})
}
