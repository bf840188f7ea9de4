package xm

import (
	"os"

	"github.com/zyndor/xm/internal/filter"
	"github.com/zyndor/xm/internal/registry"
)

// resetHarness gives each test a private registry and pristine filter and
// output state. The production defaults are process-wide singletons.
func resetHarness() {
	reg = registry.New()
	output = os.Stdout
	filters = filter.MatchAll()
}
