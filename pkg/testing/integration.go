package testing

import (
	"os"
	"testing"
)

// IntegrationEnv must be set to 1 to run tests that start containers.
const IntegrationEnv = "SEMSIM_INTEGRATION"

func SkipUnlessIntegration(tb testing.TB) {
	tb.Helper()
	if os.Getenv(IntegrationEnv) != "1" {
		tb.Skipf("set %s=1 to run integration tests", IntegrationEnv)
	}
}
