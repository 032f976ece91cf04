//go:build integration

package accountrepo

import (
	"testing"

	"github.com/go-petr/account-engine/internal/integrationtest"
)

func TestRepoPGS(t *testing.T) {
	config := integrationtest.LoadConfig(t)

	runRepoTests(t, func(t *testing.T) repo {
		tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
		return NewRepoPGS(tx)
	})
}
