package app

import (
	"testing"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/wallet"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestLimits(t *testing.T) {
	t.Run("Whole units become minor units", func(t *testing.T) {
		limits := Limits(config.WalletConfig{
			MinDeposit:         20,
			MaxDeposit:         5000,
			MinWithdraw:        200,
			MaxWithdraw:        2000,
			PayoutTargetLength: 13,
		})
		assert.Equal(t, wallet.Limits{
			MinDeposit:         entity.MajorUnits(20),
			MaxDeposit:         entity.MajorUnits(5000),
			MinWithdraw:        entity.MajorUnits(200),
			MaxWithdraw:        entity.MajorUnits(2000),
			PayoutTargetLength: 13,
		}, limits)
	})

	t.Run("Unset values keep the defaults", func(t *testing.T) {
		assert.Equal(t, wallet.DefaultLimits(), Limits(config.WalletConfig{}))
	})
}
