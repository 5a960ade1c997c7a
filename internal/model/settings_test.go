package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFillNilSettingsDefaults(t *testing.T) {
	settings := &Settings{}
	fillNilSettings(settings)

	require.NotNil(t, settings.AdminID)
	params := settings.Params
	require.Equal(t, 10, params.ReferralReward)
	require.Equal(t, 50, params.RedeemCost)
	require.Equal(t, 3, params.FreeFanout)
	require.Equal(t, 30, params.PaidFanout)
	require.Equal(t, int64(1), params.ImpressionPrice)
	require.Equal(t, 50, params.AudiencePoolLimit)
	require.Equal(t, 10, params.TopListSize)
	require.Equal(t, "credits", params.Currency)
}

func TestFillNilSettingsKeepsConfigured(t *testing.T) {
	settings := &Settings{
		Params: &Params{
			FreeFanout: 7,
		},
	}
	fillNilSettings(settings)

	require.Equal(t, 7, settings.Params.FreeFanout)
	require.Equal(t, 30, settings.Params.PaidFanout)
}

func TestCheckAdmin(t *testing.T) {
	settings := &Settings{
		AdminID: map[int64]*AdminUser{
			777: {FirstName: "op"},
		},
	}

	require.True(t, settings.CheckAdmin(777))
	require.False(t, settings.CheckAdmin(778))
}

func TestUnderMaintenance(t *testing.T) {
	settings := &Settings{}
	require.False(t, settings.UnderMaintenance())

	settings.MaintenanceMode = true
	require.True(t, settings.UnderMaintenance())
}
