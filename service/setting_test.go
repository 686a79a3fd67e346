package service

import (
	"testing"

	"github.com/krex38/subgate/db"
	"github.com/krex38/subgate/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRoundTrip(t *testing.T) {
	db.InitDB(t.TempDir())

	// defaults before anything was saved
	setting, err := GetSetting()
	require.NoError(t, err)
	assert.True(t, setting.RequiredActions.Subscribe)
	assert.NotEmpty(t, setting.ChannelVariants)

	saved := &model.Setting{
		ChannelID:       "UC123",
		ChannelTitle:    "Krex",
		ChannelVariants: []string{"krex", "kreks"},
		RequiredActions: model.RequiredActions{Subscribe: true, Like: true},
		LatestVideoID:   "vid1",
	}
	require.NoError(t, SaveSetting(saved))

	got, err := GetSetting()
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}
