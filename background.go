package main

import (
	"context"
	"time"

	"github.com/krex38/subgate/pkg/log"
	"github.com/krex38/subgate/pkg/youtube"
	"github.com/krex38/subgate/service"
)

func GoBackgrounds(sessions *service.SessionStore, yt *youtube.Client) {
	// evict expired sessions; validation already expires them lazily, this
	// only bounds the table's growth
	go func() {
		tick := time.Tick(1 * time.Minute)
		for range tick {
			if n := sessions.SweepExpired(); n > 0 {
				log.Debug("evicted %v expired sessions", n)
			}
		}
	}()

	// keep the latest-video display text fresh while like/comment evidence
	// is asked for
	if yt == nil {
		return
	}
	go func() {
		tick := time.Tick(30 * time.Minute)
		for range tick {
			setting, err := service.GetSetting()
			if err != nil {
				log.Warn("latest video refresh: %v", err)
				continue
			}
			if setting.ChannelID == "" ||
				(!setting.RequiredActions.Like && !setting.RequiredActions.Comment) {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			video, err := yt.GetLatestVideo(ctx, setting.ChannelID)
			cancel()
			if err != nil {
				log.Warn("latest video refresh: %v", err)
				continue
			}
			if video.ID == setting.LatestVideoID {
				continue
			}
			setting.LatestVideoID = video.ID
			setting.LatestVideoTitle = video.Title
			if err := service.SaveSetting(setting); err != nil {
				log.Warn("latest video refresh: %v", err)
			}
		}
	}()
}
