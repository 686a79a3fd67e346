package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Client wraps the read-only channel/video metadata lookups. The results
// only populate display text; they never gate verification.
type Client struct {
	svc *yt.Service
}

func New(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

type ChannelInfo struct {
	ID              string
	Title           string
	SubscriberCount uint64
	VideoCount      uint64
}

func (c *Client) GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel not found: %v", channelID)
	}
	item := resp.Items[0]
	info := &ChannelInfo{ID: item.Id}
	if item.Snippet != nil {
		info.Title = item.Snippet.Title
	}
	if item.Statistics != nil {
		info.SubscriberCount = item.Statistics.SubscriberCount
		info.VideoCount = item.Statistics.VideoCount
	}
	return info, nil
}

type Video struct {
	ID    string
	Title string
}

// GetLatestVideo returns the channel's most recent upload.
func (c *Client) GetLatestVideo(ctx context.Context, channelID string) (*Video, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Order("date").
		MaxResults(1).
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no videos found for channel %v", channelID)
	}
	item := resp.Items[0]
	video := &Video{}
	if item.Id != nil {
		video.ID = item.Id.VideoId
	}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
	}
	return video, nil
}
