package model

const (
	BucketSetting = "setting"
	KeySetting    = "current"
)

type RequiredActions struct {
	Subscribe bool `json:"subscribe"`
	Like      bool `json:"like"`
	Comment   bool `json:"comment"`
}

// Setting is the persisted verification configuration. It is updated only
// through an explicit save, never mutated in place by the pipeline.
type Setting struct {
	ChannelID        string
	ChannelTitle     string
	ChannelVariants  []string
	RequiredActions  RequiredActions
	LatestVideoID    string
	LatestVideoTitle string
}
