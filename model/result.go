package model

// VerificationResult is produced once per verification attempt and never
// persisted. Like/comment evidence is carried for reporting only; the
// subscribe phrase plus channel name is what flips IsSubscribed.
type VerificationResult struct {
	Success           bool                `json:"success"`
	IsSubscribed      bool                `json:"isSubscribed"`
	ChannelName       string              `json:"channelName"`
	Requirements      RequiredActions     `json:"requirements"`
	SessionTerminated bool                `json:"sessionTerminated,omitempty"`
	Details           VerificationDetails `json:"details"`
}

type VerificationDetails struct {
	SubscriptionFound bool         `json:"subscriptionFound"`
	ChannelFound      bool         `json:"channelFound"`
	LikeFound         bool         `json:"likeFound"`
	CommentFound      bool         `json:"commentFound"`
	Debug             TextEvidence `json:"debug"`
}

// TextEvidence keeps a truncated copy of what the OCR engine saw.
type TextEvidence struct {
	RawText   string `json:"rawText"`
	CleanText string `json:"cleanText"`
}
