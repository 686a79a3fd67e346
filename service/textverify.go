package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/krex38/subgate/common"
	"github.com/krex38/subgate/model"
	"github.com/krex38/subgate/pkg/log"
)

// Extractor produces raw text from an image via an external OCR engine.
type Extractor interface {
	Extract(ctx context.Context, imageBytes []byte) (string, error)
}

// Like/comment evidence phrases. The evidence is carried in the result for
// reporting; it never gates the pass/fail decision.
var (
	likePhrases    = []string{"you liked", "liked this video", "unlike"}
	commentPhrases = []string{"your comment", "commented"}
)

// TextVerifier interprets OCR output against the configured locale phrase
// set and the channel-name variants.
type TextVerifier struct {
	extractor        Extractor
	subscribePhrases []string
}

func NewTextVerifier(extractor Extractor, subscribePhrases []string) *TextVerifier {
	return &TextVerifier{
		extractor:        extractor,
		subscribePhrases: common.Deduplicate(subscribePhrases),
	}
}

// Normalize lowercases rawText, strips every character outside [a-z0-9 ],
// collapses whitespace runs and trims. Total, deterministic, idempotent.
func Normalize(rawText string) string {
	lower := strings.ToLower(rawText)
	var b strings.Builder
	b.Grow(len(lower))
	pendingSpace := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// MatchesAnyPhrase reports whether cleanText contains at least one phrase as
// a contiguous substring. Substring rather than word-boundary matching:
// tolerant of OCR noise at the cost of false positives.
func MatchesAnyPhrase(cleanText string, phrases []string) bool {
	for _, p := range phrases {
		p = Normalize(p)
		if p == "" {
			continue
		}
		if strings.Contains(cleanText, p) {
			return true
		}
	}
	return false
}

// MatchesChannelName applies the same substring policy to the channel-name
// transliteration variants.
func MatchesChannelName(cleanText string, nameVariants []string) bool {
	return MatchesAnyPhrase(cleanText, nameVariants)
}

// Verify runs extract -> normalize -> match. IsSubscribed requires both a
// subscribe phrase and a channel-name variant in the same screenshot;
// either alone is insufficient.
func (v *TextVerifier) Verify(ctx context.Context, imageBytes []byte, setting *model.Setting) (*model.VerificationResult, error) {
	rawText, err := v.extractor.Extract(ctx, imageBytes)
	if err != nil {
		return nil, err
	}
	cleanText := Normalize(rawText)
	log.Debug("ocr clean text: %v", cleanText)

	subscriptionFound := MatchesAnyPhrase(cleanText, v.subscribePhrases)
	channelFound := MatchesChannelName(cleanText, setting.ChannelVariants)
	result := &model.VerificationResult{
		Success:      true,
		IsSubscribed: subscriptionFound && channelFound,
		Requirements: setting.RequiredActions,
		Details: model.VerificationDetails{
			SubscriptionFound: subscriptionFound,
			ChannelFound:      channelFound,
			LikeFound:         MatchesAnyPhrase(cleanText, likePhrases),
			CommentFound:      MatchesAnyPhrase(cleanText, commentPhrases),
			Debug: model.TextEvidence{
				RawText:   truncate(rawText, 100),
				CleanText: truncate(cleanText, 100),
			},
		},
	}
	if channelFound {
		result.ChannelName = setting.ChannelTitle
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
