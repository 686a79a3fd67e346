package service

import (
	"context"
	"testing"

	"github.com/krex38/subgate/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, imageBytes []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   \t\n ", ""},
		{"Subscribed", "subscribed"},
		{"SUBSCRIBED  to\tKrex!", "subscribed to krex"},
		{"a.b,c", "abc"},
		{"  99 Problems?!  ", "99 problems"},
		{"Ünïcödé stays out", "ncd stays out"},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
		// idempotent
		assert.Equal(t, got, Normalize(got))
	}
}

func TestMatchesAnyPhrase(t *testing.T) {
	phrases := []string{"subscribed", "abonniert"}
	assert.True(t, MatchesAnyPhrase("you are subscribed now", phrases))
	assert.True(t, MatchesAnyPhrase("xxsubscribedxx", phrases)) // substring, not word boundary
	assert.False(t, MatchesAnyPhrase("subscribe", phrases))
	assert.False(t, MatchesAnyPhrase("", phrases))

	// phrases that normalize to nothing never match everything
	assert.False(t, MatchesAnyPhrase("anything", []string{"...", "крекс"}))
}

func TestMatchesAnyPhraseMonotone(t *testing.T) {
	phrases := []string{"subscribed"}
	base := "subscribed to krex"
	require.True(t, MatchesAnyPhrase(base, phrases))
	// adding characters elsewhere never removes a match
	assert.True(t, MatchesAnyPhrase("noise before "+base+" noise after 123", phrases))
}

func testSetting() *model.Setting {
	return &model.Setting{
		ChannelTitle:    "Krex",
		ChannelVariants: []string{"krex", "kreks"},
		RequiredActions: model.RequiredActions{Subscribe: true, Like: true},
	}
}

func TestVerifySubscribedAndChannel(t *testing.T) {
	ex := &fakeExtractor{text: "Subscribed to KREX channel"}
	v := NewTextVerifier(ex, []string{"subscribed"})

	result, err := v.Verify(context.Background(), []byte("img"), testSetting())
	require.NoError(t, err)
	assert.True(t, result.IsSubscribed)
	assert.Equal(t, "Krex", result.ChannelName)
	assert.True(t, result.Details.SubscriptionFound)
	assert.True(t, result.Details.ChannelFound)
	assert.True(t, result.Requirements.Like)
	assert.Equal(t, "subscribed to krex channel", result.Details.Debug.CleanText)
}

func TestVerifyEitherAloneIsInsufficient(t *testing.T) {
	v := NewTextVerifier(&fakeExtractor{text: "subscribed to something else"}, []string{"subscribed"})
	result, err := v.Verify(context.Background(), []byte("img"), testSetting())
	require.NoError(t, err)
	assert.False(t, result.IsSubscribed)
	assert.True(t, result.Details.SubscriptionFound)
	assert.False(t, result.Details.ChannelFound)
	assert.Empty(t, result.ChannelName)

	v = NewTextVerifier(&fakeExtractor{text: "welcome to the krex channel"}, []string{"subscribed"})
	result, err = v.Verify(context.Background(), []byte("img"), testSetting())
	require.NoError(t, err)
	assert.False(t, result.IsSubscribed)
	assert.False(t, result.Details.SubscriptionFound)
	assert.True(t, result.Details.ChannelFound)
}

func TestVerifyCollectsLikeCommentEvidence(t *testing.T) {
	v := NewTextVerifier(&fakeExtractor{text: "you liked this video and your comment was posted subscribed to krex"}, []string{"subscribed"})
	result, err := v.Verify(context.Background(), []byte("img"), testSetting())
	require.NoError(t, err)
	assert.True(t, result.Details.LikeFound)
	assert.True(t, result.Details.CommentFound)
	// evidence is reported, the decision stays subscription-only
	assert.True(t, result.IsSubscribed)
}

func TestVerifyExtractorError(t *testing.T) {
	v := NewTextVerifier(&fakeExtractor{err: model.OcrEngineErr}, []string{"subscribed"})
	_, err := v.Verify(context.Background(), []byte("img"), testSetting())
	assert.ErrorIs(t, err, model.OcrEngineErr)
}

func TestVerifyTruncatesEvidence(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	v := NewTextVerifier(&fakeExtractor{text: string(long)}, []string{"subscribed"})
	result, err := v.Verify(context.Background(), []byte("img"), testSetting())
	require.NoError(t, err)
	assert.Len(t, result.Details.Debug.RawText, 100)
	assert.Len(t, result.Details.Debug.CleanText, 100)
}
