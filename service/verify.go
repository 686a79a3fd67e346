package service

import (
	"context"
	"fmt"

	"github.com/krex38/subgate/model"
	"github.com/krex38/subgate/pkg/log"
)

// 5 MiB, matching what the upload UI enforces
const MaxImageSize = 5 << 20

// RoleGranter requests the subscriber role for a user on the chat platform.
type RoleGranter interface {
	GrantRole(userID string) error
}

// SettingSource yields the current verification settings.
type SettingSource func() (*model.Setting, error)

// Verifier composes the verification pipeline: session auth, blacklist
// short-circuit, decoy detection, OCR text verification, decision. It owns
// no persistent state of its own.
type Verifier struct {
	Sessions  *SessionStore
	Blacklist *Blacklist
	Decoys    *DecoyStore
	Text      *TextVerifier
	Roles     RoleGranter
	Settings  SettingSource
}

// CheckSubscription runs one verification attempt.
//
// Auth errors abort with no side effects. A blacklisted user or a known
// decoy consumes the session and returns a fraud error; the decoy path also
// bans the user. A failed but honest attempt leaves the session Pending so
// the user can resubmit a better screenshot; only success and fraud consume
// the token.
func (v *Verifier) CheckSubscription(ctx context.Context, token string, userID string, imageBytes []byte, mimeType string) (*model.VerificationResult, error) {
	if _, err := v.Sessions.Validate(token, userID); err != nil {
		return nil, err
	}

	banned, err := v.Blacklist.IsBanned(userID)
	if err != nil {
		return nil, err
	}
	if banned {
		_ = v.Sessions.Consume(token)
		return nil, model.BlacklistedErr
	}

	if len(imageBytes) == 0 {
		return nil, model.MissingFileErr
	}
	if len(imageBytes) > MaxImageSize {
		return nil, model.TooLargeErr
	}
	switch mimeType {
	case "image/png", "image/jpeg", "image/jpg":
	default:
		return nil, model.BadMimeTypeErr
	}

	knownDecoy, err := v.Decoys.IsKnownDecoy(imageBytes)
	if err != nil {
		return nil, err
	}
	if knownDecoy {
		// the ban is the authoritative effect; an I/O failure here must not
		// let the attempt continue as an honest one
		if err := v.Blacklist.Ban(userID); err != nil {
			log.Error("ban %v: %v", userID, err)
		}
		_ = v.Sessions.Consume(token)
		return nil, model.KnownDecoyErr
	}

	getSetting := v.Settings
	if getSetting == nil {
		getSetting = GetSetting
	}
	setting, err := getSetting()
	if err != nil {
		return nil, err
	}
	result, err := v.Text.Verify(ctx, imageBytes, setting)
	if err != nil {
		return nil, err
	}

	if !result.IsSubscribed {
		return result, nil
	}
	if err := v.Sessions.Consume(token); err != nil {
		return nil, err
	}
	result.SessionTerminated = true
	if v.Roles != nil {
		// the session is consumed at this point; a grant failure is a
		// processing error, not a reason to reopen it
		if err := v.Roles.GrantRole(userID); err != nil {
			return nil, fmt.Errorf("%w: %v", model.RoleGrantErr, err)
		}
	}
	log.Info("user %v verified for channel %v", userID, setting.ChannelTitle)
	return result, nil
}
