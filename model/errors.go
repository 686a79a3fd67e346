package model

import "fmt"

var (
	// auth: surfaced immediately, never retried internally
	TokenNotFoundErr = fmt.Errorf("invalid verification token")
	UserMismatchErr  = fmt.Errorf("user ID mismatch")
	TokenExpiredErr  = fmt.Errorf("verification token expired")

	// request validation: no state change
	MissingFileErr = fmt.Errorf("no image uploaded")
	BadMimeTypeErr = fmt.Errorf("invalid file type")
	TooLargeErr    = fmt.Errorf("image exceeds the size limit")

	// fraud: terminal, always consumes the session
	KnownDecoyErr  = fmt.Errorf("account blacklisted for using watermarked image")
	BlacklistedErr = fmt.Errorf("your account has been blacklisted from using this service")

	DecodeErr    = fmt.Errorf("cannot decode image")
	OcrEngineErr = fmt.Errorf("OCR engine failure")
	RoleGrantErr = fmt.Errorf("failed to assign role")
)
