package imghash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/krex38/subgate/model"
)

// canonical resolution every image is forced into before hashing
const edge = 100

// Fingerprint returns the hex digest of the size-normalized image: the pixel
// buffer after a forced-fit resize to 100x100, hashed with sha256. Two images
// share a fingerprint iff their normalized pixels are bit-identical; the
// digest is not tolerant of cropping or rotation.
func Fingerprint(imageBytes []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.DecodeErr, err)
	}
	// both dimensions given: aspect ratio is ignored on purpose
	normalized := imaging.Resize(img, edge, edge, imaging.Lanczos)
	sum := sha256.Sum256(normalized.Pix)
	return hex.EncodeToString(sum[:]), nil
}
