package controller

import (
	"github.com/krex38/subgate/service"
)

const MaxImageSize = service.MaxImageSize

var (
	verifier *service.Verifier
	decoys   *service.DecoyStore
	adminKey string
)

// Init wires the controllers; must run before the router serves requests.
func Init(v *service.Verifier, d *service.DecoyStore, key string) {
	verifier = v
	decoys = d
	adminKey = key
}
