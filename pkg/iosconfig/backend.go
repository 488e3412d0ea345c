package iosconfig

import (
	"context"

	"google.golang.org/protobuf/proto"
)

// Backend defines the conversion interface every device family implements.
// Conversion is one way: NetJSON in, configuration text out.
type Backend interface {
	// Name returns the backend identifier (e.g., "ios").
	Name() string

	// ToNative renders a NetJSON proto message to the device's configuration text.
	ToNative(ctx context.Context, cfg proto.Message, opts RenderOptions) (*Bundle, error)
}
