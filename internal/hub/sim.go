package hub

import (
	"encoding/hex"

	"codeberg.org/evhjem/hubdrive/internal/logger"
)

// simTransport logs frames instead of writing them to a BLE link. Used
// when the hub connection is simulated.
type simTransport struct{}

// NewSimTransport returns a transport that only logs.
func NewSimTransport() Transport {
	return &simTransport{}
}

func (*simTransport) Write(frame []byte) error {
	logger.Debug().Str("frame", hex.EncodeToString(frame)).Msg("Simulated hub write")
	return nil
}

func (*simTransport) Close() error {
	logger.Debug().Msg("Simulated hub disconnected")
	return nil
}
