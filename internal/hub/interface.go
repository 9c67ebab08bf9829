package hub

// Transport delivers raw 13-byte frames to the hub. Implementations are a
// real BLE link and a frame-logging simulator.
type Transport interface {
	Write(frame []byte) error
	Close() error
}
