package hub

import (
	"strings"
	"time"

	"tinygo.org/x/bluetooth"

	"codeberg.org/evhjem/hubdrive/internal/errors"
	"codeberg.org/evhjem/hubdrive/internal/logger"
)

const scanTimeout = 5 * time.Second

// LWP3 hub service and characteristic.
var (
	lwp3ServiceUUID, _ = bluetooth.ParseUUID("00001623-1212-efde-1623-785feabcd123")
	lwp3CharUUID, _    = bluetooth.ParseUUID("00001624-1212-efde-1623-785feabcd123")
)

type bleTransport struct {
	device bluetooth.Device
	char   bluetooth.DeviceCharacteristic
}

// Connect scans for a hub advertising the given name, connects and resolves
// the LWP3 command characteristic. Any failure here is fatal for the
// caller: the control loop must not start without a live transport.
func Connect(deviceName string) (Transport, error) {
	errFactory := errors.New()

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, errFactory.Wrap(ErrAdapterInit, err)
	}

	logger.Info().Str("device", deviceName).Msg("Scanning for hub")

	var (
		found  bluetooth.ScanResult
		hasHit bool
	)

	timer := time.AfterFunc(scanTimeout, func() {
		_ = adapter.StopScan()
	})
	err := adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
		name := result.LocalName()
		if name != "" && strings.Contains(name, deviceName) {
			found = result
			hasHit = true
			_ = a.StopScan()
		}
	})
	timer.Stop()
	if err != nil {
		return nil, errFactory.Wrap(ErrScanFailed, err)
	}
	if !hasHit {
		return nil, errFactory.WithData(ErrDeviceNotFound, deviceName)
	}

	logger.Info().
		Str("name", found.LocalName()).
		Str("address", found.Address.String()).
		Msg("Hub found, connecting")

	device, err := adapter.Connect(found.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, errFactory.Wrap(ErrConnectFailed, err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{lwp3ServiceUUID})
	if err != nil || len(services) == 0 {
		_ = device.Disconnect()
		return nil, errFactory.Wrap(ErrServiceDiscover, err)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{lwp3CharUUID})
	if err != nil || len(chars) == 0 {
		_ = device.Disconnect()
		return nil, errFactory.Wrap(ErrServiceDiscover, err)
	}

	logger.Info().Msg("Connected to hub")

	return &bleTransport{
		device: device,
		char:   chars[0],
	}, nil
}

func (t *bleTransport) Write(frame []byte) error {
	errFactory := errors.New()

	if len(frame) != FrameLen {
		return errFactory.WithData(ErrInvalidFrame, len(frame))
	}

	if _, err := t.char.WriteWithoutResponse(frame); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	return nil
}

func (t *bleTransport) Close() error {
	errFactory := errors.New()

	if err := t.device.Disconnect(); err != nil {
		return errFactory.Wrap(ErrDisconnect, err)
	}

	return nil
}
