package robot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"
)

const (
	BaudRate   = 1_000_000
	BusTimeout = 100 * time.Millisecond
	scanWait   = 2 * time.Second
)

// Found is a port with an SO-101 on it.
type Found struct {
	Port   string
	Servos []feetech.FoundServo
}

// HasJoints reports whether every driven joint answered on its default ID.
func (f Found) HasJoints() bool {
	ids := make(map[int]bool, len(f.Servos))
	for _, s := range f.Servos {
		ids[s.ID] = true
	}
	for _, name := range Joints() {
		if !ids[DefaultIDs[name]] {
			return false
		}
	}
	return true
}

// FindArms scans every serial port for servos with IDs 1-6.
func FindArms(ctx context.Context) ([]Found, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}

	var found []Found
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		servos, err := scanPort(ctx, port)
		if err != nil {
			continue
		}
		f := Found{Port: port, Servos: servos}
		if f.HasJoints() {
			found = append(found, f)
		}
	}
	return found, nil
}

func scanPort(ctx context.Context, port string) ([]feetech.FoundServo, error) {
	ctx, cancel := context.WithTimeout(ctx, scanWait)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  BusTimeout,
	})
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	return bus.Scan(ctx, 1, 6)
}

// Connect opens port and returns a handle per driven joint, for calibration.
func Connect(ctx context.Context, port string) (*feetech.Bus, map[MotorName]*feetech.Servo, error) {
	ctx, cancel := context.WithTimeout(ctx, scanWait)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  BusTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open bus: %w", err)
	}

	servos, err := bus.Scan(ctx, 1, 6)
	if err != nil {
		bus.Close()
		return nil, nil, fmt.Errorf("scan %s: %w", port, err)
	}
	f := Found{Port: port, Servos: servos}
	if !f.HasJoints() {
		bus.Close()
		return nil, nil, fmt.Errorf("%s: not an SO-101 arm", port)
	}

	byID := make(map[int]feetech.FoundServo, len(servos))
	for _, s := range servos {
		byID[s.ID] = s
	}
	joints := make(map[MotorName]*feetech.Servo, len(DefaultIDs))
	for _, name := range Joints() {
		s := byID[DefaultIDs[name]]
		joints[name] = feetech.NewServo(bus, s.ID, s.Model)
	}
	return bus, joints, nil
}
