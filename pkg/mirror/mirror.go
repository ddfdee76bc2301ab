// Package mirror makes a physical arm follow the on-screen crane.
//
// The game pushes a pose every frame; a control loop running at its own
// rate writes the most recent one to the servos. Stale poses are dropped,
// so a slow bus never holds up the game.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gwillem/wordcrane/pkg/robot"
)

// ErrRunning is returned by Start on a controller that is already running.
var ErrRunning = errors.New("mirror: already running")

// DriftLimit is how far, in radians, a joint may lag the crane before the
// read-back logs a warning.
const DriftLimit = 10 * math.Pi / 180

// Actuator is the arm being driven. *robot.Arm implements it.
type Actuator interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	WritePose(ctx context.Context, p robot.Pose) error
	ReadPose(ctx context.Context) (robot.Pose, error)
}

// State is reported after every write and every read-back. Actual and
// Drift are only set when Measured is true.
type State struct {
	Pose      robot.Pose
	Actual    robot.Pose
	Drift     float64 // largest joint error, radians
	Measured  bool
	Timestamp time.Time
	Error     error
}

// Controller runs the follow loop.
type Controller struct {
	arm Actuator
	hz  int
	log zerolog.Logger

	mu      sync.Mutex
	running bool
	last    robot.Pose
	written bool

	poseCh  chan robot.Pose
	stateCh chan State
	logCh   chan string
}

// NewController returns a controller writing to arm at hz (60 when <= 0).
func NewController(arm Actuator, hz int, log *zerolog.Logger) *Controller {
	if hz <= 0 {
		hz = 60
	}
	logger := zerolog.Nop()
	if log != nil {
		logger = log.With().Str("component", "mirror").Logger()
	}
	return &Controller{
		arm:     arm,
		hz:      hz,
		log:     logger,
		poseCh:  make(chan robot.Pose, 1),
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}
}

// Push offers the latest pose. It never blocks; an unsent older pose is
// replaced.
func (c *Controller) Push(p robot.Pose) {
	select {
	case c.poseCh <- p:
	default:
		select {
		case <-c.poseCh:
		default:
		}
		select {
		case c.poseCh <- p:
		default:
		}
	}
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the control frequency.
func (c *Controller) Hz() int {
	return c.hz
}

func (c *Controller) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	c.log.Info().Msg(line)
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line)
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start enables the arm and runs the loop until ctx is done, then
// releases torque.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrRunning
	}
	c.running = true
	c.mu.Unlock()

	if err := c.arm.Enable(ctx); err != nil {
		c.logf("Warning: failed to enable arm: %v", err)
	} else {
		c.logf("Arm: torque enabled")
	}
	c.logf("Mirroring at %d Hz", c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	// Read the arm back once a second.
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-ticker.C:
			c.step(ctx)
			if n%c.hz == 0 {
				c.check(ctx)
			}
		}
	}
}

// step writes the newest pose, if there is one and it differs from the
// last one written.
func (c *Controller) step(ctx context.Context) {
	var p robot.Pose
	select {
	case p = <-c.poseCh:
	default:
		return
	}

	c.mu.Lock()
	same := c.written && samePose(p, c.last)
	c.mu.Unlock()
	if same {
		return
	}

	if err := c.arm.WritePose(ctx, p); err != nil {
		c.logf("Write error: %v", err)
		c.sendState(State{Pose: p, Error: err, Timestamp: time.Now()})
		return
	}

	c.mu.Lock()
	c.last, c.written = p, true
	c.mu.Unlock()
	c.sendState(State{Pose: p, Timestamp: time.Now()})
}

// check compares the arm's measured pose with the last pose written.
func (c *Controller) check(ctx context.Context) {
	c.mu.Lock()
	want, written := c.last, c.written
	c.mu.Unlock()
	if !written {
		return
	}

	got, err := c.arm.ReadPose(ctx)
	if err != nil {
		c.logf("Read error: %v", err)
		c.sendState(State{Pose: want, Error: err, Timestamp: time.Now()})
		return
	}

	drift := math.Max(
		math.Abs(got.Angles.Shoulder-want.Angles.Shoulder),
		math.Abs(got.Angles.Elbow-want.Angles.Elbow),
	)
	if drift > DriftLimit {
		c.logf("Arm lags crane by %.1f°", drift*180/math.Pi)
	}
	c.log.Debug().Float64("drift", drift).Msg("read back")
	c.sendState(State{Pose: want, Actual: got, Drift: drift, Measured: true, Timestamp: time.Now()})
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		select {
		case c.stateCh <- s:
		default:
		}
	}
}

func (c *Controller) shutdown() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	if err := c.arm.Disable(context.Background()); err != nil {
		c.logf("Warning: failed to disable arm: %v", err)
	} else {
		c.logf("Arm: torque disabled")
	}
	c.logf("Mirroring stopped")
}

// samePose ignores jitter below 1e-4 rad.
func samePose(a, b robot.Pose) bool {
	const eps = 1e-4
	return a.Grip == b.Grip &&
		math.Abs(a.Angles.Shoulder-b.Angles.Shoulder) < eps &&
		math.Abs(a.Angles.Elbow-b.Angles.Elbow) < eps
}
