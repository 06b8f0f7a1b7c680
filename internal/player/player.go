package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultStopTimeout = 3 * time.Second

var (
	// ErrLaunch means the player binary could not be started or died right away.
	ErrLaunch = errors.New("player launch failed")
	// ErrControlChannel means a directive could not be delivered to the player.
	ErrControlChannel = errors.New("player control channel unavailable")
	// ErrNotPlaying is returned by SetVolume when no player process exists.
	ErrNotPlaying = errors.New("nothing is playing")
)

// Process is a running external player.
type Process interface {
	Pid() int
	// Exited is closed once the process has been reaped.
	Exited() <-chan struct{}
	// Terminate asks the process to exit.
	Terminate() error
	// Kill forces the process to exit.
	Kill() error
}

// Launcher starts an external player against a stream URL.
type Launcher interface {
	Launch(url string) (Process, error)
}

// VolumeSetter delivers volume directives to the running player.
type VolumeSetter interface {
	SetVolume(level int) error
}

// Controller owns at most one player process. Starting a new stream always
// stops and reaps the previous process first, so two never coexist.
type Controller struct {
	launcher    Launcher
	control     VolumeSetter
	stopTimeout time.Duration

	mu     sync.Mutex
	handle Process
	url    string
}

func NewController(launcher Launcher, control VolumeSetter, stopTimeout time.Duration) *Controller {
	if stopTimeout <= 0 {
		stopTimeout = DefaultStopTimeout
	}
	return &Controller{
		launcher:    launcher,
		control:     control,
		stopTimeout: stopTimeout,
	}
}

// Start plays url, replacing whatever was playing.
func (c *Controller) Start(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	proc, err := c.launcher.Launch(url)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Failed to start player")
		return err
	}

	c.handle = proc
	c.url = url
	log.Info().Int("pid", proc.Pid()).Str("url", url).Msg("Player started")
	return nil
}

// Stop terminates the player and waits for it to exit. No-op when idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.handle == nil {
		return
	}

	proc := c.handle
	c.handle = nil
	c.url = ""

	select {
	case <-proc.Exited():
		log.Debug().Int("pid", proc.Pid()).Msg("Player had already exited")
		return
	default:
	}

	if err := proc.Terminate(); err != nil {
		log.Debug().Err(err).Int("pid", proc.Pid()).Msg("Terminate failed, killing")
		if err := proc.Kill(); err != nil {
			log.Warn().Err(err).Int("pid", proc.Pid()).Msg("Kill failed")
		}
	}

	timer := time.NewTimer(c.stopTimeout)
	defer timer.Stop()

	select {
	case <-proc.Exited():
	case <-timer.C:
		log.Warn().Int("pid", proc.Pid()).Dur("timeout", c.stopTimeout).Msg("Player ignored terminate, killing")
		if err := proc.Kill(); err != nil {
			log.Warn().Err(err).Int("pid", proc.Pid()).Msg("Kill failed")
		}
		<-proc.Exited()
	}

	log.Debug().Int("pid", proc.Pid()).Msg("Player stopped")
}

// SetVolume forwards level to the running player over the control channel.
func (c *Controller) SetVolume(level int) error {
	c.mu.Lock()
	playing := c.handle != nil
	c.mu.Unlock()

	if !playing {
		return ErrNotPlaying
	}

	if err := c.control.SetVolume(level); err != nil {
		log.Warn().Err(err).Int("volume", level).Msg("Volume directive not delivered")
		return err
	}

	log.Debug().Int("volume", level).Msg("Volume set")
	return nil
}

// Playing reports whether a player process is held.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != nil
}

// URL returns the stream being played, or "".
func (c *Controller) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

func (c *Controller) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return "idle"
	}
	return fmt.Sprintf("pid %d playing %s", c.handle.Pid(), c.url)
}
