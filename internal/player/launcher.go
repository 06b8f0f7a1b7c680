package player

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

const (
	DefaultStartupGrace = 400 * time.Millisecond
	outputTailSize      = 4096
)

// ExecLauncher runs VLC headless with its rc interface bound to ControlAddress.
type ExecLauncher struct {
	Binary         string
	ControlAddress string
	ExtraArgs      []string
	// StartupGrace is how long a new process must stay alive to count as launched.
	StartupGrace time.Duration
}

// Args builds the player command line for url.
func (l *ExecLauncher) Args(url string) []string {
	args := []string{
		"--intf", "dummy",
		"--extraintf", "rc",
		"--rc-host", l.ControlAddress,
	}
	if runtime.GOOS == "windows" {
		args = append(args, "--rc-quiet")
	}
	args = append(args, l.ExtraArgs...)
	return append(args, url)
}

func (l *ExecLauncher) Launch(url string) (Process, error) {
	cmd := exec.Command(l.Binary, l.Args(url)...)

	// Player output would corrupt the screen, keep only a tail for diagnostics.
	output := &tailBuffer{limit: outputTailSize}
	cmd.Stdout = output
	cmd.Stderr = output

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	proc := &execProcess{
		cmd:    cmd,
		done:   make(chan struct{}),
		output: output,
	}
	go proc.wait()

	grace := l.StartupGrace
	if grace <= 0 {
		grace = DefaultStartupGrace
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-proc.done:
		return nil, fmt.Errorf("%w: %s exited immediately (%s): %s",
			ErrLaunch, filepath.Base(l.Binary), exitDescription(proc.waitErr), output.Tail())
	case <-timer.C:
	}

	return proc, nil
}

func exitDescription(err error) string {
	if err == nil {
		return "exit status 0"
	}
	return err.Error()
}

type execProcess struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
	output  *tailBuffer
}

func (p *execProcess) wait() {
	p.waitErr = p.cmd.Wait()
	close(p.done)
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Exited() <-chan struct{} {
	return p.done
}

// Terminate sends SIGTERM (or the platform equivalent) through gopsutil.
func (p *execProcess) Terminate() error {
	proc, err := process.NewProcess(int32(p.cmd.Process.Pid))
	if err != nil {
		return fmt.Errorf("failed to look up pid %d: %w", p.cmd.Process.Pid, err)
	}
	return proc.Terminate()
}

func (p *execProcess) Kill() error {
	return p.cmd.Process.Kill()
}

// tailBuffer keeps the last limit bytes written to it. exec copies the
// child's output from its own goroutines, hence the mutex.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

// Tail returns the last non-empty line written, trimmed.
func (b *tailBuffer) Tail() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := strings.Split(strings.TrimSpace(string(b.buf)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no output"
}
