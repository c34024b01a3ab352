// Package lockfile keeps one API server running per data directory.
//
// The lockfile holds "addr|pid". A lock whose process is gone, or belongs to a
// different executable, is stale and may be taken over.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/energyflow/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpid          = os.Getpid
)

// ErrRunning is returned by Acquire when a live server holds the lock.
var ErrRunning = errors.New("energyflow server is already running")

// Entry is the content of a lockfile.
type Entry struct {
	Addr string
	PID  int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s|%d", e.Addr, e.PID)
}

// Read parses the lockfile at path.
func Read(path string) (Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}

	addr, pidStr, ok := strings.Cut(strings.TrimSpace(string(content)), "|")
	if !ok || strings.Contains(pidStr, "|") {
		return Entry{}, errors.New("lockfile is malformed")
	}
	if strings.TrimSpace(addr) == "" {
		return Entry{}, errors.New("address in lockfile is empty")
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return Entry{}, errors.New("invalid process ID in lockfile")
	}
	return Entry{Addr: addr, PID: pid}, nil
}

// Running returns the entry at path if its process is a live energyflow server.
func Running(path string) (Entry, bool) {
	e, err := Read(path)
	if err != nil {
		return Entry{}, false
	}
	process, err := findProcessFunc(e.PID)
	if err != nil || process == nil {
		return Entry{}, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return Entry{}, false
	}
	return e, true
}

// Acquire writes a lockfile for addr and returns a func that removes it.
func Acquire(path, addr string) (func() error, error) {
	if e, ok := Running(path); ok && e.PID != getpid() {
		return nil, fmt.Errorf("%w (pid %d, %s)", ErrRunning, e.PID, e.Addr)
	}

	entry := Entry{Addr: addr, PID: getpid()}
	if err := os.WriteFile(path, []byte(entry.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	release := func() error {
		current, err := Read(path)
		if err != nil || current.PID != entry.PID {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return release, nil
}
