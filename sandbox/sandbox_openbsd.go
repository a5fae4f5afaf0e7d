package sandbox

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

type Sandbox struct{}

// New pledges promises. "unveil" is added until Enforce.
func New(promises ...string) (*Sandbox, error) {
	if err := unix.PledgePromises(strings.Join(append(promises, "unveil"), " ")); err != nil {
		return nil, fmt.Errorf("pledge: %w", err)
	}
	return &Sandbox{}, nil
}

func (box *Sandbox) ReadOnlyDir(path string) error {
	if err := unix.Unveil(path, "r"); err != nil {
		return fmt.Errorf("unveil read for %s: %w", path, err)
	}
	return nil
}

func (box *Sandbox) ReadOnlyFile(path string) error {
	if err := unix.Unveil(path, "r"); err != nil {
		return fmt.Errorf("unveil read for %s: %w", path, err)
	}
	return nil
}

func (box *Sandbox) ReadWriteFile(path string) error {
	if err := unix.Unveil(path, "rw"); err != nil {
		return fmt.Errorf("unveil read/write for %s: %w", path, err)
	}
	return nil
}

// Enforce locks the unveiled paths. Nothing else on the filesystem can be
// opened afterwards.
func (box *Sandbox) Enforce() error {
	if err := unix.UnveilBlock(); err != nil {
		return fmt.Errorf("finalise unveil: %w", err)
	}
	return nil
}
