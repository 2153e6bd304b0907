//go:build linux || darwin || windows

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"
)

type registration struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

type manager struct {
	mu   sync.Mutex
	regs map[string]*registration
}

// New returns the desktop hotkey manager.
func New() Manager {
	return &manager{regs: make(map[string]*registration)}
}

func (m *manager) Register(accel string, callback func()) error {
	mods, key, err := parseAccel(accel)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.regs[accel]; exists {
		return fmt.Errorf("accelerator %q already registered", accel)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %q: %w", accel, err)
	}

	reg := &registration{hk: hk, done: make(chan struct{})}
	m.regs[accel] = reg

	go func() {
		for {
			select {
			case <-reg.done:
				return
			case <-hk.Keydown():
				callback()
			}
		}
	}()

	return nil
}

func (m *manager) Unregister(accel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[accel]
	if !ok {
		return fmt.Errorf("accelerator %q not registered", accel)
	}
	delete(m.regs, accel)
	close(reg.done)
	return reg.hk.Unregister()
}

func (m *manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first error
	for accel, reg := range m.regs {
		close(reg.done)
		if err := reg.hk.Unregister(); err != nil && first == nil {
			first = fmt.Errorf("unregister %q: %w", accel, err)
		}
	}
	m.regs = make(map[string]*registration)
	return first
}
