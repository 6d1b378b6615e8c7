package rsp

import "sync/atomic"

// Freeze marks the detector configuration as immutable.
func (d *Detector) Freeze() {
	atomic.StoreInt32(&d.frozen, 1)
}

func (d *Detector) requireNotFrozen(action string) {
	if atomic.LoadInt32(&d.frozen) == 1 {
		panic("detector: " + action + " called after Freeze")
	}
}
