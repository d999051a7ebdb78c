package avalanche

import "testing"

// Scenario 6 (spec section 8): prescale unlock sequence followed by an
// accepted value write. The rejected write without the unlock is checked
// by TestP6WatchdogLockSequencing.
func TestScenarioWatchdogPrescale(t *testing.T) {
	d, _, _ := newTestDevice()

	d.Store32(baseWatchdog+wdPrescaleLock, prescaleLock1st)
	d.Store32(baseWatchdog+wdPrescaleLock, prescaleLock2nd)
	d.Store32(baseWatchdog+wdPrescale, 0xffff)

	if got := d.Load32(baseWatchdog + wdPrescale); got != 0xffff {
		t.Fatalf("prescale = 0x%x, want 0xffff after correct unlock", got)
	}
}

// P6 (watchdog lock sequencing): a value write without the unlock
// sequence must not change the value register.
func TestP6WatchdogLockSequencing(t *testing.T) {
	d, _, _ := newTestDevice()

	d.Store32(baseWatchdog+wdPrescale, 0xffff)

	if got := d.Load32(baseWatchdog + wdPrescale); got != 0 {
		t.Fatalf("prescale = 0x%x, want 0 (write must be rejected while locked)", got)
	}
}

func TestWatchdogDisableThreeStage(t *testing.T) {
	d, _, _ := newTestDevice()

	d.Store32(baseWatchdog+wdDisableLock, disableLock1st)
	d.Store32(baseWatchdog+wdDisableLock, disableLock2nd)
	d.Store32(baseWatchdog+wdDisable, 7) // still locked: only 2 of 3 stages done

	if got := d.Load32(baseWatchdog + wdDisable); got != 0 {
		t.Fatalf("disable = %d, want 0 (write must be rejected after only 2 stages)", got)
	}

	d.Store32(baseWatchdog+wdDisableLock, disableLock3rd)
	d.Store32(baseWatchdog+wdDisable, 1)

	if got := d.Load32(baseWatchdog + wdDisable); got != 1 {
		t.Fatalf("disable = %d, want 1 after full 3-stage unlock", got)
	}
}
