package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// Watchdog register byte offsets (C5), laid out as four lock/value
// pairs; the disable pair's lock has an extra middle stage.
const (
	wdKickLock     = 0x00
	wdKick         = 0x04
	wdChangeLock   = 0x08
	wdChange       = 0x0c
	wdDisableLock  = 0x10
	wdDisable      = 0x14
	wdPrescaleLock = 0x18
	wdPrescale     = 0x1c
)

// Unlock magic values.
const (
	kickLock1st     = 0x5555
	kickLock2nd     = 0xaaaa
	changeLock1st   = 0x6666
	changeLock2nd   = 0xbbbb
	disableLock1st  = 0x7777
	disableLock2nd  = 0xcccc
	disableLock3rd  = 0xdddd
	prescaleLock1st = 0x5a5a
	prescaleLock2nd = 0xa5a5
)

// wdStage packs a 2-bit stage counter into a lock register's low bits,
// as described in spec section 3's invariant on watchdog lock registers.
func wdStage(val uint32, stage uint32) uint32 {
	return (val &^ 3) | stage
}

func (d *Device) watchdogLoad(off uint32) uint32 {
	return regbuf.Read32(d.watchdog, off)
}

func (d *Device) watchdogStore(off uint32, v uint32) {
	switch off {
	case wdKickLock:
		d.wdLockWrite(wdKickLock, v, kickLock1st, kickLock2nd, 0, 0)
	case wdKick:
		d.wdValueWrite(wdKickLock, wdKick, kickLock2nd, 3, v)
	case wdChangeLock:
		d.wdLockWrite(wdChangeLock, v, changeLock1st, changeLock2nd, 0, 0)
	case wdChange:
		d.wdValueWrite(wdChangeLock, wdChange, changeLock2nd, 3, v)
	case wdDisableLock:
		d.wdLockWrite(wdDisableLock, v, disableLock1st, disableLock2nd, disableLock3rd, 1)
	case wdDisable:
		d.wdValueWrite(wdDisableLock, wdDisable, disableLock3rd, 3, v)
	case wdPrescaleLock:
		d.wdLockWrite(wdPrescaleLock, v, prescaleLock1st, prescaleLock2nd, 0, 0)
	case wdPrescale:
		d.wdValueWrite(wdPrescaleLock, wdPrescale, prescaleLock2nd, 3, v)
	default:
		regbuf.Write32(d.watchdog, off, v)
	}
}

// wdLockWrite handles a write to a lock register. stage3Magic is nonzero
// only for disable_lock, whose middle stage writes bits=2 instead of
// jumping straight to 3; the last parameter is unused.
func (d *Device) wdLockWrite(lockOff uint32, v uint32, stage1Magic, stage2Magic, stage3Magic uint32, _ uint32) {
	switch {
	case v == stage1Magic:
		regbuf.Write32(d.watchdog, lockOff, wdStage(v, 1))
	case v == stage2Magic:
		if stage3Magic != 0 {
			regbuf.Write32(d.watchdog, lockOff, wdStage(v, 2))
		} else {
			regbuf.Write32(d.watchdog, lockOff, wdStage(v, 3))
		}
	case stage3Magic != 0 && v == stage3Magic:
		regbuf.Write32(d.watchdog, lockOff, wdStage(v, 3))
	default:
		d.logger.Warn("watchdog lock unexpected value", "offset", lockOff, "value", v)
	}
}

// wdValueWrite accepts a value-register write only when the paired lock
// register has reached wantStage, encoded with magic wantMagic in its
// high bits (wdStage(wantMagic, wantStage)).
func (d *Device) wdValueWrite(lockOff, valueOff, wantMagic, wantStage uint32, v uint32) {
	lock := regbuf.Read32(d.watchdog, lockOff)
	if lock != wdStage(wantMagic, wantStage) {
		d.logger.Warn("UNEXPECTED: watchdog value write while locked", "offset", valueOff, "value", v)
		return
	}
	regbuf.Write32(d.watchdog, valueOff, v)
}
