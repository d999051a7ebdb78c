package avalanche

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// snapshotVersion is the only version this format understands. Bumping
// it requires a corresponding change to Save/Load; old loaders must
// reject anything else rather than guess at a new layout.
const snapshotVersion = 0

// ErrSnapshotVersion is returned by Load when the snapshot's version
// field does not match snapshotVersion.
var ErrSnapshotVersion = errors.New("avalanche: unsupported snapshot version")

// Save serializes the entire Device state as a verbatim byte image in a
// stable field order, so that a reimplementation in another language
// cannot silently reorder fields (spec section 9).
func (d *Device) Save() []byte {
	var out []byte
	out = binary.LittleEndian.AppendUint32(out, snapshotVersion)

	for _, n := range d.nic {
		out = append(out, n.phys[:]...)
		if n.bound {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}

	out = binary.LittleEndian.AppendUint32(out, d.intmask[0])
	out = binary.LittleEndian.AppendUint32(out, d.intmask[1])

	if d.bigendian {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}

	for _, buf := range d.snapshotBanks() {
		out = append(out, buf...)
	}

	for _, reg := range d.phy {
		out = binary.LittleEndian.AppendUint16(out, reg)
	}

	return out
}

// Load restores Device state from a byte image produced by Save. No
// partial state is committed on failure.
func (d *Device) Load(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("avalanche: snapshot too short: %w", ErrSnapshotVersion)
	}

	version := binary.LittleEndian.Uint32(data[0:4])
	if version != snapshotVersion {
		return fmt.Errorf("avalanche: snapshot version %d: %w", version, ErrSnapshotVersion)
	}

	var nic [2]nicSlot
	off := 4
	for i := range nic {
		if off+7 > len(data) {
			return fmt.Errorf("avalanche: truncated snapshot reading nic[%d]", i)
		}
		copy(nic[i].phys[:], data[off:off+6])
		nic[i].bound = data[off+6] != 0
		off += 7
	}

	if off+9 > len(data) {
		return errors.New("avalanche: truncated snapshot reading intmask/bigendian")
	}
	intmask0 := binary.LittleEndian.Uint32(data[off:])
	intmask1 := binary.LittleEndian.Uint32(data[off+4:])
	bigendian := data[off+8] != 0
	off += 9

	banks := d.snapshotBanks()
	staged := make([][]byte, len(banks))
	for i, buf := range banks {
		if off+len(buf) > len(data) {
			return fmt.Errorf("avalanche: truncated snapshot reading bank %d", i)
		}
		staged[i] = append([]byte(nil), data[off:off+len(buf)]...)
		off += len(buf)
	}

	var phy [6]uint16
	for i := range phy {
		if off+2 > len(data) {
			return errors.New("avalanche: truncated snapshot reading phy registers")
		}
		phy[i] = binary.LittleEndian.Uint16(data[off:])
		off += 2
	}

	// Every field parsed successfully: commit all at once so a failure
	// above never leaves the live banks partially overwritten.
	for i, buf := range banks {
		copy(buf, staged[i])
	}
	for i := range nic {
		d.nic[i].phys = nic[i].phys
		d.nic[i].bound = nic[i].bound
	}
	d.intmask[0] = intmask0
	d.intmask[1] = intmask1
	d.bigendian = bigendian
	d.phy = phy

	return nil
}

// snapshotBanks lists every register-bank buffer in the stable order
// matching the address table in spec section 6. nic backends are not
// part of this list: a NetOps handle cannot be serialized, only the
// nicSlot data captured separately in Save/Load.
func (d *Device) snapshotBanks() [][]byte {
	return [][]byte{
		d.adsl,
		d.bbif,
		d.atmsar,
		d.usbMem,
		d.vlynq0Mem,
		d.cpmac[0],
		d.emif,
		d.gpio,
		d.clock,
		d.watchdog,
		d.timer0,
		d.timer1,
		d.usbSlave,
		d.resetCtrl,
		d.vlynq[0],
		d.dcl,
		d.vlynq[1],
		d.mdio,
		d.ohioWDT,
		d.intc,
		d.cpmac[1],
	}
}
