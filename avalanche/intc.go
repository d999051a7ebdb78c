package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// INTC word indices, named as in spec section 4.3.
const (
	intcStatusSet1  = 0
	intcStatusSet2  = 1
	intcClear1      = 4
	intcClear2      = 5
	intcEnableSet1  = 8
	intcEnableSet2  = 9
	intcEnableClr1  = 12
	intcEnableClr2  = 13
	intcPriorityIdx = 16
	intcMaskIdx     = 17
)

// external IRQ line numbers this model drives, and their INTC channel.
const (
	lineSerial0 = 15
	lineSerial1 = 16
	lineCPMAC0  = 27
	lineCPMAC1  = 41
)

func channelForLine(line int) int {
	return line - 8
}

func (d *Device) intcLoad(off uint32) uint32 {
	return regbuf.Read32(d.intc, off)
}

func (d *Device) intcStore(off uint32, v uint32) {
	idx := off / 4

	switch idx {
	case intcEnableSet1:
		d.intmask[0] |= v
		regbuf.Write32(d.intc, off, v)
	case intcEnableSet2:
		d.intmask[1] |= v
		regbuf.Write32(d.intc, off, v)
	case intcEnableClr1:
		d.intmask[0] &^= v
		regbuf.Write32(d.intc, off, v)
	case intcEnableClr2:
		d.intmask[1] &^= v
		regbuf.Write32(d.intc, off, v)
	case intcPriorityIdx:
		// Read-only: only IRQ intake (RaiseLine/ClearLine) latches this.
		d.logger.Warn("write to read-only INTC priority index", "value", v)
	default:
		regbuf.Write32(d.intc, off, v)
	}
}

// RaiseLine asserts the platform IRQ line (C11). Only the four lines the
// model drives are recognized; others are logged and ignored. The
// resulting channel is line-8; HW-IRQ0 only asserts if the channel's bit
// is set in the intmask word selected by channel/32 (channel 33, CPMAC1's
// channel, lives in intmask[1]).
func (d *Device) RaiseLine(line int) {
	switch line {
	case lineSerial0, lineSerial1, lineCPMAC0, lineCPMAC1:
	default:
		d.logger.Warn("ignoring unsupported IRQ line", "line", line)
		return
	}

	channel := channelForLine(line)
	word, bit := channel/32, channel%32
	if d.intmask[word]&(1<<uint(bit)) == 0 {
		return
	}

	regbuf.Write32(d.intc, intcPriorityIdx*4, (uint32(channel)<<16)|uint32(line))
	d.cpu.RaiseHWIRQ0()
}

// ClearLine deasserts the platform IRQ line, regardless of masking (this
// matches the deassertion branch in the original interrupt handler, which
// does not consult intmask).
func (d *Device) ClearLine(line int) {
	switch line {
	case lineSerial0, lineSerial1, lineCPMAC0, lineCPMAC1:
	default:
		d.logger.Warn("ignoring unsupported IRQ line", "line", line)
		return
	}

	regbuf.Write32(d.intc, intcPriorityIdx*4, 0)
	d.cpu.ClearHWIRQ0()
}
