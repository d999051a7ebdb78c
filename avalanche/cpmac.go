package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// CPMAC register byte offsets (C8), identical for both instances.
const (
	cpmacRXMaxLen      = 0x010c
	cpmacTXIntMaskSet  = 0x0178
	cpmacMACInVector   = 0x0180
	cpmacMACAddrLo0    = 0x01b0
	cpmacMACAddrMid    = 0x01d0
	cpmacMACAddrHi     = 0x01d4
	cpmacStatsStart    = 0x0200
	cpmacStatsEnd      = 0x028c
	cpmacTXGoodFrames  = 0x0234
	cpmacRXGoodFrames  = 0x0200
	cpmacRXBroadcast   = 0x0204
	cpmacRXMulticast   = 0x0208
	cpmacRXOversized   = 0x0218
	cpmacRXUndersized  = 0x0220
	cpmacTX0HDP        = 0x0600
	cpmacTX7HDP        = 0x061c
	cpmacRX0HDP        = 0x0620
	cpmacRX7HDP        = 0x063c
)

const (
	macInVectorTXIntOr = uint32(1) << 16
	macInVectorRXIntOr = uint32(1) << 17
)

// cpmacIRQLine maps a CPMAC instance index to its platform IRQ line.
var cpmacIRQLine = [2]int{lineCPMAC0, lineCPMAC1}

func (d *Device) cpmacLoad(index int, off uint32) uint32 {
	buf := d.cpmac[index]
	val := regbuf.Read32(buf, off)

	if off == cpmacMACInVector {
		regbuf.Write32(buf, off, 0)
	}

	return val
}

func (d *Device) cpmacStore(index int, off uint32, v uint32) {
	buf := d.cpmac[index]

	switch {
	case off == cpmacRXMaxLen:
		d.logger.Debug("cpmac RX_MAXLEN set", "cpmac", index, "maxlen", v)
		regbuf.Write32(buf, off, v)

	case off == cpmacTXIntMaskSet:
		regbuf.Write32(buf, off, v)
		if v != 0 {
			channel := lowestSetBit(v)
			regbuf.SetBits(buf, cpmacMACInVector, macInVectorTXIntOr|uint32(channel))
			d.RaiseLine(cpmacIRQLine[index])
		}

	case off == cpmacMACAddrHi:
		regbuf.Write32(buf, off, v)
		d.latchMACAddress(index)

	case off >= cpmacStatsStart && off <= cpmacStatsEnd:
		if v == 0xffffffff {
			regbuf.Write32(buf, off, 0)
		} else {
			d.logger.Warn("programming error: non-clearing write to statistics register", "cpmac", index, "offset", off, "value", v, "pc", d.cpu.PC(), "ra", d.cpu.RA())
		}

	case off >= cpmacTX0HDP && off <= cpmacTX7HDP:
		regbuf.Write32(buf, off, v)
		channel := (off - cpmacTX0HDP) / 4
		d.txDMA(index, channel, v)

	case off >= cpmacRX0HDP && off <= cpmacRX7HDP:
		regbuf.Write32(buf, off, v)

	default:
		regbuf.Write32(buf, off, v)
	}
}

// latchMACAddress assembles nic[index].phys from the compound
// MACADDRLO_0/MACADDRMID/MACADDRHI byte fields, in the order the
// original firmware reads them back out.
func (d *Device) latchMACAddress(index int) {
	buf := d.cpmac[index]
	phys := &d.nic[index].phys

	phys[5] = buf[cpmacMACAddrLo0]
	phys[4] = buf[cpmacMACAddrMid]
	phys[3] = buf[cpmacMACAddrHi+3]
	phys[2] = buf[cpmacMACAddrHi+2]
	phys[1] = buf[cpmacMACAddrHi+1]
	phys[0] = buf[cpmacMACAddrHi+0]
}

func lowestSetBit(v uint32) int {
	for c := 0; c < 32; c++ {
		if v&(1<<uint(c)) != 0 {
			return c
		}
	}
	return 0
}
