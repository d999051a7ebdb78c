package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// VLYNQ register byte offsets (C6), identical for both instances.
const (
	vlynqREVID  = 0x00
	vlynqCTRL   = 0x04
	vlynqSTATUS = 0x08
)

const vlynqFixedRevID = 0x00010206

func (d *Device) vlynqLoad(index int, off uint32) uint32 {
	if off == vlynqREVID {
		return vlynqFixedRevID
	}
	return regbuf.Read32(d.vlynq[index], off)
}

func (d *Device) vlynqStore(index int, off uint32, v uint32) {
	regbuf.Write32(d.vlynq[index], off, v)

	if off != vlynqCTRL {
		return
	}

	if v&1 != 0 {
		regbuf.ClearBits(d.vlynq[index], vlynqSTATUS, 1)
	} else {
		regbuf.SetBits(d.vlynq[index], vlynqSTATUS, 1)
	}
}

// vlynqMemLoad services the VLYNQ0 memory window, which is plain storage
// except for a fixed fake PCI device-ID readable at vlynqPCIIDOffset.
func (d *Device) vlynqMemLoad(off uint32) uint32 {
	if off == vlynqPCIIDOffset {
		return vlynqPCIIDValue
	}
	return regbuf.Read32(d.vlynq0Mem, off)
}
