package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// MDIO word indices named in spec section 4.4.
const (
	mdioVER        = 0
	mdioCONTROL    = 1
	mdioLINK       = 8
	mdioUserAccess = 32
)

// USERACCESS0 bit layout.
const (
	uaGO      = uint32(1) << 31
	uaWRITE   = uint32(1) << 30
	uaREGADDR = uint32(0x1f) << 21
	uaPHYADDR = uint32(0x1f) << 16
	uaDATA    = uint32(0xffff)
)

// PHY control-register bits (regaddr 0).
const (
	phyReset           = uint16(1) << 15
	phyAutoNegotiateEn = uint16(1) << 12
	phyIsolate         = uint16(1) << 10
	phyRenegotiate     = uint16(1) << 9
)

const liveMDIOPhyAddr = 31

func (d *Device) mdioLoad(off uint32) uint32 {
	return regbuf.Read32(d.mdio, off)
}

func (d *Device) mdioStore(off uint32, v uint32) {
	idx := off / 4

	if idx != mdioUserAccess || v&uaGO == 0 {
		regbuf.Write32(d.mdio, off, v)
		return
	}

	write := v&uaWRITE != 0
	regaddr := (v & uaREGADDR) >> 21
	phyaddr := (v & uaPHYADDR) >> 16

	result := uint16(v & uaDATA)
	if phyaddr == liveMDIOPhyAddr && regaddr < 6 {
		result = d.mdioUserAccess(regaddr, write, result)
	}

	// The original firmware observes GO, WRITE, ACK and the address
	// fields all cleared after an access completes: only the DATA bits
	// survive the write-back, and on a read those bits carry the PHY
	// register's (possibly just-transitioned) value back to the host.
	regbuf.Write32(d.mdio, off, uint32(result))
}

// mdioUserAccess services one USERACCESS0 access to the single live PHY
// and returns the DATA-bits value the register should read back as.
func (d *Device) mdioUserAccess(regaddr uint32, write bool, data uint16) uint16 {
	if write {
		d.phy[regaddr] = data
		return data
	}

	cur := d.phy[regaddr]

	switch {
	case regaddr == 0 && cur&phyReset != 0:
		cur = (cur &^ phyReset) | phyAutoNegotiateEn
		d.phy[0] = cur
	case regaddr == 0 && cur&phyRenegotiate != 0:
		cur &^= phyRenegotiate
		d.phy[0] = cur
		// auto-negotiation complete, link up, capable
		d.phy[1] = 0x782d
		d.phy[5] = d.phy[4] | phyIsolate | phyReset
		regbuf.Write32(d.mdio, mdioLINK*4, 0x80000000)
	}

	return cur
}
