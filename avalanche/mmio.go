package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// Load32 services a guest word read anywhere in the two MMIO windows
// (C2). Unmapped addresses return all-ones and are logged with the
// faulting PC. A misaligned address is logged and masked down to the
// containing word.
func (d *Device) Load32(addr uint32) uint32 {
	if addr&3 != 0 {
		d.logger.Warn("misaligned word read", "addr", addr, "pc", d.cpu.PC(), "ra", d.cpu.RA())
		addr &^= 3
	}
	return d.loadWord(addr)
}

// Load16 services a guest halfword read. Only the UART windows accept
// halfword access natively (delegated to the port-I/O bridge); elsewhere
// the access is serviced through the full word handler and logged as
// unexpected, per spec section 4.2.
func (d *Device) Load16(addr uint32) uint16 {
	bank, ok := findBank(d.table, addr)
	if ok && bank.kind == kindUART {
		port := (addr - bank.base) / 4
		return uint16(d.cpu.PortIn8(port))
	}

	d.logger.Warn("unexpected halfword read", "addr", addr, "pc", d.cpu.PC(), "ra", d.cpu.RA())
	word := d.loadWord(addr &^ 3)
	if addr&2 != 0 {
		return uint16(word >> 16)
	}
	return uint16(word)
}

// Load8 services a guest byte read, following the same UART/word-handler
// split as Load16.
func (d *Device) Load8(addr uint32) uint8 {
	bank, ok := findBank(d.table, addr)
	if ok && bank.kind == kindUART {
		port := (addr - bank.base) / 4
		return d.cpu.PortIn8(port)
	}

	d.logger.Warn("unexpected byte read", "addr", addr, "pc", d.cpu.PC(), "ra", d.cpu.RA())
	word := d.loadWord(addr &^ 3)
	shift := (addr & 3) * 8
	return uint8(word >> shift)
}

// Store32 services a guest word write. A misaligned address is logged and
// masked down to the containing word.
func (d *Device) Store32(addr uint32, v uint32) {
	if addr&3 != 0 {
		d.logger.Warn("misaligned word write", "addr", addr, "value", v, "pc", d.cpu.PC(), "ra", d.cpu.RA())
		addr &^= 3
	}
	d.storeWord(addr, v)
}

// Store16 services a guest halfword write.
func (d *Device) Store16(addr uint32, v uint16) {
	bank, ok := findBank(d.table, addr)
	if ok && bank.kind == kindUART {
		port := (addr - bank.base) / 4
		d.cpu.PortOut8(port, uint8(v))
		return
	}

	d.logger.Warn("unexpected halfword write", "addr", addr, "pc", d.cpu.PC(), "ra", d.cpu.RA())
	wordAddr := addr &^ 3
	old := d.loadWord(wordAddr)
	var merged uint32
	if addr&2 != 0 {
		merged = (old & 0x0000ffff) | (uint32(v) << 16)
	} else {
		merged = (old & 0xffff0000) | uint32(v)
	}
	d.storeWord(wordAddr, merged)
}

// Store8 services a guest byte write.
func (d *Device) Store8(addr uint32, v uint8) {
	bank, ok := findBank(d.table, addr)
	if ok && bank.kind == kindUART {
		port := (addr - bank.base) / 4
		d.cpu.PortOut8(port, v)
		return
	}

	d.logger.Warn("unexpected byte write", "addr", addr, "pc", d.cpu.PC(), "ra", d.cpu.RA())
	wordAddr := addr &^ 3
	old := d.loadWord(wordAddr)
	shift := (addr & 3) * 8
	mask := uint32(0xff) << shift
	merged := (old &^ mask) | (uint32(v) << shift)
	d.storeWord(wordAddr, merged)
}

func (d *Device) loadWord(addr uint32) uint32 {
	bank, ok := findBank(d.table, addr)
	if !ok {
		d.logger.Warn("unmapped MMIO read", "addr", addr, "pc", d.cpu.PC(), "ra", d.cpu.RA())
		return 0xffffffff
	}

	off := addr - bank.base

	switch bank.kind {
	case kindAllOnes:
		return 0xffffffff
	case kindUSBSlave:
		return 0xffffffff
	case kindUART:
		port := off / 4
		return uint32(d.cpu.PortIn8(port))
	case kindClock:
		return d.clockLoad(off)
	case kindWatchdog:
		return d.watchdogLoad(off)
	case kindResetCtrl:
		return regbuf.Read32(d.resetCtrl, off)
	case kindVLYNQ:
		return d.vlynqLoad(bank.index, off)
	case kindVLYNQMem:
		return d.vlynqMemLoad(off)
	case kindMDIO:
		return d.mdioLoad(off)
	case kindINTC:
		return d.intcLoad(off)
	case kindCPMAC:
		return d.cpmacLoad(bank.index, off)
	default:
		return regbuf.Read32(d.storageBuf(bank), off)
	}
}

func (d *Device) storeWord(addr uint32, v uint32) {
	bank, ok := findBank(d.table, addr)
	if !ok {
		d.logger.Warn("unmapped MMIO write", "addr", addr, "value", v, "pc", d.cpu.PC(), "ra", d.cpu.RA())
		return
	}

	off := addr - bank.base

	switch bank.kind {
	case kindAllOnes, kindUSBSlave:
		d.logger.Warn("write to read-only MMIO region", "addr", addr, "value", v)
	case kindUART:
		port := off / 4
		d.cpu.PortOut8(port, uint8(v))
	case kindClock:
		regbuf.Write32(d.clock, off, v)
	case kindWatchdog:
		d.watchdogStore(off, v)
	case kindResetCtrl:
		d.resetCtrlStore(off, v)
	case kindVLYNQ:
		d.vlynqStore(bank.index, off, v)
	case kindVLYNQMem:
		regbuf.Write32(d.vlynq0Mem, off, v)
	case kindMDIO:
		d.mdioStore(off, v)
	case kindINTC:
		d.intcStore(off, v)
	case kindCPMAC:
		d.cpmacStore(bank.index, off, v)
	default:
		regbuf.Write32(d.storageBuf(bank), off, v)
	}
}

// storageBuf resolves a plain-storage bank to its backing buffer. GPIO
// and DCL carry reset defaults but no read/write side effects, so they
// are serviced here too.
func (d *Device) storageBuf(bank bankRange) []byte {
	switch bank.base {
	case baseADSL:
		return d.adsl
	case baseBBIF:
		return d.bbif
	case baseATMSAR:
		return d.atmsar
	case baseUSBMem:
		return d.usbMem
	case baseEMIF:
		return d.emif
	case baseGPIO:
		return d.gpio
	case baseTimer0:
		return d.timer0
	case baseTimer1:
		return d.timer1
	case baseDCL:
		return d.dcl
	case baseOhioWDT:
		return d.ohioWDT
	default:
		panic("avalanche: unhandled storage bank")
	}
}

func (d *Device) clockLoad(off uint32) uint32 {
	val := regbuf.Read32(d.clock, off)
	switch off {
	case 0x30, 0x50, 0x70, 0x90:
		if val == 4 {
			val &^= 1
		} else {
			val |= 1
		}
	}
	return val
}
