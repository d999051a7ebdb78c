// Package avalanche models the on-chip peripheral complex ("avalanche") of
// the Texas Instruments AR7 system-on-chip: the MMIO dispatch fabric plus
// the CPMAC, interrupt controller, MDIO/PHY, watchdog, VLYNQ and reset
// peripherals that unmodified AR7 guest firmware expects to find behind its
// I/O address window.
package avalanche

// CpuOps is the capability handle the Device uses to reach the guest CPU.
// It is supplied by the surrounding machine so the Device never holds a
// reference back to a concrete CPU type, keeping the dependency one-way.
type CpuOps interface {
	// RaiseHWIRQ0 asserts the MIPS CPU's hardware interrupt line 0.
	RaiseHWIRQ0()
	// ClearHWIRQ0 deasserts hardware interrupt line 0.
	ClearHWIRQ0()
	// RequestMachineReset triggers a whole-machine reset.
	RequestMachineReset()
	// PC returns the faulting program counter, for diagnostics on
	// programming errors (unmapped access, misaligned access, ...).
	PC() uint32
	// RA returns the current return address register, logged alongside
	// PC on programming-error diagnostics per spec section 7.
	RA() uint32
	// PortIn8 reads a byte from the legacy I/O port space, used by the
	// UART bridge (C9) to reach the external 16450 model.
	PortIn8(port uint32) uint8
	// PortOut8 writes a byte to the legacy I/O port space.
	PortOut8(port uint32, v uint8)
}

// PhysMem is the capability handle for guest physical memory. The Device
// never dereferences a guest pointer directly; every descriptor-ring or
// payload access goes through these two calls so the host runtime's
// dirty-page tracking and memory barrier with the CPU are preserved.
type PhysMem interface {
	// ReadPhys copies len(buf) bytes from guest physical address addr
	// into buf.
	ReadPhys(addr uint32, buf []byte)
	// WritePhys copies buf into guest physical memory at addr.
	WritePhys(addr uint32, buf []byte)
}

// NetOps is the capability handle for a network backend bound to one NIC
// slot. Send is called synchronously from TX DMA; the backend delivers
// received frames back through Device.CanReceive / Device.Receive.
type NetOps interface {
	// Send transmits buf out the backend. The call is expected to
	// complete (or queue) without blocking the caller.
	Send(buf []byte)
}
