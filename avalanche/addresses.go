package avalanche

// bankKind selects which handler a bank's accesses are routed through.
// Most banks are plain little-endian storage; the rest have a dedicated
// handler implementing the side effects documented in spec section 4.
type bankKind int

const (
	kindStorage   bankKind = iota // plain store-read, no side effects
	kindGPIO                      // storage, reset default word0 = 0x800
	kindClock                     // storage, PLL-locked toggle on bit 0
	kindWatchdog                  // C5
	kindUART                      // C9, delegated to CpuOps.PortIn8/PortOut8
	kindUSBSlave                  // storage, reads always 0xffffffff
	kindResetCtrl                 // C7
	kindVLYNQ                     // C6, two instances selected by index
	kindVLYNQMem                  // storage + fixed PCI-ID fake at +0x41000
	kindDCL                       // storage, reset default word0 = 0x025d4291
	kindMDIO                      // C4
	kindINTC                      // C3
	kindCPMAC                     // C8, two instances selected by index
	kindAllOnes                  // second window, always reads 0xffffffff
)

// bankRange is an immutable (base, size, kind) entry as described in
// spec section 3 ("Address-range entity"). index distinguishes between
// the two instances of kinds that come in pairs (CPMAC, VLYNQ, UART).
type bankRange struct {
	base  uint32
	size  uint32
	kind  bankKind
	index int
}

// Physical base addresses, named exactly as in spec section 6.
const (
	baseADSL      = 0x01000000
	baseBBIF      = 0x02000000
	baseATMSAR    = 0x03000000
	baseUSBMem    = 0x03400000
	baseVLYNQ0Mem = 0x04000000
	baseCPMAC0    = 0x08610000
	baseEMIF      = 0x08610800
	baseGPIO      = 0x08610900
	baseClock     = 0x08610a00
	baseWatchdog  = 0x08610b00
	baseTimer0    = 0x08610c00
	baseTimer1    = 0x08610d00
	baseUART0     = 0x08610e00
	baseUART1     = 0x08610f00
	baseUSBSlave  = 0x08611200
	baseResetCtrl = 0x08611600
	baseVLYNQ0    = 0x08611800
	baseDCL       = 0x08611a00
	baseVLYNQ1    = 0x08611c00
	baseMDIO      = 0x08611e00
	baseOhioWDT   = 0x08611f00
	baseINTC      = 0x08612400
	baseCPMAC1    = 0x08612800

	baseSecondWindow = 0x1e000000
	sizeSecondWindow = 0x1fc00000 - 0x1e000000

	vlynqPCIIDOffset = 0x41000
	vlynqPCIIDValue  = 0x9066104c
)

// bankTable is the linear lookup table searched by the MMIO dispatcher
// (C2) with base <= addr < base+size. Order does not matter for
// correctness; it is kept in address order for readability.
func bankTable() []bankRange {
	return []bankRange{
		{baseADSL, 128 * 1024, kindStorage, 0},
		{baseBBIF, 4, kindStorage, 0},
		{baseATMSAR, 36 * 1024, kindStorage, 0},
		{baseUSBMem, 8 * 1024, kindStorage, 0},
		{baseVLYNQ0Mem, 264 * 1024, kindVLYNQMem, 0},
		{baseCPMAC0, 2 * 1024, kindCPMAC, 0},
		{baseEMIF, 256, kindStorage, 0},
		{baseGPIO, 32, kindGPIO, 0},
		{baseClock, 256, kindClock, 0},
		{baseWatchdog, 128, kindWatchdog, 0},
		{baseTimer0, 8, kindStorage, 0},
		{baseTimer1, 8, kindStorage, 0},
		{baseUART0, 32, kindUART, 0},
		{baseUART1, 32, kindUART, 1},
		{baseUSBSlave, 80, kindUSBSlave, 0},
		{baseResetCtrl, 12, kindResetCtrl, 0},
		{baseVLYNQ0, 256, kindVLYNQ, 0},
		{baseDCL, 20, kindDCL, 0},
		{baseVLYNQ1, 256, kindVLYNQ, 1},
		{baseMDIO, 136, kindMDIO, 0},
		{baseOhioWDT, 32, kindStorage, 0},
		{baseINTC, 768, kindINTC, 0},
		{baseCPMAC1, 2 * 1024, kindCPMAC, 1},
		{baseSecondWindow, sizeSecondWindow, kindAllOnes, 0},
	}
}

// findBank returns the bank covering addr, or ok=false on an unmapped
// access.
func findBank(table []bankRange, addr uint32) (bankRange, bool) {
	for _, b := range table {
		if addr >= b.base && addr < b.base+b.size {
			return b, true
		}
	}
	return bankRange{}, false
}
