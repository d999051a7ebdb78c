package avalanche

import (
	"log/slog"

	"github.com/ar7soc/avalanche/internal/regbuf"
)

// NICConfig describes one network backend a Device may attach at Init,
// mirroring the machine's "-net nic,model=ar7" selector (spec section 6).
// Only two slots exist; Init binds the first two entries whose Model is
// empty or "ar7", matching the original attach filter.
type NICConfig struct {
	Model   string
	Backend NetOps
	MAC     [6]byte
}

// nicSlot holds one CPMAC instance's bound MAC address and backend.
type nicSlot struct {
	phys  [6]byte
	out   NetOps
	bound bool
}

// Device is the singleton peripheral-complex model (C10). It owns every
// register bank and the two CPMAC/VLYNQ instance pairs, and is the handle
// threaded through every callback registered with the host runtime (IRQ
// intake, network receive, snapshot) so that no process-global state is
// needed.
type Device struct {
	cpu     CpuOps
	physMem PhysMem
	logger  *slog.Logger

	nic       [2]nicSlot
	intmask   [2]uint32
	bigendian bool

	adsl      []byte
	bbif      []byte
	atmsar    []byte
	usbMem    []byte
	vlynq0Mem []byte
	cpmac     [2][]byte
	emif      []byte
	gpio      []byte
	clock     []byte
	watchdog  []byte
	timer0    []byte
	timer1    []byte
	usbSlave  []byte
	resetCtrl []byte
	vlynq     [2][]byte
	dcl       []byte
	mdio      []byte
	ohioWDT   []byte
	intc      []byte

	// phy is the register file for the single live PHY (wire address 31,
	// aliased internally to index 0): control, status, two reserved
	// half-words, advertise, remote-advertise.
	phy [6]uint16

	table []bankRange
}

// Option configures a Device at construction time.
type Option func(*Device)

// WithLogger attaches a structured logger. If unset, NewDevice defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.logger = l
	}
}

// NewDevice allocates a Device with all register banks sized per the
// table in spec section 6. The Device is not yet usable for MMIO until
// Init is called.
func NewDevice(cpu CpuOps, physMem PhysMem, opts ...Option) *Device {
	d := &Device{
		cpu:       cpu,
		physMem:   physMem,
		adsl:      make([]byte, 128*1024),
		bbif:      make([]byte, 4),
		atmsar:    make([]byte, 36*1024),
		usbMem:    make([]byte, 8*1024),
		vlynq0Mem: make([]byte, 264*1024),
		emif:      make([]byte, 256),
		gpio:      make([]byte, 32),
		clock:     make([]byte, 256),
		watchdog:  make([]byte, 128),
		timer0:    make([]byte, 8),
		timer1:    make([]byte, 8),
		usbSlave:  make([]byte, 80),
		resetCtrl: make([]byte, 12),
		dcl:       make([]byte, 20),
		mdio:      make([]byte, 136),
		ohioWDT:   make([]byte, 32),
		intc:      make([]byte, 768),
	}
	d.cpmac[0] = make([]byte, 2*1024)
	d.cpmac[1] = make([]byte, 2*1024)
	d.vlynq[0] = make([]byte, 256)
	d.vlynq[1] = make([]byte, 256)

	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	d.table = bankTable()

	return d
}

// Init performs one-time setup: attaching NICs from nics (up to two,
// filtered by model name "ar7" or unset, per the original ar7_nic_init
// loop) and establishing power-on register defaults. Init always records
// bigendian as false: only a little-endian guest is modeled, and there is
// no option to select another byte order.
func (d *Device) Init(nics []NICConfig) {
	d.bigendian = false

	bound := 0
	for _, n := range nics {
		if bound >= 2 {
			break
		}
		if n.Model != "" && n.Model != "ar7" {
			continue
		}
		d.nic[bound] = nicSlot{phys: n.MAC, out: n.Backend, bound: n.Backend != nil}
		bound++
	}

	d.applyPowerOnDefaults()
}

// Reset restores the power-on register defaults documented in spec
// section 6 and clears interrupt state. Storage banks without a
// documented reset default persist across reset, matching the Lifecycle
// note that only bits explicitly called out as reset-default change.
func (d *Device) Reset() {
	d.intmask[0] = 0
	d.intmask[1] = 0
	for i := range d.intc {
		d.intc[i] = 0
	}
	d.phy = [6]uint16{}
	d.applyPowerOnDefaults()
	d.cpu.ClearHWIRQ0()
}

func (d *Device) applyPowerOnDefaults() {
	regbuf.Write32(d.gpio, 0, 0x00000800)
	regbuf.Write32(d.dcl, 0, 0x025d4291)
	regbuf.Write32(d.mdio, 0, 0x00070101)
	regbuf.Write32(d.mdio, 2*4, 0xffffffff)

	d.phy = [6]uint16{
		phyAutoNegotiateEn,
		0x7801 + 0x0008,
		0,
		0,
		0x100 + 0x80 + 0x40 + 0x20 + 0x01,
		0x01,
	}
}
