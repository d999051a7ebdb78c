package avalanche

// fakeCPU is a minimal CpuOps recording HW-IRQ0 and reset-request calls,
// and backing the legacy port-I/O space with a simple byte map.
type fakeCPU struct {
	irq0Asserted  bool
	resetRequests int
	ports         map[uint32]uint8
	pc            uint32
	ra            uint32
}

func newFakeCPU() *fakeCPU {
	return &fakeCPU{ports: make(map[uint32]uint8)}
}

func (c *fakeCPU) RaiseHWIRQ0()              { c.irq0Asserted = true }
func (c *fakeCPU) ClearHWIRQ0()              { c.irq0Asserted = false }
func (c *fakeCPU) RequestMachineReset()      { c.resetRequests++ }
func (c *fakeCPU) PC() uint32                { return c.pc }
func (c *fakeCPU) RA() uint32                { return c.ra }
func (c *fakeCPU) PortIn8(port uint32) uint8 { return c.ports[port] }
func (c *fakeCPU) PortOut8(port uint32, v uint8) {
	c.ports[port] = v
}

// fakePhysMem is a flat byte-slice backed guest RAM, large enough for
// the descriptor addresses used across the test suite.
type fakePhysMem struct {
	mem []byte
}

func newFakePhysMem(size int) *fakePhysMem {
	return &fakePhysMem{mem: make([]byte, size)}
}

func (m *fakePhysMem) ReadPhys(addr uint32, buf []byte) {
	copy(buf, m.mem[addr:int(addr)+len(buf)])
}

func (m *fakePhysMem) WritePhys(addr uint32, buf []byte) {
	copy(m.mem[addr:int(addr)+len(buf)], buf)
}

// fakeNet records every frame handed to Send.
type fakeNet struct {
	sent [][]byte
}

func (n *fakeNet) Send(buf []byte) {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	n.sent = append(n.sent, cp)
}

func newTestDevice() (*Device, *fakeCPU, *fakePhysMem) {
	cpu := newFakeCPU()
	mem := newFakePhysMem(1 << 20)
	d := NewDevice(cpu, mem)
	d.Init(nil)
	return d, cpu, mem
}
