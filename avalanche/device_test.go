package avalanche

import "testing"

func TestInitBindsFirstTwoAR7NICs(t *testing.T) {
	cpu := newFakeCPU()
	mem := newFakePhysMem(1 << 16)
	d := NewDevice(cpu, mem)

	net1 := &fakeNet{}
	net2 := &fakeNet{}
	net3 := &fakeNet{}
	d.Init([]NICConfig{
		{Model: "e1000", Backend: net3},
		{Model: "ar7", Backend: net1},
		{Backend: net2},
		{Model: "ar7", Backend: &fakeNet{}},
	})

	if !d.nic[0].bound || d.nic[0].out != net1 {
		t.Fatal("first ar7 NIC not bound to slot 0")
	}
	if !d.nic[1].bound || d.nic[1].out != net2 {
		t.Fatal("second eligible NIC not bound to slot 1")
	}
}

func TestResetClearsInterruptStateButPreservesStorage(t *testing.T) {
	d, cpu, _ := newTestDevice()

	d.Store32(baseEMIF+0x10, 0x12345678)
	d.Store32(baseINTC+intcEnableSet1*4, 0xff)
	d.RaiseLine(lineSerial0)

	d.Reset()

	if d.intmask[0] != 0 {
		t.Fatalf("intmask[0] after Reset = 0x%x, want 0", d.intmask[0])
	}
	if cpu.irq0Asserted {
		t.Fatal("HW-IRQ0 still asserted after Reset")
	}
	if got := d.Load32(baseEMIF + 0x10); got != 0x12345678 {
		t.Fatalf("EMIF storage lost across Reset: got 0x%x", got)
	}
}

func TestResetReappliesPowerOnDefaults(t *testing.T) {
	d, _, _ := newTestDevice()

	d.Store32(baseGPIO, 0)
	d.Reset()

	if got := d.Load32(baseGPIO); got != 0x00000800 {
		t.Fatalf("GPIO after Reset = 0x%x, want power-on default 0x00000800", got)
	}
}
