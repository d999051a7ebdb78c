package avalanche

import "testing"

// P2 (IRQ gating): asserting a line with its intmask bit clear leaves
// HW-IRQ0 deasserted; enabling the bit and re-asserting raises it.
func TestP2IRQGating(t *testing.T) {
	cases := []struct {
		line       int
		channel    uint
		enableWord uint32 // byte offset of the enable-set register for this channel's intmask word
	}{
		{lineSerial0, 7, intcEnableSet1 * 4},
		{lineSerial1, 8, intcEnableSet1 * 4},
		{lineCPMAC0, 19, intcEnableSet1 * 4},
		{lineCPMAC1, 33, intcEnableSet2 * 4}, // channel 33 lives in intmask[1], bit 1
	}

	for _, c := range cases {
		d, cpu, _ := newTestDevice()

		d.RaiseLine(c.line)
		if cpu.irq0Asserted {
			t.Fatalf("line %d: HW-IRQ0 asserted with mask bit clear", c.line)
		}

		d.Store32(baseINTC+c.enableWord, 1<<(c.channel%32))
		d.RaiseLine(c.line)
		if !cpu.irq0Asserted {
			t.Fatalf("line %d: HW-IRQ0 not asserted after enabling channel %d", c.line, c.channel)
		}
	}
}

// Scenario 1 (spec section 8): enable the CPMAC0 serial IRQ channel,
// raise its line, and observe the priority-vector latch.
func TestScenarioEnableCPMAC0SerialIRQ(t *testing.T) {
	d, cpu, _ := newTestDevice()

	channel := channelForLine(lineSerial0) // 7
	d.Store32(baseINTC+intcEnableSet1*4, 1<<uint(channel))

	d.RaiseLine(lineSerial0)

	got := d.Load32(baseINTC + intcPriorityIdx*4)
	want := (uint32(channel) << 16) | uint32(lineSerial0)
	if got != want {
		t.Fatalf("INTC priority idx = 0x%08x, want 0x%08x", got, want)
	}
	if !cpu.irq0Asserted {
		t.Fatal("HW-IRQ0 not asserted")
	}

	d.ClearLine(lineSerial0)
	if got := d.Load32(baseINTC + intcPriorityIdx*4); got != 0 {
		t.Fatalf("INTC priority idx after deassert = 0x%08x, want 0", got)
	}
	if cpu.irq0Asserted {
		t.Fatal("HW-IRQ0 still asserted after deassert")
	}
}

func TestIgnoredIRQLine(t *testing.T) {
	d, cpu, _ := newTestDevice()

	d.RaiseLine(99)
	if cpu.irq0Asserted {
		t.Fatal("unsupported line must never assert HW-IRQ0")
	}
}
