package avalanche

import "testing"

func TestVLYNQFixedRevID(t *testing.T) {
	d, _, _ := newTestDevice()

	if got := d.Load32(baseVLYNQ0 + vlynqREVID); got != vlynqFixedRevID {
		t.Fatalf("VLYNQ0 REVID = 0x%08x, want 0x%08x", got, uint32(vlynqFixedRevID))
	}
	if got := d.Load32(baseVLYNQ1 + vlynqREVID); got != vlynqFixedRevID {
		t.Fatalf("VLYNQ1 REVID = 0x%08x, want 0x%08x", got, uint32(vlynqFixedRevID))
	}
}

// P7 (VLYNQ reset/link inversion): writing CTRL bit0 sets the reset
// state, which clears STATUS bit0 (link-down); clearing CTRL bit0
// brings the link back up.
func TestP7VLYNQResetInvertsStatusLink(t *testing.T) {
	d, _, _ := newTestDevice()

	d.Store32(baseVLYNQ0+vlynqCTRL, 1)
	if got := d.Load32(baseVLYNQ0 + vlynqSTATUS); got&1 != 0 {
		t.Fatalf("STATUS bit0 = %d, want 0 (link down while in reset)", got&1)
	}

	d.Store32(baseVLYNQ0+vlynqCTRL, 0)
	if got := d.Load32(baseVLYNQ0 + vlynqSTATUS); got&1 != 1 {
		t.Fatalf("STATUS bit0 = %d, want 1 (link up out of reset)", got&1)
	}
}

func TestVLYNQInstancesAreIndependent(t *testing.T) {
	d, _, _ := newTestDevice()

	d.Store32(baseVLYNQ0+vlynqCTRL, 1)

	// VLYNQ1's STATUS has no power-on default and was never written, so
	// it must still read back as 0 rather than picking up VLYNQ0's state.
	if got := d.Load32(baseVLYNQ1 + vlynqSTATUS); got&1 != 0 {
		t.Fatalf("VLYNQ1 STATUS affected by VLYNQ0 write: got %d, want 0", got&1)
	}
}

func TestVLYNQ0MemPCIIDFake(t *testing.T) {
	d, _, _ := newTestDevice()

	if got := d.Load32(baseVLYNQ0Mem + vlynqPCIIDOffset); got != vlynqPCIIDValue {
		t.Fatalf("PCI-ID fake = 0x%08x, want 0x%08x", got, uint32(vlynqPCIIDValue))
	}
}
