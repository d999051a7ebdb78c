package avalanche

import "github.com/ar7soc/avalanche/internal/regbuf"

// Reset-control register byte offsets (C7).
const (
	resetDevices = 0x00
	resetRequest = 0x04
	resetOther   = 0x08
)

// resetDeviceNames names each bit of the reset-devices register, in the
// order the original firmware's reset map uses them.
var resetDeviceNames = [32]string{
	"uart0", "uart1", "i2c", "timer0",
	"timer1", "reserved05", "gpio", "adsl",
	"usb", "atm", "reserved10", "vdma",
	"fser", "reserved13", "reserved14", "reserved15",
	"vlynq1", "cpmac0", "mcdma", "bist",
	"vlynq0", "cpmac1", "mdio", "dsp",
	"reserved24", "reserved25", "ephy", "reserved27",
	"reserved28", "reserved29", "reserved30", "reserved31",
}

func (d *Device) resetCtrlStore(off uint32, v uint32) {
	switch off {
	case resetDevices:
		old := regbuf.Read32(d.resetCtrl, resetDevices)
		changed := old ^ v
		enabled := changed & v
		for i := 0; i < 32; i++ {
			if changed&(1<<uint(i)) == 0 {
				continue
			}
			state := "disabled"
			if enabled&(1<<uint(i)) != 0 {
				state = "enabled"
			}
			d.logger.Info("reset device state change", "device", resetDeviceNames[i], "state", state)
		}
		regbuf.Write32(d.resetCtrl, resetDevices, v)
	case resetRequest:
		d.logger.Info("machine reset requested")
		regbuf.Write32(d.resetCtrl, resetRequest, v)
		d.cpu.RequestMachineReset()
	default:
		regbuf.Write32(d.resetCtrl, off, v)
	}
}
