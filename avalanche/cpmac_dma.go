package avalanche

import (
	"encoding/binary"

	"github.com/ar7soc/avalanche/internal/regbuf"
)

// Descriptor flag bits (spec section 3), shared by TX and RX descriptors.
const (
	descSOF       = uint32(1) << 31
	descEOF       = uint32(1) << 30
	descOwnership = uint32(1) << 29
	descEOQ       = uint32(1) << 28
	descSizeMask  = 0xffff
)

const maxEthFrameSize = 1514

// descriptor mirrors the 16-byte little-endian structure CPMAC
// descriptor rings use in guest RAM.
type descriptor struct {
	next   uint32
	buff   uint32
	length uint32
	mode   uint32
}

func (d *Device) readDescriptor(addr uint32) descriptor {
	var raw [16]byte
	d.physMem.ReadPhys(addr, raw[:])
	return descriptor{
		next:   binary.LittleEndian.Uint32(raw[0:4]),
		buff:   binary.LittleEndian.Uint32(raw[4:8]),
		length: binary.LittleEndian.Uint32(raw[8:12]),
		mode:   binary.LittleEndian.Uint32(raw[12:16]),
	}
}

func (d *Device) writeDescriptor(addr uint32, desc descriptor) {
	var raw [16]byte
	binary.LittleEndian.PutUint32(raw[0:4], desc.next)
	binary.LittleEndian.PutUint32(raw[4:8], desc.buff)
	binary.LittleEndian.PutUint32(raw[8:12], desc.length)
	binary.LittleEndian.PutUint32(raw[12:16], desc.mode)
	d.physMem.WritePhys(addr, raw[:])
}

func (d *Device) writeDescriptorMode(addr uint32, mode uint32) {
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], mode)
	d.physMem.WritePhys(addr+12, raw[:])
}

// txDMA drains the descriptor chain rooted at p on the given TX channel,
// assembling one frame per outer iteration (a descriptor chain linked by
// EOQ contributes to the same frame) and handing it to the bound network
// backend. See spec section 4.8 for the literal algorithm.
func (d *Device) txDMA(index int, channel uint32, p uint32) {
	for p != 0 {
		var buffer []byte
		var last descriptor

		for {
			desc := d.readDescriptor(p)
			last = desc

			if desc.length != desc.mode&descSizeMask {
				d.logger.Warn("programming error: TX descriptor length/mode mismatch", "cpmac", index, "addr", p, "pc", d.cpu.PC(), "ra", d.cpu.RA())
			}
			if desc.mode&(descSOF|descEOF|descOwnership) != (descSOF | descEOF | descOwnership) {
				d.logger.Warn("programming error: TX descriptor missing SOF/EOF/OWNERSHIP", "cpmac", index, "addr", p, "pc", d.cpu.PC(), "ra", d.cpu.RA())
			}

			payload := make([]byte, desc.length)
			d.physMem.ReadPhys(desc.buff, payload)
			buffer = append(buffer, payload...)

			d.writeDescriptorMode(p, desc.mode&^descOwnership)

			if desc.mode&descEOQ != 0 {
				p = desc.next
				continue
			}
			break
		}

		if len(buffer) > maxEthFrameSize {
			d.logger.Warn("programming error: oversized TX assembly, dropping frame", "cpmac", index, "size", len(buffer), "pc", d.cpu.PC(), "ra", d.cpu.RA())
		} else if d.nic[index].bound {
			d.nic[index].out.Send(buffer)
		}

		regbuf.Inc32(d.cpmac[index], cpmacTXGoodFrames)
		regbuf.SetBits(d.cpmac[index], cpmacMACInVector, macInVectorTXIntOr|channel)
		d.RaiseLine(cpmacIRQLine[index])

		p = last.next
	}
}

// CanReceive reports whether CPMAC instance index has a head descriptor
// armed on RX channel 0. Only channel 0 is consulted, matching the
// single-RX-channel simplification in spec section 4.8.
func (d *Device) CanReceive(index int) bool {
	return regbuf.Read32(d.cpmac[index], cpmacRX0HDP) != 0
}

// Receive delivers a frame to CPMAC instance index, classifying it and
// updating statistics before attempting DMA into the guest buffer at
// RX0_HDP.
func (d *Device) Receive(index int, buf []byte) {
	cpmac := d.cpmac[index]

	switch {
	case isBroadcast(buf):
		regbuf.Inc32(cpmac, cpmacRXBroadcast)
	case len(buf) > 0 && buf[0]&0x01 != 0:
		regbuf.Inc32(cpmac, cpmacRXMulticast)
	case macEqual(buf, d.nic[index].phys):
		// own address: no counter in the original model beyond the
		// size/good-frame counters below.
	default:
		// unknown address: no dedicated counter.
	}

	size := uint32(len(buf))
	if size < 64 {
		regbuf.Inc32(cpmac, cpmacRXUndersized)
	} else if size > maxEthFrameSize {
		regbuf.Inc32(cpmac, cpmacRXOversized)
	}

	// RXGOODFRAMES is incremented even when the frame is about to be
	// dropped for lack of an RX buffer: documented upstream quirk,
	// preserved rather than silently fixed.
	regbuf.Inc32(cpmac, cpmacRXGoodFrames)

	hdp := regbuf.Read32(cpmac, cpmacRX0HDP)
	if hdp == 0 {
		return
	}

	desc := d.readDescriptor(hdp)
	if desc.mode&descOwnership == 0 {
		d.logger.Warn("buffer not free, frame dropped", "cpmac", index)
		return
	}

	mode := (desc.mode &^ descOwnership) | (size & descSizeMask) | descSOF | descEOF
	if desc.next == 0 {
		mode |= descEOQ
	}

	d.physMem.WritePhys(desc.buff, buf)
	d.writeDescriptor(hdp, descriptor{next: desc.next, buff: desc.buff, length: size, mode: mode})
	regbuf.Write32(cpmac, cpmacRX0HDP, desc.next)

	regbuf.SetBits(cpmac, cpmacMACInVector, macInVectorRXIntOr)
	d.RaiseLine(cpmacIRQLine[index])
}

func isBroadcast(buf []byte) bool {
	if len(buf) < 6 {
		return false
	}
	for _, b := range buf[:6] {
		if b != 0xff {
			return false
		}
	}
	return true
}

func macEqual(buf []byte, mac [6]byte) bool {
	if len(buf) < 6 {
		return false
	}
	for i := 0; i < 6; i++ {
		if buf[i] != mac[i] {
			return false
		}
	}
	return true
}
