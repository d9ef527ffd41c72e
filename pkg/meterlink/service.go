package meterlink

import (
	"fmt"
	"io"
	"time"

	"github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"
)

// IEC 62056-21 control bytes.
const (
	ack       byte = 0x06
	stx       byte = 0x02
	etx       byte = 0x03
	endOfData byte = '!'
)

const (
	// settleDelay respects the device turnaround time between our
	// transmission and its reply.
	settleDelay = 20 * time.Millisecond

	// readTimeoutMs bounds each individual byte read on the port.
	readTimeoutMs = 1500

	// The identification reply is "/XXXZ<ident>\r\n", anything shorter
	// cannot be a valid message.
	minIdentificationLen = 7
)

// Initialize a new MT174Link for a serial device.
func NewMT174Link(device string, baudrate uint) *MT174Link {
	link := &MT174Link{
		device:   device,
		baudrate: baudrate,
	}
	link.openPort = link.openSerial
	log.WithField("device", device).Info("Created MT174 link")
	return link
}

func (m *MT174Link) openSerial() (io.ReadWriteCloser, error) {
	options := serial.OpenOptions{
		PortName:              m.device,
		BaudRate:              m.baudrate,
		DataBits:              7,
		ParityMode:            serial.PARITY_EVEN,
		StopBits:              1,
		InterCharacterTimeout: readTimeoutMs,
		MinimumReadSize:       0,
	}
	return serial.Open(options)
}

// Read performs one complete request/response cycle and returns the
// checksum-verified data block. The port is opened at the start of the
// call and closed on every exit path; no connection survives the call.
func (m *MT174Link) Read() (DataBlock, error) {
	log.WithField("device", m.device).Debug("Opening serial port")
	port, err := m.openPort()
	if err != nil {
		return DataBlock{}, fmt.Errorf("failed to open serial port: %w", err)
	}
	defer port.Close()

	// IEC 62056-21:2002(E) 6.3.1: request message
	if _, err := port.Write([]byte("/?!\r\n")); err != nil {
		return DataBlock{}, fmt.Errorf("failed to write request: %w", err)
	}
	time.Sleep(settleDelay)

	// 6.3.2: identification message
	ident, err := readLine(port)
	if err != nil {
		return DataBlock{}, err
	}
	if len(ident) == 0 {
		return DataBlock{}, ErrNoResponse
	}
	log.WithField("identification", string(ident)).Debug("Got meter reply")
	if ident[0] != '/' {
		return DataBlock{}, fmt.Errorf("%w: no '/' lead-in in %q", ErrBadIdentification, ident)
	}
	if len(ident) < minIdentificationLen {
		return DataBlock{}, fmt.Errorf("%w: reply too short: %q", ErrBadIdentification, ident)
	}

	// 6.3.3: acknowledgement, keep baudrate, data readout mode
	if _, err := port.Write([]byte{ack, '0', '0', '0', '\r', '\n'}); err != nil {
		return DataBlock{}, fmt.Errorf("failed to write acknowledgement: %w", err)
	}
	time.Sleep(settleDelay)

	b, ok, err := readByte(port)
	if err != nil {
		return DataBlock{}, err
	}
	if !ok || b != stx {
		// Some units answer the acknowledgement with nothing at all.
		// Tolerated quirk: report an explicitly empty block, not an error.
		log.Warn("No STX in meter reply, returning empty data block")
		return DataBlock{Empty: true}, nil
	}

	// Data lines up to the '!' end-of-data marker. The marker itself and
	// everything after it up to and including ETX belong to the block check.
	var payload []byte
	var bcc byte
	for {
		b, ok, err = readByte(port)
		if err != nil {
			return DataBlock{}, err
		}
		if !ok {
			return DataBlock{}, ErrTruncatedFrame
		}
		bcc ^= b
		if b == endOfData {
			break
		}
		payload = append(payload, b)
	}
	for b != etx {
		b, ok, err = readByte(port)
		if err != nil {
			return DataBlock{}, err
		}
		if !ok {
			return DataBlock{}, ErrTruncatedFrame
		}
		bcc ^= b
	}

	sent, ok, err := readByte(port)
	if err != nil {
		return DataBlock{}, err
	}
	if !ok {
		return DataBlock{}, ErrTruncatedFrame
	}
	if sent != bcc {
		// Payload is untrustworthy, discard it entirely.
		return DataBlock{}, fmt.Errorf("%w: received 0x%02x, computed 0x%02x", ErrChecksumMismatch, sent, bcc)
	}

	return DataBlock{Raw: string(payload)}, nil
}

// readByte reads a single byte from the port. ok is false when the port
// timed out with nothing to deliver, which go-serial surfaces as a
// zero-length read or EOF.
func readByte(r io.Reader) (byte, bool, error) {
	buf := make([]byte, 1)
	n, err := r.Read(buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("serial read failed: %w", err)
	}
	return buf[0], true, nil
}

// readLine reads up to and including a LF, stopping early when the port
// stops producing bytes.
func readLine(r io.Reader) ([]byte, error) {
	var line []byte
	for {
		b, ok, err := readByte(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return line, nil
		}
		line = append(line, b)
		if b == '\n' {
			return line, nil
		}
	}
}
