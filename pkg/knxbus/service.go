// Knxbus is a minimal client for the knxd group socket, enough to push
// meter values onto the bus as group writes.
package knxbus

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// knxd message types (BCU SDK wire protocol).
const (
	// eibOpenGroupCon opens a group socket for sending group telegrams.
	// Request body: reserved destination(2) + write-only flag(1).
	eibOpenGroupCon uint16 = 0x0026

	// eibGroupPacket carries one group telegram: GA(2) + APDU.
	eibGroupPacket uint16 = 0x0027
)

// APCI group write, upper two bits of the second APDU byte.
const apciGroupWrite byte = 0x80

const (
	dialTimeout  = 2 * time.Second
	replyTimeout = 2 * time.Second
)

// Client is one group socket connection to a knxd daemon.
type Client struct {
	conn net.Conn
}

// Dial connects to knxd and opens a group socket.
func Dial(address string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to knxd: %w", err)
	}
	c := &Client{conn: conn}

	if err := c.send(eibOpenGroupCon, []byte{0x00, 0x00, 0x00}); err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetReadDeadline(time.Now().Add(replyTimeout))
	msgType, _, err := c.receive()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if msgType != eibOpenGroupCon {
		conn.Close()
		return nil, fmt.Errorf("%w: unexpected reply type 0x%04x", ErrHandshake, msgType)
	}

	log.WithField("knxd", address).Debug("Opened knxd group socket")
	return c, nil
}

// GroupWrite sends an APCI group write with the given payload. A single
// byte up to 0x3F rides inside the APCI byte (short APDU); everything
// else follows the APCI byte as data (long APDU).
func (c *Client) GroupWrite(ga GroupAddress, data []byte) error {
	var apdu []byte
	if len(data) == 1 && data[0] <= 0x3F {
		apdu = []byte{0x00, apciGroupWrite | data[0]}
	} else {
		apdu = append([]byte{0x00, apciGroupWrite}, data...)
	}

	packet := make([]byte, 2, 2+len(apdu))
	binary.BigEndian.PutUint16(packet, ga.ToUint16())
	packet = append(packet, apdu...)
	return c.send(eibGroupPacket, packet)
}

// EncodeUint32 encodes a value as the 4-byte big-endian payload used for
// energy counters on the bus.
func EncodeUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return buf
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// send frames a knxd message: 2-byte big-endian size over type + body.
func (c *Client) send(msgType uint16, body []byte) error {
	buf := make([]byte, 4+len(body))
	binary.BigEndian.PutUint16(buf[0:2], uint16(2+len(body)))
	binary.BigEndian.PutUint16(buf[2:4], msgType)
	copy(buf[4:], body)
	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("knxd write failed: %w", err)
	}
	return nil
}

func (c *Client) receive() (uint16, []byte, error) {
	head := make([]byte, 2)
	if _, err := io.ReadFull(c.conn, head); err != nil {
		return 0, nil, err
	}
	size := binary.BigEndian.Uint16(head)
	if size < 2 {
		return 0, nil, fmt.Errorf("short knxd message (%d bytes)", size)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return 0, nil, err
	}
	return binary.BigEndian.Uint16(body[:2]), body[2:], nil
}
