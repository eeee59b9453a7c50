package util

import (
	"net"
)

// GetOutboundIP finds the address of the interface we would use to reach the outside world,
// so a server can print the address clients should dial.
// Dialling UDP doesn't send any packets.
func GetOutboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
