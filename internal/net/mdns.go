package net

import (
	"fmt"
	"net"

	"github.com/hashicorp/mdns"
)

const serviceType = "_signaturepad._tcp"

// newService describes the preview hub for mDNS. An empty host uses the OS
// hostname and nil ips are looked up from it.
func newService(host string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	service, err := mdns.NewMDNSService(
		"SignaturePad",
		serviceType,
		"",
		host,
		port,
		ips,
		[]string{"path=/"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return service, nil
}

// Advertise announces the preview hub on the local network. The caller
// shuts the returned server down.
func Advertise(port int) (*mdns.Server, error) {
	var ips []net.IP
	if ip, err := GetOutgoingIP(); err == nil {
		if parsed := net.ParseIP(ip); parsed != nil {
			ips = []net.IP{parsed}
		}
	}
	service, err := newService("", port, ips)
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}
