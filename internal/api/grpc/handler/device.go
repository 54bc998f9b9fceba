package handler

import (
	"context"
	"net"
	"strings"
	"unicode/utf8"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"github.com/dtroode/identity-server/internal/model"
)

const maxDeviceInfoLength = 256

// deviceFromContext records the peer address and the device description sent
// in the request. An empty description stays empty so that a refreshed
// session keeps the one recorded at login.
func deviceFromContext(ctx context.Context, deviceInfo string) model.DeviceContext {
	var d model.DeviceContext

	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		d.IPAddress = p.Addr.String()
		if host, _, err := net.SplitHostPort(d.IPAddress); err == nil {
			d.IPAddress = host
		}
	}

	d.DeviceInfo = truncateDeviceInfo(strings.TrimSpace(deviceInfo))
	return d
}

// newSessionDevice is deviceFromContext for calls that open a session. They
// fall back to the user-agent metadata when the request names no device.
func newSessionDevice(ctx context.Context, deviceInfo string) model.DeviceContext {
	d := deviceFromContext(ctx, deviceInfo)
	if d.DeviceInfo != "" {
		return d
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			d.DeviceInfo = truncateDeviceInfo(strings.TrimSpace(ua[0]))
		}
	}
	return d
}

func truncateDeviceInfo(s string) string {
	if utf8.RuneCountInString(s) > maxDeviceInfoLength {
		return string([]rune(s)[:maxDeviceInfoLength])
	}
	return s
}
