package service

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"lan_relay/internal/config"
	"lan_relay/pkg/logger"
)

func shareConfig(mode, publicURL string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 5000},
		Address: config.AddressConfig{Mode: mode, HostIP: "192.168.1.7", PublicURL: publicURL},
	}
}

func TestShare_StaticBaseURL(t *testing.T) {
	share := NewShareService(shareConfig(config.AddressModeStatic, ""), logger.NewNop())

	req := httptest.NewRequest("GET", "http://ignored.example/", nil)
	require.Equal(t, "http://192.168.1.7:5000", share.BaseURL(req))

	share = NewShareService(shareConfig(config.AddressModeStatic, "http://relay.lan"), logger.NewNop())
	require.Equal(t, "http://relay.lan", share.BaseURL(req))
}

func TestShare_PerRequestBaseURL(t *testing.T) {
	share := NewShareService(shareConfig(config.AddressModePerRequest, ""), logger.NewNop())

	req := httptest.NewRequest("GET", "http://relay.example.app/", nil)
	require.Equal(t, "http://relay.example.app", share.BaseURL(req))

	req.Header.Set("X-Forwarded-Proto", "https, http")
	require.Equal(t, "https://relay.example.app", share.BaseURL(req))
}

func TestShare_QRCodeIsPNG(t *testing.T) {
	share := NewShareService(shareConfig(config.AddressModeStatic, ""), logger.NewNop())

	encoded, err := share.QRCode("http://192.168.1.7:5000")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Greater(t, img.Bounds().Dx(), 0)

	again, err := share.QRCode("http://192.168.1.7:5000")
	require.NoError(t, err)
	require.Equal(t, encoded, again)
}
