package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	AddressModeStatic     = "static"
	AddressModePerRequest = "per_request"

	defaultPort          = 5000
	defaultMaxUploadSize = 100 << 20
)

type Config struct {
	Environment string `validate:"required"`
	Server      ServerConfig
	Address     AddressConfig
	Session     SessionConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port          int    `validate:"min=1,max=65535"`
	Host          string `validate:"required"`
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxUploadSize int64 `validate:"gt=0"`
}

// AddressConfig controls how the base URL shown to peers is resolved. In
// static mode it is computed once from HostIP and the server port; in
// per_request mode it is taken from each request's Host header.
type AddressConfig struct {
	Mode      string `validate:"oneof=static per_request"`
	HostIP    string
	PublicURL string `validate:"omitempty,url"`
}

type SessionConfig struct {
	PeerBuffer     int   `validate:"gt=0"`
	MaxMessageSize int64 `validate:"gt=0"`
	PingInterval   time.Duration
	PongWait       time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Uploads int `validate:"gte=0"`
	Window  time.Duration
}

type LogConfig struct {
	Level string
}

var validate = validator.New()

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:          getEnvAsInt("SERVER_PORT", getEnvAsInt("PORT", defaultPort)),
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:   getEnvAsDuration("SERVER_READ_TIMEOUT", 60*time.Second),
			WriteTimeout:  getEnvAsDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", defaultMaxUploadSize),
		},
		Address: AddressConfig{
			Mode:      getEnv("ADDRESS_MODE", defaultAddressMode()),
			HostIP:    getEnv("HOST_IP", GetLocalIP()),
			PublicURL: strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
		},
		Session: SessionConfig{
			PeerBuffer:     getEnvAsInt("PEER_SEND_BUFFER", 256),
			MaxMessageSize: getEnvAsInt64("WS_MAX_MESSAGE_SIZE", 64<<10),
			PingInterval:   getEnvAsDuration("WS_PING_INTERVAL", 54*time.Second),
			PongWait:       getEnvAsDuration("WS_PONG_WAIT", 60*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Uploads: getEnvAsInt("UPLOAD_RATE_LIMIT", 30),
			Window:  getEnvAsDuration("UPLOAD_RATE_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Session.PingInterval >= c.Session.PongWait {
		return fmt.Errorf("WS_PING_INTERVAL must be shorter than WS_PONG_WAIT")
	}
	return nil
}

// defaultAddressMode picks per_request when running under a hosting platform
// that injects VERCEL or PORT.
func defaultAddressMode() string {
	if os.Getenv("VERCEL") != "" || os.Getenv("PORT") != "" {
		return AddressModePerRequest
	}
	return AddressModeStatic
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetLocalIP returns the first non-loopback IPv4 address, preferring private
// LAN ranges. HOST_IP overrides discovery.
func GetLocalIP() string {
	if ip := os.Getenv("HOST_IP"); ip != "" {
		return ip
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}

	priorityPrefixes := []string{"192.168.", "10.", "172."}

	var fallbackIP string

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				ip := ipnet.IP.String()

				for _, prefix := range priorityPrefixes {
					if strings.HasPrefix(ip, prefix) {
						return ip
					}
				}

				if fallbackIP == "" {
					fallbackIP = ip
				}
			}
		}
	}

	if fallbackIP != "" {
		return fallbackIP
	}

	return "127.0.0.1"
}
