package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"lan_relay/internal/config"
	"lan_relay/internal/middleware"
	"lan_relay/internal/repository"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

const testMaxUpload = 2048

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: 5000, Host: "127.0.0.1", MaxUploadSize: testMaxUpload},
		Address:     config.AddressConfig{Mode: config.AddressModeStatic, HostIP: "192.168.0.10"},
		Session: config.SessionConfig{
			PeerBuffer:     16,
			MaxMessageSize: 4096,
			PingInterval:   time.Second,
			PongWait:       2 * time.Second,
		},
	}
}

type testApp struct {
	engine   *gin.Engine
	services *service.Services
	repos    *repository.Repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	log := logger.NewNop()
	repos := repository.NewRepositories(nil, log)
	services := service.NewServices(repos, cfg, log)
	handlers := NewHandlers(services, cfg, log)

	engine := gin.New()
	engine.SetHTMLTemplate(Templates())
	engine.Use(middleware.ErrorHandler())
	engine.GET("/", handlers.Page.Index)
	engine.GET("/api/history", handlers.Page.History)
	engine.GET("/server-info", handlers.Health.ServerInfo)
	engine.GET("/api/stats", handlers.Stats.GetSessionStats)
	engine.POST("/upload", handlers.File.Upload)
	engine.GET("/download/:id", handlers.File.Download)

	return &testApp{engine: engine, services: services, repos: repos}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func newUploadRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	mh := make(map[string][]string)
	mh["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename)}
	if contentType != "" {
		mh["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(mh)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
