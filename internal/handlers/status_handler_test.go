package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damacus/iron-files/internal/config"
	"github.com/damacus/iron-files/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/minio/madmin-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serverInfo(states ...string) madmin.InfoMessage {
	disks := make([]madmin.Disk, len(states))
	for i, s := range states {
		disks[i] = madmin.Disk{State: s}
	}
	return madmin.InfoMessage{Servers: []madmin.ServerProperties{{Endpoint: "minio:9000", Disks: disks}}}
}

func TestStatusHandler_Get(t *testing.T) {
	tests := []struct {
		name   string
		info   madmin.InfoMessage
		expect string
	}{
		{"all online", serverInfo("ok", "ok"), `{"status":"healthy","onlineDrives":2,"totalDrives":2}`},
		{"one offline", serverInfo("ok", "offline"), `{"status":"degraded","onlineDrives":1,"totalDrives":2}`},
		{"all offline", serverInfo("offline"), `{"status":"offline","onlineDrives":0,"totalDrives":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := config.Storage{Backend: config.BackendMinio}
			admin := new(MockAdminClient)
			admin.On("ServerInfo", mock.Anything).Return(tt.info, nil)
			factory := new(MockStorageFactory)
			factory.On("NewAdminClient", storage).Return(admin, nil)

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/storage/status", nil), rec)

			require.NoError(t, NewStatusHandler(factory, storage, zap.NewNop()).Get(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.expect, rec.Body.String())
		})
	}
}

func TestStatusHandler_Get_Unsupported(t *testing.T) {
	storage := config.Storage{Backend: config.BackendS3}
	factory := new(MockStorageFactory)
	factory.On("NewAdminClient", storage).Return(nil, services.ErrUnsupported)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/storage/status", nil), rec)

	require.NoError(t, NewStatusHandler(factory, storage, zap.NewNop()).Get(c))
	assert.JSONEq(t, `{"status":"unsupported","onlineDrives":0,"totalDrives":0}`, rec.Body.String())
}

func TestStatusHandler_Get_Errors(t *testing.T) {
	storage := config.Storage{Backend: config.BackendMinio}

	t.Run("connect", func(t *testing.T) {
		factory := new(MockStorageFactory)
		factory.On("NewAdminClient", storage).Return(nil, errors.New("bad endpoint"))

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, NewStatusHandler(factory, storage, zap.NewNop()).Get(c))
		assert.JSONEq(t, `{"status":"error","onlineDrives":0,"totalDrives":0}`, rec.Body.String())
	})

	t.Run("server info", func(t *testing.T) {
		admin := new(MockAdminClient)
		admin.On("ServerInfo", mock.Anything).Return(madmin.InfoMessage{}, errors.New("AccessDenied"))
		factory := new(MockStorageFactory)
		factory.On("NewAdminClient", storage).Return(admin, nil)

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, NewStatusHandler(factory, storage, zap.NewNop()).Get(c))
		assert.JSONEq(t, `{"status":"error","onlineDrives":0,"totalDrives":0}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "AccessDenied")
	})
}
