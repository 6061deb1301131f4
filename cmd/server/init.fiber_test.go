package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meta_affiliate/config"
	"meta_affiliate/internal/common"
	"meta_affiliate/internal/global"
)

// testServerConfig dựng cấu hình tối thiểu để khởi tạo app Fiber trong test
func testServerConfig() *config.Configuration {
	return &config.Configuration{
		Address:             "8322",
		CORS_Origins:        "*",
		RateLimit_Enabled:   false,
		FetchTimeoutSeconds: 20,
		TopRatedLimit:       10,
	}
}

// Test error handler toàn cục: route không tồn tại trả về 404 với mã lỗi
// nghiệp vụ, không phải mã lỗi database
func TestInitFiberApp_RouteKhongTonTai(t *testing.T) {
	global.MongoDB_ServerConfig = testServerConfig()
	defer func() { global.MongoDB_ServerConfig = nil }()

	app := InitFiberApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/khong-ton-tai", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, common.ErrCodeBusiness.Code, envelope["code"])
	assert.Equal(t, "error", envelope["status"])
}

// Test health check vẫn phục vụ được khi chưa có kết nối MongoDB:
// 503 với trạng thái not_initialized
func TestInitFiberApp_HealthKhongCoMongo(t *testing.T) {
	global.MongoDB_ServerConfig = testServerConfig()
	defer func() { global.MongoDB_ServerConfig = nil }()

	app := InitFiberApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 503, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "not_initialized", payload["mongodb"])
}
