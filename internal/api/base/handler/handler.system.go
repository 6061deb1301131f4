package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"meta_affiliate/internal/common"
	"meta_affiliate/internal/global"
)

// HandleHealth xử lý GET /health: kiểm tra server sống và kết nối MongoDB
func HandleHealth(c fiber.Ctx) error {
	mongoStatus := "ok"
	if global.MongoDB_Session != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
			mongoStatus = "unavailable"
		}
	} else {
		mongoStatus = "not_initialized"
	}

	statusCode := common.StatusOK
	if mongoStatus != "ok" {
		statusCode = common.StatusServiceUnavailable
	}

	return JSONResponse(c, statusCode, fiber.Map{
		"status":  "up",
		"mongodb": mongoStatus,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
