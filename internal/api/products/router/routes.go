// Package router đăng ký các route thuộc domain Products.
package router

import (
	"github.com/gofiber/fiber/v3"

	producthdl "meta_affiliate/internal/api/products/handler"
)

// Register đăng ký các route products lên group /api.
//
// Hai route đầu là hợp đồng cố định với frontend storefront (mảng JSON trần);
// các route sau phục vụ consumer cần dữ liệu đã chuẩn hóa.
func Register(api fiber.Router) {
	handler := producthdl.NewProductHandler()

	products := api.Group("/products")
	products.Get("/all-collections", handler.HandleAllCollections)
	products.Get("/collection/:collectionName", handler.HandleCollection)
	products.Get("/normalized", handler.HandleNormalized)
	products.Get("/top-rated", handler.HandleTopRated)
	products.Get("/metrics", handler.HandleMetrics)
}
