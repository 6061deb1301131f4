// Package producthdl chứa HTTP handler cho domain Products.
//
// Hai endpoint theo hợp đồng với frontend trả về MẢNG JSON trần (không bọc
// envelope, không bao giờ null); các endpoint lỗi dùng envelope lỗi chung.
package producthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "meta_affiliate/internal/api/base/handler"
	"meta_affiliate/internal/api/products/models"
	productsvc "meta_affiliate/internal/api/products/service"
	"meta_affiliate/internal/common"
	"meta_affiliate/internal/logger"
)

// ProductHandler xử lý các endpoint đọc catalog sản phẩm
type ProductHandler struct {
	Aggregator *productsvc.AggregatorService
	Dedup      *productsvc.DedupService
	Normalizer *productsvc.NormalizerService
	TopRated   *productsvc.TopRatedService
}

// NewProductHandler tạo mới ProductHandler cùng các service của pipeline
func NewProductHandler() *ProductHandler {
	return &ProductHandler{
		Aggregator: productsvc.NewAggregatorService(),
		Dedup:      productsvc.NewDedupService(),
		Normalizer: productsvc.NewNormalizerService(),
		TopRated:   productsvc.NewTopRatedService(),
	}
}

// HandleAllCollections xử lý GET /api/products/all-collections.
// Trả về bản ghi thô của tất cả các collection feed, ĐÃ loại trùng theo
// business key (deduplicator chạy ngay tại biên aggregation).
func (h *ProductHandler) HandleAllCollections(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		records, err := h.Aggregator.FetchAll(c.Context())
		if err != nil {
			logger.WithRequest(c).WithError(err).Error("Gom dữ liệu các collection thất bại")
			return basehdl.HandleError(c, err)
		}

		deduped := h.Dedup.Deduplicate(records)
		return basehdl.JSONResponse(c, common.StatusOK, deduped)
	})
}

// HandleCollection xử lý GET /api/products/collection/:collectionName.
// Tên collection ngoài allow-list trả về 404, lỗi store trả về 500.
func (h *ProductHandler) HandleCollection(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		collectionName := c.Params("collectionName")

		records, err := h.Aggregator.FetchCollection(c.Context(), collectionName)
		if err != nil {
			logger.WithRequest(c).WithError(err).
				WithField("collection", collectionName).
				Warn("Đọc collection thất bại")
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, records)
	})
}

// HandleNormalized xử lý GET /api/products/normalized.
// Chạy trọn pipeline: gom -> loại trùng -> chuẩn hóa, trả về mảng Product.
func (h *ProductHandler) HandleNormalized(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		products, err := h.normalizedProducts(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, products)
	})
}

// HandleTopRated xử lý GET /api/products/top-rated.
// Trả về tập sản phẩm nổi bật đã giới hạn và đa dạng hóa theo category.
func (h *ProductHandler) HandleTopRated(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		products, err := h.normalizedProducts(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, h.TopRated.Select(products))
	})
}

// HandleMetrics xử lý GET /api/products/metrics: counter của pipeline
func (h *ProductHandler) HandleMetrics(c fiber.Ctx) error {
	return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"pipeline": productsvc.Metrics().Snapshot(),
		"status":   "success",
	})
}

// normalizedProducts chạy pipeline đầy đủ cho một request
func (h *ProductHandler) normalizedProducts(c fiber.Ctx) ([]models.Product, error) {
	records, err := h.Aggregator.FetchAll(c.Context())
	if err != nil {
		logger.WithRequest(c).WithError(err).Error("Gom dữ liệu các collection thất bại")
		return nil, err
	}
	return h.Normalizer.NormalizeAll(h.Dedup.Deduplicate(records)), nil
}
