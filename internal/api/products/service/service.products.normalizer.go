package productsvc

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"meta_affiliate/internal/api/products/models"
	"meta_affiliate/internal/global"
	"meta_affiliate/internal/logger"
	"meta_affiliate/internal/utility"
)

// Giá trị mặc định khi field vắng mặt
const (
	defaultProductName = "Produto sem nome"
	defaultSellerName  = "Loja parceira"
	defaultCategory    = "General"
	defaultSlug        = "general"
)

// NormalizerService chuyển bản ghi thô thành Product chuẩn hóa.
// Một bản ghi hỏng chỉ làm mất chính nó, không bao giờ làm hỏng cả batch.
type NormalizerService struct{}

// NewNormalizerService tạo mới NormalizerService
func NewNormalizerService() *NormalizerService {
	return &NormalizerService{}
}

// fallbackIDCounter sinh định danh khi bản ghi không có bất kỳ field định danh
// nào. Chỉ đảm bảo dùng được trong process, không đảm bảo ổn định giữa các lần chạy.
var fallbackIDCounter atomic.Uint64

// NormalizeAll chuẩn hóa cả batch, bỏ qua các bản ghi không dùng được.
// Thứ tự input được giữ nguyên một-một, chỉ các chỗ hỏng bị loại.
func (s *NormalizerService) NormalizeAll(records []models.RawRecord) []models.Product {
	products := make([]models.Product, 0, len(records))
	dropped := 0
	for _, record := range records {
		product, ok := s.Normalize(record)
		if !ok {
			dropped++
			continue
		}
		products = append(products, product)
	}
	if dropped > 0 {
		metrics.AddDroppedNormalize(dropped)
		logger.GetAppLogger().WithFields(map[string]interface{}{
			"input":   len(records),
			"dropped": dropped,
		}).Warn("Một số bản ghi không chuẩn hóa được và đã bị loại")
	}
	return products
}

// Normalize chuyển một bản ghi thô thành Product.
// Trả về (zero, false) khi bản ghi không dùng được; field lẻ không parse được
// chỉ nhận giá trị mặc định, không làm rớt cả bản ghi. Panic từ dữ liệu có
// kiểu bất ngờ được recover và quy về "không có sản phẩm".
func (s *NormalizerService) Normalize(record models.RawRecord) (product models.Product, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("panic", fmt.Sprintf("%v", r)).
				Warn("Lỗi không mong muốn khi chuẩn hóa bản ghi, bỏ qua bản ghi")
			product = models.Product{}
			ok = false
		}
	}()

	if record == nil {
		return models.Product{}, false
	}

	product.ID = s.deriveID(record)

	product.Name = defaultProductName
	if name, found := record.String(models.FieldName, models.FieldNameAlt, "name"); found {
		product.Name = name
	}
	product.Description, _ = record.String(models.FieldDescription, models.FieldDescriptionAlt)

	// Giá không parse được mặc định 0 — bản ghi giá hỏng đáng lẽ đã bị
	// deduplicator loại từ trước, nhưng normalizer không được giả định điều đó
	product.Price, _ = record.Decimal(models.FieldPrice, "price")
	if product.Price < 0 {
		product.Price = 0
	}
	if original, found := record.Decimal(models.FieldOriginalPrice, "originalPrice"); found {
		product.OriginalPrice = &original
	}
	product.DiscountPercentage = s.deriveDiscount(record, product.Price, product.OriginalPrice)

	product.Category, product.CategorySlug = s.deriveCategory(record)

	product.Images = record.StringList(models.FieldImages, models.FieldImage, models.FieldImagesAlt)
	if len(product.Images) == 0 {
		product.Images = []string{models.PlaceholderImage}
	}

	product.Rating, _ = record.Decimal(models.FieldRating, "rating")
	product.ReviewCount, _ = record.Count(models.FieldReviewCount, "reviewCount")

	product.SellerName = defaultSellerName
	if seller, found := record.String(models.FieldSeller, models.FieldSellerAlt, "sellerName"); found {
		product.SellerName = seller
	}

	product.AffiliateLink = models.MissingAffiliateLink
	if link, found := record.String(models.FieldAffiliateLink, models.FieldURL, "affiliateLink"); found {
		product.AffiliateLink = link
	}

	product.TimeRemaining, _ = record.String(models.FieldTimeRemaining, "timeRemaining")
	product.PercentSold, _ = record.String(models.FieldPercentSold, "percentSold")
	product.ExternalPrice, _ = record.String(models.FieldExternalPrice, "externalPrice")
	product.Installments, _ = record.String(models.FieldInstallments, "installments")
	product.Shipping, _ = record.String(models.FieldShipping, "shipping")

	product.IsNew = record.Truthy(models.FieldsNew...) || record.Truthy("isNew")
	product.IsBestseller = record.Truthy(models.FieldsBestsell...) || record.Truthy("isBestseller")
	// Flash sale: cờ tường minh HOẶC chỉ cần có thời gian còn lại
	product.IsFlashSale = record.Truthy(models.FieldsFlashSale...) ||
		record.Truthy("isFlashSale") ||
		product.TimeRemaining != ""

	product.Tags = s.deriveTags(record)

	if raw, found := record.Raw(models.FieldLastChecked, "lastChecked"); found {
		if t, parsed := utility.ParseTime(raw); parsed {
			product.LastChecked = &t
		}
	}

	return product, true
}

// deriveID chọn định danh theo thứ tự ưu tiên: field định danh tường minh,
// business key, URL nguồn, cuối cùng sinh tự động
func (s *NormalizerService) deriveID(record models.RawRecord) string {
	if id, ok := record.String(models.FieldID, models.FieldIDAlt); ok {
		return id
	}
	if key, ok := record.BusinessKey(); ok {
		return key
	}
	return fmt.Sprintf("produto-%d-%d", time.Now().Unix(), fallbackIDCounter.Add(1))
}

// deriveDiscount trả về phần trăm giảm giá: giá trị tường minh parse được
// luôn thắng; nếu không có thì tính từ giá gốc, và chỉ dùng khi dương hẳn
func (s *NormalizerService) deriveDiscount(record models.RawRecord, price float64, originalPrice *float64) *float64 {
	if explicit, ok := record.Percentage(models.FieldDiscount, "discountPercentage"); ok {
		return &explicit
	}
	if originalPrice != nil && *originalPrice > 0 && price >= 0 {
		computed := (*originalPrice - price) / *originalPrice * 100
		if computed > 0 {
			return &computed
		}
	}
	return nil
}

// deriveCategory suy ra cặp (nhãn, slug) của category.
// Thứ tự: cặp chuẩn hóa có sẵn (bản ghi đã đi qua normalizer trước đó),
// collection gốc trong cấu hình feed, text category thô, cuối cùng mặc định.
func (s *NormalizerService) deriveCategory(record models.RawRecord) (string, string) {
	// Bản ghi round-trip từ Product giữ nguyên cặp đã chuẩn hóa
	if slug, ok := record.String("categorySlug"); ok {
		if label, okLabel := record.String(models.FieldCategory, models.FieldCategoryAlt); okLabel {
			return label, slug
		}
	}

	if feed, ok := global.FeedByCollectionName(record.SourceCollection()); ok {
		return feed.Label, feed.Slug
	}

	if raw, ok := record.String(models.FieldCategory, models.FieldCategoryAlt); ok {
		return utility.TitleCase(raw), utility.Slugify(raw)
	}

	return defaultCategory, defaultSlug
}

// deriveTags trả về tags đã trim: chấp nhận mảng hoặc chuỗi phân cách bởi dấu phẩy
func (s *NormalizerService) deriveTags(record models.RawRecord) []string {
	raw, ok := record.Raw(models.FieldTags)
	if !ok {
		return nil
	}

	// Chuỗi đơn: tách theo dấu phẩy
	if str, isStr := raw.(string); isStr {
		parts := strings.Split(str, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		if len(tags) == 0 {
			return nil
		}
		return tags
	}

	// Mảng: StringList đã stringify/trim/bỏ rỗng
	return record.StringList(models.FieldTags)
}
