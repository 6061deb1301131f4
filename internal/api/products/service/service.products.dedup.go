package productsvc

import (
	"fmt"
	"regexp"
	"strings"

	"meta_affiliate/internal/api/products/models"
	"meta_affiliate/internal/logger"
	"meta_affiliate/internal/utility"
)

// DedupService loại bản ghi giá không hợp lệ và gộp các bản ghi trùng
// business key về đúng một bản ghi mới nhất.
type DedupService struct{}

// NewDedupService tạo mới DedupService
func NewDedupService() *DedupService {
	return &DedupService{}
}

// invalidPriceTokens là các giá trị chữ mà scraper ghi vào field giá khi
// sản phẩm hết hàng. So sánh sau khi đã bỏ dấu và chữ thường hóa.
var invalidPriceTokens = map[string]struct{}{
	"nao disponivel": {},
	"indisponivel":   {},
	"":               {},
	"-":              {},
	"null":           {},
	"undefined":      {},
}

// pricePunctPattern: dấu câu và ký tự ngăn cách trong chuỗi giá
var pricePunctPattern = regexp.MustCompile(`[.,;:\s]+`)

// nonDigitPattern dùng để kiểm tra "chỉ còn số 0"
var nonDigitPattern = regexp.MustCompile(`[^0-9]`)

// IsPriceValid kiểm tra giá hiệu lực của bản ghi có dùng được không.
// Giá không hợp lệ khi: field vắng mặt/null; là số <= 0; hoặc là chuỗi mà sau
// khi bỏ ký hiệu tiền tệ, HTML, dấu câu và khoảng trắng chỉ còn token "không
// có hàng" hoặc toàn chữ số 0.
//
// Không bao giờ trả lỗi: mọi dạng dữ liệu hỏng đều quy về "không hợp lệ".
func (s *DedupService) IsPriceValid(record models.RawRecord) bool {
	value, ok := record.Raw(models.FieldPrice, "price")
	if !ok {
		return false
	}

	switch v := value.(type) {
	case string:
		cleaned := utility.CleanMoneyText(v)
		cleaned = strings.ToLower(utility.RemoveDiacritics(cleaned))
		token := strings.TrimSpace(pricePunctPattern.ReplaceAllString(cleaned, " "))
		token = strings.Trim(token, "-")
		token = strings.TrimSpace(token)
		if _, invalid := invalidPriceTokens[token]; invalid {
			return false
		}
		// Chuỗi chỉ còn số 0 sau khi bỏ hết ký tự ngăn cách ("R$ 0,00" -> "000")
		digits := nonDigitPattern.ReplaceAllString(cleaned, "")
		if digits != "" && strings.Count(digits, "0") == len(digits) {
			return false
		}
		// Còn lại phải parse được thành số dương
		f, parsed := utility.ParseDecimal(v)
		return parsed && f > 0
	default:
		f, parsed := utility.ParseDecimal(value)
		return parsed && f > 0
	}
}

// Deduplicate loại bản ghi giá không hợp lệ rồi gộp các bản ghi trùng
// business key, giữ lại bản ghi có verification timestamp muộn nhất.
//
// Quy tắc:
//   - Key gộp = (collection gốc, business key): trùng link giữa hai collection
//     khác nhau KHÔNG bị gộp — mỗi feed là một catalog độc lập.
//   - Bản ghi không có business key nhận key tổng hợp theo vị trí, không bị
//     gộp chung một rổ (tránh mất dữ liệu âm thầm).
//   - Timestamp bằng nhau: giữ bản ghi gặp trước (không thay thế).
//   - Kết quả theo thứ tự key xuất hiện lần đầu.
func (s *DedupService) Deduplicate(records []models.RawRecord) []models.RawRecord {
	type kept struct {
		index int // Vị trí trong slice kết quả
	}

	out := make([]models.RawRecord, 0, len(records))
	seen := make(map[string]kept, len(records))
	droppedPrice := 0
	droppedDup := 0

	for i, record := range records {
		if !s.IsPriceValid(record) {
			droppedPrice++
			continue
		}

		key := s.groupKey(record, i)
		existing, exists := seen[key]
		if !exists {
			seen[key] = kept{index: len(out)}
			out = append(out, record)
			continue
		}

		droppedDup++
		// Chỉ thay thế khi bản ghi mới được xác nhận muộn hơn HẲN
		if record.VerificationTime().After(out[existing.index].VerificationTime()) {
			out[existing.index] = record
		}
	}

	if droppedPrice > 0 || droppedDup > 0 {
		metrics.AddDroppedInvalidPrice(droppedPrice)
		metrics.AddDroppedDuplicate(droppedDup)
		logger.GetAppLogger().WithFields(map[string]interface{}{
			"input":              len(records),
			"output":             len(out),
			"dropped_price":      droppedPrice,
			"dropped_duplicates": droppedDup,
		}).Debug("Đã loại trùng bản ghi feed")
	}

	return out
}

// groupKey trả về key gộp của bản ghi. Vị trí i dùng cho key tổng hợp khi
// bản ghi không có business key.
func (s *DedupService) groupKey(record models.RawRecord, i int) string {
	businessKey, ok := record.BusinessKey()
	if !ok {
		return fmt.Sprintf("%s|__sem_chave_%d", record.SourceCollection(), i)
	}
	return record.SourceCollection() + "|" + businessKey
}
