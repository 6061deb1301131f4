// Package utility chứa các hàm chuyển đổi dữ liệu thô từ các feed khuyến mãi:
// số tiền dạng chuỗi locale Brazil ("R$ 1.234,56"), phần trăm, timestamp nhiều
// định dạng, bỏ dấu tiếng Bồ Đào Nha và sinh slug.
package utility

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityPattern = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	currencyPattern   = regexp.MustCompile(`(?i)r\$|US\$|\$|€`)
	nonAlnumPattern   = regexp.MustCompile(`[^a-z0-9]+`)
	multiHyphen       = regexp.MustCompile(`-+`)
)

// diacriticsRemover bỏ các dấu kết hợp unicode (Mn) sau khi tách NFD
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// titleCaser giữ một caser dùng chung, cases.Caser không an toàn khi dùng đồng thời
// nên mỗi lần gọi tạo mới từ language tag (rẻ)
var titleLang = language.BrazilianPortuguese

// StripHTML loại bỏ tag và entity HTML khỏi chuỗi
func StripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	return htmlEntityPattern.ReplaceAllString(s, "")
}

// RemoveDiacritics bỏ dấu ("não" -> "nao", "relâmpago" -> "relampago")
func RemoveDiacritics(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify chuyển chuỗi bất kỳ thành slug URL-safe: bỏ dấu, chữ thường,
// mọi ký tự không phải chữ/số thành gạch ngang
func Slugify(s string) string {
	s = strings.ToLower(RemoveDiacritics(strings.TrimSpace(s)))
	s = nonAlnumPattern.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TitleCase chuyển chuỗi về dạng viết hoa đầu từ theo quy tắc tiếng Bồ Đào Nha
func TitleCase(s string) string {
	return cases.Title(titleLang).String(strings.TrimSpace(s))
}

// CleanMoneyText chuẩn hóa chuỗi tiền tệ trước khi parse: bỏ ký hiệu tiền,
// HTML, khoảng trắng. Không đụng tới dấu chấm/phẩy, phần đó do ParseDecimal xử lý.
func CleanMoneyText(s string) string {
	s = StripHTML(s)
	s = currencyPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseDecimal chuyển một giá trị thô bất kỳ thành số thực.
// Quy tắc theo dữ liệu feed Brazil: dấu chấm là phân cách nghìn, dấu phẩy là
// phân cách thập phân ("R$ 1.234,56" -> 1234.56).
//
// Trả về (0, false) khi không parse được: nil, bool, chuỗi rỗng hay chuỗi rác.
// Caller tự quyết định default, hàm này không bao giờ trả lỗi.
func ParseDecimal(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case bool:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := CleanMoneyText(v)
		if s == "" {
			return 0, false
		}
		// Locale Brazil: "." ngăn cách nghìn, "," ngăn cách thập phân
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParsePercentage parse giá trị phần trăm: như ParseDecimal nhưng bỏ thêm dấu "%"
// ở cuối và từ chối giá trị ngoài [0,100]
func ParsePercentage(value interface{}) (float64, bool) {
	if s, ok := value.(string); ok {
		value = strings.TrimSuffix(strings.TrimSpace(s), "%")
	}
	f, ok := ParseDecimal(value)
	if !ok || f < 0 || f > 100 {
		return 0, false
	}
	return f, true
}

// ParseCount parse số đếm (số lượng đánh giá): như ParseDecimal nhưng làm tròn
// về số nguyên không âm
func ParseCount(value interface{}) (int, bool) {
	f, ok := ParseDecimal(value)
	if !ok || f < 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// timeLayouts là các định dạng timestamp gặp trong dữ liệu feed (scraper ghi
// không thống nhất)
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseTime chuyển giá trị thô thành time.Time.
// Hỗ trợ time.Time, primitive.DateTime, primitive.Timestamp, chuỗi theo các
// layout phổ biến và epoch (giây hoặc mili-giây).
func ParseTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		// Chuỗi chứa epoch
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return epochToTime(n), true
		}
		return time.Time{}, false
	case float64:
		return epochToTime(int64(v)), true
	case int64:
		return epochToTime(v), true
	case int32:
		return epochToTime(int64(v)), true
	case int:
		return epochToTime(int64(v)), true
	default:
		return time.Time{}, false
	}
}

// epochToTime đoán đơn vị epoch: giá trị quá lớn cho giây được coi là mili-giây
func epochToTime(n int64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
