// Package models chứa các model thuộc domain Products: bản ghi thô đọc từ
// các collection feed và sản phẩm đã chuẩn hóa.
package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"meta_affiliate/internal/utility"
)

// Tên các field trong bản ghi thô. Các feed do scraper ghi không thống nhất
// field name nên hầu hết field có nhiều alias (tiếng Bồ Đào Nha và tiếng Anh).
const (
	FieldSourceCollection = "source_collection" // Do aggregator gắn vào, không có sẵn trong store

	FieldName             = "nome"
	FieldNameAlt          = "title"
	FieldDescription      = "descricao"
	FieldDescriptionAlt   = "description"
	FieldPrice            = "preco_para"
	FieldOriginalPrice    = "preco_de"
	FieldDiscount         = "desconto"
	FieldImages           = "imagens"
	FieldImage            = "imagem"
	FieldImagesAlt        = "images"
	FieldCategory         = "categoria"
	FieldCategoryAlt      = "category"
	FieldRating           = "avaliacao"
	FieldReviewCount      = "numero_avaliacoes"
	FieldSeller           = "vendedor"
	FieldSellerAlt        = "seller"
	FieldAffiliateLink    = "link_afiliado"
	FieldURL              = "url"
	FieldLastChecked      = "ultima_verificacao"
	FieldUpdatedAt        = "updatedAt"
	FieldTimeRemaining    = "tempo_restante"
	FieldPercentSold      = "porcentagem_vendida"
	FieldExternalPrice    = "preco_exterior"
	FieldInstallments     = "parcelas"
	FieldShipping         = "frete"
	FieldTags             = "tags"
	FieldID               = "_id"
	FieldIDAlt            = "id"
)

// Các alias cho cờ boolean. Cờ bật khi BẤT KỲ alias nào truthy.
var (
	FieldsNew       = []string{"novo", "is_new", "new"}
	FieldsBestsell  = []string{"mais_vendido", "is_bestseller", "bestseller"}
	FieldsFlashSale = []string{"relampago", "is_flash_sale", "flash_sale"}
)

// RawRecord là một document chưa xử lý đọc từ collection feed: map key-value
// với value không rõ kiểu. Mọi logic "field này có mặt và hợp lệ không" tập
// trung ở các accessor bên dưới, không kiểm tra inline rải rác nơi khác.
type RawRecord map[string]interface{}

// Raw trả về giá trị thô của field đầu tiên có mặt trong danh sách keys
func (r RawRecord) Raw(keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String trả về giá trị chuỗi đã trim của field đầu tiên có mặt và không rỗng.
// Giá trị số được chuyển thành chuỗi, các kiểu khác bị bỏ qua.
func (r RawRecord) String(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			trimmed := strings.TrimSpace(s)
			if trimmed != "" {
				return trimmed, true
			}
		case float64, float32, int, int32, int64:
			return fmt.Sprintf("%v", s), true
		case primitive.ObjectID:
			return s.Hex(), true
		}
	}
	return "", false
}

// Decimal parse giá trị số (giá tiền, đánh giá) từ field đầu tiên parse được
func (r RawRecord) Decimal(keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			if f, parsed := utility.ParseDecimal(v); parsed {
				return f, true
			}
		}
	}
	return 0, false
}

// Percentage parse giá trị phần trăm trong [0,100] từ field đầu tiên parse được
func (r RawRecord) Percentage(keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			if f, parsed := utility.ParsePercentage(v); parsed {
				return f, true
			}
		}
	}
	return 0, false
}

// Count parse số đếm không âm từ field đầu tiên parse được
func (r RawRecord) Count(keys ...string) (int, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			if n, parsed := utility.ParseCount(v); parsed {
				return n, true
			}
		}
	}
	return 0, false
}

// StringList trả về danh sách chuỗi từ field đầu tiên có mặt.
// Chấp nhận mảng chuỗi (bỏ phần tử không phải chuỗi/rỗng) hoặc một chuỗi đơn.
// Thứ tự phần tử được giữ nguyên.
func (r RawRecord) StringList(keys ...string) []string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch list := v.(type) {
		case []string:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if trimmed := strings.TrimSpace(item); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			if len(out) > 0 {
				return out
			}
		case []interface{}:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if s, isStr := item.(string); isStr {
					if trimmed := strings.TrimSpace(s); trimmed != "" {
						out = append(out, trimmed)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case primitive.A:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if s, isStr := item.(string); isStr {
					if trimmed := strings.TrimSpace(s); trimmed != "" {
						out = append(out, trimmed)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			if trimmed := strings.TrimSpace(list); trimmed != "" {
				return []string{trimmed}
			}
		}
	}
	return nil
}

// Truthy kiểm tra có field nào trong danh sách mang giá trị truthy không
// (khác nil, khác false, khác 0, khác chuỗi rỗng — theo quy ước dữ liệu feed)
func (r RawRecord) Truthy(keys ...string) bool {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			if t {
				return true
			}
		case string:
			s := strings.ToLower(strings.TrimSpace(t))
			if s != "" && s != "false" && s != "0" && s != "nao" && s != "não" {
				return true
			}
		case float64:
			if t != 0 {
				return true
			}
		case float32:
			if t != 0 {
				return true
			}
		case int, int32, int64:
			if fmt.Sprintf("%v", t) != "0" {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// BusinessKey trả về business key của bản ghi: link affiliate, fallback URL nguồn.
// Đây là định danh tự nhiên của một sản phẩm qua các lần re-scrape.
func (r RawRecord) BusinessKey() (string, bool) {
	return r.String(FieldAffiliateLink, FieldURL)
}

// SourceCollection trả về tên collection gốc do aggregator gắn vào
func (r RawRecord) SourceCollection() string {
	s, _ := r.String(FieldSourceCollection)
	return s
}

// VerificationTime trả về thời điểm dữ liệu được xác nhận lần cuối:
// ưu tiên ultima_verificacao, fallback timestamp sửa đổi của document,
// cuối cùng là epoch zero. Dùng để phân xử trùng business key.
func (r RawRecord) VerificationTime() time.Time {
	if v, ok := r.Raw(FieldLastChecked); ok {
		if t, parsed := utility.ParseTime(v); parsed {
			return t
		}
	}
	if v, ok := r.Raw(FieldUpdatedAt, "updated_at", "modifiedAt"); ok {
		if t, parsed := utility.ParseTime(v); parsed {
			return t
		}
	}
	return time.Unix(0, 0)
}
