package productsvc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meta_affiliate/internal/api/products/models"
)

// Test chuẩn hóa một bản ghi đầy đủ field tiếng Bồ Đào Nha
func TestNormalizerService_Normalize_BanGhiDayDu(t *testing.T) {
	svc := NewNormalizerService()

	record := models.RawRecord{
		"source_collection":  "ofertas_gerais",
		"_id":                "abc123",
		"nome":               "Fone Bluetooth XYZ",
		"preco_para":         "R$ 89,90",
		"preco_de":           "R$ 120,00",
		"imagens":            []interface{}{"a.jpg", "b.jpg"},
		"avaliacao":          "4,5",
		"numero_avaliacoes":  "1.234",
		"vendedor":           "Loja ABC",
		"link_afiliado":      "https://aff.example/xyz",
		"novo":               true,
		"ultima_verificacao": "2025-06-01T10:00:00Z",
	}

	product, ok := svc.Normalize(record)
	require.True(t, ok, "bản ghi đầy đủ phải chuẩn hóa được")

	assert.Equal(t, "abc123", product.ID)
	assert.Equal(t, "Fone Bluetooth XYZ", product.Name)
	assert.Equal(t, 89.90, product.Price)
	require.NotNil(t, product.OriginalPrice)
	assert.Equal(t, 120.0, *product.OriginalPrice)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Images)
	assert.Equal(t, 4.5, product.Rating)
	assert.Equal(t, 1234, product.ReviewCount)
	assert.Equal(t, "Loja ABC", product.SellerName)
	assert.Equal(t, "https://aff.example/xyz", product.AffiliateLink)
	assert.True(t, product.IsNew)
	assert.False(t, product.IsFlashSale)
	// Category đến từ cấu hình feed của collection gốc
	assert.Equal(t, "Ofertas", product.Category)
	assert.Equal(t, "ofertas", product.CategorySlug)
	require.NotNil(t, product.LastChecked)
}

// Test tính giảm giá từ cặp giá: preco_de = R$ 100,00, preco_para = R$ 80,00
// phải cho discountPercentage = 20
func TestNormalizerService_DeriveDiscount(t *testing.T) {
	svc := NewNormalizerService()

	record := models.RawRecord{
		"nome":       "Produto",
		"preco_para": "R$ 80,00",
		"preco_de":   "R$ 100,00",
	}
	product, ok := svc.Normalize(record)
	require.True(t, ok)
	require.NotNil(t, product.DiscountPercentage)
	assert.InDelta(t, 20.0, *product.DiscountPercentage, 1e-9)

	// Giá trị tường minh luôn thắng giá trị tính toán
	record["desconto"] = "15%"
	product, ok = svc.Normalize(record)
	require.True(t, ok)
	require.NotNil(t, product.DiscountPercentage)
	assert.Equal(t, 15.0, *product.DiscountPercentage)

	// Giá gốc thấp hơn giá bán: không có giảm giá
	record = models.RawRecord{
		"preco_para": "R$ 100,00",
		"preco_de":   "R$ 80,00",
	}
	product, ok = svc.Normalize(record)
	require.True(t, ok)
	assert.Nil(t, product.DiscountPercentage)
}

// Test các giá trị mặc định khi field vắng mặt
func TestNormalizerService_Normalize_GiaTriMacDinh(t *testing.T) {
	svc := NewNormalizerService()

	product, ok := svc.Normalize(models.RawRecord{"preco_para": "R$ 10,00"})
	require.True(t, ok)

	assert.Equal(t, "Produto sem nome", product.Name)
	assert.Equal(t, "Loja parceira", product.SellerName)
	assert.Equal(t, "#", product.AffiliateLink)
	assert.Equal(t, []string{models.PlaceholderImage}, product.Images,
		"thiếu ảnh phải nhận placeholder, không bao giờ danh sách rỗng")
	assert.Equal(t, "General", product.Category)
	assert.Equal(t, "general", product.CategorySlug)
	assert.NotEmpty(t, product.ID, "định danh sinh tự động không được rỗng")
}

// Test suy ra category từ text thô khi collection gốc không có trong cấu hình
func TestNormalizerService_DeriveCategory_TuTextTho(t *testing.T) {
	svc := NewNormalizerService()

	product, ok := svc.Normalize(models.RawRecord{
		"preco_para": "R$ 10,00",
		"categoria":  "eletrônicos e áudio",
	})
	require.True(t, ok)
	assert.Equal(t, "Eletrônicos E Áudio", product.Category)
	assert.Equal(t, "eletronicos-e-audio", product.CategorySlug)
}

// Test cờ flash sale: chỉ cần có tempo_restante là bật
func TestNormalizerService_Normalize_FlashSale(t *testing.T) {
	svc := NewNormalizerService()

	product, ok := svc.Normalize(models.RawRecord{
		"preco_para":     "R$ 10,00",
		"tempo_restante": "02:15:00",
	})
	require.True(t, ok)
	assert.True(t, product.IsFlashSale)
	assert.Equal(t, "02:15:00", product.TimeRemaining)
}

// Test tags: chuỗi phân cách dấu phẩy và mảng đều được chấp nhận
func TestNormalizerService_DeriveTags(t *testing.T) {
	svc := NewNormalizerService()

	product, ok := svc.Normalize(models.RawRecord{
		"preco_para": "R$ 10,00",
		"tags":       "oferta, relampago , ",
	})
	require.True(t, ok)
	assert.Equal(t, []string{"oferta", "relampago"}, product.Tags)

	product, ok = svc.Normalize(models.RawRecord{
		"preco_para": "R$ 10,00",
		"tags":       []interface{}{"novo", "frete gratis"},
	})
	require.True(t, ok)
	assert.Equal(t, []string{"novo", "frete gratis"}, product.Tags)
}

// Test bản ghi nil: không panic, trả về không có sản phẩm
func TestNormalizerService_Normalize_BanGhiNil(t *testing.T) {
	svc := NewNormalizerService()
	if _, ok := svc.Normalize(nil); ok {
		t.Error("Normalize(nil) phải trả về ok = false")
	}
}

// Test một bản ghi hỏng không làm mất các bản ghi còn lại trong batch
func TestNormalizerService_NormalizeAll_CachLyBanGhiHong(t *testing.T) {
	svc := NewNormalizerService()

	records := []models.RawRecord{
		{"nome": "ok 1", "preco_para": "R$ 10,00"},
		nil,
		{"nome": "ok 2", "preco_para": "R$ 20,00"},
	}

	products := svc.NormalizeAll(records)
	require.Len(t, products, 2)
	assert.Equal(t, "ok 1", products[0].Name)
	assert.Equal(t, "ok 2", products[1].Name)
}

// Test idempotence: chuẩn hóa một sản phẩm đã chuẩn hóa (round-trip qua JSON)
// phải cho ra đúng sản phẩm đó
func TestNormalizerService_Normalize_Idempotent(t *testing.T) {
	svc := NewNormalizerService()

	original, ok := svc.Normalize(models.RawRecord{
		"source_collection":  "moda_ofertas",
		"_id":                "prod-1",
		"nome":               "Camiseta Básica",
		"preco_para":         "R$ 49,90",
		"preco_de":           "R$ 79,90",
		"imagens":            []interface{}{"camiseta.jpg"},
		"avaliacao":          4.2,
		"numero_avaliacoes":  87,
		"vendedor":           "Loja Moda",
		"link_afiliado":      "https://aff.example/camiseta",
		"ultima_verificacao": "2025-06-01T10:00:00Z",
	})
	require.True(t, ok)

	// Serialize rồi đọc lại như một bản ghi thô (mô phỏng re-ingest)
	data, err := json.Marshal(original)
	require.NoError(t, err)
	var raw models.RawRecord
	require.NoError(t, json.Unmarshal(data, &raw))

	again, ok := svc.Normalize(raw)
	require.True(t, ok)

	assert.Equal(t, original.ID, again.ID)
	assert.Equal(t, original.Name, again.Name)
	assert.Equal(t, original.Price, again.Price)
	require.NotNil(t, again.OriginalPrice)
	assert.Equal(t, *original.OriginalPrice, *again.OriginalPrice)
	require.NotNil(t, again.DiscountPercentage)
	assert.InDelta(t, *original.DiscountPercentage, *again.DiscountPercentage, 1e-9)
	assert.Equal(t, original.Images, again.Images)
	assert.Equal(t, original.Category, again.Category)
	assert.Equal(t, original.CategorySlug, again.CategorySlug)
	assert.Equal(t, original.Rating, again.Rating)
	assert.Equal(t, original.ReviewCount, again.ReviewCount)
	assert.Equal(t, original.SellerName, again.SellerName)
	assert.Equal(t, original.AffiliateLink, again.AffiliateLink)
	assert.Equal(t, original.IsFlashSale, again.IsFlashSale)
}
