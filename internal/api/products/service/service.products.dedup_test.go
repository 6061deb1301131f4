package productsvc

import (
	"testing"

	"meta_affiliate/internal/api/products/models"
)

// Test lọc giá: các giá trị "không có hàng" và giá 0 phải bị loại,
// giá dương hợp lệ phải được giữ
func TestDedupService_IsPriceValid(t *testing.T) {
	svc := NewDedupService()

	invalid := []interface{}{
		0,
		float64(0),
		"0",
		"R$ 0,00",
		"-",
		"",
		"indisponível",
		"Indisponivel",
		"não disponível",
		"null",
		"undefined",
		nil,
		true,
		-10.5,
	}
	for _, value := range invalid {
		rec := models.RawRecord{"preco_para": value}
		if svc.IsPriceValid(rec) {
			t.Errorf("IsPriceValid(preco_para=%v) = true, muốn false", value)
		}
	}

	valid := []interface{}{
		"R$ 19,90",
		"R$ 1.234,56",
		"89,99",
		19.9,
		42,
	}
	for _, value := range valid {
		rec := models.RawRecord{"preco_para": value}
		if !svc.IsPriceValid(rec) {
			t.Errorf("IsPriceValid(preco_para=%v) = false, muốn true", value)
		}
	}

	// Field vắng mặt hoàn toàn
	if svc.IsPriceValid(models.RawRecord{"nome": "sem preco"}) {
		t.Error("IsPriceValid trên bản ghi không có field giá phải trả về false")
	}
}

// Test gộp trùng: hai bản ghi cùng business key, bản có timestamp muộn hơn thắng
func TestDedupService_Deduplicate_GiuBanGhiMoiNhat(t *testing.T) {
	svc := NewDedupService()

	records := []models.RawRecord{
		{
			"source_collection":  "ofertas_gerais",
			"link_afiliado":      "https://aff.example/123",
			"preco_para":         "R$ 99,90",
			"ultima_verificacao": "2025-06-01T10:00:00Z",
		},
		{
			"source_collection":  "ofertas_gerais",
			"link_afiliado":      "https://aff.example/123",
			"preco_para":         "R$ 89,90",
			"ultima_verificacao": "2025-06-02T10:00:00Z",
		},
	}

	out := svc.Deduplicate(records)
	if len(out) != 1 {
		t.Fatalf("Deduplicate trả về %d bản ghi, muốn 1", len(out))
	}
	if price, _ := out[0].String("preco_para"); price != "R$ 89,90" {
		t.Errorf("Bản ghi giữ lại có giá %q, muốn bản ghi mới nhất \"R$ 89,90\"", price)
	}
}

// Test tie-break: timestamp bằng nhau thì bản ghi gặp trước được giữ
func TestDedupService_Deduplicate_TimestampBangNhau(t *testing.T) {
	svc := NewDedupService()

	records := []models.RawRecord{
		{
			"source_collection":  "ofertas_gerais",
			"link_afiliado":      "https://aff.example/123",
			"nome":               "gap truoc",
			"preco_para":         "R$ 10,00",
			"ultima_verificacao": "2025-06-01T10:00:00Z",
		},
		{
			"source_collection":  "ofertas_gerais",
			"link_afiliado":      "https://aff.example/123",
			"nome":               "gap sau",
			"preco_para":         "R$ 20,00",
			"ultima_verificacao": "2025-06-01T10:00:00Z",
		},
	}

	out := svc.Deduplicate(records)
	if len(out) != 1 {
		t.Fatalf("Deduplicate trả về %d bản ghi, muốn 1", len(out))
	}
	if name, _ := out[0].String("nome"); name != "gap truoc" {
		t.Errorf("Tie-break giữ bản ghi %q, muốn bản ghi gặp trước", name)
	}
}

// Test key gộp: trùng link giữa hai collection khác nhau KHÔNG bị gộp
func TestDedupService_Deduplicate_KhacCollectionKhongGop(t *testing.T) {
	svc := NewDedupService()

	records := []models.RawRecord{
		{
			"source_collection": "ofertas_gerais",
			"link_afiliado":     "https://aff.example/123",
			"preco_para":        "R$ 10,00",
		},
		{
			"source_collection": "moda_ofertas",
			"link_afiliado":     "https://aff.example/123",
			"preco_para":        "R$ 10,00",
		},
	}

	out := svc.Deduplicate(records)
	if len(out) != 2 {
		t.Errorf("Deduplicate trả về %d bản ghi, muốn 2 (mỗi feed một catalog độc lập)", len(out))
	}
}

// Test bản ghi không có business key: mỗi bản nhận key riêng, không gộp chung
func TestDedupService_Deduplicate_ThieuBusinessKey(t *testing.T) {
	svc := NewDedupService()

	records := []models.RawRecord{
		{"source_collection": "ofertas_gerais", "nome": "a", "preco_para": "R$ 10,00"},
		{"source_collection": "ofertas_gerais", "nome": "b", "preco_para": "R$ 20,00"},
	}

	out := svc.Deduplicate(records)
	if len(out) != 2 {
		t.Errorf("Deduplicate trả về %d bản ghi, muốn 2 (không gộp bản ghi thiếu key)", len(out))
	}
}

// Test thứ tự kết quả theo lần xuất hiện đầu của key
func TestDedupService_Deduplicate_GiuThuTu(t *testing.T) {
	svc := NewDedupService()

	records := []models.RawRecord{
		{"source_collection": "c", "link_afiliado": "k1", "nome": "mot", "preco_para": "R$ 1,00"},
		{"source_collection": "c", "link_afiliado": "k2", "nome": "hai", "preco_para": "R$ 2,00"},
		{
			"source_collection":  "c",
			"link_afiliado":      "k1",
			"nome":               "mot-moi",
			"preco_para":         "R$ 3,00",
			"ultima_verificacao": "2025-06-01T00:00:00Z",
		},
	}

	out := svc.Deduplicate(records)
	if len(out) != 2 {
		t.Fatalf("Deduplicate trả về %d bản ghi, muốn 2", len(out))
	}
	// k1 được thay bằng bản mới nhưng giữ vị trí đầu
	if name, _ := out[0].String("nome"); name != "mot-moi" {
		t.Errorf("out[0] = %q, muốn bản ghi k1 mới nhất ở vị trí đầu", name)
	}
	if name, _ := out[1].String("nome"); name != "hai" {
		t.Errorf("out[1] = %q, muốn bản ghi k2", name)
	}
}

// Test input rỗng: trả về slice rỗng, không bao giờ nil
func TestDedupService_Deduplicate_InputRong(t *testing.T) {
	svc := NewDedupService()
	out := svc.Deduplicate(nil)
	if out == nil {
		t.Fatal("Deduplicate(nil) trả về nil, muốn slice rỗng")
	}
	if len(out) != 0 {
		t.Errorf("Deduplicate(nil) trả về %d bản ghi, muốn 0", len(out))
	}
}
