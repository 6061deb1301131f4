package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Test accessor String: ưu tiên theo thứ tự keys, bỏ qua field rỗng
func TestRawRecord_String(t *testing.T) {
	rec := RawRecord{
		"nome":  "   ",
		"title": "Fone Bluetooth",
	}

	// "nome" rỗng sau trim, phải fallback sang "title"
	got, ok := rec.String(FieldName, FieldNameAlt)
	if !ok || got != "Fone Bluetooth" {
		t.Errorf("String(nome, title) = (%q, %v), muốn (\"Fone Bluetooth\", true)", got, ok)
	}

	// ObjectID phải được chuyển thành hex string
	oid := primitive.NewObjectID()
	rec2 := RawRecord{"_id": oid}
	got, ok = rec2.String(FieldID)
	if !ok || got != oid.Hex() {
		t.Errorf("String(_id) = (%q, %v), muốn (%q, true)", got, ok, oid.Hex())
	}

	// Không có field nào
	if _, ok := (RawRecord{}).String(FieldName); ok {
		t.Error("String trên record rỗng phải trả về ok = false")
	}
}

func TestRawRecord_StringList(t *testing.T) {
	// Mảng []interface{} như mongo driver decode ra
	rec := RawRecord{"imagens": []interface{}{"a.jpg", "", 42, "b.jpg"}}
	got := rec.StringList(FieldImages)
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "b.jpg" {
		t.Errorf("StringList([]interface{}) = %v, muốn [a.jpg b.jpg]", got)
	}

	// primitive.A
	rec = RawRecord{"imagens": primitive.A{"x.jpg"}}
	got = rec.StringList(FieldImages)
	if len(got) != 1 || got[0] != "x.jpg" {
		t.Errorf("StringList(primitive.A) = %v, muốn [x.jpg]", got)
	}

	// Chuỗi đơn được nâng thành danh sách một phần tử
	rec = RawRecord{"imagem": "unica.jpg"}
	got = rec.StringList(FieldImages, FieldImage)
	if len(got) != 1 || got[0] != "unica.jpg" {
		t.Errorf("StringList(chuỗi đơn) = %v, muốn [unica.jpg]", got)
	}

	// Không có field nào khớp
	if got := (RawRecord{}).StringList(FieldImages); got != nil {
		t.Errorf("StringList trên record rỗng = %v, muốn nil", got)
	}
}

func TestRawRecord_Truthy(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"chuoi sim", "sim", true},
		{"chuoi nao", "não", false},
		{"chuoi false", "FALSE", false},
		{"chuoi 0", "0", false},
		{"so 1", float64(1), true},
		{"so 0", float64(0), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := RawRecord{"novo": tc.value}
			if got := rec.Truthy(FieldsNew...); got != tc.want {
				t.Errorf("Truthy(novo=%v) = %v, muốn %v", tc.value, got, tc.want)
			}
		})
	}

	// Bất kỳ alias nào truthy thì cờ bật
	rec := RawRecord{"novo": false, "is_new": true}
	if !rec.Truthy(FieldsNew...) {
		t.Error("Truthy phải bật khi một alias bất kỳ truthy")
	}
}

func TestRawRecord_BusinessKey(t *testing.T) {
	rec := RawRecord{
		"link_afiliado": "https://aff.example/123",
		"url":           "https://loja.example/p/123",
	}
	key, ok := rec.BusinessKey()
	if !ok || key != "https://aff.example/123" {
		t.Errorf("BusinessKey = (%q, %v), muốn link affiliate", key, ok)
	}

	// Fallback sang url khi thiếu link affiliate
	rec = RawRecord{"url": "https://loja.example/p/456"}
	key, ok = rec.BusinessKey()
	if !ok || key != "https://loja.example/p/456" {
		t.Errorf("BusinessKey fallback = (%q, %v), muốn url nguồn", key, ok)
	}

	if _, ok := (RawRecord{}).BusinessKey(); ok {
		t.Error("BusinessKey trên record thiếu cả hai field phải trả về ok = false")
	}
}

func TestRawRecord_VerificationTime(t *testing.T) {
	checked := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	// ultima_verificacao được ưu tiên
	rec := RawRecord{
		"ultima_verificacao": checked.Format(time.RFC3339),
		"updatedAt":          primitive.NewDateTimeFromTime(updated),
	}
	if got := rec.VerificationTime(); !got.Equal(checked) {
		t.Errorf("VerificationTime = %v, muốn %v", got, checked)
	}

	// Fallback sang updatedAt khi thiếu ultima_verificacao
	rec = RawRecord{"updatedAt": primitive.NewDateTimeFromTime(updated)}
	if got := rec.VerificationTime(); !got.Equal(updated) {
		t.Errorf("VerificationTime fallback = %v, muốn %v", got, updated)
	}

	// Không có timestamp nào: epoch zero để bản ghi có timestamp luôn thắng
	rec = RawRecord{"nome": "sem timestamp"}
	if got := rec.VerificationTime(); !got.Equal(time.Unix(0, 0)) {
		t.Errorf("VerificationTime mặc định = %v, muốn epoch zero", got)
	}
}
