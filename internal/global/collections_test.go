package global

import "testing"

// Test cấu hình feed: đủ 5 collection, không trùng tên, index tra cứu nhất quán
func TestFeedCollections_CauHinh(t *testing.T) {
	names := FeedCollectionNames()
	if len(names) != 5 {
		t.Fatalf("Có %d collection feed, muốn 5", len(names))
	}

	seen := make(map[string]struct{})
	for _, name := range names {
		if _, dup := seen[name]; dup {
			t.Errorf("Tên collection %q bị trùng trong cấu hình", name)
		}
		seen[name] = struct{}{}

		fc, ok := FeedByCollectionName(name)
		if !ok {
			t.Errorf("FeedByCollectionName(%q) không tìm thấy", name)
			continue
		}
		if fc.CollectionName != name {
			t.Errorf("Index tra cứu trả về %q cho key %q", fc.CollectionName, name)
		}
		if fc.Label == "" || fc.Slug == "" || fc.Key == "" {
			t.Errorf("Feed %q thiếu Label/Slug/Key", name)
		}
	}
}

func TestFeedByCollectionName(t *testing.T) {
	fc, ok := FeedByCollectionName("produtos_menos_100")
	if !ok {
		t.Fatal("FeedByCollectionName(\"produtos_menos_100\") không tìm thấy")
	}
	if fc.Label != "Menos de R$100" || fc.Slug != "menos-de-100" {
		t.Errorf("Feed = (%q, %q), muốn (\"Menos de R$100\", \"menos-de-100\")", fc.Label, fc.Slug)
	}
}

func TestIsAllowedCollection(t *testing.T) {
	for _, name := range FeedCollectionNames() {
		if !IsAllowedCollection(name) {
			t.Errorf("IsAllowedCollection(%q) = false, muốn true", name)
		}
	}
	for _, name := range []string{"users", "admin", "", "OFERTAS_GERAIS"} {
		if IsAllowedCollection(name) {
			t.Errorf("IsAllowedCollection(%q) = true, muốn false", name)
		}
	}
}

func TestAllFeedCollections_TraVeCopy(t *testing.T) {
	a := AllFeedCollections()
	a[0].CollectionName = "bi sua"
	b := AllFeedCollections()
	if b[0].CollectionName == "bi sua" {
		t.Error("AllFeedCollections phải trả về copy, không phải slice gốc")
	}
}
