package global

// FeedCollection mô tả một collection feed khuyến mãi: key ngắn dùng nội bộ,
// tên collection thật trong MongoDB, nhãn hiển thị và category slug phái sinh.
// Đây là artifact cấu hình DUY NHẤT cho danh sách feed — aggregator (allow-list),
// registry init và normalizer (suy ra category) đều đọc từ đây, không nơi nào
// được phép định nghĩa bảng thứ hai.
type FeedCollection struct {
	Key            string // Key ngắn (vd: RELAMPAGO)
	CollectionName string // Tên collection trong MongoDB
	Label          string // Nhãn hiển thị cho category
	Slug           string // Category slug (URL-safe)
}

// feedCollections là danh sách feed theo thứ tự duyệt cố định.
// Thứ tự này quyết định thứ tự ghép kết quả của aggregator.
var feedCollections = []FeedCollection{
	{Key: "RELAMPAGO", CollectionName: "ofertas_relampago", Label: "Ofertas Relâmpago", Slug: "ofertas-relampago"},
	{Key: "OFERTAS", CollectionName: "ofertas_gerais", Label: "Ofertas", Slug: "ofertas"},
	{Key: "MENOS100", CollectionName: "produtos_menos_100", Label: "Menos de R$100", Slug: "menos-de-100"},
	{Key: "MESCLA", CollectionName: "ofertas_do_mes", Label: "Ofertas do Mês", Slug: "ofertas-do-mes"},
	{Key: "MODA", CollectionName: "moda_ofertas", Label: "Moda", Slug: "moda"},
}

// feedByCollectionName là index tra cứu theo tên collection, build một lần khi khởi động.
var feedByCollectionName = func() map[string]FeedCollection {
	m := make(map[string]FeedCollection, len(feedCollections))
	for _, fc := range feedCollections {
		m[fc.CollectionName] = fc
	}
	return m
}()

// AllFeedCollections trả về danh sách feed theo thứ tự cấu hình.
// Trả về copy để caller không sửa được cấu hình gốc.
func AllFeedCollections() []FeedCollection {
	out := make([]FeedCollection, len(feedCollections))
	copy(out, feedCollections)
	return out
}

// FeedCollectionNames trả về tên các collection feed theo thứ tự cấu hình.
func FeedCollectionNames() []string {
	names := make([]string, 0, len(feedCollections))
	for _, fc := range feedCollections {
		names = append(names, fc.CollectionName)
	}
	return names
}

// FeedByCollectionName tra cứu feed theo tên collection.
func FeedByCollectionName(name string) (FeedCollection, bool) {
	fc, ok := feedByCollectionName[name]
	return fc, ok
}

// IsAllowedCollection kiểm tra tên collection có thuộc danh sách feed cho phép không.
// Dùng làm allow-list cho endpoint đọc theo collection, chặn truy cập collection tùy ý.
func IsAllowedCollection(name string) bool {
	_, ok := feedByCollectionName[name]
	return ok
}
