package productsvc

import (
	"math"
	"sort"
	"strings"

	"meta_affiliate/internal/api/products/models"
	"meta_affiliate/internal/global"
	"meta_affiliate/internal/utility"
)

// Giới hạn của danh sách top-rated
const (
	defaultTopRatedLimit = 10 // Số sản phẩm tối đa
	maxPerCategory       = 2  // Số sản phẩm tối đa cho một category suy ra
	minReviewCount       = 5  // Số đánh giá tối thiểu để đủ điều kiện
)

// categoryKeywords ánh xạ category suy ra -> các từ khóa nhận diện.
// Thứ tự cố định, từ khóa khớp trước thắng. So khớp bằng substring trên text
// đã bỏ dấu và chữ thường hóa.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"creatina", []string{"creatina", "creatine"}},
	{"proteina", []string{"whey", "proteina", "protein", "albumina"}},
	{"suplementos", []string{"vitamina", "omega", "colageno", "cafeina"}},
	{"celulares", []string{"smartphone", "celular", "iphone", "galaxy", "xiaomi"}},
	{"notebooks", []string{"notebook", "laptop", "macbook"}},
	{"fones", []string{"fone", "headphone", "headset", "earbud", "airpod"}},
	{"tvs", []string{"smart tv", "televisao", "televisor"}},
	{"games", []string{"playstation", "xbox", "nintendo", "gamer"}},
	{"casa", []string{"air fryer", "liquidificador", "aspirador", "cafeteira", "panela"}},
	{"moda", []string{"camiseta", "tenis", "vestido", "calca", "jaqueta"}},
	{"beleza", []string{"perfume", "maquiagem", "shampoo", "hidratante"}},
}

// TopRatedService chọn tập sản phẩm nổi bật từ danh sách đã chuẩn hóa.
type TopRatedService struct {
	limit int
}

// NewTopRatedService tạo mới TopRatedService với giới hạn từ cấu hình server
func NewTopRatedService() *TopRatedService {
	limit := defaultTopRatedLimit
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.TopRatedLimit > 0 {
		limit = global.MongoDB_ServerConfig.TopRatedLimit
	}
	return &TopRatedService{limit: limit}
}

// Score tính điểm xếp hạng: rating nhân log tự nhiên của số đánh giá.
// Điểm tăng theo cả chất lượng lẫn độ tin cậy của đánh giá.
func Score(p models.Product) float64 {
	return p.Rating * math.Log(float64(p.ReviewCount)+1)
}

// Select chọn tối đa limit sản phẩm nổi bật, theo thứ tự điểm giảm dần.
//
// Các bước lọc:
//  1. Đủ điều kiện: rating > 0 và reviewCount >= 5.
//  2. Sắp theo điểm giảm dần (sort ổn định: điểm bằng nhau giữ thứ tự input).
//  3. Chặn tên gần trùng: hai token đầu của tên (chữ thường) đã phát ra rồi
//     thì các sản phẩm sau cùng key bị bỏ qua.
//  4. Mỗi category suy ra tối đa 2 sản phẩm.
//
// Kết quả là thuần túy xác định theo input, không có yếu tố ngẫu nhiên.
func (s *TopRatedService) Select(products []models.Product) []models.Product {
	eligible := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Rating > 0 && p.ReviewCount >= minReviewCount {
			eligible = append(eligible, p)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return Score(eligible[i]) > Score(eligible[j])
	})

	selected := make([]models.Product, 0, s.limit)
	seenNames := make(map[string]struct{})
	perCategory := make(map[string]int)

	for _, p := range eligible {
		if len(selected) >= s.limit {
			break
		}

		nameKey := nameDedupKey(p.Name)
		if _, dup := seenNames[nameKey]; dup {
			continue
		}

		category := inferCategory(p)
		if perCategory[category] >= maxPerCategory {
			continue
		}

		seenNames[nameKey] = struct{}{}
		perCategory[category]++
		selected = append(selected, p)
	}

	return selected
}

// nameDedupKey trả về key chống gần trùng: hai token đầu của tên, chữ thường
func nameDedupKey(name string) string {
	tokens := strings.Fields(strings.ToLower(name))
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}

// inferCategory suy ra category để đa dạng hóa: khớp từ khóa trên tên +
// category + tags, không khớp thì dùng chính categorySlug của sản phẩm
func inferCategory(p models.Product) string {
	text := strings.ToLower(utility.RemoveDiacritics(
		p.Name + " " + p.Category + " " + strings.Join(p.Tags, " "),
	))
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}
	return p.CategorySlug
}
