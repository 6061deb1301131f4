package models

import "time"

// PlaceholderImage là URL ảnh thay thế khi bản ghi không có ảnh hợp lệ nào.
// Invariant: Images của Product không bao giờ rỗng sau chuẩn hóa.
const PlaceholderImage = "https://placehold.co/600x600?text=Produto"

// MissingAffiliateLink là giá trị sentinel khi bản ghi không có link affiliate
const MissingAffiliateLink = "#"

// Product là thể hiện chuẩn hóa duy nhất của một sản phẩm, dùng cho mọi
// consumer phía sau (top-rated, response API). Mọi field đều đã có kiểu cố
// định và giá trị mặc định, không còn field "có thể là chuỗi hoặc số".
type Product struct {
	ID                 string   `json:"id"`                           // Định danh ổn định (business key, fallback URL nguồn, fallback sinh tự động)
	Name               string   `json:"name"`                         // Tên hiển thị, không bao giờ rỗng
	Description        string   `json:"description"`                  // Mô tả, mặc định rỗng có kiểm soát
	Price              float64  `json:"price"`                        // Giá hiệu lực, >= 0
	OriginalPrice      *float64 `json:"originalPrice,omitempty"`      // Giá gốc nếu có
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"` // Phần trăm giảm giá trong [0,100] nếu có
	Images             []string `json:"images"`                       // Danh sách URL ảnh, không bao giờ rỗng
	Category           string   `json:"category"`                     // Nhãn category hiển thị
	CategorySlug       string   `json:"categorySlug"`                 // Slug category URL-safe
	Rating             float64  `json:"rating"`                       // Đánh giá 0-5, mặc định 0
	ReviewCount        int      `json:"reviewCount"`                  // Số lượt đánh giá, mặc định 0
	SellerName         string   `json:"sellerName"`                   // Tên người bán, có mặc định
	AffiliateLink      string   `json:"affiliateLink"`                // Link affiliate, sentinel khi thiếu
	IsNew              bool     `json:"isNew"`                        // Cờ sản phẩm mới
	IsBestseller       bool     `json:"isBestseller"`                 // Cờ bán chạy
	IsFlashSale        bool     `json:"isFlashSale"`                  // Cờ flash sale
	Tags               []string `json:"tags"`                         // Tags đã trim, bỏ phần tử rỗng

	// Các chuỗi hiển thị bổ sung, truyền thẳng từ feed nếu có
	TimeRemaining string `json:"timeRemaining,omitempty"` // Thời gian còn lại của flash sale
	PercentSold   string `json:"percentSold,omitempty"`   // Phần trăm đã bán
	ExternalPrice string `json:"externalPrice,omitempty"` // Giá tham chiếu nước ngoài
	Installments  string `json:"installments,omitempty"`  // Thông tin trả góp
	Shipping      string `json:"shipping,omitempty"`      // Thông tin vận chuyển

	LastChecked *time.Time `json:"lastChecked,omitempty"` // Thời điểm xác nhận dữ liệu lần cuối
}
