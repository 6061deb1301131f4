package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Toàn bộ dữ liệu nguồn nằm trong MongoDB (các collection feed khuyến mãi),
// service chỉ đọc nên không có cấu hình ghi dữ liệu hay migration.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8322" validate:"required,numeric"`   // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required" validate:"required"`     // URL kết nối cơ sở dữ liệu
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA,required" validate:"required"`        // Tên cơ sở dữ liệu chứa các collection feed
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*" validate:"required"`         // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`               // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100" validate:"gte=0"`        // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60" validate:"gt=0"`       // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`                    // Bật/tắt rate limiting
	// Cấu hình pipeline
	FetchTimeoutSeconds int `env:"FETCH_TIMEOUT_SECONDS" envDefault:"20" validate:"gt=0"` // Timeout tổng khi gom dữ liệu từ các collection
	TopRatedLimit       int `env:"TOP_RATED_LIMIT" envDefault:"10" validate:"gt=0"`       // Số sản phẩm tối đa trong danh sách top-rated
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// File env không bắt buộc, biến môi trường hệ thống vẫn được đọc
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	err := env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
