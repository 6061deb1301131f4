package global

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo lại validator dùng chung. Biến Validate đã có sẵn
// từ khi load package, hàm này tồn tại để trình tự khởi động tường minh.
func InitValidator() {
	Validate = newValidator()
}

// newValidator tạo validator và đăng ký các custom validation
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("collection_name", validateCollectionName)
	_ = v.RegisterValidation("category_slug", validateCategorySlug)
	return v
}

// collectionNamePattern: tên collection MongoDB hợp lệ mà service chấp nhận
// (chữ thường, số, gạch dưới). Chặn sớm các ký tự lạ trước khi so với allow-list.
var collectionNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// categorySlugPattern: slug URL-safe (chữ thường, số, gạch ngang)
var categorySlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// validateCollectionName kiểm tra định dạng tên collection
func validateCollectionName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	return collectionNamePattern.MatchString(value)
}

// validateCategorySlug kiểm tra định dạng category slug
func validateCategorySlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	return categorySlugPattern.MatchString(value)
}
