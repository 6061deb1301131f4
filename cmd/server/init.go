package main

import (
	"meta_affiliate/config"
	"meta_affiliate/internal/database"
	"meta_affiliate/internal/global"
	"meta_affiliate/internal/logger"
)

// InitGlobal khởi tạo các biến toàn cục theo đúng thứ tự phụ thuộc
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// initValidator khởi tạo validator và các custom validation
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Validator initialized")
}

// initConfig đọc cấu hình server từ file env / environment variables
func initConfig() {
	cfg := config.NewConfig()
	if cfg == nil {
		logger.GetAppLogger().Fatal("Không đọc được cấu hình server, dừng khởi động")
	}
	if err := global.Validate.Struct(cfg); err != nil {
		logger.GetAppLogger().Fatalf("Cấu hình server không hợp lệ: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logger.GetAppLogger().WithFields(map[string]interface{}{
		"address": cfg.Address,
		"dbName":  cfg.MongoDB_DBName_Data,
	}).Info("Server configuration loaded")
}

// initDatabase_MongoDB mở kết nối MongoDB dùng chung cho toàn bộ ứng dụng
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
}
