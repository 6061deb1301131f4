package main

import (
	"meta_affiliate/config"
	"meta_affiliate/internal/global"
	"meta_affiliate/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry khởi tạo registry và đăng ký các collection feed
func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize collections: %v", err)
	}
	logger.GetAppLogger().Info("Initialized collection registry")
}

// InitCollections đăng ký các collection feed MongoDB vào registry.
// Danh sách collection lấy từ cấu hình feed dùng chung, không hardcode lần hai.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName_Data)

	for _, name := range global.FeedCollectionNames() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logger.GetAppLogger().Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logger.GetAppLogger().Infof("Collection %s registered successfully", name)
		} else {
			logger.GetAppLogger().Warnf("Collection %s already registered", name)
		}
	}

	return nil
}
