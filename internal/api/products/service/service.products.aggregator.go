package productsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"meta_affiliate/internal/api/products/models"
	"meta_affiliate/internal/common"
	"meta_affiliate/internal/global"
	"meta_affiliate/internal/logger"
)

// AggregatorService gom bản ghi thô từ tập collection feed cố định.
// Mỗi bản ghi trả về được gắn tên collection gốc vào field source_collection
// để các chặng sau biết xuất xứ.
type AggregatorService struct {
	timeout time.Duration
}

// NewAggregatorService tạo mới AggregatorService.
// Timeout tổng cho một lượt gom lấy từ cấu hình server.
func NewAggregatorService() *AggregatorService {
	timeout := 20 * time.Second
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.FetchTimeoutSeconds > 0 {
		timeout = time.Duration(global.MongoDB_ServerConfig.FetchTimeoutSeconds) * time.Second
	}
	return &AggregatorService{timeout: timeout}
}

// FetchAll query toàn bộ các collection feed đã cấu hình và ghép kết quả.
//
// Các collection được query song song (fan-out) vì độc lập với nhau, nhưng
// hàm chỉ trả về sau khi TẤT CẢ các nhánh hoàn thành (fan-in). Một collection
// query lỗi chỉ bị log và bỏ qua, các collection còn lại không bị ảnh hưởng.
// Kết quả ghép theo thứ tự cấu hình feed, trong mỗi collection giữ nguyên thứ
// tự document. Không bao giờ trả về nil khi thành công.
func (s *AggregatorService) FetchAll(ctx context.Context) ([]models.RawRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feeds := global.AllFeedCollections()
	perFeed := make([][]models.RawRecord, len(feeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range feeds {
		i, feed := i, feed
		g.Go(func() error {
			records, err := s.fetchFeed(gctx, feed.CollectionName)
			if err != nil {
				// Lỗi một collection không được phá hỏng cả lượt gom
				metrics.AddCollectionsFailed(1)
				logger.GetAppLogger().WithError(err).
					WithField("collection", feed.CollectionName).
					Warn("Bỏ qua collection lỗi khi gom dữ liệu")
				return nil
			}
			perFeed[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := make([]models.RawRecord, 0)
	for _, records := range perFeed {
		combined = append(combined, records...)
	}
	metrics.AddRecordsFetched(len(combined))
	return combined, nil
}

// FetchCollection query một collection feed theo tên do caller cung cấp.
// Tên ngoài allow-list bị từ chối ngay, KHÔNG query store (chặn truy cập
// collection tùy ý).
func (s *AggregatorService) FetchCollection(ctx context.Context, collectionName string) ([]models.RawRecord, error) {
	// Chặn ký tự lạ trước, rồi mới so với allow-list
	if err := global.Validate.Var(collectionName, "required,collection_name"); err != nil {
		return nil, common.ErrCollectionNotAllowed
	}
	if !global.IsAllowedCollection(collectionName) {
		return nil, common.ErrCollectionNotAllowed
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.fetchFeed(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// fetchFeed query một collection và gắn provenance vào từng bản ghi
func (s *AggregatorService) fetchFeed(ctx context.Context, collectionName string) ([]models.RawRecord, error) {
	metrics.AddCollectionsQueried(1)

	coll, ok := global.RegistryCollections.Get(collectionName)
	if !ok {
		return nil, fmt.Errorf("collection %s chưa được đăng ký: %w", collectionName, common.ErrNotFound)
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	records := make([]models.RawRecord, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		record := models.RawRecord(doc)
		// Gắn xuất xứ; field này không tồn tại trong store
		record[models.FieldSourceCollection] = collectionName
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return records, nil
}
