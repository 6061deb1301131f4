// Package productsvc chứa pipeline xử lý sản phẩm: gom dữ liệu từ các
// collection feed, loại trùng theo business key, chuẩn hóa về Product và
// chọn danh sách top-rated.
package productsvc

import "sync/atomic"

// PipelineMetrics đếm số bản ghi đi qua / bị loại ở từng chặng của pipeline.
// Chính sách của pipeline là nuốt lỗi dữ liệu (không trả lỗi cho client),
// nên các counter này là nơi duy nhất quan sát được tỉ lệ loại bỏ.
type PipelineMetrics struct {
	collectionsQueried  atomic.Int64 // Số lượt query collection
	collectionsFailed   atomic.Int64 // Số lượt query collection thất bại (đã nuốt)
	recordsFetched      atomic.Int64 // Tổng bản ghi thô đọc được
	droppedInvalidPrice atomic.Int64 // Bản ghi bị loại vì giá không hợp lệ
	droppedDuplicate    atomic.Int64 // Bản ghi bị loại vì trùng business key
	droppedNormalize    atomic.Int64 // Bản ghi bị loại vì lỗi chuẩn hóa
}

// metrics là instance dùng chung cho toàn bộ pipeline
var metrics = &PipelineMetrics{}

// Metrics trả về instance metrics dùng chung
func Metrics() *PipelineMetrics {
	return metrics
}

func (m *PipelineMetrics) AddCollectionsQueried(n int)  { m.collectionsQueried.Add(int64(n)) }
func (m *PipelineMetrics) AddCollectionsFailed(n int)   { m.collectionsFailed.Add(int64(n)) }
func (m *PipelineMetrics) AddRecordsFetched(n int)      { m.recordsFetched.Add(int64(n)) }
func (m *PipelineMetrics) AddDroppedInvalidPrice(n int) { m.droppedInvalidPrice.Add(int64(n)) }
func (m *PipelineMetrics) AddDroppedDuplicate(n int)    { m.droppedDuplicate.Add(int64(n)) }
func (m *PipelineMetrics) AddDroppedNormalize(n int)    { m.droppedNormalize.Add(int64(n)) }

// Snapshot trả về giá trị hiện tại của các counter, dùng cho endpoint metrics
func (m *PipelineMetrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"collectionsQueried":         m.collectionsQueried.Load(),
		"collectionsFailed":          m.collectionsFailed.Load(),
		"recordsFetched":             m.recordsFetched.Load(),
		"recordsDroppedInvalidPrice": m.droppedInvalidPrice.Load(),
		"recordsDroppedDuplicate":    m.droppedDuplicate.Load(),
		"recordsDroppedNormalize":    m.droppedNormalize.Load(),
	}
}
