package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Object kinds used as label values.
const (
	KindFile  = "file"
	KindImage = "image"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filemanager_uploads_total",
		Help: "Total objects written to the object store",
	}, []string{"kind"})

	uploadedBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filemanager_uploaded_bytes_total",
		Help: "Total bytes written to the object store",
	}, []string{"kind"})

	uploadRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filemanager_upload_rejected_total",
		Help: "Uploads rejected by policy, by reason",
	}, []string{"kind", "reason"})

	deletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filemanager_deletes_total",
		Help: "Total objects deleted",
	}, []string{"kind"})

	orphanedObjectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filemanager_orphaned_objects_total",
		Help: "Objects left in the store without a metadata row, by operation",
	}, []string{"operation"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filemanager_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "filemanager_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// ObserveUpload records a successful object write.
func ObserveUpload(kind string, bytes int64) {
	uploadsTotal.WithLabelValues(kind).Inc()
	if bytes > 0 {
		uploadedBytesTotal.WithLabelValues(kind).Add(float64(bytes))
	}
}

// IncUploadRejected counts an upload refused by policy.
func IncUploadRejected(kind, reason string) {
	uploadRejectedTotal.WithLabelValues(kind, reason).Inc()
}

// IncDelete counts a completed delete.
func IncDelete(kind string) {
	deletesTotal.WithLabelValues(kind).Inc()
}

// IncOrphanedObject counts an object left behind by a half-finished upload or delete.
func IncOrphanedObject(operation string) {
	orphanedObjectsTotal.WithLabelValues(operation).Inc()
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
