package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// JobRouter wires the job submission and lookup endpoints onto
// routerGroup, mirroring the shape of the teacher's UserRouter.
func JobRouter(routerGroup *gin.RouterGroup, submitter SubmitFetchJob, lookup JobLookup) *gin.RouterGroup {
	jobsGroup := routerGroup.Group("/jobs")
	jobsGroup.POST("", CreateJob(submitter))
	jobsGroup.GET("", ListJobs(lookup))
	jobsGroup.GET("/:id", GetJob(lookup))

	return jobsGroup
}

// RegisterMetrics mounts a Prometheus scrape endpoint on router, serving
// the task platform's own registry rather than the global default one.
func RegisterMetrics(router *gin.Engine, reg *prometheus.Registry) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
}
