package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/config"
	"github.com/wasilah/csr/internal/handler"
	"github.com/wasilah/csr/internal/wizard"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, wizardManager *wizard.Manager, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "csr-service",
		})
	})

	// API版本组，所有业务接口都要求公司上下文
	v1 := r.Group("/api/v1")
	v1.Use(handler.CompanyMiddleware())
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db)
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/export", projectHandler.ExportProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.POST("/:id/approve", projectHandler.ApproveProject)
			projects.POST("/:id/reject", projectHandler.RejectProject)
			projects.POST("/:id/submit-review", projectHandler.SubmitForReview)
			projects.POST("/:id/archive", projectHandler.ArchiveProject)
			projects.POST("/bulk-archive", projectHandler.BulkArchiveProjects)
			projects.POST("/:id/unarchive", projectHandler.UnarchiveProject)
			projects.POST("/:id/duplicate", projectHandler.DuplicateProject)
		}

		// 创建向导路由
		wizardHandler := handler.NewWizardHandler(db, wizardManager)
		sessions := v1.Group("/wizard/sessions")
		{
			sessions.POST("", wizardHandler.StartSession)
			sessions.GET("/:sid", wizardHandler.GetSession)
			sessions.PATCH("/:sid", wizardHandler.ApplyChanges)
			sessions.POST("/:sid/next", wizardHandler.NextStep)
			sessions.POST("/:sid/back", wizardHandler.PrevStep)
			sessions.POST("/:sid/submit", wizardHandler.SubmitSession)
			sessions.DELETE("/:sid", wizardHandler.CloseSession)
			sessions.POST("/:sid/uploads", wizardHandler.AddUpload)
			sessions.GET("/:sid/uploads", wizardHandler.ListUploads)
			sessions.POST("/:sid/uploads/:file_id/retry", wizardHandler.RetryUpload)
			sessions.POST("/:sid/uploads/:file_id/cancel", wizardHandler.CancelUpload)
		}
		drafts := v1.Group("/wizard/drafts")
		{
			drafts.GET("", wizardHandler.ListDrafts)
			drafts.GET("/:id", wizardHandler.GetDraft)
			drafts.DELETE("/:id", wizardHandler.DeleteDraft)
		}

		// 项目详情各标签页路由
		ngoHandler := handler.NewNGOHandler(db)
		v1.GET("/projects/:id/ngos", ngoHandler.GetCandidates)
		v1.POST("/projects/:id/ngos", ngoHandler.AddCandidate)
		v1.POST("/ngos/:ngo_id/approve", ngoHandler.ApproveCandidate)
		v1.POST("/ngos/:ngo_id/reject", ngoHandler.RejectCandidate)
		v1.POST("/ngos/:ngo_id/attach", ngoHandler.AttachCandidate)

		volunteerHandler := handler.NewVolunteerHandler(db)
		v1.GET("/projects/:id/volunteers", volunteerHandler.GetApplications)
		v1.POST("/projects/:id/volunteers", volunteerHandler.AddApplication)
		v1.GET("/projects/:id/volunteers/export", volunteerHandler.ExportApplications)
		v1.POST("/projects/:id/volunteers/bulk-accept", volunteerHandler.BulkAccept)
		v1.POST("/projects/:id/volunteers/bulk-reject", volunteerHandler.BulkReject)
		v1.POST("/projects/:id/volunteers/bulk-message", volunteerHandler.BulkMessage)
		v1.POST("/volunteers/:app_id/accept", volunteerHandler.AcceptApplication)
		v1.POST("/volunteers/:app_id/reject", volunteerHandler.RejectApplication)
		v1.POST("/volunteers/:app_id/complete", volunteerHandler.CompleteApplication)

		invoiceHandler := handler.NewInvoiceHandler(db)
		v1.GET("/projects/:id/invoices", invoiceHandler.GetInvoices)
		v1.POST("/projects/:id/invoices", invoiceHandler.AddInvoice)
		v1.GET("/projects/:id/invoices/export", invoiceHandler.ExportInvoices)
		v1.GET("/projects/:id/budget-summary", invoiceHandler.GetBudgetSummary)
		v1.POST("/invoices/:invoice_id/send", invoiceHandler.SendInvoice)
		v1.POST("/invoices/:invoice_id/pay", invoiceHandler.MarkInvoicePaid)

		milestoneHandler := handler.NewMilestoneHandler(db)
		v1.GET("/projects/:id/milestones", milestoneHandler.GetMilestones)
		v1.POST("/projects/:id/milestones", milestoneHandler.CreateMilestone)
		v1.PUT("/projects/:id/milestones/reorder", milestoneHandler.ReorderMilestones)
		v1.POST("/milestones/:ms_id/start", milestoneHandler.StartMilestone)
		v1.POST("/milestones/:ms_id/complete", milestoneHandler.CompleteMilestone)
		v1.POST("/milestones/:ms_id/evidence", milestoneHandler.AttachEvidence)

		mediaHandler := handler.NewMediaHandler(db)
		v1.GET("/projects/:id/media", mediaHandler.GetMedia)
		v1.POST("/projects/:id/media", mediaHandler.AddMedia)

		reportHandler := handler.NewReportHandler(db)
		v1.GET("/projects/:id/reports", reportHandler.GetReports)
		v1.POST("/projects/:id/reports", reportHandler.StartReport)
		v1.GET("/projects/:id/kpis", reportHandler.GetProjectKPIs)
		v1.GET("/reports/:report_id", reportHandler.GetReport)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Company-ID, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
