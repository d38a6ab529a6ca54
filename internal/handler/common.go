package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CompanyHeader 公司上下文请求头，租户信息由网关注入
const CompanyHeader = "X-Company-ID"

// UserHeader 操作人请求头
const UserHeader = "X-User-ID"

// CompanyMiddleware 要求请求携带公司上下文
func CompanyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CompanyHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "缺少公司上下文请求头"})
			return
		}
		c.Set("company_id", id)
		c.Next()
	}
}

func companyID(c *gin.Context) string {
	return c.GetString("company_id")
}

// sendCSV 以附件形式下发CSV导出文件
func sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
