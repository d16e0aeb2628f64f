package amoeba

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// amoebaView 是列表接口返回的アメーバ投影，附带感染足迹
type amoebaView struct {
	Amoeba
	CurrentDistricts []string `json:"currentDistricts"`
}

// ListAmoebas 处理 GET /api/game/amoebas
// 只读的世界状态投影，无需认证
func ListAmoebas(c *gin.Context) {
	amoebas, err := ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取アメーバ列表"})
		return
	}

	views := make([]amoebaView, 0, len(amoebas))
	for _, a := range amoebas {
		footprint, err := InfectedDistricts(a.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取感染足迹"})
			return
		}
		views = append(views, amoebaView{Amoeba: a, CurrentDistricts: footprint})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"amoebas": views,
		"count":   len(views),
	})
}
