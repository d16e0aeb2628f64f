package collection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/internal/character"
	"github.com/mascodex/game-backend/internal/player"
	"gorm.io/gorm"
)

// ownedView 是收藏列表中单个角色的投影：确定性档案 + 成长状态
type ownedView struct {
	character.Profile
	Xp         int    `json:"xp"`
	TeamSlot   int    `json:"teamSlot"`
	AcquiredAt string `json:"acquiredAt"`
}

func viewOf(oc OwnedCharacter) ownedView {
	return ownedView{
		Profile:    character.Generate(oc.Identity, oc.Level, oc.Evolved),
		Xp:         oc.Xp,
		TeamSlot:   oc.TeamSlot,
		AcquiredAt: oc.AcquiredAt.Format("2006-01-02 15:04:05"),
	}
}

// GetCollection 处理 GET /api/game/collection
func GetCollection(c *gin.Context) {
	playerID := player.CurrentPlayerID(c)

	owned, err := ListOwned(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取收藏"})
		return
	}
	shards, err := ListShards(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取碎片"})
		return
	}

	collected := make([]ownedView, 0, len(owned))
	for _, oc := range owned {
		collected = append(collected, viewOf(oc))
	}

	shardViews := make([]gin.H, 0, len(shards))
	for _, s := range shards {
		shardViews = append(shardViews, gin.H{"postalCode": s.Identity, "count": s.Count})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"collected":      collected,
		"totalCollected": len(collected),
		"shards":         shardViews,
	})
}

// GetTeam 处理 GET /api/game/team
func GetTeam(c *gin.Context) {
	playerID := player.CurrentPlayerID(c)

	members, err := TeamMembers(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取队伍"})
		return
	}

	team := make([]ownedView, 0, len(members))
	for _, m := range members {
		team = append(team, viewOf(m))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "team": team})
}

// setTeamRequestBody 是设置队伍的请求体
type setTeamRequestBody struct {
	Slots []TeamSlotAssignment `json:"slots" binding:"required"`
}

// PostTeam 处理 POST /api/game/team
func PostTeam(c *gin.Context) {
	playerID := player.CurrentPlayerID(c)

	var body setTeamRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求格式错误: " + err.Error()})
		return
	}

	// 先规范化身份键，拒绝非7位数字
	for i := range body.Slots {
		code, err := character.NormalizeIdentity(body.Slots[i].Identity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的身份键: " + body.Slots[i].Identity})
			return
		}
		body.Slots[i].Identity = code
	}

	if err := SetTeam(playerID, body.Slots); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	GetTeam(c)
}
