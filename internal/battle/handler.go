package battle

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/character"
	"github.com/mascodex/game-backend/internal/collection"
	"github.com/mascodex/game-backend/internal/player"
)

// newBattleRng 为一次请求构造伤害随机源
func newBattleRng() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// startRequestBody 是开战请求体
type startRequestBody struct {
	AmoebaID string `json:"amoebaId" binding:"required"`
}

// StartBattle 处理 POST /api/game/battle/start
func StartBattle(c *gin.Context) {
	playerID := player.CurrentPlayerID(c)

	var body startRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求格式错误: " + err.Error()})
		return
	}

	// 同一玩家同时只能有一场对战。
	// 预读只为返回带当前会话的友好响应，真正的唯一性由CreateSession的SETNX保证。
	existing, err := LoadSession(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取对战会话"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "已有进行中的对战", "battle": existing})
		return
	}

	target, err := amoeba.GetActiveByID(body.AmoebaID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "阿米巴不存在或已被击破"})
		return
	}

	members, err := collection.TeamMembers(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取队伍"})
		return
	}
	if len(members) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请先编成队伍"})
		return
	}

	session := &Session{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Amoeba: AmoebaSnapshot{
			ID:       target.ID,
			Name:     target.Name,
			Element:  target.Element,
			Level:    target.Level,
			Hp:       target.Hp,
			MaxHp:    target.MaxHp,
			Atk:      target.Atk,
			Def:      target.Def,
			Spd:      target.Spd,
			BossType: target.BossType,
		},
		Turn:      0,
		Status:    StatusActive,
		StartedAt: time.Now(),
	}

	// 按存档的等级/进化阶段物化队伍成员
	for _, m := range members {
		profile := character.Generate(m.Identity, m.Level, m.Evolved)
		session.Team = append(session.Team, TeamMember{
			Identity: m.Identity,
			Slot:     m.TeamSlot,
			Level:    m.Level,
			Element:  profile.Element,
			Skill:    profile.Skill,
			Hp:       profile.Stats.Hp,
			MaxHp:    profile.Stats.Hp,
			Atk:      profile.Stats.Atk,
			Def:      profile.Stats.Def,
			Spd:      profile.Stats.Spd,
			SpGauge:  0,
			Alive:    true,
		})
	}
	session.ActiveSlot = session.Team[0].Slot
	session.log("%sが現れた！", target.Name)

	if err := CreateSession(session); err != nil {
		if errors.Is(err, ErrSessionExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "已有进行中的对战"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法创建对战会话"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "battle": session})
}

// actionRequestBody 是回合行动请求体
type actionRequestBody struct {
	Action     string `json:"action" binding:"required"`
	TargetSlot int    `json:"targetSlot"`
}

// BattleAction 处理 POST /api/game/battle/action
func BattleAction(c *gin.Context) {
	playerID := player.CurrentPlayerID(c)

	var body actionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求格式错误: " + err.Error()})
		return
	}

	session, err := LoadSession(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取对战会话"})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "没有进行中的对战"})
		return
	}

	rng := newBattleRng()
	if err := Resolve(session, body.Action, body.TargetSlot, rng); err != nil {
		var invalid *InvalidActionError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": invalid.Reason})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// 终局回合结算并清除会话，其余回合刷新TTL写回
	if session.Status != StatusActive {
		rewards, settleErr := Settle(session, rng)
		if settleErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "对战结算失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "battle": session, "rewards": rewards})
		return
	}

	if err := SaveSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法保存对战会话"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "battle": session})
}
