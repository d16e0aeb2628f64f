package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/character"
	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	dailyQuizLimit  = 5
	dailyShareLimit = 3
)

// districtView 是行动接口返回的地区快照
type districtView struct {
	Code   string          `json:"code"`
	Hp     int             `json:"hp"`
	MaxHp  int             `json:"maxHp"`
	Status district.Status `json:"status"`
}

func viewOf(d *district.District) districtView {
	return districtView{
		Code:   d.Code,
		Hp:     d.Hp,
		MaxHp:  d.MaxHp,
		Status: district.StatusForHp(d.Hp, d.MaxHp),
	}
}

// loadPlayer 读取当前认证玩家的持久化记录，未注册时直接响应403
func loadPlayer(c *gin.Context) *Player {
	p, err := GetByID(CurrentPlayerID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "尚未注册，请先开始游戏"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取玩家数据"})
		}
		return nil
	}
	return p
}

// GetMe 处理 GET /api/game/me
func GetMe(c *gin.Context) {
	p := loadPlayer(c)
	if p == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "player": p})
}

// LoginAction 处理 POST /api/game/action/login
// 每个JST日只能领取一次；连续登录提高奖励
func LoginAction(c *gin.Context) {
	p := loadPlayer(c)
	if p == nil {
		return
	}

	today := TodayJST()
	if p.LastLoginDate == today {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "今天已经领取过了", "alreadyClaimed": true})
		return
	}

	// 连续天数：昨天登录过则+1，否则重置为1
	consecutiveDays := 1
	if p.LastLoginDate == YesterdayJST() {
		consecutiveDays = p.ConsecutiveDays + 1
	}

	// 奖励: 基础HP10，每连续一天+2（最多+10）
	hpBonus := 10 + minInt(consecutiveDays, 5)*2
	xpEarned := 5 + consecutiveDays

	if err := district.ApplyHeal(p.District, hpBonus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法回复地区HP"})
		return
	}

	updates := map[string]interface{}{
		"last_login_date":  today,
		"consecutive_days": consecutiveDays,
		"xp":               p.Xp + xpEarned,
		"total_defense":    p.TotalDefense + hpBonus,
	}
	if err := database.DB.Model(&Player{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法更新玩家数据"})
		return
	}

	_ = RecordAction(&Action{
		PlayerID: p.ID, ActionType: "login", DistrictCode: p.District,
		HpGiven: hpBonus, XpEarned: xpEarned,
	})

	d, err := district.GetByCode(p.District)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取地区数据"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"hpGiven":         hpBonus,
		"xpEarned":        xpEarned,
		"consecutiveDays": consecutiveDays,
		"district":        viewOf(d),
	})
}

// ShareAction 处理 POST /api/game/action/share
// 每日上限3次，从actions表统计
func ShareAction(c *gin.Context) {
	p := loadPlayer(c)
	if p == nil {
		return
	}

	shareCount, err := CountActionsToday(p.ID, "share")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法统计行动次数"})
		return
	}
	if shareCount >= dailyShareLimit {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "今天的分享次数已用完", "remaining": 0})
		return
	}

	const hpGiven = 50
	const xpEarned = 20

	if err := district.ApplyHeal(p.District, hpGiven); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法回复地区HP"})
		return
	}
	if err := AddReward(p.ID, xpEarned, hpGiven); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法更新玩家数据"})
		return
	}
	_ = RecordAction(&Action{
		PlayerID: p.ID, ActionType: "share", DistrictCode: p.District,
		HpGiven: hpGiven, XpEarned: xpEarned,
	})

	d, err := district.GetByCode(p.District)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取地区数据"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"hpGiven":   hpGiven,
		"xpEarned":  xpEarned,
		"remaining": dailyShareLimit - shareCount - 1,
		"district":  viewOf(d),
	})
}

// quizRequestBody 是测验接口的请求体
type quizRequestBody struct {
	Action string `json:"action" binding:"required"`
	QuizID string `json:"quizId"`
	Answer *int   `json:"answer"`
}

// QuizAction 处理 POST /api/game/action/quiz
// action=get 出题并把挑战写入Redis（300秒TTL，一次性）；
// action=answer 校验答案，答对时回复地区HP并反击当地的アメーバ
func QuizAction(c *gin.Context) {
	p := loadPlayer(c)
	if p == nil {
		return
	}

	var body quizRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求格式错误: " + err.Error()})
		return
	}

	switch body.Action {
	case "get":
		handleQuizGet(c, p)
	case "answer":
		handleQuizAnswer(c, p, body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的action，应为 get 或 answer"})
	}
}

func handleQuizGet(c *gin.Context, p *Player) {
	quizCount, err := CountActionsToday(p.ID, "quiz")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法统计行动次数"})
		return
	}
	if quizCount >= dailyQuizLimit {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "今天的测验次数已用完", "remaining": 0})
		return
	}

	quiz := RandomQuiz(p.Prefecture)
	quizID := uuid.NewString()

	payload, _ := json.Marshal(quiz)
	key := fmt.Sprintf("%s%s_%s", QuizKeyPrefix, p.ID, quizID)
	if err := database.RDB.Set(database.Ctx, key, payload, QuizTTL).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法保存测验挑战"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"quizId":    quizID,
		"question":  quiz.Question,
		"options":   quiz.Options,
		"remaining": dailyQuizLimit - quizCount - 1,
	})
}

func handleQuizAnswer(c *gin.Context, p *Player, body quizRequestBody) {
	if body.QuizID == "" || body.Answer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "缺少quizId或answer"})
		return
	}

	key := fmt.Sprintf("%s%s_%s", QuizKeyPrefix, p.ID, body.QuizID)
	payload, err := database.RDB.Get(database.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "测验已过期或不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取测验挑战"})
		return
	}

	// 挑战是一次性的，校验前先删除
	database.RDB.Del(database.Ctx, key)

	var quiz Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "测验数据损坏"})
		return
	}

	isCorrect := *body.Answer == quiz.Correct
	hpGiven := 0
	xpEarned := 0
	bonusMultiplier := 1.0

	if isCorrect {
		// 属性克制加成：对照当前盘踞在玩家地区的アメーバ
		playerElement := character.ElementOf(p.PostalCode)
		present, err := amoeba.FindActiveInDistrict(p.District)
		if err == nil && present != nil {
			bonusMultiplier = character.ElementMultiplier(playerElement, present.Element)
		}

		hpGiven = int(math.Round(25 * bonusMultiplier))
		xpEarned = 15

		if err := district.ApplyHeal(p.District, hpGiven); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法回复地区HP"})
			return
		}
		if err := AddReward(p.ID, xpEarned, hpGiven); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法更新玩家数据"})
			return
		}

		meta, _ := json.Marshal(map[string]interface{}{"correct": true, "bonus": bonusMultiplier})
		_ = RecordAction(&Action{
			PlayerID: p.ID, ActionType: "quiz", DistrictCode: p.District,
			HpGiven: hpGiven, XpEarned: xpEarned, Metadata: string(meta),
		})

		// 答对的测验同时对当地的アメーバ造成等量反击
		if present != nil {
			if err := amoeba.ApplyDamage(present.ID, hpGiven); err != nil {
				fmt.Printf("警告: 测验反击アメーバ %s 失败: %v\n", present.ID, err)
			}
		}
	} else {
		meta, _ := json.Marshal(map[string]interface{}{"correct": false})
		_ = RecordAction(&Action{
			PlayerID: p.ID, ActionType: "quiz", DistrictCode: p.District, Metadata: string(meta),
		})
	}

	d, err := district.GetByCode(p.District)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取地区数据"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"correct":         isCorrect,
		"correctAnswer":   quiz.Correct,
		"hpGiven":         hpGiven,
		"xpEarned":        xpEarned,
		"bonusMultiplier": bonusMultiplier,
		"district":        viewOf(d),
	})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
