package wear

import (
	"github.com/treadtrack/treadtrack/internal/models"
)

// 操作建议文案（按风险等级）
const (
	RecommendationReplace = "immediate replacement"
	RecommendationReview  = "frequent review"
	RecommendationGood    = "good condition"
)

// CriticalTire 临界清单条目
type CriticalTire struct {
	Tire           *models.Tire  `json:"tire"`
	Depths         *DepthSummary `json:"depths"`
	Risk           RiskTier      `json:"risk"`
	Recommendation string        `json:"recommendation"`
}

// Recommendation 风险等级对应的操作建议
func Recommendation(tier RiskTier) string {
	switch tier {
	case RiskCritical:
		return RecommendationReplace
	case RiskWarning:
		return RecommendationReview
	default:
		return RecommendationGood
	}
}

// SelectCritical 筛选临界轮胎：最近一次巡检任意一点读数 <= 法定下限。
// 注意筛选谓词（任一读数）与 ClassifyRisk 的分档（平均值）口径不同：
// 单点偏低但平均值尚可的轮胎会进入清单但标注 frequent review。
func SelectCritical(tires []*models.Tire) []CriticalTire {
	var out []CriticalTire
	for _, tire := range tires {
		depths := LatestDepths(tire)
		if depths == nil {
			continue
		}
		if depths.Inner > models.LegalMinimumDepthMM &&
			depths.Center > models.LegalMinimumDepthMM &&
			depths.Outer > models.LegalMinimumDepthMM {
			continue
		}
		risk := ClassifyRisk(depths.Average)
		out = append(out, CriticalTire{
			Tire:           tire,
			Depths:         depths,
			Risk:           risk,
			Recommendation: Recommendation(risk),
		})
	}
	return out
}
