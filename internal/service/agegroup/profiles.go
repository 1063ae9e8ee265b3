package agegroup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
)

// DefaultPlatformWeights reflect how strongly each platform's engagement
// counts toward keyword scores. Calibrated by the system designer, not
// learned.
func DefaultPlatformWeights() map[content.Platform]float64 {
	return map[content.Platform]float64{
		content.PlatformYouTube:   1.0,
		content.PlatformTikTok:    1.2,
		content.PlatformInstagram: 1.1,
	}
}

// DefaultProfiles returns the built-in age-group keyword dictionaries.
// These are association tables, not logic; tests substitute smaller ones
// and deployments may override them via a YAML file.
func DefaultProfiles() []trend.AgeGroupProfile {
	return []trend.AgeGroupProfile{
		{
			AgeGroup: "10대",
			Keywords: []string{
				"게임", "애니메이션", "만화", "아이돌", "K-pop", "댄스", "틱톡",
				"유튜브", "스트리밍", "코스프레", "팬아트", "팬픽", "캐릭터",
				"스킨케어", "메이크업", "패션", "스니커즈", "백팩", "학원",
				"수능", "입시", "대학", "고등학교", "중학교", "친구", "연애",
			},
			Platforms: []content.Platform{content.PlatformTikTok, content.PlatformYouTube, content.PlatformInstagram},
			Weight:    1.0,
		},
		{
			AgeGroup: "20대",
			Keywords: []string{
				"취업", "이력서", "면접", "스타트업", "창업", "투자", "주식",
				"부동산", "집", "월세", "전세", "대출", "카드", "적금",
				"연봉", "급여", "세금", "연말정산", "복지", "휴가",
				"여행", "맛집", "카페", "술집", "클럽", "데이트", "연애",
				"결혼", "웨딩", "신혼", "육아", "육아맘", "육아맘블로그",
			},
			Platforms: []content.Platform{content.PlatformInstagram, content.PlatformYouTube, content.PlatformTikTok},
			Weight:    1.2,
		},
		{
			AgeGroup: "30대",
			Keywords: []string{
				"결혼", "육아", "아이", "유치원", "초등학교", "학원", "과외",
				"집", "아파트", "분양", "인테리어", "가전제품", "가구",
				"차", "자동차", "보험", "투자", "펀드", "연금", "은퇴",
				"건강", "운동", "다이어트", "요리", "베이킹", "가드닝",
				"취미", "독서", "영화", "드라마", "넷플릭스", "OTT",
			},
			Platforms: []content.Platform{content.PlatformYouTube, content.PlatformInstagram, content.PlatformTikTok},
			Weight:    1.1,
		},
		{
			AgeGroup: "40대",
			Keywords: []string{
				"건강", "운동", "다이어트", "요리", "베이킹", "가드닝",
				"취미", "독서", "영화", "드라마", "넷플릭스", "OTT",
				"집", "아파트", "분양", "인테리어", "가전제품", "가구",
				"차", "자동차", "보험", "투자", "펀드", "연금", "은퇴",
				"부모님", "효도", "가족여행", "가족사진", "가족모임",
			},
			Platforms: []content.Platform{content.PlatformYouTube, content.PlatformInstagram},
			Weight:    0.9,
		},
		{
			AgeGroup: "50대+",
			Keywords: []string{
				"건강", "운동", "다이어트", "요리", "베이킹", "가드닝",
				"취미", "독서", "영화", "드라마", "넷플릭스", "OTT",
				"집", "아파트", "분양", "인테리어", "가전제품", "가구",
				"차", "자동차", "보험", "투자", "펀드", "연금", "은퇴",
				"부모님", "효도", "가족여행", "가족사진", "가족모임",
				"노후", "은퇴", "연금", "보험", "건강검진", "병원",
			},
			Platforms: []content.Platform{content.PlatformYouTube},
			Weight:    0.8,
		},
	}
}

// LoadProfiles reads age-group profiles from a YAML file, replacing the
// built-in tables.
func LoadProfiles(path string) ([]trend.AgeGroupProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read age profiles: %w", err)
	}

	var doc struct {
		Profiles []trend.AgeGroupProfile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse age profiles: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("age profiles file %s defines no profiles", path)
	}

	return doc.Profiles, nil
}

// Trending level labels, kept byte-for-byte for output compatibility
// with existing consumers. The thresholds are policy knobs.
const (
	levelHot      = "🔥 매우 인기"
	levelRising   = "📈 인기 상승"
	levelGrowing  = "📊 관심 증가"
	levelBaseline = "📋 일반"
)

func trendingLevel(score float64) string {
	switch {
	case score > 500:
		return levelHot
	case score > 200:
		return levelRising
	case score > 50:
		return levelGrowing
	default:
		return levelBaseline
	}
}

// Trend direction labels.
const (
	trendRising  = "상승"
	trendFlat    = "유지"
	trendFalling = "하락"
)

// Sentiment word lists for the keyword analysis. Matched by substring
// containment against titles and descriptions.
var (
	positiveWords = []string{"좋다", "최고", "대박", "완벽", "사랑", "추천", "인기", "성공"}
	negativeWords = []string{"나쁘다", "최악", "실패", "별로", "싫다", "문제", "실망", "실패"}
)
