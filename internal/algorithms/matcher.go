package algorithms

import (
	"math"
	"sort"
	"strings"

	"gigup_backend/internal/models"
)

// Веса компонентов. В сумме дают ровно MaxScore.
const (
	SkillsWeight       = 50.0
	NeutralSkillsScore = 25.0
	DistanceWeight     = 20.0
	AvailabilityWeight = 20.0
	RatingWeight       = 10.0

	MaxDistanceKm = 35.0
	MaxRating     = 5.0
	MaxScore      = 100.0
)

// MatchBreakdown - итоговый балл и его составляющие
type MatchBreakdown struct {
	Skills        float64  `json:"skills"`
	Distance      float64  `json:"distance"`
	Availability  float64  `json:"availability"`
	Rating        float64  `json:"rating"`
	Total         float64  `json:"total"`
	MatchedSkills []string `json:"matched_skills,omitempty"`
}

// ScoreGig считает совместимость исполнителя и гига (0-100) при уже известном расстоянии.
func ScoreGig(seeker *models.User, gig *models.Gig, distanceKm float64) MatchBreakdown {
	var b MatchBreakdown

	// Навыки (0-50). Если навыки не указаны хотя бы с одной стороны, даем нейтральные 25
	seekerSkills := ParseSkills(seeker.Skills)
	gigSkills := ParseSkills(gig.SkillsRequired)
	if len(seekerSkills) > 0 && len(gigSkills) > 0 {
		for skill := range gigSkills {
			if _, ok := seekerSkills[skill]; ok {
				b.MatchedSkills = append(b.MatchedSkills, skill)
			}
		}
		sort.Strings(b.MatchedSkills)
		b.Skills = float64(len(b.MatchedSkills)) / float64(len(gigSkills)) * SkillsWeight
	} else {
		b.Skills = NeutralSkillsScore
	}

	// Расстояние (0-20), за пределами радиуса компонент просто не начисляется
	if distanceKm >= 0 && distanceKm <= MaxDistanceKm {
		b.Distance = (1 - distanceKm/MaxDistanceKm) * DistanceWeight
	}

	// Доступность (0-20)
	if gig.Status == models.GigStatusOpen {
		b.Availability = AvailabilityWeight
	}

	// Рейтинг (0-10)
	if seeker.HasRating() && seeker.Rating > 0 {
		b.Rating = math.Min(seeker.Rating/MaxRating, 1.0) * RatingWeight
	}

	total := round2(b.Skills + b.Distance + b.Availability + b.Rating)
	b.Total = math.Max(0, math.Min(total, MaxScore))

	b.Skills = round2(b.Skills)
	b.Distance = round2(b.Distance)
	b.Rating = round2(b.Rating)

	return b
}

// ParseSkills разбивает список навыков через запятую в множество в нижнем регистре.
// Пробелы по краям и пустые элементы отбрасываются.
func ParseSkills(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
