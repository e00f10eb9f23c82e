package internal

import "time"

type User struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// MoodCategory is the closed set of emotional states a mood entry can carry.
type MoodCategory string

const (
	CategoryHappy   MoodCategory = "HAPPY"
	CategoryExcited MoodCategory = "EXCITED"
	CategoryCalm    MoodCategory = "CALM"
	CategoryTired   MoodCategory = "TIRED"
	CategorySad     MoodCategory = "SAD"
	CategoryAngry   MoodCategory = "ANGRY"
	CategoryAnxious MoodCategory = "ANXIOUS"
)

var moodCategories = map[string]MoodCategory{
	string(CategoryHappy):   CategoryHappy,
	string(CategoryExcited): CategoryExcited,
	string(CategoryCalm):    CategoryCalm,
	string(CategoryTired):   CategoryTired,
	string(CategorySad):     CategorySad,
	string(CategoryAngry):   CategoryAngry,
	string(CategoryAnxious): CategoryAnxious,
}

// ParseMoodCategory maps a raw string to a MoodCategory. Unmatched input is not an error
// here; callers decide how to report it.
func ParseMoodCategory(s string) (MoodCategory, bool) {
	c, ok := moodCategories[s]
	return c, ok
}

// MoodSituation is the closed set of contextual tags a mood entry can carry.
type MoodSituation string

const (
	SituationWork   MoodSituation = "WORK"
	SituationSchool MoodSituation = "SCHOOL"
	SituationFamily MoodSituation = "FAMILY"
	SituationFriend MoodSituation = "FRIEND"
	SituationHealth MoodSituation = "HEALTH"
	SituationMoney  MoodSituation = "MONEY"
	SituationDaily  MoodSituation = "DAILY"
)

var moodSituations = map[string]MoodSituation{
	string(SituationWork):   SituationWork,
	string(SituationSchool): SituationSchool,
	string(SituationFamily): SituationFamily,
	string(SituationFriend): SituationFriend,
	string(SituationHealth): SituationHealth,
	string(SituationMoney):  SituationMoney,
	string(SituationDaily):  SituationDaily,
}

func ParseMoodSituation(s string) (MoodSituation, bool) {
	v, ok := moodSituations[s]
	return v, ok
}

type Mood struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Category  MoodCategory  `json:"mood_category"`
	Situation MoodSituation `json:"mood_situation"`
	Title     string        `json:"mood_title"`
	Reason    string        `json:"mood_reason"`
	Date      time.Time     `json:"mood_date"`
	CreatedAt time.Time     `json:"created_at"`
}
