package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WeightClass is an ordered enum. Ordinal distance between two classes
// drives proximity scoring.
type WeightClass string

const (
	WeightFlyweight        WeightClass = "flyweight"
	WeightBantamweight     WeightClass = "bantamweight"
	WeightFeatherweight    WeightClass = "featherweight"
	WeightLightweight      WeightClass = "lightweight"
	WeightWelterweight     WeightClass = "welterweight"
	WeightMiddleweight     WeightClass = "middleweight"
	WeightLightHeavyweight WeightClass = "light_heavyweight"
	WeightHeavyweight      WeightClass = "heavyweight"
)

// DefaultWeightClass is pre-selected during mobile onboarding. A fighter who
// never edited it has not meaningfully completed the field.
const DefaultWeightClass = WeightWelterweight

var weightClassOrder = map[WeightClass]int{
	WeightFlyweight:        0,
	WeightBantamweight:     1,
	WeightFeatherweight:    2,
	WeightLightweight:      3,
	WeightWelterweight:     4,
	WeightMiddleweight:     5,
	WeightLightHeavyweight: 6,
	WeightHeavyweight:      7,
}

// Ordinal returns the position of the class in the fixed order.
// ok is false for an empty or unknown value.
func (w WeightClass) Ordinal() (int, bool) {
	n, ok := weightClassOrder[w]
	return n, ok
}

// ExperienceLevel is an ordered enum, beginner through professional.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceProfessional ExperienceLevel = "professional"
)

var experienceOrder = map[ExperienceLevel]int{
	ExperienceBeginner:     0,
	ExperienceIntermediate: 1,
	ExperienceAdvanced:     2,
	ExperienceProfessional: 3,
}

// Ordinal returns the position of the level in the fixed order.
// ok is false for an empty or unknown value.
func (e ExperienceLevel) Ordinal() (int, bool) {
	n, ok := experienceOrder[e]
	return n, ok
}

// EventStatus lifecycle of a sparring event. Only published events are
// offered as candidates.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// EventIntensity of a sparring session.
type EventIntensity string

const (
	IntensityLight  EventIntensity = "light"
	IntensityMedium EventIntensity = "medium"
	IntensityHard   EventIntensity = "hard"
)

// StringList is a JSON-serialized list column (sports, facilities, photos,
// accepted classes). Stored as text so MySQL and SQLite behave the same.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported string list column type %T", src)
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}

// Contains reports whether the list holds the given value.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// Account is the sign-in record backing a fighter profile. Auth flows live
// in the hosted backend; only the row is mirrored here for seeding and joins.
type Account struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Active       bool   `gorm:"default:true"`
	LastLoginAt  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Fighter profile. WeightClass and ExperienceLevel are drawn from the fixed
// ordered enums above; Latitude/Longitude stay nil until the app geocodes the
// profile, so scoring treats them as optional.
type Fighter struct {
	ID              string          `gorm:"primaryKey;size:36"`
	AccountID       string          `gorm:"size:36;index"`
	Name            string          `gorm:"size:128;not null"`
	Nickname        string          `gorm:"size:64"`
	WeightClass     WeightClass     `gorm:"size:32;index"`
	ExperienceLevel ExperienceLevel `gorm:"size:32;index"`
	Sports          StringList      `gorm:"type:text"`
	City            string          `gorm:"size:128;index"`
	Country         string          `gorm:"size:128"`
	Latitude        *float64
	Longitude       *float64
	Bio             string  `gorm:"type:text"`
	SparringCount   int     `gorm:"default:0"`
	FightCount      int     `gorm:"default:0"`
	GymID           *string `gorm:"size:36;index"`
	Gym             *Gym
	AvatarURL       string    `gorm:"size:512"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// Gym profile. Coaches and fighters reference the gym, the gym does not own
// them.
type Gym struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:128;not null"`
	Description  string `gorm:"type:text"`
	City         string `gorm:"size:128;index"`
	Country      string `gorm:"size:128"`
	Address      string `gorm:"size:256"`
	Latitude     *float64
	Longitude    *float64
	Sports       StringList `gorm:"type:text"`
	Facilities   StringList `gorm:"type:text"`
	ContactEmail string     `gorm:"size:128"`
	ContactPhone string     `gorm:"size:32"`
	LogoURL      string     `gorm:"size:512"`
	Photos       StringList `gorm:"type:text"`
	MemberCount  int        `gorm:"default:0"`
	CoachCount   int        `gorm:"default:0"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// SparringEvent hosted by a gym. WeightClasses/ExperienceLevels are accepted
// sets; an empty set means the event is open to everyone on that dimension.
type SparringEvent struct {
	ID               string `gorm:"primaryKey;size:36"`
	GymID            string `gorm:"size:36;index;not null"`
	Gym              *Gym
	Title            string `gorm:"size:256;not null"`
	StartsAt         time.Time
	EndsAt           time.Time
	WeightClasses    StringList     `gorm:"type:text"`
	ExperienceLevels StringList     `gorm:"type:text"`
	MaxParticipants  int            `gorm:"default:0"`
	ParticipantCount int            `gorm:"default:0"`
	Intensity        EventIntensity `gorm:"size:16"`
	Status           EventStatus    `gorm:"size:16;index"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}
