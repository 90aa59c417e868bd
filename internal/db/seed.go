package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCities = []struct {
	city    string
	country string
	lat     float64
	lng     float64
}{
	{"London", "UK", 51.5072, -0.1276},
	{"Manchester", "UK", 53.4808, -2.2426},
	{"Birmingham", "UK", 52.4862, -1.8904},
	{"Leeds", "UK", 53.8008, -1.5491},
}

var seedSports = []string{"boxing", "kickboxing", "muay_thai", "mma", "bjj", "wrestling"}

var seedClasses = []WeightClass{
	WeightFlyweight, WeightBantamweight, WeightFeatherweight, WeightLightweight,
	WeightWelterweight, WeightMiddleweight, WeightLightHeavyweight, WeightHeavyweight,
}

var seedLevels = []ExperienceLevel{
	ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceProfessional,
}

// SeedDemoData resets the database and populates it with demo gyms, fighters
// and sparring events so the app has something to rank against in
// development.
func SeedDemoData(database *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"sparring_events", "fighters", "gyms", "accounts"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	// --- Gyms ---
	gyms := make([]Gym, 0, len(seedCities))
	for i, loc := range seedCities {
		lat, lng := loc.lat, loc.lng
		gym := Gym{
			ID:           uuid.NewString(),
			Name:         fmt.Sprintf("%s Fight Club", loc.city),
			Description:  fmt.Sprintf("Combat sports gym in the heart of %s with open sparring nights.", loc.city),
			City:         loc.city,
			Country:      loc.country,
			Address:      fmt.Sprintf("%d High Street", 10+i*7),
			Latitude:     &lat,
			Longitude:    &lng,
			Sports:       StringList(seedSports[:3+i%3]),
			Facilities:   StringList{"ring", "mats", "weights"},
			ContactEmail: fmt.Sprintf("info@%sfc.example.com", loc.city),
			ContactPhone: fmt.Sprintf("+44 20 7%03d %04d", r.Intn(1000), r.Intn(10000)),
			MemberCount:  30 + r.Intn(200),
			CoachCount:   2 + r.Intn(6),
		}
		if err := database.Create(&gym).Error; err != nil {
			return fmt.Errorf("failed to seed gym: %w", err)
		}
		gyms = append(gyms, gym)
	}
	log.Printf("Seeded %d gyms.", len(gyms))

	// --- Fighters (with demo accounts) ---
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		account := Account{
			ID:           uuid.NewString(),
			Email:        fmt.Sprintf("fighter%d@example.com", i),
			PasswordHash: string(hash),
			Active:       true,
			LastLoginAt:  time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
		}
		if err := database.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to seed account: %w", err)
		}

		loc := seedCities[i%len(seedCities)]
		// jitter within roughly 10 km of the city center
		lat := loc.lat + (r.Float64()-0.5)*0.15
		lng := loc.lng + (r.Float64()-0.5)*0.15
		gym := gyms[i%len(gyms)]

		sports := make(StringList, 0, 2)
		sports = append(sports, seedSports[i%len(seedSports)])
		if i%2 == 0 {
			sports = append(sports, seedSports[(i+2)%len(seedSports)])
		}

		fighter := Fighter{
			ID:              uuid.NewString(),
			AccountID:       account.ID,
			Name:            fmt.Sprintf("Fighter %d", i),
			WeightClass:     seedClasses[i%len(seedClasses)],
			ExperienceLevel: seedLevels[i%len(seedLevels)],
			Sports:          sports,
			City:            loc.city,
			Country:         loc.country,
			Latitude:        &lat,
			Longitude:       &lng,
			Bio:             fmt.Sprintf("Training out of %s, always up for a technical spar.", gym.Name),
			SparringCount:   r.Intn(40),
			FightCount:      r.Intn(12),
			GymID:           &gym.ID,
		}
		if err := database.Create(&fighter).Error; err != nil {
			return fmt.Errorf("failed to seed fighter: %w", err)
		}
	}
	log.Println("Seeded 20 fighters.")

	// --- Sparring events ---
	for i := 0; i < 8; i++ {
		gym := gyms[i%len(gyms)]
		status := EventStatusPublished
		if i%4 == 3 {
			status = EventStatusDraft
		}

		classIdx := i % (len(seedClasses) - 2)
		event := SparringEvent{
			ID:       uuid.NewString(),
			GymID:    gym.ID,
			Title:    fmt.Sprintf("Open Sparring Night #%d", i+1),
			StartsAt: time.Now().Add(time.Duration(24*(i+1)) * time.Hour),
			EndsAt:   time.Now().Add(time.Duration(24*(i+1)+3) * time.Hour),
			WeightClasses: StringList{
				string(seedClasses[classIdx]),
				string(seedClasses[classIdx+1]),
				string(seedClasses[classIdx+2]),
			},
			ExperienceLevels: StringList{
				string(seedLevels[i%2]),
				string(seedLevels[i%2+1]),
			},
			MaxParticipants:  10 + r.Intn(10),
			ParticipantCount: r.Intn(8),
			Intensity:        []EventIntensity{IntensityLight, IntensityMedium, IntensityHard}[i%3],
			Status:           status,
		}
		if err := database.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to seed event: %w", err)
		}
	}
	log.Println("Seeded 8 sparring events.")

	return nil
}
