package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedInterests = []string{
	"hiking", "cooking", "travel", "music", "films", "yoga",
	"climbing", "photography", "coffee", "running",
}

// SeedDemoData resets the database and populates it with demo users,
// likes, matches and a few opening messages.
//
// Behavior:
//  1. Clears all application tables.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords and
//     filled-in profiles.
//  3. Generates likes with ~70% probability per candidate pair; every 3rd
//     seeded like is answered with a reciprocal like, and the resulting
//     mutual pairs get a match row plus a greeting message.
//
// Compatible with both MySQL and SQLite.
func SeedDemoData(database *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"messages", "matches", "likes", "reports", "users"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch database.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"messages", "matches", "likes", "reports", "users"} {
			database.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		database.Exec("DELETE FROM sqlite_sequence")
	}

	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]User, 0, 20)
	for i := 1; i <= 20; i++ {
		gender, showMe := "male", "female"
		if i > 10 {
			gender, showMe = "female", "male"
		}

		interests := []string{
			seedInterests[r.Intn(len(seedInterests))],
			seedInterests[r.Intn(len(seedInterests))],
		}

		user := User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			FullName:     fmt.Sprintf("Demo User %d", i),
			Gender:       gender,
			ShowMe:       showMe,
			Birthday:     fmt.Sprintf("199%d-0%d-1%d", i%10, i%9+1, i%2+1),
			Bio:          "Here for the demo data.",
			Interests:    interests,
			AgeMin:       18 + r.Intn(5),
			AgeMax:       30 + r.Intn(10),
			DistanceKm:   25 + r.Intn(50),
		}
		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users.", len(users))

	counter := 0
	for _, liker := range users {
		for j := 0; j < 8; j++ {
			liked := users[r.Intn(len(users))]
			if liked.ID == liker.ID || liked.Gender == liker.Gender {
				continue
			}
			if r.Intn(100) >= 70 {
				continue
			}

			if err := database.Create(&Like{LikerID: liker.ID, LikedID: liked.ID}).Error; err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}

			// answer every 3rd like so the demo has mutual pairs
			if counter%3 == 0 {
				if err := database.Create(&Like{LikerID: liked.ID, LikedID: liker.ID}).Error; err != nil {
					return fmt.Errorf("failed to seed reciprocal like: %w", err)
				}

				a, b := liker.ID, liked.ID
				if a > b {
					a, b = b, a
				}
				match := Match{
					UserA:   a,
					UserB:   b,
					PairKey: PairKeyFor(a, b),
				}
				res := database.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "pair_key"}},
					DoNothing: true,
				}).Create(&match)
				if res.Error != nil {
					return fmt.Errorf("failed to seed match: %w", res.Error)
				}
				if res.RowsAffected > 0 {
					msg := Message{MatchID: match.ID, SenderID: liker.ID, Text: "hey, we matched!"}
					if err := database.Create(&msg).Error; err != nil {
						return fmt.Errorf("failed to seed message: %w", err)
					}
				}
			}
			counter++
		}
	}
	log.Printf("Seeded %d likes.", counter)

	return nil
}
