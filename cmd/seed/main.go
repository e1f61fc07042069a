package main

import (
	"log"
	"os"

	"ai-vocabcoach-be/internal/model"
	"ai-vocabcoach-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type seedWord struct {
	word    string
	pinyin  string
	meaning string
}

var hsk1Words = []seedWord{
	{"你好", "nǐ hǎo", "hello"},
	{"谢谢", "xiè xie", "thank you"},
	{"学习", "xué xí", "to study"},
	{"朋友", "péng you", "friend"},
	{"吃饭", "chī fàn", "to eat a meal"},
	{"喜欢", "xǐ huan", "to like"},
	{"工作", "gōng zuò", "work; job"},
	{"时间", "shí jiān", "time"},
	{"漂亮", "piào liang", "pretty; beautiful"},
	{"明天", "míng tiān", "tomorrow"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding demo user...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}
	hashStr := string(hash)
	preferredName := "Demo"

	user := model.User{
		Username:      "demo",
		Email:         "demo@example.com",
		PasswordHash:  &hashStr,
		PreferredName: &preferredName,
	}

	var existing model.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		log.Println("Demo user already exists, reusing it")
		user = existing
	} else if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to create demo user: %v", err)
	}

	log.Println("Seeding HSK 1 words...")

	sourceName := "HSK 1"
	seeded := 0
	for _, w := range hsk1Words {
		var count int64
		db.Model(&model.Word{}).
			Where("user_id = ? AND word = ?", user.Id, w.word).
			Count(&count)
		if count > 0 {
			continue
		}

		record := model.Word{
			UserId:     user.Id,
			Word:       w.word,
			Pinyin:     w.pinyin,
			Meaning:    w.meaning,
			SourceName: &sourceName,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("Error: Failed to seed word %q: %v", w.word, err)
		}
		seeded++
	}

	log.Printf("✅ Seed completed: demo@example.com / password123 (%d words added)", seeded)
}
