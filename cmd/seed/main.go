package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"pariksha/internal/config"
	"pariksha/internal/database"
	"pariksha/internal/domain"
	"pariksha/internal/logger"
	"pariksha/internal/repository"
	"pariksha/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/initial_questions.json"

// seedQuestion mirrors the seed file layout: one entry per question with
// both language blocks spelled out.
type seedQuestion struct {
	Category string `json:"category"`
	English  struct {
		Text          string   `json:"text"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	} `json:"english"`
	Nepali struct {
		Text          string   `json:"text"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	} `json:"nepali"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seeds []seedQuestion
	if err := json.Unmarshal(byteValue, &seeds); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Seed data loaded", zap.Int("questions", len(seeds)))

	questionRepo := repository.NewSQLXQuestionRepository(db)
	seeded := 0
	for _, s := range seeds {
		q := domain.NewQuestion(
			s.Category,
			map[domain.Language]string{
				domain.LanguageEnglish: s.English.Text,
				domain.LanguageNepali:  s.Nepali.Text,
			},
			map[domain.Language][]string{
				domain.LanguageEnglish: s.English.Options,
				domain.LanguageNepali:  s.Nepali.Options,
			},
			map[domain.Language]string{
				domain.LanguageEnglish: s.English.CorrectAnswer,
				domain.LanguageNepali:  s.Nepali.CorrectAnswer,
			},
		)
		q.ID = util.NewULID()

		if err := q.Validate(); err != nil {
			log.Error("Skipping invalid seed question",
				zap.String("category", s.Category),
				zap.String("text", s.English.Text),
				zap.Error(err))
			continue
		}
		if err := questionRepo.CreateQuestion(ctx, q); err != nil {
			log.Error("Failed to insert seed question",
				zap.String("category", s.Category),
				zap.Error(err))
			continue
		}
		seeded++
	}
	log.Info("Initial data seeding process completed.", zap.Int("seeded", seeded))
}
