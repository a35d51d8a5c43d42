package main

import (
	"crypto/sha256"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"unifest/internal/config"
	"unifest/internal/database"
	"unifest/internal/logger"
)

var (
	clearExisting = flag.Bool("clear", false, "Clear existing seed data before generating")
	eventCount    = flag.Int("events", 20, "Number of events to generate")
	dryRun        = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

type SeedGenerator struct {
	db *database.DB
}

var collegeNames = []string{
	"National Institute of Technology",
	"St. Xavier's College",
	"Presidency College",
	"Institute of Engineering and Management",
	"Heritage Institute of Technology",
}

var categoryNames = []string{
	"Hackathon", "Cultural", "Sports", "Workshop", "Quiz", "Robotics",
}

var eventTitles = []string{
	"CodeStorm", "Brainwave", "Tech Tussle", "Cultural Carnival", "RoboRace",
	"Designathon", "Quiz Quest", "Startup Pitch", "Dance Off", "Battle of Bands",
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting seed generator...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	generator := &SeedGenerator{db: db}

	if err := generator.Generate(); err != nil {
		slog.Error("Failed to generate seed data", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed generation completed successfully!")
}

func (g *SeedGenerator) Generate() error {
	if *dryRun {
		slog.Info("[DRY RUN] Would generate seed data",
			"colleges", len(collegeNames),
			"categories", len(categoryNames),
			"events", *eventCount)
		return nil
	}

	tx, err := g.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if *clearExisting {
		if err := g.clear(tx); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	collegeIDs, err := g.insertColleges(tx)
	if err != nil {
		return fmt.Errorf("failed to insert colleges: %w", err)
	}

	categoryIDs, err := g.insertCategories(tx)
	if err != nil {
		return fmt.Errorf("failed to insert categories: %w", err)
	}

	organizerIDs, err := g.insertUsers(tx, collegeIDs)
	if err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}

	if err := g.insertEvents(tx, collegeIDs, categoryIDs, organizerIDs); err != nil {
		return fmt.Errorf("failed to insert events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (g *SeedGenerator) clear(tx *sql.Tx) error {
	// Order respects foreign keys
	tables := []string{
		"notifications", "payments", "tickets", "team_members", "teams",
		"registrations", "team_pricing_tiers", "events", "users",
		"categories", "colleges",
	}
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	slog.Info("Cleared existing seed data")
	return nil
}

func (g *SeedGenerator) insertColleges(tx *sql.Tx) ([]string, error) {
	ids := make([]string, 0, len(collegeNames))
	for i, name := range collegeNames {
		var id string
		err := tx.QueryRow(`
			INSERT INTO colleges (name, location, contact_email)
			VALUES ($1, $2, $3)
			RETURNING id`,
			name,
			fmt.Sprintf("Campus Road %d", i+1),
			fmt.Sprintf("contact%d@college.edu", i+1),
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	slog.Info("Inserted colleges", "count", len(ids))
	return ids, nil
}

func (g *SeedGenerator) insertCategories(tx *sql.Tx) ([]string, error) {
	ids := make([]string, 0, len(categoryNames))
	for _, name := range categoryNames {
		var id string
		err := tx.QueryRow(`
			INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	slog.Info("Inserted categories", "count", len(ids))
	return ids, nil
}

func (g *SeedGenerator) insertUsers(tx *sql.Tx, collegeIDs []string) ([]string, error) {
	passwordHash := fmt.Sprintf("%x", sha256.Sum256([]byte("password123")))

	var organizerIDs []string
	for i := 0; i < 5; i++ {
		var id string
		err := tx.QueryRow(`
			INSERT INTO users (email, password_hash, full_name, role, college_id)
			VALUES ($1, $2, $3, 'organizer', $4)
			RETURNING id`,
			fmt.Sprintf("organizer%d@unifest.dev", i+1),
			passwordHash,
			fmt.Sprintf("Organizer %d", i+1),
			collegeIDs[i%len(collegeIDs)],
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		organizerIDs = append(organizerIDs, id)
	}

	for i := 0; i < 50; i++ {
		_, err := tx.Exec(`
			INSERT INTO users (email, password_hash, full_name, role, college_id)
			VALUES ($1, $2, $3, 'student', $4)`,
			fmt.Sprintf("student%d@unifest.dev", i+1),
			passwordHash,
			fmt.Sprintf("Student %d", i+1),
			collegeIDs[i%len(collegeIDs)],
		)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Inserted users", "organizers", len(organizerIDs), "students", 50)
	return organizerIDs, nil
}

func (g *SeedGenerator) insertEvents(tx *sql.Tx, collegeIDs, categoryIDs, organizerIDs []string) error {
	participationTypes := []string{"individual", "team", "both"}

	for i := 0; i < *eventCount; i++ {
		title := fmt.Sprintf("%s %d", eventTitles[i%len(eventTitles)], 2026)
		participation := participationTypes[i%len(participationTypes)]
		start := time.Now().AddDate(0, 0, rand.Intn(60)+7)
		deadline := start.AddDate(0, 0, -2)

		var teamMin, teamMax *int
		hasCustomPricing := false
		if participation != "individual" {
			minV := 2
			maxV := 4 + rand.Intn(5)
			teamMin, teamMax = &minV, &maxV
			hasCustomPricing = i%3 == 0
		}

		var eventID string
		err := tx.QueryRow(`
			INSERT INTO events (title, description, organizer_id, college_id, category_id,
			                    event_status, participation_type, team_size_min, team_size_max,
			                    start_date, end_date, location, max_attendees,
			                    registration_deadline, individual_price, team_base_price,
			                    price_per_member, has_custom_team_pricing)
			VALUES ($1, $2, $3, $4, $5, 'published', $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id`,
			title,
			fmt.Sprintf("Flagship %s event of the season.", participation),
			organizerIDs[i%len(organizerIDs)],
			collegeIDs[i%len(collegeIDs)],
			categoryIDs[i%len(categoryIDs)],
			participation,
			teamMin,
			teamMax,
			start,
			start.Add(8*time.Hour),
			fmt.Sprintf("Auditorium %d", i%4+1),
			100+rand.Intn(400),
			deadline,
			int64(rand.Intn(5)*100),
			int64(500),
			int64(100),
			hasCustomPricing,
		).Scan(&eventID)
		if err != nil {
			return err
		}

		if hasCustomPricing && teamMin != nil && teamMax != nil {
			mid := (*teamMin + *teamMax) / 2
			tiers := []struct {
				min, max int
				price    int64
			}{
				{*teamMin, mid, 1000},
				{mid + 1, *teamMax, 1800},
			}
			for _, tier := range tiers {
				if tier.min > tier.max {
					continue
				}
				_, err := tx.Exec(`
					INSERT INTO team_pricing_tiers (event_id, min_members, max_members, price)
					VALUES ($1, $2, $3, $4)`,
					eventID, tier.min, tier.max, tier.price)
				if err != nil {
					return err
				}
			}
		}
	}

	slog.Info("Inserted events", "count", *eventCount)
	return nil
}
