package cmd

import (
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	groupDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/group"
	holidayDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/holiday"
	projectDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/project"
	userDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/user"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a default admin, projects, groups, and holidays",
	RunE:  runSeed,
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	sqlDB, err := sqlx.Connect("pgx", cfg.Database.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open gorm connection: %w", err)
	}

	if clearData {
		log.Println("clearing existing data")
		for _, table := range []string{"time_entries", "holidays", "projects", "users", "groups"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	if err := seedGroups(db); err != nil {
		return err
	}
	if err := seedUsers(db, cfg.Security.BCryptCost); err != nil {
		return err
	}
	if err := seedProjects(db); err != nil {
		return err
	}
	if err := seedHolidays(db); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

func seedGroups(db *gorm.DB) error {
	groups := []groupDatamodel.Group{
		{Name: "Engineering", Color: "#3b82f6", IsActive: true},
		{Name: "Operations", Color: "#10b981", IsActive: true},
	}
	for _, g := range groups {
		var count int64
		db.Model(&groupDatamodel.Group{}).Where("name = ?", g.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&g).Error; err != nil {
			return fmt.Errorf("failed to seed group %s: %w", g.Name, err)
		}
		log.Printf("seeded group %s", g.Name)
	}
	return nil
}

func seedUsers(db *gorm.DB, bcryptCost int) error {
	accounts := []struct {
		email    string
		first    string
		last     string
		password string
		role     string
	}{
		{"admin@zeitwerk.local", "Ada", "Admin", "admin-change-me", auth.RoleAdmin},
		{"employee@zeitwerk.local", "Erik", "Employee", "employee-change-me", auth.RoleEmployee},
	}

	for _, a := range accounts {
		var count int64
		db.Model(&userDatamodel.User{}).Where("email = ?", a.email).Count(&count)
		if count > 0 {
			continue
		}

		hash, err := auth.HashPassword(a.password, bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		u := userDatamodel.User{
			Email:             a.email,
			FirstName:         a.first,
			LastName:          a.last,
			PasswordHash:      hash,
			Role:              a.role,
			TargetHoursPerDay: 8,
			IsActive:          true,
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", a.email, err)
		}
		log.Printf("seeded user %s (%s)", a.email, a.role)
	}
	return nil
}

func seedProjects(db *gorm.DB) error {
	projects := []projectDatamodel.Project{
		{Name: "Internal", Description: "Internal work and administration", Color: "#6b7280", IsActive: true},
		{Name: "Client Work", Description: "Billable client engagements", Color: "#f59e0b", IsActive: true},
	}
	for _, p := range projects {
		var count int64
		db.Model(&projectDatamodel.Project{}).Where("name = ?", p.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to seed project %s: %w", p.Name, err)
		}
		log.Printf("seeded project %s", p.Name)
	}
	return nil
}

func seedHolidays(db *gorm.DB) error {
	year := time.Now().Year()
	holidays := []holidayDatamodel.Holiday{
		{Name: "New Year's Day", Date: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), IsRecurring: true},
		{Name: "Labour Day", Date: time.Date(year, 5, 1, 0, 0, 0, 0, time.UTC), IsRecurring: true},
		{Name: "Christmas Day", Date: time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC), IsRecurring: true},
	}
	for _, h := range holidays {
		var count int64
		db.Model(&holidayDatamodel.Holiday{}).Where("name = ?", h.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&h).Error; err != nil {
			return fmt.Errorf("failed to seed holiday %s: %w", h.Name, err)
		}
		log.Printf("seeded holiday %s", h.Name)
	}
	return nil
}
