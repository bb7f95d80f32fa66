package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"crmboard/internal/database"
	"crmboard/internal/domain"
	"crmboard/internal/pkg/utils"
)

// Seeds a demo tenant with one pipeline, four stages and a handful of
// leads so the board has something to show after a fresh start.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "crmboard.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"custom_values", "custom_fields", "messages", "conversations",
		"greeting_messages", "campaigns", "user_preferences", "api_tokens",
		"leads", "stages", "pipelines", "users", "companies",
	} {
		db.Exec("DELETE FROM " + table)
	}

	log.Println("Creating demo tenant...")
	company := domain.Company{Name: "Demo Motors"}
	if err := db.Create(&company).Error; err != nil {
		log.Fatal(err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		CompanyID:    company.ID,
		Email:        "admin@demo-motors.io",
		PasswordHash: string(hash),
		Name:         "Demo Admin",
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}

	pipeline := domain.Pipeline{CompanyID: company.ID, Name: "Sales"}
	if err := db.Create(&pipeline).Error; err != nil {
		log.Fatal(err)
	}

	stageNames := []struct {
		name  string
		color string
	}{
		{"Prospecting", "#6b7280"},
		{"Qualification", "#3b82f6"},
		{"Proposal", "#f59e0b"},
		{"Closing", "#22c55e"},
	}
	stages := make([]domain.Stage, 0, len(stageNames))
	for i, s := range stageNames {
		stage := domain.Stage{
			PipelineID: pipeline.ID,
			CompanyID:  company.ID,
			Name:       s.name,
			Color:      s.color,
			Position:   i,
		}
		if err := db.Create(&stage).Error; err != nil {
			log.Fatal(err)
		}
		stages = append(stages, stage)
	}

	leads := []domain.Lead{
		{Name: "Sedan for Alvarez family", CompanyName: "", Phone: "+5511990001111", Value: 32000, Status: domain.LeadStatusHot, Origin: domain.OriginWhatsApp, Tags: utils.TagsToString([]string{"sedan", "trade-in"})},
		{Name: "Fleet renewal", CompanyName: "Lomax Logistics", Email: "fleet@lomax.example", Value: 480000, Status: domain.LeadStatusWarm, Origin: domain.OriginWebsite, Tags: utils.TagsToString([]string{"fleet"})},
		{Name: "SUV inquiry", Phone: "+5511990002222", Value: 55000, Status: domain.LeadStatusCold, Origin: domain.OriginInstagram, Tags: utils.TagsToString([]string{"suv"})},
		{Name: "Pickup upgrade", CompanyName: "Vereda Farms", Value: 72000, Status: domain.LeadStatusWarm, Origin: domain.OriginReferral, Tags: utils.TagsToString(nil)},
		{Name: "Second car quote", Phone: "+5511990003333", Value: 28000, Status: domain.LeadStatusHot, Origin: domain.OriginWhatsApp, Tags: utils.TagsToString([]string{"sedan"})},
	}
	positions := map[int64]int{}
	for i := range leads {
		stage := stages[i%len(stages)]
		leads[i].CompanyID = company.ID
		leads[i].PipelineID = pipeline.ID
		leads[i].StageID = stage.ID
		leads[i].Position = positions[stage.ID]
		positions[stage.ID]++
		if err := db.Create(&leads[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	greeting := domain.GreetingMessage{
		CompanyID: company.ID,
		Trigger:   "price",
		Body:      "Hi! Thanks for reaching out. An agent will send you our price list shortly.",
		Active:    true,
	}
	if err := db.Create(&greeting).Error; err != nil {
		log.Fatal(err)
	}

	log.Printf("Seed done: company=%d pipeline=%d stages=%d leads=%d (login admin@demo-motors.io / admin123)",
		company.ID, pipeline.ID, len(stages), len(leads))
}
