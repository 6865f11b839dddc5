package main

import (
	"log"
	"time"

	"volunect/config"
	"volunect/database"
	"volunect/middleware"
	"volunect/models"
)

// Seeds a demo NGO, a couple of volunteers and an upcoming task, and prints
// tokens for exercising the API by hand.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	ngo := models.User{
		Name:             "Asha Varma",
		Email:            "asha@greenroots.org",
		Role:             models.RoleNGO,
		OrganizationName: "Green Roots Foundation",
		City:             "Pune",
	}
	if err := db.Where(models.User{Email: ngo.Email}).FirstOrCreate(&ngo).Error; err != nil {
		log.Fatalf("Failed to seed NGO: %v", err)
	}

	volunteers := []models.User{
		{Name: "Ravi Kulkarni", Email: "ravi@example.com", Role: models.RoleVolunteer, City: "Pune"},
		{Name: "Meera Joshi", Email: "meera@example.com", Role: models.RoleVolunteer, City: "Mumbai"},
	}
	for i := range volunteers {
		if err := db.Where(models.User{Email: volunteers[i].Email}).FirstOrCreate(&volunteers[i]).Error; err != nil {
			log.Fatalf("Failed to seed volunteer: %v", err)
		}
	}

	task := models.Task{
		Title:           "Riverbank cleanup drive",
		Description:     "Morning cleanup along the Mula-Mutha riverbank.",
		Location:        "Pune",
		ScheduledDate:   time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		HoursPerSession: 4,
		MaxVolunteers:   20,
		Status:          models.TaskStatusOpen,
		OwnerID:         ngo.ID,
	}
	if err := db.Where(models.Task{Title: task.Title, OwnerID: ngo.ID}).FirstOrCreate(&task).Error; err != nil {
		log.Fatalf("Failed to seed task: %v", err)
	}

	log.Printf("Seeded NGO %d, task %d, %d volunteers", ngo.ID, task.ID, len(volunteers))

	for _, u := range append([]models.User{ngo}, volunteers...) {
		token, err := middleware.GenerateJWT(u.ID, u.Name, u.Role, u.Email)
		if err != nil {
			log.Fatalf("Failed to generate token for %s: %v", u.Email, err)
		}
		log.Printf("%s (%s): Bearer %s", u.Name, u.Role, token)
	}
}
