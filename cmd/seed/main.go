package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	"tutorhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var subjects = []string{"Math", "Physics", "Chemistry", "English", "Biology", "History"}
var cities = []string{"Nairobi", "Mombasa", "Kisumu", "Online"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// children first
	log.Println("Cleaning old data...")
	for _, table := range []string{"reviews", "bookings", "tutor_subjects", "tutor_locations", "tutors", "students", "admins"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()
	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), cfg.BcryptCost)
		if err != nil {
			log.Fatal("bcrypt:", err)
		}
		return string(h)
	}

	admins := repository.NewAdminRepository(db)
	students := repository.NewStudentRepository(db)
	tutors := repository.NewTutorRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	// ================== ADMIN ==================
	if err := admins.Create(ctx, &domain.Admin{Name: "Admin", Email: "admin@tutorhub.local", PasswordHash: hash("admin123")}); err != nil {
		log.Fatal("create admin:", err)
	}
	log.Println("Admin created: admin@tutorhub.local / admin123")

	// ================== STUDENTS ==================
	studentHash := hash("student123")
	var createdStudents []*domain.Student
	for i := 1; i <= 5; i++ {
		s := &domain.Student{
			Name:         fmt.Sprintf("Student %d", i),
			Username:     fmt.Sprintf("student%d", i),
			Email:        fmt.Sprintf("student%d@tutorhub.local", i),
			PasswordHash: studentHash,
			Phone:        fmt.Sprintf("+254 700 000 %03d", i),
		}
		if err := students.Create(ctx, s); err != nil {
			log.Fatal("create student:", err)
		}
		createdStudents = append(createdStudents, s)
	}
	log.Printf("%d students created, password student123", len(createdStudents))

	// ================== TUTORS ==================
	tutorHash := hash("tutor123")
	var createdTutors []*domain.Tutor
	for i := 1; i <= 6; i++ {
		t := &domain.Tutor{
			Name:         fmt.Sprintf("Tutor %d", i),
			Username:     fmt.Sprintf("tutor%d", i),
			Email:        fmt.Sprintf("tutor%d@tutorhub.local", i),
			PasswordHash: tutorHash,
			Profession:   "Teacher",
			About:        "Patient tutor with years of classroom experience.",
			Price:        float64(10 + rand.Intn(8)*5),
			Subjects:     []string{subjects[i%len(subjects)], subjects[(i+1)%len(subjects)]},
			Locations:    []string{cities[i%len(cities)]},
			Availability: weeklySchedule(i),
			Contact:      domain.Contact{Phone: fmt.Sprintf("+254 711 000 %03d", i)},
			IsVerified:   i%2 == 0,
		}
		if err := tutors.Create(ctx, t); err != nil {
			log.Fatal("create tutor:", err)
		}
		createdTutors = append(createdTutors, t)
	}
	log.Printf("%d tutors created, password tutor123", len(createdTutors))

	// ================== BOOKINGS ==================
	statuses := []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled}
	date := "2026-11-02" // a Monday
	n := 0
	for i, t := range createdTutors {
		day, _ := t.Availability.Day(domain.Monday)
		for j, slot := range day.Slots {
			s := createdStudents[(i+j)%len(createdStudents)]
			b := &domain.Booking{
				StudentID:     s.ID,
				TutorID:       t.ID,
				Date:          date,
				StartTime:     slot.StartTime,
				EndTime:       slot.EndTime,
				Subject:       t.Subjects[0],
				Status:        statuses[(i+j)%len(statuses)],
				PaymentStatus: domain.PaymentPending,
			}
			if err := bookings.Create(ctx, b); err != nil {
				log.Fatal("create booking:", err)
			}
			n++
		}
	}
	log.Printf("%d bookings created", n)

	// ================== REVIEWS ==================
	for _, t := range createdTutors {
		for _, s := range createdStudents[:1+rand.Intn(len(createdStudents))] {
			rv := &domain.Review{StudentID: s.ID, TutorID: t.ID, Rating: 3 + rand.Intn(3), Comment: "Clear explanations."}
			if err := reviews.Create(ctx, rv); err != nil {
				log.Fatal("create review:", err)
			}
		}
		if _, err := reviews.RecomputeTutorRating(ctx, t.ID); err != nil {
			log.Fatal("recompute rating:", err)
		}
	}
	log.Println("Reviews created and ratings recomputed")
	log.Println("Seed completed")
}

// weeklySchedule gives every tutor Monday plus one more weekday.
func weeklySchedule(i int) domain.Availability {
	extra := []domain.Weekday{domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday, domain.Saturday}
	return domain.Availability{
		{Day: domain.Monday, Slots: []domain.TimeSlot{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "11:00"},
			{StartTime: "14:00", EndTime: "15:30"},
		}},
		{Day: extra[i%len(extra)], Slots: []domain.TimeSlot{
			{StartTime: "16:00", EndTime: "17:00"},
		}},
	}
}
