package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkbook/internal/app"
	"inkbook/internal/config"
	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type artistSeed struct {
	email       string
	name        string
	location    string
	specialties []string
	rate        float64
	approved    bool
	days        []string
}

var artistSeeds = []artistSeed{
	{"aruzhan@inkbook.kz", "Aruzhan Ink", "Almaty", []string{"blackwork", "dotwork"}, 120, true, []string{"monday", "wednesday", "friday"}},
	{"timur@inkbook.kz", "Timur Lines", "Astana", []string{"fineline", "minimal"}, 90, true, []string{"tuesday", "thursday", "saturday"}},
	{"madina@inkbook.kz", "Madina Color", "Almaty", []string{"watercolor", "neo-traditional"}, 150, true, nil},
	{"erlan@inkbook.kz", "Erlan Realism", "Shymkent", []string{"realism", "portrait"}, 200, false, []string{"friday", "saturday"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer stores.Close()
	db := stores.DB

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM accounts")

	accounts := repository.NewAccountRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)
	sync := mirror.NewSynchronizer(accounts, stores.Secondary)

	// ================== ACCOUNTS ==================
	log.Println("Creating accounts...")

	admin := &domain.Account{
		Email:        "admin@inkbook.kz",
		PasswordHash: hash("admin123"),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
	}
	mustCreate(ctx, sync, admin)
	log.Println("Admin created: admin@inkbook.kz / admin123")

	customers := make([]*domain.Account, 0, 3)
	for i, email := range []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"} {
		c := &domain.Account{
			Email:        email,
			PasswordHash: hash("client123"),
			Role:         domain.RoleCustomer,
			Name:         fmt.Sprintf("Customer %d", i+1),
		}
		mustCreate(ctx, sync, c)
		customers = append(customers, c)
	}
	log.Printf("Customers created: %d (password client123)", len(customers))

	artists := make([]*domain.Account, 0, len(artistSeeds))
	for _, s := range artistSeeds {
		a := &domain.Account{
			Email:        s.email,
			PasswordHash: hash("artist123"),
			Role:         domain.RoleArtist,
			Name:         s.name,
			Profile: &domain.ArtistProfile{
				Bio:          fmt.Sprintf("%s, tattooing in %s.", s.name, s.location),
				Location:     s.location,
				Specialties:  s.specialties,
				HourlyRate:   s.rate,
				Approved:     s.approved,
				Availability: schedule(s.days),
			},
		}
		mustCreate(ctx, sync, a)
		artists = append(artists, a)
	}
	log.Printf("Artists created: %d (password artist123)", len(artists))

	// ================== BOOKINGS & REVIEWS ==================
	log.Println("Creating bookings...")

	statuses := []domain.BookingStatus{
		domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled,
	}
	created, reviewed := 0, 0
	for _, artist := range artists {
		if !artist.Profile.Approved {
			continue
		}
		for i, customer := range customers {
			status := statuses[(i+int(artist.ID))%len(statuses)]
			day := time.Now().UTC().AddDate(0, 0, rand.Intn(28)-14)
			if status == domain.BookingCompleted {
				day = time.Now().UTC().AddDate(0, 0, -(rand.Intn(30) + 1))
			}
			duration := float64(rand.Intn(3) + 1)

			b := &domain.Booking{
				CustomerID:  customer.ID,
				ArtistID:    artist.ID,
				Date:        day.Format("2006-01-02"),
				Time:        fmt.Sprintf("%02d:00", 10+rand.Intn(6)),
				Duration:    duration,
				Description: "Seeded session",
				Status:      status,
				Price:       artist.Profile.HourlyRate * duration,
			}
			if err := bookings.Create(ctx, b); err != nil {
				log.Fatalf("create booking: %v", err)
			}
			created++

			if status != domain.BookingCompleted {
				continue
			}
			rv := &domain.Review{
				BookingID:  b.ID,
				CustomerID: customer.ID,
				ArtistID:   artist.ID,
				Rating:     rand.Intn(2) + 4,
				Comment:    "Clean work, would come back.",
			}
			if _, err := reviews.CreateForBooking(ctx, rv); err != nil {
				log.Fatalf("create review: %v", err)
			}
			reviewed++
		}
	}
	log.Printf("Bookings created: %d, reviews: %d", created, reviewed)

	// Ratings were written straight to the primary store; bring the mirror in line.
	report, err := sync.Reconcile(ctx)
	if err != nil {
		log.Fatalf("reconcile: %v", err)
	}
	log.Printf("Mirror reconciled: scanned=%d succeeded=%d pruned=%d", report.Scanned, report.Succeeded, report.Pruned)
	log.Println("Seed completed")
}

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func mustCreate(ctx context.Context, sync *mirror.Synchronizer, a *domain.Account) {
	if err := sync.Create(ctx, a); err != nil {
		log.Fatalf("create %s: %v", a.Email, err)
	}
}

// schedule opens 10:00-13:00 and 14:00-18:00 on the given days. Nil days keep the default slots.
func schedule(days []string) domain.Availability {
	if len(days) == 0 {
		return nil
	}
	av := make(domain.Availability, len(days))
	for _, d := range days {
		av[d] = []domain.TimeRange{{Start: "10:00", End: "13:00"}, {Start: "14:00", End: "18:00"}}
	}
	return av
}
