package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"tastebook/internal/database"
	"tastebook/internal/domain"
	"tastebook/internal/repository"
)

// Seeds a local database with an admin account, a couple of users and
// a handful of venues with reviews, for manual testing.
func main() {
	db, err := database.Connect("tastebook.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM dishes")
	db.Exec("DELETE FROM photos")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM venues")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	venues := repository.NewVenueRepository(db)
	reviews := repository.NewReviewRepository(db)

	log.Println("Creating users...")
	admin := seedUser(ctx, users, "admin@tastebook.app", "admin123", "Admin", true)
	anna := seedUser(ctx, users, "anna@example.com", "password1", "Anna", false)
	bela := seedUser(ctx, users, "bela@example.com", "password2", "Béla", false)

	log.Println("Creating venues...")
	samples := []struct {
		name    string
		address string
		tier    int
		owner   string
	}{
		{"Café Aranykacsa", "Fő utca 12, Budapest", 2, anna.ID},
		{"Borsó Bisztró", "Kossuth tér 3, Szeged", 1, anna.ID},
		{"Tükörterem", "Andrássy út 98, Budapest", 3, bela.ID},
	}

	for _, sv := range samples {
		v := &domain.Venue{Name: sv.name, Address: sv.address, PriceTier: sv.tier, OwnerID: sv.owner}
		if err := venues.Create(ctx, v); err != nil {
			log.Fatal("venue seed failed:", err)
		}

		rv := &domain.Review{VenueID: v.ID, AuthorID: admin.ID, Rating: 4, Message: "Solid spot, would come back."}
		if err := reviews.Create(ctx, rv); err != nil {
			log.Fatal("review seed failed:", err)
		}
		price := 3200.0
		if err := reviews.InsertDishes(ctx, rv.ID, []domain.Dish{{Name: "Goulash", Price: &price}}); err != nil {
			log.Fatal("dish seed failed:", err)
		}

		avg := 4.0
		if err := venues.SetAverageRating(ctx, v.ID, &avg); err != nil {
			log.Fatal("rating seed failed:", err)
		}
	}

	log.Println("Seed complete.")
}

func seedUser(ctx context.Context, users repository.UserRepository, email, password, name string, isAdmin bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{Email: email, PasswordHash: string(hash)}
	p := &domain.Profile{Name: name, Email: email, IsAdmin: isAdmin}
	if err := users.CreateWithProfile(ctx, u, p); err != nil {
		log.Fatal("user seed failed:", err)
	}
	return u
}
