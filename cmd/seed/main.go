package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tourstay/internal/config"
	"tourstay/internal/database"
	"tourstay/internal/domain"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_modifications")
	db.Exec("DELETE FROM booking_rooms")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM package_group_discounts")
	db.Exec("DELETE FROM tour_packages")
	db.Exec("DELETE FROM room_types")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@tourstay.in",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Platform Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@tourstay.in / admin123")

	modHash, _ := bcrypt.GenerateFromPassword([]byte("moderator123"), bcrypt.DefaultCost)
	moderator := domain.User{
		Email:        "moderator@tourstay.in",
		PasswordHash: string(modHash),
		Role:         domain.RoleModerator,
		Name:         "Listings Moderator",
	}
	db.Create(&moderator)

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Email:        "owner@seasidepalace.in",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleHotelOwner,
		Name:         "Ravi Menon",
		Phone:        "+91 98470 12345",
	}
	db.Create(&owner)

	guests := []domain.User{}
	guestEmails := []string{"ananya@gmail.com", "vikram@yahoo.in", "priya@outlook.com"}
	for i, email := range guestEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		guest := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			Name:         fmt.Sprintf("Guest %d", i+1),
			Phone:        fmt.Sprintf("+91 98765 432%02d", i+10),
		}
		db.Create(&guest)
		guests = append(guests, guest)
	}

	// ================== HOTELS ==================
	log.Println("Creating hotels...")

	seaside := domain.Hotel{
		OwnerID:     owner.ID,
		Name:        "Seaside Palace",
		Description: "Beachfront property with sunset views over the Arabian Sea.",
		Address:     "12 Beach Road, Kovalam",
		City:        "Thiruvananthapuram",
		State:       "Kerala",
		Pincode:     "695527",
		Amenities:   []string{"wifi", "pool", "restaurant", "spa"},
		Status:      domain.HotelApproved,
		CancellationPolicy: domain.CancellationPolicy{
			FreeCancelDays: 3,
			Description:    "Full refund when cancelled at least 3 days before check-in.",
		},
	}
	db.Create(&seaside)

	hillview := domain.Hotel{
		OwnerID:     owner.ID,
		Name:        "Hillview Retreat",
		Description: "Tea-estate cottages above Munnar town.",
		Address:     "Estate Lane, Munnar",
		City:        "Munnar",
		State:       "Kerala",
		Pincode:     "685612",
		Amenities:   []string{"wifi", "bonfire", "trekking"},
		Status:      domain.HotelPending,
		CancellationPolicy: domain.CancellationPolicy{
			FreeCancelDays: 7,
			Description:    "Full refund when cancelled at least a week before check-in.",
		},
	}
	db.Create(&hillview)

	// ================== ROOM TYPES ==================
	log.Println("Creating room types...")

	from := time.Now().AddDate(0, 0, -7)
	to := time.Now().AddDate(0, 1, 0)
	rooms := []domain.RoomType{
		{
			HotelID:        seaside.ID,
			Name:           "Deluxe Sea View",
			CapacityAdults: 2, CapacityChildren: 1,
			BasePrice:  4500,
			TotalRooms: 10, AvailableRooms: 10,
			Amenities: []string{"balcony", "ac", "minibar"},
			BedType:   "King",
			Discount:  domain.Discount{Percentage: 10, ValidFrom: &from, ValidTo: &to},
			IsActive:  true,
		},
		{
			HotelID:        seaside.ID,
			Name:           "Standard Garden",
			CapacityAdults: 2,
			BasePrice:      2800,
			TotalRooms:     15, AvailableRooms: 15,
			Amenities: []string{"ac"},
			BedType:   "Queen",
			IsActive:  true,
		},
		{
			HotelID:        seaside.ID,
			Name:           "Family Suite",
			CapacityAdults: 4, CapacityChildren: 2,
			BasePrice:               7200,
			PricePerAdditionalGuest: 800,
			TotalRooms:              4, AvailableRooms: 4,
			Amenities: []string{"kitchenette", "ac", "balcony"},
			BedType:   "Two Kings",
			IsActive:  true,
		},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	// ================== TOUR PACKAGES ==================
	log.Println("Creating tour packages...")

	backwaters := domain.TourPackage{
		Title:              "Kerala Backwaters Escape",
		Slug:               "kerala-backwaters-escape",
		Description:        "Houseboat cruise through the Alleppey backwaters with village stops.",
		Category:           domain.CategoryRelaxation,
		DurationDays:       3,
		DurationNights:     2,
		BasePrice:          8500,
		DiscountPercentage: 5,
		PricePerPerson:     true,
		GroupSizeMin:       2,
		GroupSizeMax:       12,
		Highlights:         []string{"Houseboat stay", "Sunset cruise", "Local cuisine"},
		Inclusions:         []string{"Meals", "Guide", "Transfers"},
		IsActive:           true,
		GroupDiscounts: []domain.GroupDiscount{
			{Position: 0, MinPeople: 4, MaxPeople: 6, DiscountPercentage: 10},
			{Position: 1, MinPeople: 7, MaxPeople: 12, DiscountPercentage: 15},
		},
	}
	db.Create(&backwaters)

	wildlife := domain.TourPackage{
		Title:          "Periyar Wildlife Trail",
		Slug:           "periyar-wildlife-trail",
		Description:    "Guided jungle walks and a lake safari in Periyar reserve.",
		Category:       domain.CategoryWildlife,
		DurationDays:   2,
		DurationNights: 1,
		BasePrice:      5600,
		PricePerPerson: true,
		GroupSizeMin:   1,
		GroupSizeMax:   8,
		Highlights:     []string{"Lake safari", "Spice garden visit"},
		Inclusions:     []string{"Entry fees", "Guide"},
		IsActive:       true,
		GroupDiscounts: []domain.GroupDiscount{
			{Position: 0, MinPeople: 4, MaxPeople: 8, DiscountPercentage: 12},
		},
	}
	db.Create(&wildlife)

	log.Println("Seed complete.")
	log.Printf("  users: %d, hotels: 2, room types: %d, packages: 2", 3+len(guests), len(rooms))
}
