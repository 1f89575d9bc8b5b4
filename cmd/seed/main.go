package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"qavat/internal/database"
	"qavat/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "qavat.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"notifications", "comments", "favourites", "gold_verification_requests",
		"ads", "category_names", "categories", "uploads", "otps", "one_id_info", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	adminUsername := "admin"
	admin := domain.User{
		Name:         "Администратор",
		Username:     &adminUsername,
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin / admin123")

	realtors := make([]domain.User, 0, 3)
	for i := 1; i <= 3; i++ {
		phone := fmt.Sprintf("+99890123450%d", i)
		r := domain.User{
			Name:        fmt.Sprintf("Риелтор %d", i),
			PhoneNumber: &phone,
			Role:        domain.RoleRealtor,
			IsActive:    true,
			IsVerified:  true,
		}
		db.Create(&r)
		db.Create(&domain.OneIDInfo{
			UserID:   r.ID,
			PIN:      fmt.Sprintf("3011990%07d", i),
			FullName: r.Name,
		})
		realtors = append(realtors, r)
	}

	buyerPhone := "+998909999999"
	buyer := domain.User{
		Name:        "Покупатель",
		PhoneNumber: &buyerPhone,
		Role:        domain.RoleUser,
		IsActive:    true,
	}
	db.Create(&buyer)

	// ================== CATEGORIES ==================
	log.Println("Creating categories...")

	housing := domain.Category{}
	db.Create(&housing)
	db.Create(&domain.CategoryName{CategoryID: housing.ID, Lang: "ru", Name: "Жильё"})
	db.Create(&domain.CategoryName{CategoryID: housing.ID, Lang: "uz", Name: "Uy-joy"})
	db.Create(&domain.CategoryName{CategoryID: housing.ID, Lang: "en", Name: "Housing"})

	apartments := domain.Category{ParentID: &housing.ID}
	db.Create(&apartments)
	db.Create(&domain.CategoryName{CategoryID: apartments.ID, Lang: "ru", Name: "Квартиры"})
	db.Create(&domain.CategoryName{CategoryID: apartments.ID, Lang: "uz", Name: "Kvartiralar"})

	houses := domain.Category{ParentID: &housing.ID}
	db.Create(&houses)
	db.Create(&domain.CategoryName{CategoryID: houses.ID, Lang: "ru", Name: "Дома"})

	// ================== ADS ==================
	log.Println("Creating ads...")

	cities := []string{"Tashkent", "Samarkand", "Bukhara"}
	dealTypes := []domain.DealType{domain.DealSale, domain.DealRent}
	catIDs := []int64{apartments.ID, houses.ID}

	ads := make([]domain.Ad, 0, 12)
	for i := 1; i <= 12; i++ {
		owner := realtors[i%len(realtors)]
		rooms := 1 + i%5
		price := int64(30000 + i*5000)
		catID := catIDs[i%len(catIDs)]
		area := float64(40 + i*7)

		ad := domain.Ad{
			Title:       fmt.Sprintf("%d-комнатная, вариант %d", rooms, i),
			Description: "Светлая, рядом школа и метро",
			DealType:    dealTypes[i%len(dealTypes)],
			CategoryID:  &catID,
			City:        cities[i%len(cities)],
			Street:      fmt.Sprintf("ул. Навои, %d", 10+i),
			Latitude:    domain.RoundCoordinate(41.2995 + rand.Float64()*0.05),
			Longitude:   domain.RoundCoordinate(69.2401 + rand.Float64()*0.05),
			RoomsCount:  &rooms,
			TotalArea:   &area,
			Price:       &price,
			Currency:    "UZS",
			FullName:    owner.Name,
			Email:       fmt.Sprintf("realtor%d@qavat.uz", owner.ID),
			PhoneNumber: *owner.PhoneNumber,
			UserID:      owner.ID,
			ViewsCount:  int64(rand.Intn(200)),
		}
		db.Create(&ad)
		ads = append(ads, ad)
	}

	// ================== GOLD REQUESTS ==================
	log.Println("Creating gold verification requests...")

	now := time.Now()
	approvedAt := now.Add(-24 * time.Hour)
	db.Create(&domain.GoldVerificationRequest{
		AdID:        ads[0].ID,
		RequestedBy: ads[0].UserID,
		ProcessedBy: &admin.ID,
		Status:      domain.GoldApproved,
		ProcessedAt: &approvedAt,
	})
	db.Create(&domain.GoldVerificationRequest{
		AdID:          ads[1].ID,
		RequestedBy:   ads[1].UserID,
		Status:        domain.GoldPending,
		RequestReason: "Документы на руках",
	})

	// ================== FAVOURITES & COMMENTS ==================
	db.Create(&domain.Favourite{UserID: buyer.ID, AdID: ads[0].ID})
	db.Create(&domain.Favourite{UserID: buyer.ID, AdID: ads[2].ID})
	db.Create(&domain.Comment{AdID: ads[0].ID, UserID: buyer.ID, Text: "Торг уместен?"})

	log.Println("Seed complete.")
}
