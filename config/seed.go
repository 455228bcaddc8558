package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

type seedUser struct {
	email, password, name, role string
}

var seedUsers = []seedUser{
	{"admin@hotel.local", "admin123", "Admin User", models.RoleAdmin},
	{"accountant@hotel.local", "accountant123", "Accountant User", models.RoleAccountant},
	{"frontdesk@hotel.local", "frontdesk123", "Front Desk User", models.RoleFrontDesk},
}

var seedCategories = []models.RoomCategory{
	{Name: "Single Room", Description: "Comfortable single occupancy room", BasePrice: decimal.NewFromInt(5000)},
	{Name: "Double Room", Description: "Spacious double occupancy room", BasePrice: decimal.NewFromInt(7500)},
	{Name: "Deluxe Suite", Description: "Luxury suite with premium amenities", BasePrice: decimal.NewFromInt(12000)},
	{Name: "Executive Suite", Description: "Top-tier executive suite", BasePrice: decimal.NewFromInt(18000)},
}

var seedFood = map[string][]models.FoodMenuItem{
	"Breakfast": {{Name: "Continental Breakfast", Price: decimal.NewFromInt(800)}},
	"Lunch":     {{Name: "Chicken Biryani", Price: decimal.NewFromInt(600)}},
	"Dinner":    {{Name: "Grilled Fish", Price: decimal.NewFromInt(1200)}},
	"Beverages": {{Name: "Fresh Juice", Price: decimal.NewFromInt(250)}},
}

var seedServices = []models.ExtraService{
	{Name: "Laundry Service", Description: "Professional laundry and dry cleaning", Price: decimal.NewFromInt(500)},
	{Name: "Airport Transfer", Description: "Pickup/drop-off to airport", Price: decimal.NewFromInt(2000)},
	{Name: "Spa Treatment", Description: "Relaxing spa and massage", Price: decimal.NewFromInt(3000)},
}

// Seed inserts default users and catalog rows that are missing. Running it
// again changes nothing.
func Seed(db *gorm.DB, log *logrus.Entry) {
	for _, u := range seedUsers {
		var n int64
		db.Model(&models.User{}).Where("email = ?", u.email).Count(&n)
		if n > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Warn("failed to hash seed password")
			continue
		}
		user := models.User{Email: u.email, Password: string(hash), Name: u.name, Role: u.role, IsActive: true}
		if err := db.Create(&user).Error; err != nil {
			log.WithError(err).WithField("email", u.email).Warn("failed to seed user")
			continue
		}
		log.WithField("email", u.email).Info("user seeded")
	}

	categories := make([]models.RoomCategory, 0, len(seedCategories))
	for _, c := range seedCategories {
		row := c
		if err := db.Where(models.RoomCategory{Name: c.Name}).Attrs(c).FirstOrCreate(&row).Error; err != nil {
			log.WithError(err).WithField("category", c.Name).Warn("failed to seed room category")
			continue
		}
		categories = append(categories, row)
	}

	if len(categories) >= 2 {
		for i := 101; i <= 110; i++ {
			number := fmt.Sprint(i)
			room := models.Room{
				RoomNumber: number,
				CategoryID: categories[i%2].ID,
				Floor:      i / 100,
				Status:     models.RoomAvailable,
			}
			if err := db.Where(models.Room{RoomNumber: number}).Attrs(room).FirstOrCreate(&room).Error; err != nil {
				log.WithError(err).WithField("room", number).Warn("failed to seed room")
			}
		}
	}

	for _, name := range []string{"Breakfast", "Lunch", "Dinner", "Beverages"} {
		cat := models.FoodCategory{Name: name}
		if err := db.Where(models.FoodCategory{Name: name}).FirstOrCreate(&cat).Error; err != nil {
			log.WithError(err).WithField("food_category", name).Warn("failed to seed food category")
			continue
		}
		for _, item := range seedFood[name] {
			item.CategoryID = cat.ID
			item.Available = true
			if err := db.Where(models.FoodMenuItem{Name: item.Name}).Attrs(item).FirstOrCreate(&item).Error; err != nil {
				log.WithError(err).WithField("food", item.Name).Warn("failed to seed food item")
			}
		}
	}

	for _, svc := range seedServices {
		svc.Available = true
		if err := db.Where(models.ExtraService{Name: svc.Name}).Attrs(svc).FirstOrCreate(&svc).Error; err != nil {
			log.WithError(err).WithField("service", svc.Name).Warn("failed to seed extra service")
		}
	}

	var settings int64
	db.Model(&models.HotelSetting{}).Count(&settings)
	if settings == 0 {
		db.Create(&models.HotelSetting{Name: "Hotel", Currency: "PKR"})
	}
	log.Info("seed complete")
}
