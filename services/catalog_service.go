package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

// CatalogService manages the food menu and extra services that bill items
// can reference.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

type CatalogItemInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  uint             `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	Available   *bool            `json:"available"`
}

// ----------------------------------------------------
// food
// ----------------------------------------------------

func (s *CatalogService) FoodMenu(ctx context.Context, categoryID uint) ([]models.FoodMenuItem, []models.FoodCategory, error) {
	q := s.DB.WithContext(ctx).Preload("Category").Order("name ASC")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var items []models.FoodMenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, nil, err
	}
	var cats []models.FoodCategory
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, nil, err
	}
	return items, cats, nil
}

func (s *CatalogService) CreateFoodCategory(ctx context.Context, name string) (models.FoodCategory, error) {
	const op = "catalog.create_food_category"
	cat := models.FoodCategory{Name: strings.TrimSpace(name)}
	if cat.Name == "" {
		return cat, billing.Validation(op, "name is required")
	}
	if err := s.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return cat, billing.Conflict(op, "food category %q already exists", cat.Name)
		}
		return cat, billing.Internal(op, err)
	}
	return cat, nil
}

func (s *CatalogService) CreateFoodItem(ctx context.Context, in CatalogItemInput) (models.FoodMenuItem, error) {
	const op = "catalog.create_food_item"
	item := models.FoodMenuItem{Name: strings.TrimSpace(in.Name), CategoryID: in.CategoryID, Available: true}
	if item.Name == "" || item.CategoryID == 0 || in.Price == nil {
		return item, billing.Validation(op, "name, category, and price are required")
	}
	if !in.Price.IsPositive() {
		return item, billing.Validation(op, "price must be positive")
	}
	item.Price = *in.Price

	var cat models.FoodCategory
	if err := s.DB.WithContext(ctx).First(&cat, item.CategoryID).Error; err != nil {
		return item, notFoundOr(op, "food category", item.CategoryID, err)
	}
	if err := s.DB.WithContext(ctx).Omit("Category").Create(&item).Error; err != nil {
		return item, billing.Internal(op, err)
	}
	item.Category = cat
	return item, nil
}

func (s *CatalogService) UpdateFoodItem(ctx context.Context, id uint, in CatalogItemInput) (models.FoodMenuItem, error) {
	const op = "catalog.update_food_item"
	updates, err := catalogUpdates(op, in)
	if err != nil {
		return models.FoodMenuItem{}, err
	}
	if in.CategoryID != 0 {
		updates["category_id"] = in.CategoryID
	}
	var item models.FoodMenuItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return item, notFoundOr(op, "food item", id, err)
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
			return item, billing.Internal(op, err)
		}
	}
	err = s.DB.WithContext(ctx).Preload("Category").First(&item, id).Error
	return item, err
}

// ----------------------------------------------------
// extra services
// ----------------------------------------------------

func (s *CatalogService) Services(ctx context.Context) ([]models.ExtraService, error) {
	var rows []models.ExtraService
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (s *CatalogService) CreateService(ctx context.Context, in CatalogItemInput) (models.ExtraService, error) {
	const op = "catalog.create_service"
	svc := models.ExtraService{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Available:   true,
	}
	if svc.Name == "" || in.Price == nil {
		return svc, billing.Validation(op, "name and price are required")
	}
	if !in.Price.IsPositive() {
		return svc, billing.Validation(op, "price must be positive")
	}
	svc.Price = *in.Price
	if err := s.DB.WithContext(ctx).Create(&svc).Error; err != nil {
		return svc, billing.Internal(op, err)
	}
	return svc, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id uint, in CatalogItemInput) (models.ExtraService, error) {
	const op = "catalog.update_service"
	updates, err := catalogUpdates(op, in)
	if err != nil {
		return models.ExtraService{}, err
	}
	if in.Description != "" {
		updates["description"] = strings.TrimSpace(in.Description)
	}
	var svc models.ExtraService
	if err := s.DB.WithContext(ctx).First(&svc, id).Error; err != nil {
		return svc, notFoundOr(op, "service", id, err)
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&svc).Updates(updates).Error; err != nil {
			return svc, billing.Internal(op, err)
		}
	}
	err = s.DB.WithContext(ctx).First(&svc, id).Error
	return svc, err
}

// catalogUpdates builds the column map shared by menu items and services.
func catalogUpdates(op string, in CatalogItemInput) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if v := strings.TrimSpace(in.Name); v != "" {
		updates["name"] = v
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, billing.Validation(op, "price must be positive")
		}
		updates["price"] = *in.Price
	}
	if in.Available != nil {
		updates["available"] = *in.Available
	}
	return updates, nil
}
