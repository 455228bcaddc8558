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

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// ----------------------------------------------------
// categories
// ----------------------------------------------------

type CategoryInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
}

func (s *RoomService) ListCategories(ctx context.Context) ([]models.RoomCategory, error) {
	var cats []models.RoomCategory
	err := s.DB.WithContext(ctx).Order("base_price ASC").Find(&cats).Error
	return cats, err
}

func (s *RoomService) CreateCategory(ctx context.Context, in CategoryInput) (models.RoomCategory, error) {
	const op = "rooms.create_category"
	cat := models.RoomCategory{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if cat.Name == "" || in.BasePrice == nil {
		return cat, billing.Validation(op, "name and base price are required")
	}
	if !in.BasePrice.IsPositive() {
		return cat, billing.Validation(op, "base price must be positive")
	}
	cat.BasePrice = *in.BasePrice
	if err := s.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return cat, billing.Conflict(op, "category %q already exists", cat.Name)
		}
		return cat, billing.Internal(op, err)
	}
	return cat, nil
}

// UpdateCategory changes the price of future checkouts of every room in the
// category whose stay has no custom rate.
func (s *RoomService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (models.RoomCategory, models.RoomCategory, error) {
	const op = "rooms.update_category"
	var old models.RoomCategory
	if err := s.DB.WithContext(ctx).First(&old, id).Error; err != nil {
		return old, old, notFoundOr(op, "category", id, err)
	}
	cat := old
	if v := strings.TrimSpace(in.Name); v != "" {
		cat.Name = v
	}
	if in.Description != "" {
		cat.Description = strings.TrimSpace(in.Description)
	}
	if in.BasePrice != nil {
		if !in.BasePrice.IsPositive() {
			return old, cat, billing.Validation(op, "base price must be positive")
		}
		cat.BasePrice = *in.BasePrice
	}
	if err := s.DB.WithContext(ctx).Save(&cat).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return old, cat, billing.Conflict(op, "category %q already exists", cat.Name)
		}
		return old, cat, billing.Internal(op, err)
	}
	return old, cat, nil
}

// ----------------------------------------------------
// rooms
// ----------------------------------------------------

type RoomInput struct {
	RoomNumber  string `json:"roomNumber"`
	CategoryID  uint   `json:"categoryId"`
	Floor       *int   `json:"floor"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (s *RoomService) List(ctx context.Context, status string, categoryID uint) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Preload("Category").Order("room_number ASC")
	if status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var rooms []models.Room
	err := q.Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("Category").First(&room, id).Error; err != nil {
		return room, notFoundOr("rooms.get", "room", id, err)
	}
	return room, nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (models.Room, error) {
	const op = "rooms.create"
	room := models.Room{
		RoomNumber:  strings.TrimSpace(in.RoomNumber),
		CategoryID:  in.CategoryID,
		Status:      strings.ToUpper(strings.TrimSpace(in.Status)),
		Description: strings.TrimSpace(in.Description),
	}
	if room.RoomNumber == "" || room.CategoryID == 0 {
		return room, billing.Validation(op, "room number and category are required")
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !models.ValidRoomStatus(room.Status) {
		return room, billing.Validation(op, "invalid room status %q", room.Status)
	}
	if in.Floor != nil {
		room.Floor = *in.Floor
	}

	var cat models.RoomCategory
	if err := s.DB.WithContext(ctx).First(&cat, room.CategoryID).Error; err != nil {
		return room, notFoundOr(op, "category", room.CategoryID, err)
	}
	if err := s.DB.WithContext(ctx).Omit("Category").Create(&room).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return room, billing.Conflict(op, "room number '%s' already exists", room.RoomNumber)
		}
		return room, billing.Internal(op, err)
	}
	room.Category = cat
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (models.Room, models.Room, error) {
	const op = "rooms.update"
	old, err := s.Get(ctx, id)
	if err != nil {
		return old, old, err
	}
	updates := map[string]interface{}{}
	if v := strings.TrimSpace(in.RoomNumber); v != "" {
		updates["room_number"] = v
	}
	if in.CategoryID != 0 {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.RoomCategory{}).Where("id = ?", in.CategoryID).Count(&n).Error; err != nil {
			return old, old, billing.Internal(op, err)
		}
		if n == 0 {
			return old, old, billing.NotFound(op, "category", in.CategoryID)
		}
		updates["category_id"] = in.CategoryID
	}
	if in.Floor != nil {
		updates["floor"] = *in.Floor
	}
	if v := strings.ToUpper(strings.TrimSpace(in.Status)); v != "" {
		if !models.ValidRoomStatus(v) {
			return old, old, billing.Validation(op, "invalid room status %q", v)
		}
		updates["status"] = v
	}
	if in.Description != "" {
		updates["description"] = strings.TrimSpace(in.Description)
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return old, old, billing.Conflict(op, "room number '%v' already exists", updates["room_number"])
			}
			return old, old, billing.Internal(op, err)
		}
	}
	room, err := s.Get(ctx, id)
	return old, room, err
}

// ----------------------------------------------------
// availability
// ----------------------------------------------------

type AvailabilityStats struct {
	Total         int `json:"total"`
	Available     int `json:"available"`
	Occupied      int `json:"occupied"`
	Booked        int `json:"booked"`
	Cleaning      int `json:"cleaning"`
	Maintenance   int `json:"maintenance"`
	OccupancyRate int `json:"occupancyRate"`
}

type Availability struct {
	Rooms map[string][]models.Room `json:"rooms"`
	Stats AvailabilityStats        `json:"stats"`
}

func (s *RoomService) Availability(ctx context.Context) (Availability, error) {
	rooms, err := s.List(ctx, "", 0)
	if err != nil {
		return Availability{}, err
	}
	return groupAvailability(rooms), nil
}

func groupAvailability(rooms []models.Room) Availability {
	out := Availability{Rooms: make(map[string][]models.Room, len(models.RoomStatuses))}
	for _, st := range models.RoomStatuses {
		out.Rooms[st] = []models.Room{}
	}
	for _, r := range rooms {
		out.Rooms[r.Status] = append(out.Rooms[r.Status], r)
	}
	out.Stats = AvailabilityStats{
		Total:         len(rooms),
		Available:     len(out.Rooms[models.RoomAvailable]),
		Occupied:      len(out.Rooms[models.RoomOccupied]),
		Booked:        len(out.Rooms[models.RoomBooked]),
		Cleaning:      len(out.Rooms[models.RoomCleaning]),
		Maintenance:   len(out.Rooms[models.RoomMaintenance]),
		OccupancyRate: percent(len(out.Rooms[models.RoomOccupied]), len(rooms)),
	}
	return out
}

// percent rounds part/total*100 half up; 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}
