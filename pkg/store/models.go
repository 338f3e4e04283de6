package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type ProductModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Brand        string `gorm:"not null"`
	Series       string
	Model        string
	SerialNumber *string `gorm:"uniqueIndex"`
	Description  string
	Image        string
	DealerPrice  *float64
	EndUserPrice *float64
	Warranty     string
	Type         string
	CreatedAt    time.Time `gorm:"index"`
}

func (ProductModel) TableName() string { return "products" }

type ProductImageModel struct {
	ID           uint      `gorm:"primaryKey"`
	ProductID    uint      `gorm:"not null;index"`
	ImagePath    string    `gorm:"not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (ProductImageModel) TableName() string { return "product_images" }

type ProductCategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_category"`
	Category  string    `gorm:"not null;uniqueIndex:idx_product_category"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProductCategoryModel) TableName() string { return "product_categories" }

// The (user_id, product_id) unique index is the source of truth for
// duplicate wish-list adds; application pre-checks only improve the
// error message.
type WishListEntryModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_user_product"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WishListEntryModel) TableName() string { return "wish_list_entries" }

type SentListModel struct {
	ID         uint           `gorm:"primaryKey"`
	UserID     uint           `gorm:"not null;index"`
	ProductIDs datatypes.JSON `gorm:"not null"`
	SentAt     time.Time      `gorm:"not null;index"`
}

func (SentListModel) TableName() string { return "sent_lists" }

type BookingModel struct {
	ID          uint   `gorm:"primaryKey"`
	Email       string `gorm:"not null;index"`
	Phone       string `gorm:"not null"`
	CompanyName string
	SenderName  string `gorm:"not null"`
	Details     string `gorm:"not null"`
	Role        string
	Status      string
	CreatedAt   time.Time `gorm:"index"`
}

func (BookingModel) TableName() string { return "bookings" }

type UnregisteredLeadModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Email       string `gorm:"not null;index"`
	Phone       string
	CompanyName string
	Role        string `gorm:"not null"`
	Message     string `gorm:"not null"`
	MessageType string `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
}

func (UnregisteredLeadModel) TableName() string { return "unregistered_leads" }
