package store

import (
	"errors"

	"printerstore/pkg/domain"
)

// Sentinel errors surfaced by store implementations. The layers above map
// these onto the HTTP error taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("unique constraint violation")
	ErrListEmpty = errors.New("wish list is empty")
)

// ProductFilter narrows the catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	// Category matches products tagged with this category via the join
	// table.
	Category string
	// Search is a case-insensitive substring matched against name, brand,
	// series, model and type, OR-combined.
	Search string
}

// NewProduct carries everything inserted atomically on product creation.
type NewProduct struct {
	Name         string
	Brand        string
	Series       string
	Model        string
	SerialNumber string
	Description  string
	Image        string
	DealerPrice  *float64
	EndUserPrice *float64
	Warranty     string
	Type         string
	// ExtraImages become ordered product_images rows starting at
	// display order 1; the primary image is Image above.
	ExtraImages []string
	Categories  []string
}

// ProductUpdate carries a full product update. Categories are always
// replaced wholesale. The primary image is never touched unless
// ReplaceImages is set and NewImages is non-empty.
type ProductUpdate struct {
	Name         string
	Brand        string
	Series       string
	Model        string
	SerialNumber string
	Description  string
	DealerPrice  *float64
	EndUserPrice *float64
	Warranty     string
	Type         string
	Categories   []string
	// NewImages are freshly stored image references. With ReplaceImages
	// false they are appended after the current highest display order;
	// with ReplaceImages true the first becomes the new primary image,
	// the rest replace the additional-image set.
	NewImages     []string
	ReplaceImages bool
}

// Store defines persistence operations for the catalog, identity,
// wish-list and contact services.
type Store interface {
	// users
	CreateUser(user domain.User) (domain.User, error)
	GetUserByID(id uint) (domain.User, bool, error)
	GetUserByUsernameOrEmail(identifier string) (domain.User, bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	HasUsername(username string) (bool, error)
	ListCustomers() ([]domain.User, error)
	DeleteCustomer(id uint) error

	// catalog
	ListProducts(filter ProductFilter) ([]domain.Product, error)
	GetProduct(id uint) (domain.Product, bool, error)
	CreateProduct(p NewProduct) (domain.Product, error)
	UpdateProduct(id uint, upd ProductUpdate) error
	DeleteProduct(id uint) ([]string, error)
	DeleteProductImage(productID, imageID uint) error
	SetPrimaryImage(productID uint, imagePath string) error
	ListCategories() ([]string, error)

	// wish lists
	AddWishListEntry(userID, productID uint) error
	RemoveWishListEntry(userID, productID uint) error
	ListWishListProducts(userID uint) ([]domain.Product, error)
	CreateSentList(userID uint) (domain.SentList, []domain.Product, error)
	ListSentLists() ([]domain.SentList, error)
	DeleteSentList(id uint) error

	// contact / leads
	CreateBooking(b domain.Booking) (domain.Booking, error)
	ListBookings() ([]domain.Booking, error)
	DeleteBooking(id uint) error
	CreateUnregisteredLead(l domain.UnregisteredLead) (domain.UnregisteredLead, error)
	ListUnregisteredLeads() ([]domain.UnregisteredLead, error)
	DeleteUnregisteredLead(id uint) error
}
