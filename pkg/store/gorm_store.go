package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"printerstore/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and applies the versioned SQL
// migrations before returning. The service must not accept traffic until
// this has succeeded.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStoreWithDB wraps an already-open connection and auto-migrates
// the schema. Used by tests and sqlite development runs, where the
// versioned postgres migrations do not apply.
func NewGormStoreWithDB(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&UserModel{},
		&ProductModel{},
		&ProductImageModel{},
		&ProductCategoryModel{},
		&WishListEntryModel{},
		&SentListModel{},
		&BookingModel{},
		&UnregisteredLeadModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// users

// CreateUser inserts a user. Duplicate username or email surfaces as
// ErrConflict via the unique constraints, not a pre-check.
func (s *GormStore) CreateUser(user domain.User) (domain.User, error) {
	model := userToModel(user)
	if err := s.db.Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

func (s *GormStore) GetUserByID(id uint) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByUsernameOrEmail resolves a login identifier, which may be
// either the username or the email address.
func (s *GormStore) GetUserByUsernameOrEmail(identifier string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("username = ? OR email = ?", identifier, identifier).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

func (s *GormStore) HasUsername(username string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListCustomers returns dealer and end-user accounts, newest first.
// The seeded admin is not a customer.
func (s *GormStore) ListCustomers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Where("role IN ?", []string{string(domain.RoleDealer), string(domain.RoleEndUser)}).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, userFromModel(m))
	}
	return users, nil
}

// DeleteCustomer removes the account together with its wish-list entries
// and sent lists.
func (s *GormStore) DeleteCustomer(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&WishListEntryModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&SentListModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&UserModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// catalog

// ListProducts returns filtered products, newest first, each enriched
// with its ordered images and category tags via two batched queries.
func (s *GormStore) ListProducts(filter ProductFilter) ([]domain.Product, error) {
	tx := s.db.Model(&ProductModel{})
	if filter.Category != "" {
		tx = tx.Distinct("products.*").
			Joins("JOIN product_categories ON product_categories.product_id = products.id").
			Where("product_categories.category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.brand) LIKE ? OR LOWER(products.series) LIKE ? OR LOWER(products.model) LIKE ? OR LOWER(products.type) LIKE ?",
			like, like, like, like, like,
		)
	}
	var models []ProductModel
	if err := tx.Order("products.created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return s.enrichProducts(models)
}

func (s *GormStore) GetProduct(id uint) (domain.Product, bool, error) {
	var model ProductModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, err
	}
	products, err := s.enrichProducts([]ProductModel{model})
	if err != nil {
		return domain.Product{}, false, err
	}
	return products[0], true, nil
}

// CreateProduct inserts the product row, its additional images and its
// category tags in one transaction; any failure rolls back all of it.
func (s *GormStore) CreateProduct(p NewProduct) (domain.Product, error) {
	model := ProductModel{
		Name:         p.Name,
		Brand:        p.Brand,
		Series:       p.Series,
		Model:        p.Model,
		SerialNumber: optional(p.SerialNumber),
		Description:  p.Description,
		Image:        p.Image,
		DealerPrice:  p.DealerPrice,
		EndUserPrice: p.EndUserPrice,
		Warranty:     p.Warranty,
		Type:         p.Type,
		CreatedAt:    time.Now().UTC(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		for i, path := range p.ExtraImages {
			img := ProductImageModel{
				ProductID:    model.ID,
				ImagePath:    path,
				DisplayOrder: i + 1,
				CreatedAt:    time.Now().UTC(),
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return insertCategories(tx, model.ID, p.Categories)
	})
	if err != nil {
		return domain.Product{}, err
	}
	product, _, err := s.GetProduct(model.ID)
	return product, err
}

// UpdateProduct applies a full update. Categories are replaced wholesale;
// image handling follows the ReplaceImages flag. The primary image never
// changes unless ReplaceImages is set and new images were uploaded.
func (s *GormStore) UpdateProduct(id uint, upd ProductUpdate) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var current ProductModel
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		updates := map[string]any{
			"name":           upd.Name,
			"brand":          upd.Brand,
			"series":         upd.Series,
			"model":          upd.Model,
			"serial_number":  optional(upd.SerialNumber),
			"description":    upd.Description,
			"dealer_price":   upd.DealerPrice,
			"end_user_price": upd.EndUserPrice,
			"warranty":       upd.Warranty,
			"type":           upd.Type,
		}
		if err := tx.Model(&ProductModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}

		if upd.ReplaceImages && len(upd.NewImages) > 0 {
			if err := tx.Model(&ProductModel{}).Where("id = ?", id).
				Update("image", upd.NewImages[0]).Error; err != nil {
				return err
			}
			if err := tx.Delete(&ProductImageModel{}, "product_id = ?", id).Error; err != nil {
				return err
			}
			for i, path := range upd.NewImages[1:] {
				img := ProductImageModel{
					ProductID:    id,
					ImagePath:    path,
					DisplayOrder: i + 1,
					CreatedAt:    time.Now().UTC(),
				}
				if err := tx.Create(&img).Error; err != nil {
					return err
				}
			}
		} else if !upd.ReplaceImages && len(upd.NewImages) > 0 {
			var maxOrder int
			row := tx.Model(&ProductImageModel{}).
				Where("product_id = ?", id).
				Select("COALESCE(MAX(display_order), 0)")
			if err := row.Scan(&maxOrder).Error; err != nil {
				return err
			}
			for i, path := range upd.NewImages {
				img := ProductImageModel{
					ProductID:    id,
					ImagePath:    path,
					DisplayOrder: maxOrder + 1 + i,
					CreatedAt:    time.Now().UTC(),
				}
				if err := tx.Create(&img).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Delete(&ProductCategoryModel{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		return insertCategories(tx, id, upd.Categories)
	})
}

// DeleteProduct cascades removal of wish-list entries and image rows, then
// deletes the product. It returns the stored image references so the
// caller can remove the underlying files best-effort. Sent-list snapshots
// are left untouched and may keep the now-stale id.
func (s *GormStore) DeleteProduct(id uint) ([]string, error) {
	var paths []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current ProductModel
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var images []ProductImageModel
		if err := tx.Where("product_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		if current.Image != "" {
			paths = append(paths, current.Image)
		}
		for _, img := range images {
			paths = append(paths, img.ImagePath)
		}
		if err := tx.Delete(&WishListEntryModel{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ProductImageModel{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ProductCategoryModel{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ProductModel{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *GormStore) DeleteProductImage(productID, imageID uint) error {
	res := s.db.Delete(&ProductImageModel{}, "id = ? AND product_id = ?", imageID, productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPrimaryImage repoints the denormalized primary image reference
// without moving any image rows.
func (s *GormStore) SetPrimaryImage(productID uint, imagePath string) error {
	res := s.db.Model(&ProductModel{}).Where("id = ?", productID).Update("image", imagePath)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListCategories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&ProductCategoryModel{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// wish lists

// AddWishListEntry inserts a (user, product) pair. The pre-check gives a
// friendly duplicate error; the unique index is what actually guarantees
// exactly one insert wins under concurrent adds.
func (s *GormStore) AddWishListEntry(userID, productID uint) error {
	var count int64
	if err := s.db.Model(&WishListEntryModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	entry := WishListEntryModel{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *GormStore) RemoveWishListEntry(userID, productID uint) error {
	res := s.db.Delete(&WishListEntryModel{}, "user_id = ? AND product_id = ?", userID, productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListWishListProducts(userID uint) ([]domain.Product, error) {
	var models []ProductModel
	if err := s.db.Model(&ProductModel{}).
		Select("products.*").
		Joins("JOIN wish_list_entries ON wish_list_entries.product_id = products.id").
		Where("wish_list_entries.user_id = ?", userID).
		Order("wish_list_entries.created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return s.enrichProducts(models)
}

// CreateSentList snapshots the caller's current wish list into an
// immutable sent-list row. The wish list itself is left intact.
func (s *GormStore) CreateSentList(userID uint) (domain.SentList, []domain.Product, error) {
	products, err := s.ListWishListProducts(userID)
	if err != nil {
		return domain.SentList{}, nil, err
	}
	if len(products) == 0 {
		return domain.SentList{}, nil, ErrListEmpty
	}
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return domain.SentList{}, nil, err
	}
	model := SentListModel{
		UserID:     userID,
		ProductIDs: datatypes.JSON(raw),
		SentAt:     time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.SentList{}, nil, err
	}
	return domain.SentList{
		ID:         model.ID,
		UserID:     userID,
		ProductIDs: ids,
		SentAt:     model.SentAt,
	}, products, nil
}

// ListSentLists returns all snapshots newest first, joined with the
// sender account and with product names resolved at read time. Ids of
// products deleted since the snapshot keep their place in productIds but
// get no product detail.
func (s *GormStore) ListSentLists() ([]domain.SentList, error) {
	var models []SentListModel
	if err := s.db.Order("sent_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return []domain.SentList{}, nil
	}

	userIDs := make([]uint, 0, len(models))
	productIDSet := make(map[uint]struct{})
	idsByList := make(map[uint][]uint, len(models))
	for _, m := range models {
		userIDs = append(userIDs, m.UserID)
		var ids []uint
		if err := json.Unmarshal(m.ProductIDs, &ids); err != nil {
			return nil, fmt.Errorf("decode sent list %d: %w", m.ID, err)
		}
		idsByList[m.ID] = ids
		for _, id := range ids {
			productIDSet[id] = struct{}{}
		}
	}

	var users []UserModel
	if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	usersByID := make(map[uint]UserModel, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	productIDs := make([]uint, 0, len(productIDSet))
	for id := range productIDSet {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })
	var productModels []ProductModel
	if len(productIDs) > 0 {
		if err := s.db.Where("id IN ?", productIDs).Find(&productModels).Error; err != nil {
			return nil, err
		}
	}
	productsByID := make(map[uint]ProductModel, len(productModels))
	for _, p := range productModels {
		productsByID[p.ID] = p
	}

	lists := make([]domain.SentList, 0, len(models))
	for _, m := range models {
		list := domain.SentList{
			ID:         m.ID,
			UserID:     m.UserID,
			ProductIDs: idsByList[m.ID],
			Products:   []domain.SentListProduct{},
			SentAt:     m.SentAt,
		}
		if u, ok := usersByID[m.UserID]; ok {
			list.Username = u.Username
			list.Email = u.Email
		}
		for _, id := range idsByList[m.ID] {
			p, ok := productsByID[id]
			if !ok {
				continue
			}
			list.Products = append(list.Products, domain.SentListProduct{
				ID:     p.ID,
				Name:   p.Name,
				Brand:  p.Brand,
				Series: p.Series,
				Model:  p.Model,
			})
		}
		lists = append(lists, list)
	}
	return lists, nil
}

func (s *GormStore) DeleteSentList(id uint) error {
	res := s.db.Delete(&SentListModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// contact / leads

func (s *GormStore) CreateBooking(b domain.Booking) (domain.Booking, error) {
	model := BookingModel{
		Email:       b.Email,
		Phone:       b.Phone,
		CompanyName: b.CompanyName,
		SenderName:  b.SenderName,
		Details:     b.Details,
		Role:        string(b.Role),
		Status:      string(b.Status),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Booking{}, err
	}
	return bookingFromModel(model), nil
}

// ListBookings returns bookings newest first. Display role and status
// prefer the frozen booking-time fields and fall back to the current
// account matched by email, mirroring the read-time join of the admin
// dashboard.
func (s *GormStore) ListBookings() ([]domain.Booking, error) {
	var models []BookingModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return []domain.Booking{}, nil
	}
	emails := make([]string, 0, len(models))
	for _, m := range models {
		emails = append(emails, m.Email)
	}
	var users []UserModel
	if err := s.db.Where("email IN ?", emails).Find(&users).Error; err != nil {
		return nil, err
	}
	usersByEmail := make(map[string]UserModel, len(users))
	for _, u := range users {
		usersByEmail[u.Email] = u
	}
	bookings := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		b := bookingFromModel(m)
		if b.Role == "" {
			if u, ok := usersByEmail[m.Email]; ok {
				b.Role = domain.Role(u.Role)
			} else {
				// legacy rows may predate the frozen role field
				b.Role = domain.RoleUnknown
			}
		}
		if b.Status == "" {
			if _, ok := usersByEmail[m.Email]; ok {
				b.Status = domain.StatusRegistered
			} else {
				b.Status = domain.StatusUnregistered
			}
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (s *GormStore) DeleteBooking(id uint) error {
	res := s.db.Delete(&BookingModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateUnregisteredLead(l domain.UnregisteredLead) (domain.UnregisteredLead, error) {
	model := UnregisteredLeadModel{
		Name:        l.Name,
		Email:       l.Email,
		Phone:       l.Phone,
		CompanyName: l.CompanyName,
		Role:        string(l.Role),
		Message:     l.Message,
		MessageType: string(l.MessageType),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.UnregisteredLead{}, err
	}
	return leadFromModel(model), nil
}

func (s *GormStore) ListUnregisteredLeads() ([]domain.UnregisteredLead, error) {
	var models []UnregisteredLeadModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	leads := make([]domain.UnregisteredLead, 0, len(models))
	for _, m := range models {
		leads = append(leads, leadFromModel(m))
	}
	return leads, nil
}

func (s *GormStore) DeleteUnregisteredLead(id uint) error {
	res := s.db.Delete(&UnregisteredLeadModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// enrichProducts attaches the ordered image list and category tag set to
// each product using one batched query per relation.
func (s *GormStore) enrichProducts(models []ProductModel) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(models))
	if len(models) == 0 {
		return products, nil
	}
	ids := make([]uint, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}

	var images []ProductImageModel
	if err := s.db.Where("product_id IN ?", ids).
		Order("product_id, display_order").
		Find(&images).Error; err != nil {
		return nil, err
	}
	imagesByProduct := make(map[uint][]domain.ProductImage)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], domain.ProductImage{
			ID:           img.ID,
			ProductID:    img.ProductID,
			ImagePath:    img.ImagePath,
			DisplayOrder: img.DisplayOrder,
			CreatedAt:    img.CreatedAt,
		})
	}

	var categories []ProductCategoryModel
	if err := s.db.Where("product_id IN ?", ids).
		Order("category").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	categoriesByProduct := make(map[uint][]string)
	for _, c := range categories {
		categoriesByProduct[c.ProductID] = append(categoriesByProduct[c.ProductID], c.Category)
	}

	for _, m := range models {
		p := productFromModel(m)
		if imgs, ok := imagesByProduct[m.ID]; ok {
			p.Images = imgs
		}
		if cats, ok := categoriesByProduct[m.ID]; ok {
			p.Categories = cats
		}
		products = append(products, p)
	}
	return products, nil
}

// insertCategories writes the tag set, dropping blanks and duplicates so
// a product never carries the same tag twice.
func insertCategories(tx *gorm.DB, productID uint, categories []string) error {
	seen := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		row := ProductCategoryModel{
			ProductID: productID,
			Category:  category,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func productFromModel(m ProductModel) domain.Product {
	serial := ""
	if m.SerialNumber != nil {
		serial = *m.SerialNumber
	}
	return domain.Product{
		ID:           m.ID,
		Name:         m.Name,
		Brand:        m.Brand,
		Series:       m.Series,
		Model:        m.Model,
		SerialNumber: serial,
		Description:  m.Description,
		Image:        m.Image,
		DealerPrice:  m.DealerPrice,
		EndUserPrice: m.EndUserPrice,
		Warranty:     m.Warranty,
		Type:         m.Type,
		Images:       []domain.ProductImage{},
		Categories:   []string{},
		CreatedAt:    m.CreatedAt,
	}
}

func bookingFromModel(m BookingModel) domain.Booking {
	return domain.Booking{
		ID:          m.ID,
		Email:       m.Email,
		Phone:       m.Phone,
		CompanyName: m.CompanyName,
		SenderName:  m.SenderName,
		Details:     m.Details,
		Role:        domain.Role(m.Role),
		Status:      domain.RegistrationStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func leadFromModel(m UnregisteredLeadModel) domain.UnregisteredLead {
	return domain.UnregisteredLead{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		CompanyName: m.CompanyName,
		Role:        domain.Role(m.Role),
		Message:     m.Message,
		MessageType: domain.LeadType(m.MessageType),
		CreatedAt:   m.CreatedAt,
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
