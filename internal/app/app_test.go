package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"printerstore/internal/mail"
	"printerstore/internal/usertoken"
	"printerstore/pkg/domain"
	"printerstore/pkg/store"
)

// fakeImages keeps stored images in memory and can be told to fail.
type fakeImages struct {
	saved    map[string]string
	failNext bool
}

func newFakeImages() *fakeImages {
	return &fakeImages{saved: map[string]string{}}
}

func (f *fakeImages) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", fmt.Errorf("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := "/uploads/" + name
	f.saved[ref] = string(data)
	return ref, nil
}

func (f *fakeImages) Remove(_ context.Context, ref string) error {
	delete(f.saved, ref)
	return nil
}

// recordMailer captures outgoing messages.
type recordMailer struct {
	sent []mail.Message
	fail bool
}

func (m *recordMailer) Send(_ context.Context, msg mail.Message) error {
	if m.fail {
		return fmt.Errorf("smtp unreachable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestApp(t *testing.T) (*App, *fakeImages, *recordMailer) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dataStore, err := store.NewGormStoreWithDB(db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	tokens, err := usertoken.NewAuthority(usertoken.Config{
		Secret: "0123456789abcdef0123456789abcdef",
	})
	if err != nil {
		t.Fatalf("new authority: %v", err)
	}
	images := newFakeImages()
	mailer := &recordMailer{}
	a, err := New(Config{
		Store:      dataStore,
		Images:     images,
		Mailer:     mailer,
		Tokens:     tokens,
		SalesEmail: "sales@example.com",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, images, mailer
}

func registerDealer(t *testing.T, a *App, username string) domain.User {
	t.Helper()
	user, _, err := a.Register(username, username+"@example.com", "long enough pw", "dealer")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func upload(name, content string) Upload {
	return Upload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	a, _, _ := newTestApp(t)

	user, token, err := a.Register("alice", "Alice@Example.com", "long enough pw", "Dealer")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleDealer {
		t.Fatalf("role = %q", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if token == "" {
		t.Fatalf("no token issued")
	}

	// Login by username and by email.
	for _, identifier := range []string{"alice", "alice@example.com"} {
		got, loginToken, err := a.Login(identifier, "long enough pw")
		if err != nil {
			t.Fatalf("login %q: %v", identifier, err)
		}
		if got.ID != user.ID || loginToken == "" {
			t.Fatalf("login %q: user=%+v token=%q", identifier, got, loginToken)
		}
	}

	// Token resolves back to the authoritative user row.
	resolved, ok := a.UserFromToken(token)
	if !ok || resolved.ID != user.ID {
		t.Fatalf("resolve token: ok=%v user=%+v", ok, resolved)
	}
}

func TestRegisterValidation(t *testing.T) {
	a, _, _ := newTestApp(t)

	if _, _, err := a.Register("", "x@example.com", "long enough pw", "dealer"); !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("missing username: %v", err)
	}
	if _, _, err := a.Register("mallory", "m@example.com", "long enough pw", "admin"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("admin self-registration: %v", err)
	}
	if _, _, err := a.Register("mallory", "m@example.com", "long enough pw", "wizard"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("unknown role: %v", err)
	}

	registerDealer(t, a, "bob")
	if _, _, err := a.Register("bob", "other@example.com", "long enough pw", "dealer"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("duplicate username: %v", err)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	a, _, _ := newTestApp(t)
	registerDealer(t, a, "carol")

	_, _, missErr := a.Login("nobody", "long enough pw")
	_, _, wrongErr := a.Login("carol", "wrong password!")
	if !errors.Is(missErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("miss=%v wrong=%v", missErr, wrongErr)
	}
	if missErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", missErr, wrongErr)
	}
}

func TestSeedAdminIdempotent(t *testing.T) {
	a, _, _ := newTestApp(t)

	if err := a.SeedAdmin("admin", "admin@example.com", "admin password"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := a.SeedAdmin("admin", "admin@example.com", "different password"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	user, _, err := a.Login("admin", "admin password")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", user.Role)
	}
	// Customers never include the seeded admin.
	customers, err := a.ListCustomers()
	if err != nil || len(customers) != 0 {
		t.Fatalf("customers = %v err=%v", customers, err)
	}
}

func TestCreateProductStoresImages(t *testing.T) {
	a, images, _ := newTestApp(t)

	product, err := a.CreateProduct(context.Background(), ProductInput{
		Brand:      "HP",
		Series:     "LaserJet",
		Model:      "M15w",
		Categories: []string{"laser"},
	}, []Upload{upload("front.jpg", "front"), upload("side.jpg", "side")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Name != "LaserJet" {
		t.Fatalf("name fallback = %q", product.Name)
	}
	if product.Image == "" || len(product.Images) != 1 {
		t.Fatalf("images: primary=%q extra=%d", product.Image, len(product.Images))
	}
	if len(images.saved) != 2 {
		t.Fatalf("stored files = %d", len(images.saved))
	}
	// Stored names are uuid-based, not the client names.
	for ref := range images.saved {
		if strings.Contains(ref, "front") || strings.Contains(ref, "side") {
			t.Fatalf("client filename leaked into ref %q", ref)
		}
	}
}

func TestCreateProductRequiresBrand(t *testing.T) {
	a, _, _ := newTestApp(t)
	if _, err := a.CreateProduct(context.Background(), ProductInput{}, nil); !errors.Is(err, ErrBrandRequired) {
		t.Fatalf("got %v, want ErrBrandRequired", err)
	}
}

func TestCreateProductCleansUpOnConflict(t *testing.T) {
	a, images, _ := newTestApp(t)

	if _, err := a.CreateProduct(context.Background(), ProductInput{Brand: "HP", SerialNumber: "SN-9"}, nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := a.CreateProduct(context.Background(),
		ProductInput{Brand: "HP", SerialNumber: "SN-9"},
		[]Upload{upload("dup.jpg", "x")})
	if !errors.Is(err, ErrSerialNumberTaken) {
		t.Fatalf("got %v, want ErrSerialNumberTaken", err)
	}
	if len(images.saved) != 0 {
		t.Fatalf("orphan files left: %v", images.saved)
	}
}

func TestDeleteProductRemovesFiles(t *testing.T) {
	a, images, _ := newTestApp(t)

	product, err := a.CreateProduct(context.Background(),
		ProductInput{Brand: "HP"},
		[]Upload{upload("a.jpg", "a"), upload("b.jpg", "b")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := a.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(images.saved) != 0 {
		t.Fatalf("files left after delete: %v", images.saved)
	}
	if err := a.DeleteProduct(context.Background(), product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestWishListFlowAndSend(t *testing.T) {
	a, _, mailer := newTestApp(t)
	user := registerDealer(t, a, "dave")

	if _, err := a.SendList(context.Background(), user); !errors.Is(err, ErrListEmpty) {
		t.Fatalf("empty send: %v", err)
	}

	product, err := a.CreateProduct(context.Background(), ProductInput{Brand: "Epson", Model: "L3250"}, nil)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := a.AddToList(user.ID, product.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := a.AddToList(user.ID, product.ID); !errors.Is(err, ErrAlreadyInList) {
		t.Fatalf("duplicate add: %v", err)
	}
	if err := a.AddToList(user.ID, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product add: %v", err)
	}

	list, err := a.SendList(context.Background(), user)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(list.ProductIDs) != 1 {
		t.Fatalf("snapshot = %+v", list)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To[0] != "sales@example.com" {
		t.Fatalf("mail = %+v", mailer.sent)
	}
}

func TestSendListSurvivesMailFailure(t *testing.T) {
	a, _, mailer := newTestApp(t)
	user := registerDealer(t, a, "erin")
	product, err := a.CreateProduct(context.Background(), ProductInput{Brand: "HP"}, nil)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := a.AddToList(user.ID, product.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	mailer.fail = true
	if _, err := a.SendList(context.Background(), user); err != nil {
		t.Fatalf("send should succeed despite mail failure: %v", err)
	}
	lists, err := a.ListSentLists()
	if err != nil || len(lists) != 1 {
		t.Fatalf("lists = %v err=%v", lists, err)
	}
}

func TestSubmitBookingRegisteredFreezesRole(t *testing.T) {
	a, _, mailer := newTestApp(t)
	registerDealer(t, a, "frank")

	err := a.SubmitBooking(context.Background(), BookingRequest{
		Email:      "frank@example.com",
		Phone:      "555-0100",
		SenderName: "Frank",
		Details:    "demo please",
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	bookings, err := a.ListBookings()
	if err != nil || len(bookings) != 1 {
		t.Fatalf("bookings = %v err=%v", bookings, err)
	}
	if bookings[0].Role != domain.RoleDealer || bookings[0].Status != domain.StatusRegistered {
		t.Fatalf("frozen fields = %+v", bookings[0])
	}
	// Registered bookings never create lead rows.
	leads, err := a.ListUnregisteredLeads()
	if err != nil || len(leads) != 0 {
		t.Fatalf("leads = %v err=%v", leads, err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("mail count = %d", len(mailer.sent))
	}
}

func TestSubmitBookingUnregisteredCreatesLead(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.SubmitBooking(context.Background(), BookingRequest{
		Email:      "walkin@example.com",
		Phone:      "555-0101",
		SenderName: "Walk In",
		Details:    "quote",
	})
	if !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("missing role: %v", err)
	}

	err = a.SubmitBooking(context.Background(), BookingRequest{
		Email:      "walkin@example.com",
		Phone:      "555-0101",
		SenderName: "Walk In",
		Details:    "quote",
		Role:       "EndUser",
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	bookings, _ := a.ListBookings()
	if len(bookings) != 1 || bookings[0].Status != domain.StatusUnregistered {
		t.Fatalf("bookings = %+v", bookings)
	}
	leads, _ := a.ListUnregisteredLeads()
	if len(leads) != 1 || leads[0].MessageType != domain.LeadBooking || leads[0].Role != domain.RoleEndUser {
		t.Fatalf("leads = %+v", leads)
	}
}

func TestSubmitInquiryAsymmetry(t *testing.T) {
	a, _, mailer := newTestApp(t)
	registerDealer(t, a, "gina")

	// Registered: email only, no lead row.
	err := a.SubmitInquiry(context.Background(), InquiryRequest{
		Name:        "Gina",
		Email:       "gina@example.com",
		Topic:       "Toner",
		Description: "bulk pricing",
	})
	if err != nil {
		t.Fatalf("registered inquiry: %v", err)
	}
	leads, _ := a.ListUnregisteredLeads()
	if len(leads) != 0 {
		t.Fatalf("registered inquiry created lead: %+v", leads)
	}

	// Unregistered: lead row with type inquiry.
	err = a.SubmitInquiry(context.Background(), InquiryRequest{
		Name:        "Stranger",
		Email:       "stranger@example.com",
		Topic:       "Service",
		Description: "on-site maintenance",
		Role:        "enduser",
	})
	if err != nil {
		t.Fatalf("unregistered inquiry: %v", err)
	}
	leads, _ = a.ListUnregisteredLeads()
	if len(leads) != 1 || leads[0].MessageType != domain.LeadInquiry {
		t.Fatalf("leads = %+v", leads)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("mail count = %d", len(mailer.sent))
	}
}

func TestUpdateProductKeepExisting(t *testing.T) {
	a, _, _ := newTestApp(t)
	product, err := a.CreateProduct(context.Background(),
		ProductInput{Brand: "HP", Name: "M15"},
		[]Upload{upload("primary.jpg", "p"), upload("extra.jpg", "e")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	originalPrimary := product.Image

	err = a.UpdateProduct(context.Background(), product.ID,
		ProductInput{Brand: "HP", Name: "M15"},
		[]Upload{upload("appended.jpg", "a")}, true)
	if err != nil {
		t.Fatalf("update keep: %v", err)
	}
	got, err := a.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Image != originalPrimary || len(got.Images) != 2 {
		t.Fatalf("after append: primary=%q extra=%d", got.Image, len(got.Images))
	}

	err = a.UpdateProduct(context.Background(), product.ID,
		ProductInput{Brand: "HP", Name: "M15"},
		[]Upload{upload("new-primary.jpg", "n")}, false)
	if err != nil {
		t.Fatalf("update replace: %v", err)
	}
	got, err = a.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Image == originalPrimary || len(got.Images) != 0 {
		t.Fatalf("after replace: primary=%q extra=%d", got.Image, len(got.Images))
	}
}
