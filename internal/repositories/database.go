package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdsweden/storefront-backend/internal/config"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by the conditional updates below. Services map
// them onto the API error taxonomy.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrVoucherExhausted  = errors.New("voucher exhausted")
	ErrOrderIDTaken      = errors.New("order id already taken")
)

type Repositories struct {
	DB *sql.DB

	User         UserRepository
	Product      ProductRepository
	Cart         CartRepository
	Voucher      VoucherRepository
	DeliverySlot DeliverySlotRepository
	Address      AddressRepository
	Order        OrderRepository
	Payment      PaymentRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:           db,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Cart:         NewCartRepo(db),
		Voucher:      NewVoucherRepo(db),
		DeliverySlot: NewDeliverySlotRepo(db),
		Address:      NewAddressRepo(db),
		Order:        NewOrderRepo(db),
		Payment:      NewPaymentRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
