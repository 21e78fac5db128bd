package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/hatbazar/api/internal/domain"
	pfirestore "github.com/hatbazar/api/internal/platform/firestore"
	"github.com/hatbazar/api/internal/repositories"
)

const ordersCollection = "orders"

type orderCustomerDocument struct {
	Name          string `firestore:"name"`
	PhoneNumber   string `firestore:"phoneNumber"`
	Address       string `firestore:"address"`
	PaymentOption string `firestore:"paymentOption"`
	PaymentMethod string `firestore:"paymentMethod"`
	TransactionID string `firestore:"transactionId"`
	SenderNumber  string `firestore:"senderNumber"`
}

type orderItemDocument struct {
	ProductID string `firestore:"id"`
	Name      string `firestore:"name"`
	ImageURL  string `firestore:"imageUrl"`
	Price     int64  `firestore:"price"`
	Quantity  int    `firestore:"quantity"`
}

type orderDocument struct {
	OrderNumber  string                `firestore:"orderId"`
	UserID       string                `firestore:"userId"`
	CustomerInfo orderCustomerDocument `firestore:"customerInfo"`
	Items        []orderItemDocument   `firestore:"items"`
	Total        int64                 `firestore:"total"`
	Status       string                `firestore:"status"`
	CreatedAt    time.Time             `firestore:"createdAt"`
}

// OrderRepository persists order headers in Firestore.
type OrderRepository struct {
	provider *pfirestore.Provider
	orders   *pfirestore.BaseRepository[orderDocument]
}

// NewOrderRepository constructs a Firestore-backed order repository.
func NewOrderRepository(provider *pfirestore.Provider) (*OrderRepository, error) {
	if provider == nil {
		return nil, errors.New("order repository requires firestore provider")
	}
	return &OrderRepository{
		provider: provider,
		orders:   pfirestore.NewBaseRepository[orderDocument](provider, ordersCollection, nil),
	}, nil
}

// Insert stores a new order under its document ID.
func (r *OrderRepository) Insert(ctx context.Context, order domain.Order) error {
	if r == nil || r.provider == nil {
		return errors.New("order repository not initialised")
	}
	id := strings.TrimSpace(order.ID)
	if id == "" {
		return errors.New("order repository: order id is required")
	}
	return r.orders.Create(ctx, id, encodeOrder(order))
}

// FindByID loads a single order by its document ID.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (domain.Order, error) {
	id := strings.TrimSpace(orderID)
	if id == "" {
		return domain.Order{}, errors.New("order repository: order id is required")
	}
	doc, err := r.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return doc.Data.toDomain(doc.ID), nil
}

// FindByOrderNumber loads the order carrying the user-facing order number.
func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	number := strings.TrimSpace(orderNumber)
	if number == "" {
		return domain.Order{}, errors.New("order repository: order number is required")
	}

	docs, err := r.orders.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("orderId", "==", number).Limit(1)
	})
	if err != nil {
		return domain.Order{}, err
	}
	if len(docs) == 0 {
		return domain.Order{}, pfirestore.WrapError("orders.find_by_number",
			status.Errorf(codes.NotFound, "order %s not found", number))
	}
	return docs[0].Data.toDomain(docs[0].ID), nil
}

// FindLatestByPhone returns the newest order whose customer phone number matches exactly.
func (r *OrderRepository) FindLatestByPhone(ctx context.Context, phoneNumber string) (domain.Order, error) {
	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		return domain.Order{}, errors.New("order repository: phone number is required")
	}

	docs, err := r.orders.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("customerInfo.phoneNumber", "==", phone).
			OrderBy("createdAt", firestore.Desc).
			Limit(1)
	})
	if err != nil {
		return domain.Order{}, err
	}
	if len(docs) == 0 {
		return domain.Order{}, pfirestore.WrapError("orders.find_latest_by_phone",
			status.Errorf(codes.NotFound, "no order for phone number"))
	}
	return docs[0].Data.toDomain(docs[0].ID), nil
}

// ListByUser returns the user's orders ordered by creation time descending.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order repository: user id is required")
	}
	return r.list(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("userId", "==", uid).OrderBy("createdAt", firestore.Desc)
	})
}

// ListAll returns every order ordered by creation time descending.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, func(q firestore.Query) firestore.Query {
		return q.OrderBy("createdAt", firestore.Desc)
	})
}

// SetStatus updates only the status field of the order document.
func (r *OrderRepository) SetStatus(ctx context.Context, orderID string, orderStatus domain.OrderStatus) error {
	id := strings.TrimSpace(orderID)
	if id == "" {
		return errors.New("order repository: order id is required")
	}
	return r.orders.Update(ctx, id, []firestore.Update{
		{Path: "status", Value: string(orderStatus)},
	}, firestore.Exists)
}

func (r *OrderRepository) list(ctx context.Context, build pfirestore.QueryBuilder) ([]domain.Order, error) {
	if r == nil || r.provider == nil {
		return nil, errors.New("order repository not initialised")
	}
	coll, err := r.orders.CollectionRef(ctx)
	if err != nil {
		return nil, err
	}

	iter := build(coll.Query).Documents(ctx)
	defer iter.Stop()

	var orders []domain.Order
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("orders.list", err)
		}
		var doc orderDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
		}
		orders = append(orders, doc.toDomain(snap.Ref.ID))
	}
	return orders, nil
}

func encodeOrder(order domain.Order) orderDocument {
	items := make([]orderItemDocument, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return orderDocument{
		OrderNumber: strings.TrimSpace(order.OrderNumber),
		UserID:      strings.TrimSpace(order.UserID),
		CustomerInfo: orderCustomerDocument{
			Name:          strings.TrimSpace(order.CustomerInfo.Name),
			PhoneNumber:   strings.TrimSpace(order.CustomerInfo.PhoneNumber),
			Address:       strings.TrimSpace(order.CustomerInfo.Address),
			PaymentOption: string(order.CustomerInfo.PaymentOption),
			PaymentMethod: string(order.CustomerInfo.PaymentMethod),
			TransactionID: strings.TrimSpace(order.CustomerInfo.TransactionID),
			SenderNumber:  strings.TrimSpace(order.CustomerInfo.SenderNumber),
		},
		Items:     items,
		Total:     order.Total,
		Status:    string(order.Status),
		CreatedAt: createdAt.UTC(),
	}
}

func (d orderDocument) toDomain(id string) domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return domain.Order{
		ID:          id,
		OrderNumber: d.OrderNumber,
		UserID:      d.UserID,
		CustomerInfo: domain.CustomerInfo{
			Name:          d.CustomerInfo.Name,
			PhoneNumber:   d.CustomerInfo.PhoneNumber,
			Address:       d.CustomerInfo.Address,
			PaymentOption: domain.PaymentOption(d.CustomerInfo.PaymentOption),
			PaymentMethod: domain.PaymentMethod(d.CustomerInfo.PaymentMethod),
			TransactionID: d.CustomerInfo.TransactionID,
			SenderNumber:  d.CustomerInfo.SenderNumber,
		},
		Items:     items,
		Total:     d.Total,
		Status:    domain.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

// Ensure interface compliance.
var _ repositories.OrderRepository = (*OrderRepository)(nil)
