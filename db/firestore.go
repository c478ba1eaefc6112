package db

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tfboppong-code/joeythebrand/models"
)

var (
	ErrNotFound = errors.New("db: document not found")
	ErrConflict = errors.New("db: document already exists")
)

// ProductRepository reads and writes product documents. Reads return the
// raw document data so the catalog layer applies its normalization in one
// place.
type ProductRepository struct {
	Client *firestore.Client
}

func NewProductRepository(client *firestore.Client) *ProductRepository {
	return &ProductRepository{Client: client}
}

func (r *ProductRepository) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *ProductRepository) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return snap.Data(), nil
}

func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}
	_, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create writes a new product document. An empty ID gets a Firestore
// auto-ID; a taken ID is a conflict.
func (r *ProductRepository) Create(ctx context.Context, p models.Product) (string, error) {
	id := strings.TrimSpace(p.ID)
	var docRef *firestore.DocumentRef
	if id == "" {
		docRef = r.col().NewDoc()
	} else {
		docRef = r.col().Doc(id)
	}

	if _, err := docRef.Create(ctx, productToDoc(p)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", ErrConflict
		}
		return "", err
	}
	return docRef.ID, nil
}

// Save is a full upsert of an existing product document.
func (r *ProductRepository) Save(ctx context.Context, p models.Product) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return ErrNotFound
	}
	_, err := r.col().Doc(id).Set(ctx, productToDoc(p))
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if _, err := r.col().Doc(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// List returns every product document's raw data keyed by document ID.
func (r *ProductRepository) List(ctx context.Context) (map[string]map[string]interface{}, error) {
	out := map[string]map[string]interface{}{}
	iter := r.col().Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out[snap.Ref.ID] = snap.Data()
	}
	return out, nil
}

func productToDoc(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":        p.Name,
		"price":       p.Price,
		"images":      p.Images,
		"gender":      string(p.Gender),
		"category":    p.Category,
		"description": p.Description,
	}
}

// OrderRepository persists confirmed orders keyed by payment reference, so
// a replayed confirmation cannot write a second record.
type OrderRepository struct {
	Client *firestore.Client
}

func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{Client: client}
}

func (r *OrderRepository) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepository) Create(ctx context.Context, order models.Order) error {
	ref := strings.TrimSpace(order.Reference)
	if ref == "" {
		return errors.New("db: order reference is empty")
	}

	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, map[string]interface{}{
			"product_id": line.ProductID,
			"name":       line.Name,
			"unit_price": line.UnitPrice,
			"image":      line.Image,
			"quantity":   line.Quantity,
		})
	}

	_, err := r.col().Doc(ref).Create(ctx, map[string]interface{}{
		"reference":  order.Reference,
		"items":      items,
		"item_count": order.ItemCount,
		"amount":     order.Amount,
		"currency":   order.Currency,
		"email":      order.Email,
		"name":       order.Name,
		"phone":      order.Phone,
		"created_at": order.CreatedAt,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, reference string) (models.Order, error) {
	snap, err := r.col().Doc(strings.TrimSpace(reference)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	var order models.Order
	if err := snap.DataTo(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UserRepository stores the role attached to each authenticated account.
type UserRepository struct {
	Client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{Client: client}
}

func (r *UserRepository) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// Role looks up the account's role document. A missing document or a value
// that is not a recognized role resolves to customer.
func (r *UserRepository) Role(ctx context.Context, uid string) (models.Role, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.RoleCustomer, nil
		}
		return "", err
	}
	raw, _ := snap.Data()["role"].(string)
	return models.ParseRole(raw), nil
}

// SetRole upserts the account's role document.
func (r *UserRepository) SetRole(ctx context.Context, uid string, role models.Role) error {
	_, err := r.col().Doc(uid).Set(ctx, map[string]interface{}{
		"role": string(role),
	}, firestore.MergeAll)
	return err
}
