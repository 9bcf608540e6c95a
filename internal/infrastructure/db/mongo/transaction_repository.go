package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

const collectionTransactions = "transactions"

type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

type mongoLineItem struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Qty       int                `bson:"qty"`
}

type mongoTransaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BuyerID   primitive.ObjectID `bson:"buyer_id"`
	Items     []mongoLineItem    `bson:"items"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	buyerID, err := primitive.ObjectIDFromHex(t.BuyerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := mongoTransaction{
		BuyerID:   buyerID,
		Items:     make([]mongoLineItem, 0, len(t.Items)),
		CreatedAt: t.CreatedAt,
	}
	for _, item := range t.Items {
		pid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, domain.ErrProductNotFound
		}
		doc.Items = append(doc.Items, mongoLineItem{ProductID: pid, Qty: item.Qty})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTransaction
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}

	t := &domain.Transaction{
		ID:        mt.ID.Hex(),
		BuyerID:   mt.BuyerID.Hex(),
		Items:     make([]domain.LineItem, 0, len(mt.Items)),
		CreatedAt: mt.CreatedAt,
	}
	for _, item := range mt.Items {
		t.Items = append(t.Items, domain.LineItem{ProductID: item.ProductID.Hex(), Qty: item.Qty})
	}
	return t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTransactionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// EnsureIndexes creates the buyer lookup index on the transactions collection.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "buyer_id", Value: 1}},
	})
	return err
}
