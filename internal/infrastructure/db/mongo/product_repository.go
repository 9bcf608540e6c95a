package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type mongoProduct struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Category     string               `bson:"category"`
	Model        string               `bson:"model"`
	Brand        string               `bson:"brand"`
	Cost         float64              `bson:"cost"`
	Price        float64              `bson:"price"`
	Discount     float64              `bson:"discount"`
	Description  string               `bson:"description"`
	Color        string               `bson:"color"`
	Condition    string               `bson:"condition"`
	ImageURLs    []string             `bson:"image_urls"`
	Stock        int                  `bson:"stock"`
	Transactions []primitive.ObjectID `bson:"transactions,omitempty"`
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProduct{
		Category:    p.Category,
		Model:       p.Model,
		Brand:       p.Brand,
		Cost:        p.Cost,
		Price:       p.Price,
		Discount:    p.Discount,
		Description: p.Description,
		Color:       p.Color,
		Condition:   string(p.Condition),
		ImageURLs:   p.ImageURLs,
		Stock:       p.Stock,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return fromMongoProduct(&mp), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, fromMongoProduct(&docs[i]))
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"category":    upd.Category,
		"model":       upd.Model,
		"brand":       upd.Brand,
		"cost":        upd.Cost,
		"price":       upd.Price,
		"discount":    upd.Discount,
		"description": upd.Description,
		"color":       upd.Color,
		"condition":   string(upd.Condition),
		"image_urls":  upd.ImageURLs,
		"stock":       upd.Stock,
	}}

	var mp mongoProduct
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return fromMongoProduct(&mp), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ReserveStock decrements stock by qty and records the transaction reference
// in a single conditional update that only matches while stock >= qty. The
// filter makes concurrent oversell impossible: of two competing reservations
// the second no longer matches and fails with ErrInsufficientStock.
func (r *ProductRepository) ReserveStock(ctx context.Context, productID string, qty int, transactionID string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	tid, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "stock": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc":  bson.M{"stock": -qty},
		"$push": bson.M{"transactions": tid},
	}

	var mp mongoProduct
	err = r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mp)
	if err == nil {
		return fromMongoProduct(&mp), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("reserve stock: %w", err)
	}

	// The conditional update missed: distinguish a missing product from an
	// insufficient stock count.
	n, countErr := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if countErr != nil {
		return nil, fmt.Errorf("reserve stock: %w", countErr)
	}
	if n == 0 {
		return nil, domain.ErrProductNotFound
	}
	return nil, domain.ErrInsufficientStock
}

// ReleaseStock undoes a reservation: increments stock back and pulls the
// transaction reference.
func (r *ProductRepository) ReleaseStock(ctx context.Context, productID string, qty int, transactionID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.ErrProductNotFound
	}
	tid, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return domain.ErrTransactionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc":  bson.M{"stock": qty},
		"$pull": bson.M{"transactions": tid},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// EnsureIndexes creates supporting indexes on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}, {Key: "model", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func fromMongoProduct(mp *mongoProduct) *domain.Product {
	p := &domain.Product{
		ID:          mp.ID.Hex(),
		Category:    mp.Category,
		Model:       mp.Model,
		Brand:       mp.Brand,
		Cost:        mp.Cost,
		Price:       mp.Price,
		Discount:    mp.Discount,
		Description: mp.Description,
		Color:       mp.Color,
		Condition:   domain.Condition(mp.Condition),
		ImageURLs:   mp.ImageURLs,
		Stock:       mp.Stock,
	}
	for _, t := range mp.Transactions {
		p.Transactions = append(p.Transactions, t.Hex())
	}
	return p
}
