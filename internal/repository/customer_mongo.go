package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

type mongoCounter struct {
	Seq int64 `bson:"seq"`
}

type mongoCustomerRepository struct {
	customers *mongo.Collection
	counters  *mongo.Collection
}

// NewMongoCustomerRepository builds customer repository over mongo database db
func NewMongoCustomerRepository(client *mongo.Client, db string) CustomerRepository {
	database := client.Database(db)
	return &mongoCustomerRepository{
		customers: database.Collection(customersTable),
		counters:  database.Collection(countersCollection),
	}
}

func (r *mongoCustomerRepository) Init(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("customers_email_unique").SetUnique(true),
	}

	if _, err := r.customers.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("failed to create customers email index - %w", err)
	}
	return nil
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	if err := r.customers.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.customers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	c.ID = id
	if _, err := r.customers.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewDuplicateEmailErr(c.Email)
		}
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, id int64, patch model.CustomerPatch) (*model.Customer, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}

	if patch.Email != nil {
		set["email"] = *patch.Email
	}

	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}

	if patch.Company != nil {
		set["company"] = *patch.Company
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c model.Customer
	if err := r.customers.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateEmailErr(patch.EmailValue())
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.customers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// nextID increments customers counter, ids are never handed out twice
func (r *mongoCustomerRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter mongoCounter
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": customersTable}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to generate customer id - %w", err)
	}
	return counter.Seq, nil
}
