package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
)

// MongoStore triển khai Store trên MongoDB.
// Giao dịch dựa trên session.WithTransaction của driver: driver tự retry
// khi gặp TransientTransactionError (xung đột optimistic giữa các writer).
type MongoStore struct {
	client *mongo.Client
	dbName string
}

// NewMongoStore tạo MongoStore trên database dbName
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{
		client: client,
		dbName: dbName,
	}
}

func (s *MongoStore) col(collection string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(collection)
}

// Get đọc document theo id
func (s *MongoStore) Get(ctx context.Context, collection string, id string) (Doc, error) {
	var doc bson.M
	err := s.col(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return Doc(doc), nil
}

// Set ghi đè toàn bộ document theo id (upsert)
func (s *MongoStore) Set(ctx context.Context, collection string, id string, doc Doc) error {
	body := doc.Clone()
	delete(body, FieldID) // _id nằm trong filter, không được nằm trong replacement

	opts := options.Replace().SetUpsert(true)
	_, err := s.col(collection).ReplaceOne(ctx, bson.M{"_id": id}, bson.M(body), opts)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// Delete xóa document theo id
func (s *MongoStore) Delete(ctx context.Context, collection string, id string) error {
	if _, err := s.col(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// Query trả về các document thỏa tất cả filters
func (s *MongoStore) Query(ctx context.Context, collection string, filters []Filter, limit int64) ([]Doc, error) {
	query, err := buildMongoFilter(filters)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := s.col(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []Doc
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		results = append(results, Doc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return results, nil
}

// buildMongoFilter chuyển danh sách Filter sang bson filter
func buildMongoFilter(filters []Filter) (bson.M, error) {
	query := bson.M{}
	for _, f := range filters {
		op, ok := mongoOps[f.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported filter operator: %s: %w", f.Op, common.ErrInvalidInput)
		}
		query[f.Field] = bson.M{op: f.Value}
	}
	return query, nil
}

var mongoOps = map[string]string{
	"==": "$eq",
	"!=": "$ne",
	">":  "$gt",
	">=": "$gte",
	"<":  "$lt",
	"<=": "$lte",
}

// mongoTx triển khai Tx trên session context của giao dịch đang chạy
type mongoTx struct {
	store *MongoStore
}

func (t *mongoTx) Get(ctx context.Context, collection string, id string) (Doc, error) {
	return t.store.Get(ctx, collection, id)
}

func (t *mongoTx) Set(ctx context.Context, collection string, id string, doc Doc) error {
	return t.store.Set(ctx, collection, id, doc)
}

// RunTransaction chạy fn trong một giao dịch MongoDB.
// WithTransaction của driver tự retry fn khi giao dịch bị xung đột
// (TransientTransactionError), đúng ngữ nghĩa optimistic read-modify-write.
func (s *MongoStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, &mongoTx{store: s})
	}, txOpts)
	if err != nil {
		// Lỗi từ fn thuộc hệ thống phân cấp thì giữ nguyên cho caller
		var appErr *common.Error
		if errors.As(err, &appErr) {
			return err
		}
		return common.ConvertMongoError(err)
	}
	return nil
}
