package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wellness-analytics/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reportCounterID = "reports"

type reportDocument struct {
	ReportID      int64     `bson:"_id"`
	Scope         string    `bson:"scope"`
	Metrics       string    `bson:"metrics"`
	GeneratedDate time.Time `bson:"generated_date"`
}

func (d reportDocument) toReport() Report {
	return Report{
		ReportID:      d.ReportID,
		Scope:         d.Scope,
		Metrics:       d.Metrics,
		GeneratedDate: NewDate(d.GeneratedDate),
	}
}

// MongoReportRepository keeps reports in MongoDB with integer ids handed out
// by a counters collection, so ids look the same as with the SQL store.
type MongoReportRepository struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewMongoReportRepository(db *database.MongodbDB) *MongoReportRepository {
	return &MongoReportRepository{
		Collection: db.DB.Collection("reports"),
		Counters:   db.DB.Collection("counters"),
	}
}

func (r *MongoReportRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": reportCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate report id: %w", err)
	}
	return counter.Seq, nil
}

func (r *MongoReportRepository) Create(ctx context.Context, report *Report) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	doc := reportDocument{
		ReportID:      id,
		Scope:         report.Scope,
		Metrics:       report.Metrics,
		GeneratedDate: report.GeneratedDate.Time,
	}
	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	report.ReportID = id
	return nil
}

func (r *MongoReportRepository) Get(ctx context.Context, id int64) (*Report, error) {
	var doc reportDocument
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	report := doc.toReport()
	return &report, nil
}

func (r *MongoReportRepository) List(ctx context.Context) ([]Report, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]Report, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, doc.toReport())
	}
	return reports, nil
}

func (r *MongoReportRepository) Update(ctx context.Context, report *Report) error {
	update := bson.M{
		"$set": bson.M{
			"scope":   report.Scope,
			"metrics": report.Metrics,
		},
	}
	if _, err := r.Collection.UpdateOne(ctx, bson.M{"_id": report.ReportID}, update); err != nil {
		return fmt.Errorf("update report %d: %w", report.ReportID, err)
	}
	return nil
}

func (r *MongoReportRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	return nil
}
