// Package mongo implements the incident report document store. Reports are
// retained indefinitely for evidentiary reasons; status transitions are the
// only mutation after acceptance.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guardline/guardline-core/internal/domain"
)

// Connect establishes and verifies a MongoDB connection.
func Connect(ctx context.Context, mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

type reportDocument struct {
	ReportID      string    `bson:"_id"`
	UserID        string    `bson:"user_id"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description"`
	Country       string    `bson:"country"`
	City          string    `bson:"city"`
	ContactNumber string    `bson:"contact"`
	Attachments   []string  `bson:"attachments,omitempty"`
	Status        string    `bson:"status"`
	SubmittedAt   time.Time `bson:"timestamp"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// ReportStore stores accepted incident reports in the incident_reports
// collection, keyed by the ULID assigned at submission.
type ReportStore struct {
	collection *mongo.Collection
}

func NewReportStore(client *mongo.Client, database string) *ReportStore {
	return &ReportStore{collection: client.Database(database).Collection("incident_reports")}
}

func (s *ReportStore) Insert(ctx context.Context, report domain.IncidentReport) (string, error) {
	doc := reportDocument{
		ReportID:      report.ReportID,
		UserID:        report.UserID.String(),
		Title:         report.Title,
		Description:   report.Description,
		Country:       report.Country,
		City:          report.City,
		ContactNumber: report.ContactNumber,
		Attachments:   report.Attachments,
		Status:        report.Status,
		SubmittedAt:   report.SubmittedAt,
		UpdatedAt:     report.UpdatedAt,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return report.ReportID, nil
}

func (s *ReportStore) GetByID(ctx context.Context, reportID string) (domain.IncidentReport, error) {
	var doc reportDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.IncidentReport{}, domain.ErrNotFound
		}
		return domain.IncidentReport{}, err
	}
	return toDomainReport(doc)
}

func (s *ReportStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.IncidentReport, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.IncidentReport
	for cursor.Next(ctx) {
		var doc reportDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		report, err := toDomainReport(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, cursor.Err()
}

func (s *ReportStore) UpdateStatus(ctx context.Context, reportID, status string, updatedAt time.Time) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": reportID},
		bson.M{"$set": bson.M{"status": status, "updated_at": updatedAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainReport(doc reportDocument) (domain.IncidentReport, error) {
	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return domain.IncidentReport{}, fmt.Errorf("parse report user_id: %w", err)
	}
	return domain.IncidentReport{
		ReportID:      doc.ReportID,
		UserID:        userID,
		Title:         doc.Title,
		Description:   doc.Description,
		Country:       doc.Country,
		City:          doc.City,
		ContactNumber: doc.ContactNumber,
		Attachments:   doc.Attachments,
		Status:        doc.Status,
		SubmittedAt:   doc.SubmittedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}
