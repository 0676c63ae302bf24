package auditlogs

import (
	"context"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditLogMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditLogMongoRepository(db *mongo.Database) contracts.AuditLogRepository {
	return &auditLogMongoRepository{
		Collection: db.Collection(constvars.MongoAuditLogCollection),
	}
}

func (repo *auditLogMongoRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	if _, err := repo.Collection.InsertOne(ctx, entry); err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *auditLogMongoRepository) FindAll(ctx context.Context, request *requests.FindAllAuditLogs) ([]models.AuditLog, int, error) {
	filter := buildAuditLogFilter(request)

	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(request.Offset())).
		SetLimit(int64(request.PageSize))

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.AuditLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return entries, int(total), nil
}

func buildAuditLogFilter(request *requests.FindAllAuditLogs) bson.M {
	filter := bson.M{}
	if request.ActorID != "" {
		filter["actorId"] = request.ActorID
	}
	if request.EntityType != "" {
		filter["entityType"] = request.EntityType
	}
	if request.EntityID != "" {
		filter["entityId"] = request.EntityID
	}
	if request.Action != "" {
		filter["action"] = request.Action
	}
	return filter
}
