package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection         = "users"
	ChildrenCollection      = "children"
	GuardiansCollection     = "guardians"
	AttendanceCollection    = "attendanceRecords"
	StaffCollection         = "staff"
	AssignmentsCollection   = "staffAssignments"
	ServicesCollection      = "services"
	FilesCollection         = "files"
	OperationLogsCollection = "apiOperationLogs"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB connects to MongoDB and selects the database.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping MongoDB: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")

	return nil
}

// CloseMongoDB disconnects the client.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("MongoDB disconnect failed")
			return
		}
		utils.Logger.Info().Msg("disconnected from MongoDB")
	}
}

// ExecuteDbOperation runs a database operation with retries on transient
// errors.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("db operation failed, retry (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError reports whether the error is worth retrying.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError checks for common network failure strings.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

var allCollections = []string{
	UsersCollection,
	ChildrenCollection,
	GuardiansCollection,
	AttendanceCollection,
	StaffCollection,
	AssignmentsCollection,
	ServicesCollection,
	FilesCollection,
	OperationLogsCollection,
}

// InitializeCollections creates collections and the indexes the write
// paths depend on.
func InitializeCollections() error {
	for _, collName := range allCollections {
		collExists, err := CollectionExists(collName)
		if err != nil {
			return fmt.Errorf("check collection: %w", err)
		}

		if !collExists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("create collection: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("collection created")
		}
	}

	return ensureIndexes()
}

// ensureIndexes builds the unique booking-id index. The upsert invariant
// (at most one assignment per external booking id) rides on it.
func ensureIndexes() error {
	assignments := db.Collection(AssignmentsCollection)
	_, err := assignments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_bookingId"),
	})
	if err != nil {
		return fmt.Errorf("create bookingId index: %w", err)
	}

	staff := db.Collection(StaffCollection)
	_, err = staff.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_staff_email"),
	})
	if err != nil {
		return fmt.Errorf("create staff email index: %w", err)
	}

	attendance := db.Collection(AttendanceCollection)
	_, err = attendance.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "serviceId", Value: 1}},
		Options: options.Index().SetName("idx_attendance_date_service"),
	})
	if err != nil {
		return fmt.Errorf("create attendance index: %w", err)
	}

	return nil
}

// CollectionExists checks whether a collection exists.
func CollectionExists(collName string) (bool, error) {
	collections, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}

// InitializeServices mirrors the configured service-slot table into the
// services collection so the UI can list and decorate them.
func InitializeServices(cfg config.BookingConfig) error {
	services := db.Collection(ServicesCollection)

	for _, slot := range cfg.Slots {
		now := time.Now()
		update := bson.M{
			"$set": bson.M{
				"name":      slot.Name,
				"startTime": slot.Time,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"serviceId": slot.ServiceID,
				"createdAt": now,
			},
		}
		_, err := services.UpdateOne(ctx,
			bson.M{"serviceId": slot.ServiceID},
			update,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed service %s: %w", slot.ServiceID, err)
		}
	}

	utils.Logger.Info().Int("slots", len(cfg.Slots)).Msg("service slots seeded")
	return nil
}

// InitializeAdminAccount creates the default administrator once.
func InitializeAdminAccount() error {
	usersCollection := db.Collection(UsersCollection)

	count, err := usersCollection.CountDocuments(ctx, bson.M{"role": models.UserRoleSUPER_ADMIN})
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}

	if count > 0 {
		utils.Logger.Info().Msg("admin account exists, skipping seed")
		return nil
	}

	adminUser := models.User{
		Username:  "admin",
		Password:  utils.HashPassword("admin123"),
		Email:     "admin@nextgenministry.org",
		Role:      models.UserRoleSUPER_ADMIN,
		Status:    models.UserStatusAPPROVED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err = usersCollection.InsertOne(ctx, adminUser)
	if err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	utils.Logger.Info().Msg("default admin account created")
	return nil
}

// GetDatabaseStatus returns per-collection document counts.
func GetDatabaseStatus() (map[string]interface{}, error) {
	result := make(map[string]interface{})

	for _, collName := range allCollections {
		coll := db.Collection(collName)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("count failed")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{
			"count": count,
		}
	}

	return result, nil
}

// FindUserByID looks a user up by hex id.
func FindUserByID(id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id format: %w", err)
	}

	var user models.User
	err = db.Collection(UsersCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	return &user, nil
}

// GetContext returns the context used for repository operations.
func GetContext() context.Context {
	return ctx
}

// Collection returns a handle for the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}
