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

	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

const employeeCollection = "employees"

// EmployeeRepository is the MongoDB-backed credential store.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeeCollection)}
}

type mongoEmployee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"firstName"`
	MiddleName   string             `bson:"middleName,omitempty"`
	LastName     string             `bson:"lastName"`
	Username     string             `bson:"username"`
	Mobile       int64              `bson:"mobile"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	IntroBio     string             `bson:"introBio"`
	IsAdmin      bool               `bson:"isAdmin"`
	Role         string             `bson:"role"`
	JoinedOn     time.Time          `bson:"joinedOn"`
	RefreshToken string             `bson:"refreshToken,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// Create inserts a new employee document. The password is hashed here, as a
// pre-persistence step conditioned on the value not already being a hash, so
// the write path never double-hashes and never stores plaintext.
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	hashed, err := domain.HashPassword(employee.Password)
	if err != nil {
		return nil, err
	}

	doc := toDocument(employee)
	doc.Password = hashed

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	// Fetch back the stored document so the caller sees exactly what was
	// persisted, including the assigned id.
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, domain.ErrRegistrationFailed
	}
	created, err := r.findByObjectID(ctx, oid)
	if err != nil {
		return nil, domain.ErrRegistrationFailed
	}
	return created, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findByObjectID(ctx, oid)
}

func (r *EmployeeRepository) findByObjectID(ctx context.Context, oid primitive.ObjectID) (*domain.Employee, error) {
	var doc mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *EmployeeRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}

	var doc mongoEmployee
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by username or email: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Employee
	for cursor.Next(ctx) {
		var doc mongoEmployee
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		out = append(out, toDomain(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// UpdateFields applies a targeted $set of only the provided profile fields.
// Username, email, password and the admin flag are never part of the update
// document.
func (r *EmployeeRepository) UpdateFields(ctx context.Context, id string, fields ports.UpdateEmployeeFields) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if fields.FirstName != nil {
		set["firstName"] = *fields.FirstName
	}
	if fields.MiddleName != nil {
		set["middleName"] = *fields.MiddleName
	}
	if fields.LastName != nil {
		set["lastName"] = *fields.LastName
	}
	if fields.Mobile != nil {
		set["mobile"] = *fields.Mobile
	}
	if fields.IntroBio != nil {
		set["introBio"] = *fields.IntroBio
	}
	if fields.Role != nil {
		set["role"] = *fields.Role
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoEmployee
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return toDomain(&doc), nil
}

// SetRefreshToken writes only the refresh token. A single-field $set keeps
// the write atomic and skips revalidation of the rest of the document.
func (r *EmployeeRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"refreshToken": token}})
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// ClearRefreshToken removes the field with $unset so an ended session is
// distinguishable from an empty-string token.
func (r *EmployeeRepository) ClearRefreshToken(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$unset": bson.M{"refreshToken": 1}})
	if err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// EnsureIndexes creates the unique indexes that back the global uniqueness of
// username and email.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDocument(e *domain.Employee) *mongoEmployee {
	return &mongoEmployee{
		FirstName:    e.FirstName,
		MiddleName:   e.MiddleName,
		LastName:     e.LastName,
		Username:     e.Username,
		Mobile:       e.Mobile,
		Email:        e.Email,
		Password:     e.Password,
		IntroBio:     e.IntroBio,
		IsAdmin:      e.IsAdmin,
		Role:         e.Role,
		JoinedOn:     e.JoinedOn,
		RefreshToken: e.RefreshToken,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toDomain(doc *mongoEmployee) *domain.Employee {
	return &domain.Employee{
		ID:           doc.ID.Hex(),
		FirstName:    doc.FirstName,
		MiddleName:   doc.MiddleName,
		LastName:     doc.LastName,
		Username:     doc.Username,
		Mobile:       doc.Mobile,
		Email:        doc.Email,
		Password:     doc.Password,
		IntroBio:     doc.IntroBio,
		IsAdmin:      doc.IsAdmin,
		Role:         doc.Role,
		JoinedOn:     doc.JoinedOn,
		RefreshToken: doc.RefreshToken,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
