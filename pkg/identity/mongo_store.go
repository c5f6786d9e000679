package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	accountsCollection   = "accounts"
	identitiesCollection = "account_identities"
)

// MongoStore implements AccountStore on MongoDB. Email uniqueness relies on
// a unique index over the email field; EnsureIndexes creates it along with
// the identity-link key.
type MongoStore struct {
	accounts   *mongo.Collection
	identities *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		accounts:   db.Collection(accountsCollection),
		identities: db.Collection(identitiesCollection),
	}
}

// EnsureIndexes creates the unique indexes the store depends on. Call once
// at startup; index creation is idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create accounts email index: %w", err)
	}

	_, err = s.identities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "provider", Value: 1}, {Key: "provider_user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create identity link index: %w", err)
	}
	return nil
}

type accountDoc struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	Username     string     `bson:"username"`
	Active       bool       `bson:"active"`
	CreatedAt    time.Time  `bson:"created_at"`
	LastSignInAt *time.Time `bson:"last_sign_in_at,omitempty"`
}

type identityDoc struct {
	AccountID      string    `bson:"account_id"`
	Provider       string    `bson:"provider"`
	ProviderUserID string    `bson:"provider_user_id"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var doc accountDoc
	err := s.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account by email: %w", err)
	}
	return docToAccount(doc)
}

func (s *MongoStore) FindByIdentity(ctx context.Context, providerID, providerUserID string) (*Account, error) {
	var link identityDoc
	err := s.identities.FindOne(ctx, bson.M{
		"provider":         providerID,
		"provider_user_id": providerUserID,
	}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("query identity link: %w", err)
	}

	var doc accountDoc
	if err := s.accounts.FindOne(ctx, bson.M{"_id": link.AccountID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("query linked account: %w", err)
	}
	return docToAccount(doc)
}

func (s *MongoStore) Create(ctx context.Context, account *Account) error {
	_, err := s.accounts.InsertOne(ctx, accountDoc{
		ID:        account.ID.String(),
		Email:     account.Email,
		Username:  account.Username,
		Active:    account.Active,
		CreatedAt: account.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmailBlocked
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *MongoStore) LinkIdentity(ctx context.Context, accountID uuid.UUID, providerID, providerUserID string) error {
	_, err := s.identities.InsertOne(ctx, identityDoc{
		AccountID:      accountID.String(),
		Provider:       providerID,
		ProviderUserID: providerUserID,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		// An existing link for the same identity is fine.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert identity link: %w", err)
	}
	return nil
}

func (s *MongoStore) FinalizeSignIn(ctx context.Context, account *Account) error {
	res, err := s.accounts.UpdateOne(ctx,
		bson.M{"_id": account.ID.String(), "active": true},
		bson.M{"$set": bson.M{"last_sign_in_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("finalize sign-in: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := s.accounts.CountDocuments(ctx, bson.M{"_id": account.ID.String()})
		if err != nil {
			return fmt.Errorf("finalize sign-in: %w", err)
		}
		if count == 0 {
			return ErrAccountNotFound
		}
		return ErrAccountInactive
	}
	return nil
}

func docToAccount(doc accountDoc) (*Account, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	return &Account{
		ID:        id,
		Email:     doc.Email,
		Username:  doc.Username,
		Active:    doc.Active,
		CreatedAt: doc.CreatedAt,
	}, nil
}

var _ AccountStore = (*MongoStore)(nil)
