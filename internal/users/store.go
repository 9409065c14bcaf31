package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/ayzahstore/ayzah-backend/internal/aws"
)

// ErrNotFound indicates the targeted user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrVersionConflict indicates a concurrent mutation won the version race;
// callers should re-read and retry.
var ErrVersionConflict = errors.New("user was modified concurrently")

// ErrEmailTaken indicates a registration against an existing email.
var ErrEmailTaken = errors.New("email already registered")

// Store encapsulates operations on the users table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new users Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches a user by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, userID string) (*User, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var u User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// GetByEmail looks a user up through the email GSI. Returns (nil, nil) if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	index := "email-index"
	keyExpr := "email = :e"
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              &index,
		KeyConditionExpression: &keyExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var u User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// FindByProfileID locates the user owning a measurement profile. Profiles are
// embedded in the user document, so this walks the table; acceptable for the
// store's user volumes. Returns (nil, nil) if no user owns the profile.
func (s *Store) FindByProfileID(ctx context.Context, profileID string) (*User, error) {
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan users: %w", err)
		}
		var page []User
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal users: %w", err)
		}
		for i := range page {
			if page[i].ProfileByID(profileID) != nil {
				return &page[i], nil
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// Create persists a new user, refusing to overwrite an existing id.
func (s *Store) Create(ctx context.Context, u User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.nowFunc()
	}
	u.Version = 1

	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("user %s already exists", u.ID)
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// UpdateContact sets name and/or email on an existing user.
func (s *Store) UpdateContact(ctx context.Context, userID, name, email string) error {
	updateExpr := ""
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if name != "" {
		updateExpr = "SET #n = :n"
		names["#n"] = "name"
		values[":n"] = &types.AttributeValueMemberS{Value: name}
	}
	if email != "" {
		if updateExpr == "" {
			updateExpr = "SET email = :e"
		} else {
			updateExpr += ", email = :e"
		}
		values[":e"] = &types.AttributeValueMemberS{Value: email}
	}
	if updateExpr == "" {
		return nil
	}

	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:          &updateExpr,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(id)"),
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetAddresses replaces the address list, guarded by the version read.
// Used for mutations that must rewrite the list (default-address switching).
func (s *Store) SetAddresses(ctx context.Context, userID string, addresses []Address, expectedVersion int64) error {
	addrList, err := attributevalue.MarshalList(addresses)
	if err != nil {
		return fmt.Errorf("marshal addresses: %w", err)
	}
	_, err = s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression: awsString("SET addresses = :a, version = :v2"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a":  &types.AttributeValueMemberL{Value: addrList},
			":v2": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion+1)},
			":v":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
		ConditionExpression: awsString("version = :v"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("set addresses: %w", err)
	}
	return nil
}

// AddMeasurementProfile appends a profile with an atomic list_append;
// no version bump needed since nothing is read back first.
func (s *Store) AddMeasurementProfile(ctx context.Context, userID string, profile MeasurementProfile) error {
	if profile.LastUpdated.IsZero() {
		profile.LastUpdated = s.nowFunc()
	}
	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression: awsString("SET measurement_profiles = list_append(if_not_exists(measurement_profiles, :empty), :p)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":p":     &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberM{Value: item}}},
		},
		ConditionExpression: awsString("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("append profile: %w", err)
	}
	return nil
}

// AddToWishlist adds a product id to the wishlist string set. Adding an
// already-present id is a no-op, which matches the source behavior.
func (s *Store) AddToWishlist(ctx context.Context, userID, productID string) error {
	return s.mutateWishlist(ctx, userID, productID, "ADD wishlist :p")
}

// RemoveFromWishlist removes a product id from the wishlist string set.
func (s *Store) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return s.mutateWishlist(ctx, userID, productID, "DELETE wishlist :p")
}

func (s *Store) mutateWishlist(ctx context.Context, userID, productID, updateExpr string) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression: &updateExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberSS{Value: []string{productID}},
		},
		ConditionExpression: awsString("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("mutate wishlist: %w", err)
	}
	return nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
