package cart

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

// ErrNotFound indicates no cart exists for the user.
var ErrNotFound = errors.New("cart not found")

// ErrVersionConflict indicates a concurrent mutation won the version race.
var ErrVersionConflict = errors.New("cart was modified concurrently")

// Store encapsulates operations on the carts table. Every mutation is a
// conditional write on the version read, so concurrent requests against the
// same cart fail fast instead of overwriting each other.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new carts Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches the user's cart. Returns (nil, nil) if the user has no cart.
func (s *Store) Get(ctx context.Context, userID string) (*Cart, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var c Cart
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &c, nil
}

// AddItem merges a line item into the cart, creating the cart when absent.
// Matching product+size increments quantity; otherwise the item is appended.
func (s *Store) AddItem(ctx context.Context, userID string, item LineItem) error {
	existing, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if existing == nil {
		fresh := Cart{
			UserID:    userID,
			Items:     []LineItem{item},
			UpdatedAt: s.nowFunc(),
			Version:   1,
		}
		if err := s.putNew(ctx, fresh); err == nil {
			return nil
		} else if !errors.Is(err, ErrVersionConflict) {
			return err
		}
		// Lost the creation race; fall through to the merge path.
		existing, err = s.Get(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrVersionConflict
		}
	}

	if i := existing.ItemIndex(item.ProductID, item.Size); i >= 0 {
		existing.Items[i].Quantity += item.Quantity
		if item.FitAdjustment != nil {
			existing.Items[i].FitAdjustment = item.FitAdjustment
		}
	} else {
		existing.Items = append(existing.Items, item)
	}
	return s.putVersioned(ctx, *existing)
}

// UpdateQuantity sets the quantity on the matching line item.
func (s *Store) UpdateQuantity(ctx context.Context, userID, productID, size string, quantity int) error {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	i := c.ItemIndex(productID, size)
	if i < 0 {
		return ErrNotFound
	}
	c.Items[i].Quantity = quantity
	return s.putVersioned(ctx, *c)
}

// RemoveItem drops the matching line item.
func (s *Store) RemoveItem(ctx context.Context, userID, productID, size string) error {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID == productID && it.Size == size {
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	return s.putVersioned(ctx, *c)
}

// Clear deletes the user's cart document.
func (s *Store) Clear(ctx context.Context, userID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// putNew writes a brand-new cart, failing if one appeared concurrently.
func (s *Store) putNew(ctx context.Context, c Cart) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(user_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

// putVersioned replaces the cart conditioned on the version it was read at.
func (s *Store) putVersioned(ctx context.Context, c Cart) error {
	expected := c.Version
	c.Version = expected + 1
	c.UpdatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("version = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expected)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("put cart: %w", err)
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
