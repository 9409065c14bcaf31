package coupons

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ayzahstore/ayzah-backend/internal/aws"
	"github.com/google/uuid"
)

// Store encapsulates operations on the coupons table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new coupons Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// GetByCode fetches a coupon by exact code. Returns (nil, nil) if not found.
func (s *Store) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var c Coupon
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal coupon: %w", err)
	}
	return &c, nil
}

// ListActive returns active coupons whose validity window has not closed.
// Expiry is filtered client-side; the stored timestamps are RFC3339 strings
// whose precision varies, so lexicographic comparison in a filter expression
// is not reliable.
func (s *Store) ListActive(ctx context.Context) ([]Coupon, error) {
	filterExpr := "is_active = :t"
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: &filterExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan coupons: %w", err)
	}
	var all []Coupon
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &all); err != nil {
		return nil, fmt.Errorf("unmarshal coupons: %w", err)
	}
	now := s.nowFunc()
	kept := all[:0]
	for _, c := range all {
		if !c.ValidTo.Before(now) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// Put writes a coupon, assigning an id when absent.
func (s *Store) Put(ctx context.Context, c Coupon) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal coupon: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put coupon: %w", err)
	}
	return nil
}

// SampleCoupons returns the launch coupons used by POST /api/seed.
func SampleCoupons(now time.Time) []Coupon {
	fifty := 50.0
	return []Coupon{
		{
			ID:           uuid.NewString(),
			Code:         "RAMADAN15",
			Kind:         KindPercentage,
			Value:        15,
			MinCartValue: 200,
			MaxDiscount:  &fifty,
			ValidFrom:    now,
			ValidTo:      now.AddDate(0, 0, 30),
			UsageLimit:   1000,
			IsActive:     true,
		},
		{
			ID:             uuid.NewString(),
			Code:           "FIRST50",
			Kind:           KindFlat,
			Value:          50,
			MinCartValue:   300,
			ValidFrom:      now,
			ValidTo:        now.AddDate(0, 0, 60),
			UsageLimit:     1000,
			FirstOrderOnly: true,
			IsActive:       true,
		},
		{
			ID:         uuid.NewString(),
			Code:       "FREESHIP",
			Kind:       KindFreeDelivery,
			Value:      0,
			ValidFrom:  now,
			ValidTo:    now.AddDate(0, 0, 90),
			UsageLimit: 1000,
			IsActive:   true,
		},
	}
}
