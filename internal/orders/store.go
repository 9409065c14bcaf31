package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ayzahstore/ayzah-backend/internal/aws"
)

// ErrInvalidTransition indicates a status change the state machine forbids,
// or one that lost a concurrent update race.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrCheckoutConflict indicates the checkout transaction was canceled: the
// cart changed under the request or the coupon ran out of uses.
var ErrCheckoutConflict = errors.New("checkout conflicted with a concurrent update")

const userIndex = "user_id-created_at-index"

// Store encapsulates operations on the orders table. The carts and coupons
// table names are needed because checkout commits across all three in one
// transaction.
type Store struct {
	client       aws.DynamoDBAPI
	tableName    string
	cartsTable   string
	couponsTable string
	nowFunc      func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName, cartsTable, couponsTable string) *Store {
	return &Store{
		client:       client,
		tableName:    tableName,
		cartsTable:   cartsTable,
		couponsTable: couponsTable,
		nowFunc:      time.Now,
	}
}

// CreateFromCart atomically persists the order, deletes the source cart, and
// (when a coupon was applied) increments its usage counter in one
// TransactWriteItems call, so there is no window where the order exists but
// the cart survives, or vice versa.
//
// The cart delete is conditioned on the version the checkout read; a
// concurrent cart mutation or duplicate submit cancels the whole transaction.
// The coupon update is conditioned on used_count < usage_limit.
func (s *Store) CreateFromCart(ctx context.Context, order Order, cartVersion int64, couponCode string) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.nowFunc()
	}

	orderItem, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	transactItems := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           &s.tableName,
				Item:                orderItem,
				ConditionExpression: awsString("attribute_not_exists(id)"),
			},
		},
		{
			Delete: &types.Delete{
				TableName: &s.cartsTable,
				Key: map[string]types.AttributeValue{
					"user_id": &types.AttributeValueMemberS{Value: order.UserID},
				},
				ConditionExpression: awsString("version = :v"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", cartVersion)},
				},
			},
		},
	}

	if couponCode != "" {
		transactItems = append(transactItems, types.TransactWriteItem{
			Update: &types.Update{
				TableName: &s.couponsTable,
				Key: map[string]types.AttributeValue{
					"code": &types.AttributeValueMemberS{Value: couponCode},
				},
				UpdateExpression:    awsString("ADD used_count :one"),
				ConditionExpression: awsString("used_count < usage_limit"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":one": &types.AttributeValueMemberN{Value: "1"},
				},
			},
		})
	}

	_, err = s.client.TransactWriteItems(ctx, &dyn.TransactWriteItemsInput{
		TransactItems: transactItems,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return ErrCheckoutConflict
		}
		return fmt.Errorf("transact checkout: %w", err)
	}
	return nil
}

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first, via the user GSI.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	index := userIndex
	keyExpr := "user_id = :u"
	forward := false
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              &index,
		KeyConditionExpression: &keyExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: &forward,
	})
	if err != nil {
		return nil, fmt.Errorf("query orders by user: %w", err)
	}
	var list []Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &list); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	return list, nil
}

// CountByUser returns how many orders a user has placed. Used for
// first-order-only coupon checks.
func (s *Store) CountByUser(ctx context.Context, userID string) (int, error) {
	index := userIndex
	keyExpr := "user_id = :u"
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              &index,
		KeyConditionExpression: &keyExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, fmt.Errorf("count orders by user: %w", err)
	}
	return int(out.Count), nil
}

// UpdateStatus moves an order from expected -> newStatus, enforced both by
// the in-process state machine and a conditional expression on the stored
// status (so two admins cannot double-advance an order).
func (s *Store) UpdateStatus(ctx context.Context, orderID, expectedStatus, newStatus string) error {
	if !CanTransition(expectedStatus, newStatus) {
		return ErrInvalidTransition
	}
	return s.conditionalSet(ctx, orderID, "order_status", expectedStatus, newStatus)
}

// SetPaymentStatus flips the payment flag pending -> paid|failed.
func (s *Store) SetPaymentStatus(ctx context.Context, orderID, expected, newStatus string) error {
	if !CanSetPayment(expected, newStatus) {
		return ErrInvalidTransition
	}
	return s.conditionalSet(ctx, orderID, "payment_status", expected, newStatus)
}

func (s *Store) conditionalSet(ctx context.Context, orderID, attr, expected, value string) error {
	updateExpr := "SET #a = :new, updated_at = :ua"
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:         &updateExpr,
		ExpressionAttributeNames: map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new":      &types.AttributeValueMemberS{Value: value},
			":expected": &types.AttributeValueMemberS{Value: expected},
			":ua":       &types.AttributeValueMemberS{Value: s.nowFunc().Format(time.RFC3339)},
		},
		ConditionExpression: awsString("#a = :expected"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("update order %s: %w", attr, err)
	}
	return nil
}

func awsString(s string) *string { return &s }
