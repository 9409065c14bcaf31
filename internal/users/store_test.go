package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsDynamo "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is an in-memory users table with just enough expression
// handling for the store's update shapes, including the wishlist string set.
type mockDynamo struct {
	items map[string]map[string]types.AttributeValue
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) GetItem(ctx context.Context, in *awsDynamo.GetItemInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[id]
	if !ok {
		return &awsDynamo.GetItemOutput{}, nil
	}
	return &awsDynamo.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, in *awsDynamo.PutItemInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.PutItemOutput, error) {
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	if in.ConditionExpression != nil && *in.ConditionExpression == "attribute_not_exists(id)" {
		if _, exists := m.items[id]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[id] = in.Item
	return &awsDynamo.PutItemOutput{}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, in *awsDynamo.UpdateItemInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.UpdateItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	stored, exists := m.items[id]

	if in.ConditionExpression != nil {
		switch *in.ConditionExpression {
		case "attribute_exists(id)":
			if !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
		case "version = :v":
			if !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
			want := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberN).Value
			got := stored["version"].(*types.AttributeValueMemberN).Value
			if want != got {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}

	switch *in.UpdateExpression {
	case "ADD wishlist :p":
		add := in.ExpressionAttributeValues[":p"].(*types.AttributeValueMemberSS).Value
		var current []string
		if ss, ok := stored["wishlist"].(*types.AttributeValueMemberSS); ok {
			current = ss.Value
		}
		for _, p := range add {
			found := false
			for _, c := range current {
				if c == p {
					found = true
				}
			}
			if !found {
				current = append(current, p)
			}
		}
		stored["wishlist"] = &types.AttributeValueMemberSS{Value: current}
	case "DELETE wishlist :p":
		remove := in.ExpressionAttributeValues[":p"].(*types.AttributeValueMemberSS).Value
		if ss, ok := stored["wishlist"].(*types.AttributeValueMemberSS); ok {
			var kept []string
			for _, c := range ss.Value {
				drop := false
				for _, r := range remove {
					if c == r {
						drop = true
					}
				}
				if !drop {
					kept = append(kept, c)
				}
			}
			if len(kept) == 0 {
				delete(stored, "wishlist")
			} else {
				stored["wishlist"] = &types.AttributeValueMemberSS{Value: kept}
			}
		}
	case "SET addresses = :a, version = :v2":
		stored["addresses"] = in.ExpressionAttributeValues[":a"]
		stored["version"] = in.ExpressionAttributeValues[":v2"]
	case "SET measurement_profiles = list_append(if_not_exists(measurement_profiles, :empty), :p)":
		var current []types.AttributeValue
		if l, ok := stored["measurement_profiles"].(*types.AttributeValueMemberL); ok {
			current = l.Value
		}
		appended := in.ExpressionAttributeValues[":p"].(*types.AttributeValueMemberL).Value
		stored["measurement_profiles"] = &types.AttributeValueMemberL{Value: append(current, appended...)}
	default:
		// UpdateContact: SET #n = :n / email = :e combinations
		if v, ok := in.ExpressionAttributeValues[":n"]; ok {
			stored["name"] = v
		}
		if v, ok := in.ExpressionAttributeValues[":e"]; ok {
			stored["email"] = v
		}
	}
	return &awsDynamo.UpdateItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, in *awsDynamo.QueryInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.QueryOutput, error) {
	email := in.ExpressionAttributeValues[":e"].(*types.AttributeValueMemberS).Value
	out := &awsDynamo.QueryOutput{}
	for _, item := range m.items {
		if s, ok := item["email"].(*types.AttributeValueMemberS); ok && s.Value == email {
			out.Items = append(out.Items, item)
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (m *mockDynamo) Scan(ctx context.Context, in *awsDynamo.ScanInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.ScanOutput, error) {
	out := &awsDynamo.ScanOutput{}
	for _, item := range m.items {
		out.Items = append(out.Items, item)
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, in *awsDynamo.DeleteItemInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.DeleteItemOutput, error) {
	return &awsDynamo.DeleteItemOutput{}, nil
}

func (m *mockDynamo) BatchWriteItem(ctx context.Context, in *awsDynamo.BatchWriteItemInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.BatchWriteItemOutput, error) {
	return &awsDynamo.BatchWriteItemOutput{}, nil
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, in *awsDynamo.TransactWriteItemsInput, optFns ...func(*awsDynamo.Options)) (*awsDynamo.TransactWriteItemsOutput, error) {
	return &awsDynamo.TransactWriteItemsOutput{}, nil
}

func (m *mockDynamo) storedUser(t *testing.T, id string) User {
	t.Helper()
	item, ok := m.items[id]
	if !ok {
		t.Fatalf("no user stored for %s", id)
	}
	var u User
	if err := attributevalue.UnmarshalMap(item, &u); err != nil {
		t.Fatalf("unmarshal stored user: %v", err)
	}
	return u
}

// --- tests ---

func TestCreateAndGet(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users")
	ctx := context.Background()

	u := User{ID: "u1", Name: "Amna", Email: "amna@example.com", PasswordHash: "$argon2id$..."}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Name != "Amna" || got.Version != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.PasswordHash != "$argon2id$..." {
		t.Fatal("expected password hash to round-trip through storage")
	}

	// Duplicate id is refused.
	if err := store.Create(ctx, u); err == nil {
		t.Fatal("expected error creating duplicate user")
	}
}

func TestGetByEmail(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users")
	ctx := context.Background()

	if err := store.Create(ctx, User{ID: "u1", Email: "amna@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetByEmail(ctx, "amna@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("unexpected user: %+v", got)
	}

	missing, err := store.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown email")
	}
}

func TestWishlist_SetSemantics(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users")
	ctx := context.Background()

	if err := store.Create(ctx, User{ID: "u1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.AddToWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Re-adding is a no-op, not a duplicate.
	if err := store.AddToWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddToWishlist(ctx, "u1", "p2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := mock.storedUser(t, "u1")
	if len(u.Wishlist) != 2 {
		t.Fatalf("expected 2 wishlist entries, got %v", u.Wishlist)
	}

	if err := store.RemoveFromWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u = mock.storedUser(t, "u1")
	if len(u.Wishlist) != 1 || u.Wishlist[0] != "p2" {
		t.Fatalf("unexpected wishlist: %v", u.Wishlist)
	}

	if err := store.AddToWishlist(ctx, "ghost", "p1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestSetAddresses_VersionGuard(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users")
	ctx := context.Background()

	if err := store.Create(ctx, User{ID: "u1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	addrs := []Address{{ID: "a1", Label: "Home", City: "Doha", IsDefault: true}}
	if err := store.SetAddresses(ctx, "u1", addrs, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := mock.storedUser(t, "u1")
	if len(u.Addresses) != 1 || u.Version != 2 {
		t.Fatalf("unexpected user after set: %+v", u)
	}

	// Writing with the old version loses.
	if err := store.SetAddresses(ctx, "u1", addrs, 1); err != ErrVersionConflict {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestMeasurementProfiles_AppendAndFindOwner(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Create(ctx, User{ID: fmt.Sprintf("u%d", i)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	profile := MeasurementProfile{
		ID:          "mp1",
		ProfileName: "Mother",
		Measurements: map[string]float64{
			"bust": 96, "waist": 78,
		},
	}
	if err := store.AddMeasurementProfile(ctx, "u1", profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, err := store.FindByProfileID(ctx, "mp1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner == nil || owner.ID != "u1" {
		t.Fatalf("unexpected owner: %+v", owner)
	}

	nobody, err := store.FindByProfileID(ctx, "mp-unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nobody != nil {
		t.Fatal("expected nil for unowned profile")
	}

	if err := store.AddMeasurementProfile(ctx, "ghost", profile); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateContact(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "users")
	ctx := context.Background()

	if err := store.Create(ctx, User{ID: "u1", Name: "Old"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.UpdateContact(ctx, "u1", "New Name", "new@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u := mock.storedUser(t, "u1")
	if u.Name != "New Name" || u.Email != "new@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if err := store.UpdateContact(ctx, "ghost", "X", ""); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
