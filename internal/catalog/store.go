package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ayzahstore/ayzah-backend/internal/aws"
)

// Store encapsulates operations on the products and categories tables.
type Store struct {
	client          aws.DynamoDBAPI
	productsTable   string
	categoriesTable string
}

// NewStore creates a new catalog Store.
func NewStore(client aws.DynamoDBAPI, productsTable, categoriesTable string) *Store {
	return &Store{
		client:          client,
		productsTable:   productsTable,
		categoriesTable: categoriesTable,
	}
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.productsTable,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// GetMany resolves a set of product ids. Ids that do not resolve are simply
// absent from the returned map; callers decide how to treat the gap.
func (s *Store) GetMany(ctx context.Context, ids []string) (map[string]Product, error) {
	found := make(map[string]Product, len(ids))
	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		p, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			found[id] = *p
		}
	}
	return found, nil
}

// ListFilter narrows and orders a product listing.
type ListFilter struct {
	Category          string
	Occasion          string
	Fabric            string
	Search            string
	MinPrice          *float64
	MaxPrice          *float64
	FitAdjustmentOnly bool
	Sort              string // popular | new | price_low | price_high
	Limit             int
	Skip              int
}

// List scans active products, applying equality filters server-side and
// search/price/sort/paging in memory (a scan cannot order results).
// Returns the page plus the total match count.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Product, int, error) {
	filterExpr := "is_active = :active"
	values := map[string]types.AttributeValue{
		":active": &types.AttributeValueMemberBOOL{Value: true},
	}
	if f.Category != "" {
		filterExpr += " AND category = :cat"
		values[":cat"] = &types.AttributeValueMemberS{Value: f.Category}
	}
	if f.Occasion != "" {
		filterExpr += " AND occasion = :occ"
		values[":occ"] = &types.AttributeValueMemberS{Value: f.Occasion}
	}
	if f.Fabric != "" {
		filterExpr += " AND fabric = :fab"
		values[":fab"] = &types.AttributeValueMemberS{Value: f.Fabric}
	}
	if f.FitAdjustmentOnly {
		filterExpr += " AND fit_adjustment_enabled = :fit"
		values[":fit"] = &types.AttributeValueMemberBOOL{Value: true}
	}

	var products []Product
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:                 &s.productsTable,
			FilterExpression:          &filterExpr,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("scan products: %w", err)
		}
		var page []Product
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, 0, fmt.Errorf("unmarshal products: %w", err)
		}
		products = append(products, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	products = applyLocalFilters(products, f)
	sortProducts(products, f.Sort)
	total := len(products)

	if f.Skip > 0 {
		if f.Skip >= len(products) {
			products = nil
		} else {
			products = products[f.Skip:]
		}
	}
	if f.Limit > 0 && len(products) > f.Limit {
		products = products[:f.Limit]
	}
	return products, total, nil
}

func applyLocalFilters(products []Product, f ListFilter) []Product {
	if f.Search == "" && f.MinPrice == nil && f.MaxPrice == nil {
		return products
	}
	needle := strings.ToLower(f.Search)
	kept := products[:0]
	for _, p := range products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		price := p.EffectivePrice()
		if f.MinPrice != nil && price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func sortProducts(products []Product, order string) {
	switch order {
	case "price_low":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_high":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	default: // popular, new
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

// CountProducts returns the number of items in the products table.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.productsTable,
		Select:    types.SelectCount,
	})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return int(out.Count), nil
}

// PutProducts writes products in BatchWriteItem chunks of 25 (the API limit).
func (s *Store) PutProducts(ctx context.Context, products []Product) error {
	return s.batchPut(ctx, s.productsTable, len(products), func(i int) (map[string]types.AttributeValue, error) {
		return attributevalue.MarshalMap(products[i])
	})
}

// ListCategories returns all categories in display order.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.categoriesTable,
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	var cats []Category
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cats); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Order < cats[j].Order })
	return cats, nil
}

// PutCategories writes categories in batch.
func (s *Store) PutCategories(ctx context.Context, cats []Category) error {
	return s.batchPut(ctx, s.categoriesTable, len(cats), func(i int) (map[string]types.AttributeValue, error) {
		return attributevalue.MarshalMap(cats[i])
	})
}

func (s *Store) batchPut(ctx context.Context, table string, n int, marshal func(i int) (map[string]types.AttributeValue, error)) error {
	const chunk = 25
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		writes := make([]types.WriteRequest, 0, end-start)
		for i := start; i < end; i++ {
			item, err := marshal(i)
			if err != nil {
				return fmt.Errorf("marshal item %d: %w", i, err)
			}
			writes = append(writes, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}
		_, err := s.client.BatchWriteItem(ctx, &dyn.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: writes},
		})
		if err != nil {
			return fmt.Errorf("batch write %s: %w", table, err)
		}
	}
	return nil
}
