package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	pkgconfig "github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/google/uuid"
)

const (
	keyAttr     = "product_id"
	updatedAttr = "last_updated"

	// timeLayout is fixed width so string comparison in filters orders
	// timestamps chronologically. time.RFC3339 parsing still reads it back.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

func timeValue(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// DynamoDBAPI is the subset of *dynamodb.Client the repository calls.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type ProductRepository struct {
	client    DynamoDBAPI
	tableName string
	slugIndex string
}

func NewDynamoDBClient(ctx context.Context, cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	// DynamoDB Local and similar emulators accept any static key pair.
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func NewProductRepository(client DynamoDBAPI, tableName, slugIndex string) *ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
		slugIndex: slugIndex,
	}
}

func productKey(productID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		keyAttr: &types.AttributeValueMemberS{Value: productID},
	}
}

func (r *ProductRepository) FindOne(ctx context.Context, productID string) (*domain.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       productKey(productID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// FindBySlug queries the slug GSI, which must project all attributes. Slugs
// are not unique; the first match wins.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	keyCond := expression.Key("slug").Equal(expression.Value(slug))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build slug query: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.slugIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query slug index: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Items[0], &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) Find(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	if cond, ok := filterCondition(f); ok {
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	products := make([]domain.Product, 0)
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}

		var items []domain.Product
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal products: %w", err)
		}
		products = append(products, items...)
	}

	return products, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) (string, error) {
	product.ID = uuid.NewString()

	av, err := attributevalue.MarshalMap(product)
	if err != nil {
		return "", fmt.Errorf("failed to marshal product: %w", err)
	}
	av[updatedAttr] = &types.AttributeValueMemberS{Value: timeValue(product.LastUpdated)}

	cond := expression.AttributeNotExists(expression.Name(keyAttr))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return "", err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put item: %w", err)
	}

	return product.ID, nil
}

// Update sets the supplied fields and last_updated. The key must already
// exist; a missing key is a silent no-op rather than an upsert.
func (r *ProductRepository) Update(ctx context.Context, productID string, in domain.ProductInput, lastUpdated time.Time) error {
	update := expression.Set(expression.Name(updatedAttr), expression.Value(timeValue(lastUpdated)))
	if in.Name != nil {
		update = update.Set(expression.Name("name"), expression.Value(*in.Name))
	}
	if in.Slug != nil {
		update = update.Set(expression.Name("slug"), expression.Value(*in.Slug))
	}
	if in.Description != nil {
		update = update.Set(expression.Name("description"), expression.Value(*in.Description))
	}
	if in.Price != nil {
		update = update.Set(expression.Name("price"), expression.Value(*in.Price))
	}
	if in.Category != nil {
		update = update.Set(expression.Name("category"), expression.Value(*in.Category))
	}
	if in.Inventory != nil {
		update = update.Set(expression.Name("inventory"), expression.Value(*in.Inventory))
	}
	if in.Image != nil {
		update = update.Set(expression.Name("image"), expression.Value(*in.Image))
	}

	cond := expression.AttributeExists(expression.Name(keyAttr))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(cond).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       productKey(productID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID string) (bool, error) {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          productKey(productID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	return len(result.Attributes) > 0, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Select:    types.SelectCount,
	})

	total := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count items: %w", err)
		}
		total += int(page.Count)
	}

	return total, nil
}

// Sample scans the matching items and draws from them in process; DynamoDB
// has no server-side sampling.
func (r *ProductRepository) Sample(ctx context.Context, f ProductFilter, size int) ([]domain.Product, error) {
	matched, err := r.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return sample(matched, size), nil
}

func filterCondition(f ProductFilter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder
	if f.InventoryBelow != nil {
		conds = append(conds, expression.Name("inventory").LessThan(expression.Value(*f.InventoryBelow)))
	}
	if f.InventoryAbove != nil {
		conds = append(conds, expression.Name("inventory").GreaterThan(expression.Value(*f.InventoryAbove)))
	}
	if f.UpdatedSince != nil {
		conds = append(conds, expression.Name(updatedAttr).GreaterThanEqual(expression.Value(timeValue(*f.UpdatedSince))))
	}

	switch len(conds) {
	case 0:
		return expression.ConditionBuilder{}, false
	case 1:
		return conds[0], true
	default:
		return expression.And(conds[0], conds[1], conds[2:]...), true
	}
}
