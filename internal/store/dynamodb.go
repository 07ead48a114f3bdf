package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"pricewatch/internal/models"
)

// DynamoDBStore keeps one record per tracked item, keyed by id.
type DynamoDBStore struct {
	client *ddb.Client
	table  string
}

func NewDynamoDBStore(ctx context.Context, table string) (*DynamoDBStore, error) {
	if table == "" {
		return nil, fmt.Errorf("dynamodb table name is not set")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &DynamoDBStore{
		client: ddb.NewFromConfig(cfg),
		table:  table,
	}, nil
}

func (s *DynamoDBStore) List(ctx context.Context) ([]models.Item, error) {
	out, err := s.client.Scan(ctx, &ddb.ScanInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}

	var items []models.Item
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return items, nil
}

func (s *DynamoDBStore) Put(ctx context.Context, item models.Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &ddb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (s *DynamoDBStore) Delete(ctx context.Context, id string) error {
	out, err := s.client.DeleteItem(ctx, &ddb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]ddbTypes.AttributeValue{
			"id": &ddbTypes.AttributeValueMemberS{Value: id},
		},
		ReturnValues: ddbTypes.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if out.Attributes == nil {
		return ErrNotFound
	}
	return nil
}

func (s *DynamoDBStore) FindByURL(ctx context.Context, url string) (*models.Item, error) {
	out, err := s.client.Scan(ctx, &ddb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("#u = :url"),
		ExpressionAttributeNames: map[string]string{
			"#u": "url",
		},
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":url": &ddbTypes.AttributeValueMemberS{Value: url},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for url: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, ErrNotFound
	}

	var item models.Item
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return &item, nil
}
