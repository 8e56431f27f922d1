// internal/infrastructure/database/dynamo/document_store.go
package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

const (
	attrCollection = "collection"
	attrID         = "id"
	attrDoc        = "doc"
)

// DocumentStore keeps every collection in one table: partition key is the
// collection, sort key the UUIDv7 record id, and the document a map attribute
type DocumentStore struct {
	client API
	table  string
}

// NewDocumentStore creates a document store on table
func NewDocumentStore(client API, table string) *DocumentStore {
	return &DocumentStore{client: client, table: table}
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
}

func key(collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrCollection: &types.AttributeValueMemberS{Value: collection},
		attrID:         &types.AttributeValueMemberS{Value: id},
	}
}

func toRecord(item map[string]types.AttributeValue) (remote.Record, error) {
	var row struct {
		ID  string         `dynamodbav:"id"`
		Doc map[string]any `dynamodbav:"doc"`
	}
	if err := attributevalue.UnmarshalMap(item, &row); err != nil {
		return remote.Record{}, fmt.Errorf("unmarshal item: %w", err)
	}
	if row.Doc == nil {
		row.Doc = map[string]any{}
	}
	data, err := json.Marshal(row.Doc)
	if err != nil {
		return remote.Record{}, fmt.Errorf("encode document %s: %w", row.ID, err)
	}
	return remote.Record{ID: row.ID, Data: data}, nil
}

// List implements remote.Store; sort-key order is creation order
func (s *DocumentStore) List(ctx context.Context, collection string) ([]remote.Record, error) {
	p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    aws.String("#c = :c"),
		ExpressionAttributeNames:  map[string]string{"#c": attrCollection},
		ExpressionAttributeValues: map[string]types.AttributeValue{":c": &types.AttributeValueMemberS{Value: collection}},
		ConsistentRead:            aws.Bool(true),
	})

	var records []remote.Record
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, err)
		}
		for _, item := range page.Items {
			rec, err := toRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Get implements remote.Store
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (remote.Record, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            key(collection, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return remote.Record{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	if out.Item == nil {
		return remote.Record{}, notFound(collection, id)
	}
	return toRecord(out.Item)
}

// Create implements remote.Store
func (s *DocumentStore) Create(ctx context.Context, collection string, payload any) (remote.Record, error) {
	data, err := remote.Marshal(payload)
	if err != nil {
		return remote.Record{}, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return remote.Record{}, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	docAV, err := attributevalue.Marshal(doc)
	if err != nil {
		return remote.Record{}, fmt.Errorf("marshal document: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return remote.Record{}, fmt.Errorf("generate id: %w", err)
	}

	item := key(collection, id.String())
	item[attrDoc] = docAV
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return remote.Record{}, fmt.Errorf("failed to create in %s: %w", collection, err)
	}
	return remote.Record{ID: id.String(), Data: data}, nil
}

// Patch implements remote.Store, setting each field inside the document map
func (s *DocumentStore) Patch(ctx context.Context, collection, id string, partial map[string]any) error {
	if len(partial) == 0 {
		return nil
	}

	fields := make([]string, 0, len(partial))
	for f := range partial {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	expr := "SET "
	names := map[string]string{"#doc": attrDoc, "#id": attrID}
	values := make(map[string]types.AttributeValue, len(fields))
	for i, f := range fields {
		namePh := fmt.Sprintf("#f%d", i)
		valuePh := fmt.Sprintf(":v%d", i)
		if i > 0 {
			expr += ", "
		}
		expr += fmt.Sprintf("#doc.%s = %s", namePh, valuePh)
		names[namePh] = f
		av, err := attributevalue.Marshal(partial[f])
		if err != nil {
			return fmt.Errorf("marshal update value: %w", err)
		}
		values[valuePh] = av
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       key(collection, id),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return notFound(collection, id)
		}
		return fmt.Errorf("failed to patch %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete implements remote.Store
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.table),
		Key:                      key(collection, id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": attrID},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return notFound(collection, id)
		}
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}
