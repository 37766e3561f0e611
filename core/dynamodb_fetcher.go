package core

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient defines the interface needed for scanning.
type DynamoDBClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBDataFetcher implements DataFetcher using AWS DynamoDB.
// Location is the table name.
type DynamoDBDataFetcher struct {
	Client DynamoDBClient
}

// NewDynamoDBDataFetcher creates a new fetcher with the given AWS config.
func NewDynamoDBDataFetcher(cfg aws.Config) *DynamoDBDataFetcher {
	return &DynamoDBDataFetcher{
		Client: dynamodb.NewFromConfig(cfg),
	}
}

// scanInput builds the Scan request. Filter values that parse as numbers are
// compared as DynamoDB numbers, everything else as strings.
func scanInput(table string, params map[string]string) *dynamodb.ScanInput {
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	if len(params) == 0 {
		return input
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	conditions := make([]string, 0, len(keys))
	for i, k := range keys {
		// placeholders avoid clashes with reserved words
		kName := fmt.Sprintf("#k%d", i)
		vName := fmt.Sprintf(":v%d", i)
		conditions = append(conditions, fmt.Sprintf("%s = %s", kName, vName))
		names[kName] = k

		v := params[k]
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			values[vName] = &types.AttributeValueMemberN{Value: v}
		} else {
			values[vName] = &types.AttributeValueMemberS{Value: v}
		}
	}

	input.FilterExpression = aws.String(strings.Join(conditions, " AND "))
	input.ExpressionAttributeNames = names
	input.ExpressionAttributeValues = values
	return input
}

// Fetch scans the whole table, following pagination.
func (f *DynamoDBDataFetcher) Fetch(location string, params map[string]string) ([]map[string]interface{}, error) {
	paginator := dynamodb.NewScanPaginator(f.Client, scanInput(location, params))

	var items []map[string]interface{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.TODO())
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", location, err)
		}

		var pageItems []map[string]interface{}
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, pageItems...)
	}

	return items, nil
}
