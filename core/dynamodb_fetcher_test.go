package core

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"sheetmerge/config"
)

type MockDynamoDBClient struct {
	ScanFunc func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

func (m *MockDynamoDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return m.ScanFunc(ctx, params, optFns...)
}

func TestScanInput(t *testing.T) {
	input := scanInput("reports", map[string]string{"sheet": "F 20.04", "year": "2024"})

	if *input.TableName != "reports" {
		t.Errorf("TableName = %v, want reports", *input.TableName)
	}
	if got := *input.FilterExpression; got != "#k0 = :v0 AND #k1 = :v1" {
		t.Errorf("FilterExpression = %q", got)
	}
	if input.ExpressionAttributeNames["#k0"] != "sheet" || input.ExpressionAttributeNames["#k1"] != "year" {
		t.Errorf("ExpressionAttributeNames = %v", input.ExpressionAttributeNames)
	}
	if _, ok := input.ExpressionAttributeValues[":v0"].(*types.AttributeValueMemberS); !ok {
		t.Errorf(":v0 should be a string attribute")
	}
	if n, ok := input.ExpressionAttributeValues[":v1"].(*types.AttributeValueMemberN); !ok || n.Value != "2024" {
		t.Errorf(":v1 should be the number 2024")
	}

	if plain := scanInput("reports", nil); plain.FilterExpression != nil {
		t.Errorf("FilterExpression should be nil without params")
	}
}

func TestDynamoDBDataFetcher_Fetch(t *testing.T) {
	mockClient := &MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			if *params.TableName != "report_values" {
				t.Errorf("TableName = %v, want report_values", *params.TableName)
			}
			if params.FilterExpression == nil {
				t.Error("FilterExpression is nil")
			}

			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{
						"sheet":  &types.AttributeValueMemberS{Value: "F 20.04"},
						"row":    &types.AttributeValueMemberN{Value: "10"},
						"column": &types.AttributeValueMemberN{Value: "11"},
						"value":  &types.AttributeValueMemberN{Value: "200"},
					},
				},
				Count: 1,
			}, nil
		},
	}

	fetcher := &DynamoDBDataFetcher{Client: mockClient}
	results, err := fetcher.Fetch("report_values", map[string]string{"sheet": "F 20.04"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results count = %d, want 1", len(results))
	}

	items, err := NewReportView(&config.ReportSourceConfig{Name: "report_values"}, results).Items()
	if err != nil {
		t.Fatalf("Items error: %v", err)
	}
	if items[0] != (ValueItem{Row: 10, Column: 11, Value: 200}) {
		t.Errorf("item = %v", items[0])
	}
}
