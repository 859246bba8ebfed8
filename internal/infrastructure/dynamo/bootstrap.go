package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quran-api-nosql/internal/config"
)

// TableCreator is the subset of *dynamodb.Client used by Bootstrap.
type TableCreator interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Bootstrap creates the users and bookmarks tables if they don't already exist.
// Safe to call on every startup; existing tables are skipped.
func Bootstrap(ctx context.Context, client TableCreator, tables config.DynamoTables) {
	createTable(ctx, client, usersTable(tables.Users))
	createTable(ctx, client, bookmarksTable(tables.Bookmarks))
}

func usersTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(fieldUserID), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(fieldUsername), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(fieldEmail), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(fieldUserID), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexUsername, fieldUsername, ""),
			gsi(indexEmail, fieldEmail, ""),
		},
	}
}

// bookmarksTable partitions by owner and sorts by ULID, so a Query on
// user_id returns bookmarks in insertion order and every key lookup is
// ownership-scoped.
func bookmarksTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(fieldUserID), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(fieldBookmarkID), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(fieldUserID), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(fieldBookmarkID), KeyType: types.KeyTypeRange},
		},
	}
}

// gsi builds a GSI descriptor. If sortKey is empty, only a hash key is added.
func gsi(indexName, hashKey, sortKey string) types.GlobalSecondaryIndex {
	ks := []types.KeySchemaElement{
		{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
	}
	if sortKey != "" {
		ks = append(ks, types.KeySchemaElement{
			AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange,
		})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(indexName),
		KeySchema:  ks,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func createTable(ctx context.Context, client TableCreator, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException means the table already exists.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			slog.Warn("could not create table", "table", *input.TableName, "err", err)
		}
	} else {
		slog.Info("created table", "table", *input.TableName)
	}
}
