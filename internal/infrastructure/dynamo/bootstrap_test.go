package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quran-api-nosql/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCreator struct {
	inputs []*dynamodb.CreateTableInput
	err    error
}

func (c *recordingCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	c.inputs = append(c.inputs, in)
	return &dynamodb.CreateTableOutput{}, c.err
}

func TestBootstrap_CreatesBothTables(t *testing.T) {
	c := &recordingCreator{}
	Bootstrap(context.Background(), c, config.DynamoTables{Users: "u", Bookmarks: "b"})

	require.Len(t, c.inputs, 2)
	assert.Equal(t, "u", *c.inputs[0].TableName)
	assert.Len(t, c.inputs[0].GlobalSecondaryIndexes, 2)

	bm := c.inputs[1]
	assert.Equal(t, "b", *bm.TableName)
	require.Len(t, bm.KeySchema, 2)
	assert.Equal(t, fieldUserID, *bm.KeySchema[0].AttributeName)
	assert.Equal(t, types.KeyTypeHash, bm.KeySchema[0].KeyType)
	assert.Equal(t, fieldBookmarkID, *bm.KeySchema[1].AttributeName)
	assert.Equal(t, types.KeyTypeRange, bm.KeySchema[1].KeyType)
}

func TestBootstrap_ToleratesErrors(t *testing.T) {
	c := &recordingCreator{err: errors.New("access denied")}
	assert.NotPanics(t, func() {
		Bootstrap(context.Background(), c, config.DynamoTables{Users: "u", Bookmarks: "b"})
	})
	assert.Len(t, c.inputs, 2)
}

func TestGSI_WithSortKey(t *testing.T) {
	g := gsi("idx", "a", "b")
	require.Len(t, g.KeySchema, 2)
	assert.Equal(t, "b", *g.KeySchema[1].AttributeName)
}
