package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quran-api-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Put_ReservesEmailAndUsername(t *testing.T) {
	var got *dynamodb.TransactWriteItemsInput
	api := &fakeAPI{transact: func(in *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
		got = in
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}}
	repo := NewUserRepo(api, "users")

	u := &domain.User{UserID: "u1", Username: "A", Email: "a@x.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Put(context.Background(), u))

	require.NotNil(t, got)
	require.Len(t, got.TransactItems, 3)
	var keys []string
	for _, ti := range got.TransactItems {
		require.NotNil(t, ti.Put)
		assert.Equal(t, "users", *ti.Put.TableName)
		assert.Equal(t, "attribute_not_exists(#pk)", *ti.Put.ConditionExpression)
		keys = append(keys, strAttr(t, ti.Put.Item, "user_id"))
	}
	assert.Equal(t, []string{"u1", "email#a@x.com", "username#A"}, keys)
	assert.Equal(t, "hash", strAttr(t, got.TransactItems[0].Put.Item, "password_hash"))

	// Markers must not carry the GSI key attributes.
	for _, ti := range got.TransactItems[1:] {
		assert.NotContains(t, ti.Put.Item, "email")
		assert.NotContains(t, ti.Put.Item, "username")
		assert.Equal(t, "u1", strAttr(t, ti.Put.Item, "owner_id"))
	}
}

func TestUserRepo_Put_CancelledTransactionIsConflict(t *testing.T) {
	api := &fakeAPI{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
		return nil, &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}}
	}}
	err := NewUserRepo(api, "users").Put(context.Background(), &domain.User{UserID: "u1", Username: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_Put_OtherFailureIsNotConflict(t *testing.T) {
	api := &fakeAPI{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
		return nil, errors.New("service unavailable")
	}}
	err := NewUserRepo(api, "users").Put(context.Background(), &domain.User{UserID: "u1", Username: "A", Email: "a@x.com"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrConflict))
}

// conditionalTable applies attribute_not_exists puts atomically, the way
// DynamoDB does, while its GSI query never sees any item.
type conditionalTable struct {
	keys map[string]bool
}

func (c *conditionalTable) transact(in *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, ti := range in.TransactItems {
		key := ti.Put.Item[fieldUserID].(*types.AttributeValueMemberS).Value
		code := "None"
		if c.keys[key] {
			code, failed = "ConditionalCheckFailed", true
		}
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
	}
	if failed {
		return nil, &types.TransactionCanceledException{CancellationReasons: reasons}
	}
	for _, ti := range in.TransactItems {
		c.keys[ti.Put.Item[fieldUserID].(*types.AttributeValueMemberS).Value] = true
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func TestUserRepo_Put_DuplicateEmailWhileIndexIsStale(t *testing.T) {
	table := &conditionalTable{keys: map[string]bool{}}
	api := &fakeAPI{
		transact: table.transact,
		query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{}, nil
		},
	}
	repo := NewUserRepo(api, "users")
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &domain.User{UserID: "u1", Username: "A", Email: "a@x.com"}))

	_, err := repo.GetByEmail(ctx, "a@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound, "index has not caught up")

	err = repo.Put(ctx, &domain.User{UserID: "u2", Username: "B", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	err = repo.Put(ctx, &domain.User{UserID: "u3", Username: "A", Email: "c@x.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, table.keys["u2"])
	assert.False(t, table.keys["email#c@x.com"], "cancelled transaction must not reserve anything")
}

func TestUserRepo_GetByEmail_QueriesIndex(t *testing.T) {
	item, err := attributevalue.MarshalMap(domain.User{UserID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	var got *dynamodb.QueryInput
	api := &fakeAPI{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		got = in
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil
	}}
	u, err := NewUserRepo(api, "users").GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	assert.Equal(t, indexEmail, *got.IndexName)
	assert.Equal(t, "email", got.ExpressionAttributeNames["#a"])
	assert.Equal(t, "a@x.com", strAttr(t, got.ExpressionAttributeValues, ":v"))
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	api := &fakeAPI{query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{}, nil
	}}
	_, err := NewUserRepo(api, "users").GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
