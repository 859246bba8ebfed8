package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quran-api-nosql/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
type UserRepo struct {
	client    API
	tableName string
}

func NewUserRepo(client API, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Put inserts a new user together with marker items reserving its email and
// username. The three writes share one transaction, so a second user with the
// same email or username fails with ErrConflict even when the GSIs lag.
func (r *UserRepo) Put(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			r.putIfAbsent(item),
			r.putIfAbsent(r.marker(markerEmail+u.Email, u.UserID)),
			r.putIfAbsent(r.marker(markerUsername+u.Username, u.UserID)),
		},
	})
	if isTransactionConditionFailed(err) {
		return fmt.Errorf("email or username already registered: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func (r *UserRepo) marker(key, ownerID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		fieldUserID: &types.AttributeValueMemberS{Value: key},
		fieldOwner:  &types.AttributeValueMemberS{Value: ownerID},
	}
}

func (r *UserRepo) putIfAbsent(item map[string]types.AttributeValue) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{
				"#pk": fieldUserID,
			},
		},
	}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.queryGSI(ctx, indexUsername, fieldUsername, username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.queryGSI(ctx, indexEmail, fieldEmail, email)
}

func (r *UserRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}
