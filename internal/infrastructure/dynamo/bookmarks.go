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

// BookmarkRepo provides typed DynamoDB operations for the bookmarks table.
// Every key is (user_id, bookmark_id), so no operation can reach another
// user's records.
type BookmarkRepo struct {
	client    API
	tableName string
}

func NewBookmarkRepo(client API, tableName string) *BookmarkRepo {
	return &BookmarkRepo{client: client, tableName: tableName}
}

func (r *BookmarkRepo) Put(ctx context.Context, b *domain.Bookmark) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal bookmark: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByUser returns all bookmarks owned by userID, oldest first. It follows
// LastEvaluatedKey until the partition is exhausted.
func (r *BookmarkRepo) ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#pk = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#pk": fieldUserID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(true),
	}
	bookmarks := []domain.Bookmark{}
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.Bookmark
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	for i := range bookmarks {
		bookmarks[i].FillLocator()
	}
	return bookmarks, nil
}

// Delete removes the bookmark only if it exists under userID.
func (r *BookmarkRepo) Delete(ctx context.Context, userID, bookmarkID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey(fieldUserID, userID, fieldBookmarkID, bookmarkID),
		ConditionExpression: aws.String("attribute_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{
			"#sk": fieldBookmarkID,
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("bookmark %s not found: %w", bookmarkID, domain.ErrNotFound)
	}
	return err
}
