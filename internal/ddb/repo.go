// Package ddb provides the DynamoDB-backed record store for pericias.
package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/acreis/pericias-portal/internal/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is the subset of the DynamoDB client the repository uses.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Repo wraps a DynamoDB client and table name for pericia operations.
type Repo struct {
	DB    API
	Table string
}

// Insert stores a new pericia, ensuring no duplicate id exists. The status
// enumeration is enforced here, standing in for the original store's check
// constraint: an unknown status is rejected as a normal per-row error.
func (r *Repo) Insert(ctx context.Context, p models.Pericia) error {
	if !models.ValidStatus(p.Status) {
		return fmt.Errorf("invalid status value %q", p.Status)
	}
	p.PK, p.SK = MakeKeys(p.UserID, p.ID)
	if p.CreatedAt == "" {
		p.CreatedAt = NowISO()
	}
	p.UpdatedAt = p.CreatedAt

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return err
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.Table,
		Item:                item,
		ConditionExpression: awsStr("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	return err
}

// FindByProcesso looks up the single pericia with the given business key in
// the owner's partition. Zero matches yield models.ErrNotFound; more than one
// yields models.ErrDuplicateProcesso.
//
// The query is filtered, so a page can come back empty while later pages still
// hold the match; every page is drained before deciding the row is absent.
func (r *Repo) FindByProcesso(ctx context.Context, userID, numeroProcesso string) (*models.Pericia, error) {
	pk, _ := MakeKeys(userID, "")

	var match map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.DB.Query(ctx, &dynamodb.QueryInput{
			TableName:              &r.Table,
			KeyConditionExpression: awsStr("PK = :pk AND begins_with(SK, :prefix)"),
			FilterExpression:       awsStr("numero_processo = :np"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: pk},
				":prefix": &types.AttributeValueMemberS{Value: skPrefix},
				":np":     &types.AttributeValueMemberS{Value: numeroProcesso},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			if match != nil {
				return nil, models.ErrDuplicateProcesso
			}
			match = item
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	if match == nil {
		return nil, models.ErrNotFound
	}
	var p models.Pericia
	if err := attributevalue.UnmarshalMap(match, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateFields applies a sparse patch to an owned pericia. Only the fields
// present in the patch are written; updated_at is always bumped.
func (r *Repo) UpdateFields(ctx context.Context, userID, periciaID string, patch map[string]any) error {
	if v, ok := patch["status"]; ok {
		s, _ := v.(string)
		if !models.ValidStatus(models.Status(s)) {
			return fmt.Errorf("invalid status value %q", s)
		}
	}

	pk, sk := MakeKeys(userID, periciaID)
	names := make(map[string]string, len(patch)+1)
	values := make(map[string]types.AttributeValue, len(patch)+1)
	expr := "SET "
	i := 0
	set := func(field string, v any) error {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return err
		}
		n := fmt.Sprintf("#f%d", i)
		val := fmt.Sprintf(":v%d", i)
		if i > 0 {
			expr += ", "
		}
		expr += n + " = " + val
		names[n] = field
		values[val] = av
		i++
		return nil
	}
	for field, v := range patch {
		if err := set(field, v); err != nil {
			return err
		}
	}
	if err := set("updated_at", NowISO()); err != nil {
		return err
	}

	_, err := r.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.Table,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
		UpdateExpression:          &expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsStr("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	return err
}

// ListByUser returns up to limit pericias owned by the user, following
// pagination until the limit is reached or the partition is exhausted.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit int32) ([]models.Pericia, error) {
	pk, _ := MakeKeys(userID, "")

	items := make([]models.Pericia, 0, limit)
	var startKey map[string]types.AttributeValue
	for {
		remaining := limit - int32(len(items))
		out, err := r.DB.Query(ctx, &dynamodb.QueryInput{
			TableName:              &r.Table,
			KeyConditionExpression: awsStr("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: pk},
				":prefix": &types.AttributeValueMemberS{Value: skPrefix},
			},
			Limit:             &remaining,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []models.Pericia
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		if int32(len(items)) >= limit || len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

const skPrefix = "PERICIA#"

// awsStr is a helper to get a pointer to a string literal.
func awsStr(s string) *string { return &s }

// NowISO returns the current time in ISO8601 format.
func NowISO() string { return time.Now().UTC().Format(time.RFC3339) }

// MakeKeys constructs the partition key (PK) and sort key (SK) for a pericia.
func MakeKeys(sub, periciaID string) (pk, sk string) {
	return fmt.Sprintf("USER#%s", sub), skPrefix + periciaID
}
