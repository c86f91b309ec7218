package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/presq/leadcapture/internal/submissions"
	"github.com/presq/leadcapture/pkg/logging"
)

// Collections under the company-scoped path. Single table, composite keys:
// pk = COMPANY#<companyId>, sk = <collection>#<id>.
const (
	CollectionSubmissions = "contact_submissions"
	CollectionAnalytics   = "analytics"
	CollectionSystemLogs  = "system_logs"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Gateway owns the write path to the document store. It only appends records;
// the read and status-update operations exist solely for the notification
// pipeline, never for the submission path or external callers.
type Gateway struct {
	client    dynamoAPI
	tableName string
	companyID string
	logger    *logging.Logger
	now       func() time.Time
}

// NewGateway builds a gateway scoped to one company deployment.
func NewGateway(client dynamoAPI, tableName, companyID string, logger *logging.Logger) *Gateway {
	if client == nil {
		panic("store: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("store: table name cannot be empty")
	}
	if companyID == "" {
		panic("store: company id cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		client:    client,
		tableName: tableName,
		companyID: companyID,
		logger:    logger,
		now:       time.Now,
	}
}

func (g *Gateway) pk() string {
	return "COMPANY#" + g.companyID
}

func sk(collection, id string) string {
	return collection + "#" + id
}

func (g *Gateway) keyAttrs(collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: g.pk()},
		"sk": &types.AttributeValueMemberS{Value: sk(collection, id)},
	}
}

// CreateSubmission appends a new submission record. Server timestamps are
// assigned here. A duplicate submission id fails the conditional write and is
// reported as ErrDuplicateSubmission. Any failure carries a user-safe message
// separate from the wrapped diagnostic.
func (g *Gateway) CreateSubmission(ctx context.Context, sub *submissions.Submission) error {
	if sub == nil {
		return errors.New("store: submission cannot be nil")
	}
	if sub.SubmissionID == "" {
		return errors.New("store: submission id required")
	}

	now := g.now().UTC().Format(time.RFC3339Nano)
	sub.CreatedAt = now
	sub.UpdatedAt = now

	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return &GatewayError{
			UserMessage: UserMessagePersistenceFailure,
			Err:         fmt.Errorf("store: marshal submission %s: %w", sub.SubmissionID, err),
		}
	}
	for k, v := range g.keyAttrs(CollectionSubmissions, sub.SubmissionID) {
		item[k] = v
	}

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(g.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(sk)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return &GatewayError{
				UserMessage: UserMessagePersistenceFailure,
				Err:         fmt.Errorf("store: submission %s: %w", sub.SubmissionID, ErrDuplicateSubmission),
			}
		}
		return &GatewayError{
			UserMessage: UserMessagePersistenceFailure,
			Err:         fmt.Errorf("store: persist submission %s: %w", sub.SubmissionID, err),
		}
	}

	g.logger.Info("submission stored",
		"submission_id", sub.SubmissionID,
		"lead_score", sub.LeadScore,
		"priority", sub.Priority,
	)
	return nil
}

// LogAnalyticsEvent appends a fire-and-forget tracking record. Callers treat
// failures as warnings; nothing reads these back.
func (g *Gateway) LogAnalyticsEvent(ctx context.Context, event submissions.AnalyticsEvent) error {
	event.CompanyID = g.companyID
	if event.Source == "" {
		event.Source = submissions.DefaultSource
	}
	event.CreatedAt = g.now().UTC().Format(time.RFC3339Nano)

	return g.appendRecord(ctx, CollectionAnalytics, event)
}

// LogError appends an operator-facing error record. Best effort only.
func (g *Gateway) LogError(ctx context.Context, errorType string, cause error, logCtx map[string]any) error {
	record := submissions.ErrorLog{
		ErrorType: errorType,
		CompanyID: g.companyID,
		Source:    submissions.DefaultSource,
		Context:   logCtx,
		CreatedAt: g.now().UTC().Format(time.RFC3339Nano),
	}
	if cause != nil {
		record.Message = cause.Error()
	}

	return g.appendRecord(ctx, CollectionSystemLogs, record)
}

func (g *Gateway) appendRecord(ctx context.Context, collection string, record any) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("store: marshal %s record: %w", collection, err)
	}
	for k, v := range g.keyAttrs(collection, uuid.New().String()) {
		item[k] = v
	}

	if _, err := g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(g.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("store: append %s record: %w", collection, err)
	}
	return nil
}

// RecordEmailStatus writes the notification outcome onto the originating
// submission exactly once. A second write fails the condition and returns
// ErrStatusAlreadyRecorded, keeping the automatic trigger idempotent.
func (g *Gateway) RecordEmailStatus(ctx context.Context, submissionID string, status submissions.EmailNotifications) error {
	if submissionID == "" {
		return errors.New("store: submission id required")
	}

	statusAttr, err := attributevalue.Marshal(&status)
	if err != nil {
		return fmt.Errorf("store: marshal email status: %w", err)
	}

	_, err = g.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(g.tableName),
		Key:       g.keyAttrs(CollectionSubmissions, submissionID),
		UpdateExpression: aws.String(
			"SET emailNotifications = :status, updatedAt = :updated",
		),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  statusAttr,
			":updated": &types.AttributeValueMemberS{Value: g.now().UTC().Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_exists(sk) AND attribute_not_exists(emailNotifications)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("store: submission %s: %w", submissionID, ErrStatusAlreadyRecorded)
		}
		return fmt.Errorf("store: record email status for %s: %w", submissionID, err)
	}
	return nil
}

// GetSubmission loads a submission for the notification pipeline's resend
// path. Not part of the public write boundary.
func (g *Gateway) GetSubmission(ctx context.Context, submissionID string) (*submissions.Submission, error) {
	if submissionID == "" {
		return nil, errors.New("store: submission id required")
	}

	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.tableName),
		Key:       g.keyAttrs(CollectionSubmissions, submissionID),
	})
	if err != nil {
		return nil, fmt.Errorf("store: fetch submission %s: %w", submissionID, err)
	}
	if out.Item == nil {
		return nil, ErrSubmissionNotFound
	}

	var sub submissions.Submission
	if err := attributevalue.UnmarshalMap(out.Item, &sub); err != nil {
		return nil, fmt.Errorf("store: decode submission %s: %w", submissionID, err)
	}
	return &sub, nil
}
