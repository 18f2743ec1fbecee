package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/storage"
)

const (
	kindEstimate = "estimate"
	kindEmailLog = "email_log"
	listLimit    = 200
)

// API is the subset of the DynamoDB client the store calls.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// estimateItem embeds the lead; the table has no secondary indexes.
//
// Table requirements:
//   - PK: id (string)
type estimateItem struct {
	ID             string `dynamodbav:"id"`
	Kind           string `dynamodbav:"kind"`
	LeadID         string `dynamodbav:"lead_id"`
	Status         string `dynamodbav:"status"`
	ProjectName    string `dynamodbav:"project_name"`
	FullName       string `dynamodbav:"full_name"`
	Email          string `dynamodbav:"email"`
	Phone          string `dynamodbav:"phone"`
	Address        string `dynamodbav:"address"`
	DetailsJSON    string `dynamodbav:"details_json"`
	Subtotal       string `dynamodbav:"subtotal"`
	VolumeDiscount string `dynamodbav:"volume_discount"`
	TotalCost      string `dynamodbav:"total_cost"`
	CreatedAt      string `dynamodbav:"created_at"`
}

type emailLogItem struct {
	ID            string `dynamodbav:"id"`
	Kind          string `dynamodbav:"kind"`
	EstimateID    string `dynamodbav:"estimate_id"`
	Recipient     string `dynamodbav:"recipient"`
	Subject       string `dynamodbav:"subject"`
	TemplateName  string `dynamodbav:"template_name"`
	Delivered     bool   `dynamodbav:"delivered"`
	WasRedirected bool   `dynamodbav:"was_redirected"`
	Error         string `dynamodbav:"error,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
}

// Store implements storage.EstimateStore on DynamoDB.
type Store struct {
	ddb       API
	tableName string
	now       func() time.Time
	newID     func() string
}

var _ storage.EstimateStore = (*Store)(nil)

func New(ddb API, tableName string) *Store {
	return &Store{
		ddb:       ddb,
		tableName: tableName,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SaveEstimate writes the estimate with a conditional put keyed by the
// submission id. A retried submission finds the existing item instead.
func (s *Store) SaveEstimate(ctx context.Context, submissionID string, summary models.EstimateSummary) (storage.SaveResult, error) {
	estimateID := strings.TrimSpace(submissionID)
	if estimateID == "" {
		estimateID = s.newID()
	}

	details, err := json.Marshal(summary.Rooms)
	if err != nil {
		return storage.SaveResult{}, fmt.Errorf("encode estimate rooms: %w", err)
	}

	contact := summary.ContactInfo
	it := estimateItem{
		ID:             estimateID,
		Kind:           kindEstimate,
		LeadID:         s.newID(),
		Status:         models.EstimateStatusPending,
		ProjectName:    contact.ProjectName,
		FullName:       contact.FullName,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Address:        contact.Address,
		DetailsJSON:    string(details),
		Subtotal:       floatToString(summary.Subtotal),
		VolumeDiscount: floatToString(summary.VolumeDiscount),
		TotalCost:      floatToString(summary.Total),
		CreatedAt:      s.now().UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return storage.SaveResult{}, fmt.Errorf("marshal estimate: %w", err)
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if !errors.As(err, &cfe) {
			return storage.SaveResult{}, fmt.Errorf("put estimate: %w", err)
		}
		existing, err := s.getItem(ctx, estimateID)
		if err != nil {
			return storage.SaveResult{}, err
		}
		return storage.SaveResult{EstimateID: existing.ID, LeadID: existing.LeadID}, nil
	}

	return storage.SaveResult{EstimateID: estimateID, LeadID: it.LeadID, Created: true}, nil
}

func (s *Store) getItem(ctx context.Context, id string) (estimateItem, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return estimateItem{}, fmt.Errorf("get estimate: %w", err)
	}
	if len(out.Item) == 0 {
		return estimateItem{}, fmt.Errorf("estimate %s: %w", id, storage.ErrNotFound)
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return estimateItem{}, fmt.Errorf("unmarshal estimate: %w", err)
	}
	if it.Kind != kindEstimate {
		return estimateItem{}, fmt.Errorf("estimate %s: %w", id, storage.ErrNotFound)
	}
	return it, nil
}

func (s *Store) GetEstimate(ctx context.Context, id string) (models.SavedEstimate, error) {
	it, err := s.getItem(ctx, id)
	if err != nil {
		return models.SavedEstimate{}, err
	}
	return fromEstimateItem(it)
}

// ListEstimates scans the table. Fine for the volume a single painting
// business produces; a GSI on kind/created_at would be needed beyond that.
func (s *Store) ListEstimates(ctx context.Context, query string) ([]models.EstimateListItem, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	p := dynamodb.NewScanPaginator(s.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(s.tableName),
		FilterExpression: aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{
			"#kind": "kind",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kindEstimate},
		},
	})

	items := make([]models.EstimateListItem, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan estimates: %w", err)
		}
		var batch []estimateItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal estimates: %w", err)
		}
		for _, it := range batch {
			if needle != "" && !matches(it, needle) {
				continue
			}
			createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
			total, _ := strconv.ParseFloat(it.TotalCost, 64)
			items = append(items, models.EstimateListItem{
				ID:          it.ID,
				CreatedAt:   createdAt,
				ProjectName: it.ProjectName,
				FullName:    it.FullName,
				Email:       it.Email,
				Total:       total,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	if len(items) > listLimit {
		items = items[:listLimit]
	}
	return items, nil
}

func matches(it estimateItem, needle string) bool {
	for _, field := range []string{it.ProjectName, it.FullName, it.Email} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *Store) LogEmail(ctx context.Context, entry models.EmailLog) error {
	it := emailLogItem{
		ID:            "email#" + entry.EstimateID + "#" + s.newID(),
		Kind:          kindEmailLog,
		EstimateID:    entry.EstimateID,
		Recipient:     entry.Recipient,
		Subject:       entry.Subject,
		TemplateName:  entry.TemplateName,
		Delivered:     entry.Delivered,
		WasRedirected: entry.WasRedirected,
		Error:         entry.Error,
		CreatedAt:     s.now().UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("marshal email log: %w", err)
	}
	if _, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put email log: %w", err)
	}
	return nil
}

func fromEstimateItem(it estimateItem) (models.SavedEstimate, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	subtotal, _ := strconv.ParseFloat(it.Subtotal, 64)
	discount, _ := strconv.ParseFloat(it.VolumeDiscount, 64)
	total, _ := strconv.ParseFloat(it.TotalCost, 64)

	rooms := make([]models.Room, 0)
	if it.DetailsJSON != "" {
		if err := json.Unmarshal([]byte(it.DetailsJSON), &rooms); err != nil {
			return models.SavedEstimate{}, fmt.Errorf("decode estimate rooms: %w", err)
		}
	}

	return models.SavedEstimate{
		ID:        it.ID,
		LeadID:    it.LeadID,
		Status:    it.Status,
		CreatedAt: createdAt,
		Summary: models.EstimateSummary{
			Subtotal:       subtotal,
			VolumeDiscount: discount,
			Total:          total,
			Rooms:          rooms,
			ContactInfo: models.ContactInfo{
				ProjectName: it.ProjectName,
				FullName:    it.FullName,
				Email:       it.Email,
				Phone:       it.Phone,
				Address:     it.Address,
			},
		},
	}, nil
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
