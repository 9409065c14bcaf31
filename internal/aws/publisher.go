package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// OrderCreatedEvent is the message emitted on the orders queue after checkout.
// The fulfillment worker consumes it.
type OrderCreatedEvent struct {
	OrderID          string  `json:"order_id"`
	OrderNumber      string  `json:"order_number"`
	UserID           string  `json:"user_id"`
	Total            float64 `json:"total"`
	HasFitAdjustment bool    `json:"has_fit_adjustment"`
}

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// PublishOrderCreated serializes the event and sends it with identifying
// message attributes so consumers can filter without parsing the body.
func (p *Publisher) PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msgBody := string(body)
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &msgBody,
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {
				DataType:    awsString("String"),
				StringValue: awsString("order.created"),
			},
			"order_id": {
				DataType:    awsString("String"),
				StringValue: &evt.OrderID,
			},
		},
	}

	_, err = p.SQS.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// awsString helper
func awsString(s string) *string { return &s }
