package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/ayzahstore/ayzah-backend/internal/aws"
)

const metricNamespace = "Ayzah/Orders"

// Processor consumes order-created events and publishes order metrics to
// CloudWatch. Confirmation emails and fulfillment hooks hang off the same
// consumer later.
type Processor struct {
	cloudwatch aws.CloudWatchAPI
	nowFunc    func() time.Time
}

// NewProcessor creates a worker processor with the CloudWatch client injected.
func NewProcessor(cw aws.CloudWatchAPI) *Processor {
	return &Processor{
		cloudwatch: cw,
		nowFunc:    time.Now,
	}
}

// Handle receives an SQS batch event and processes each message.
// Returning an error makes Lambda retry the batch; past the redrive limit
// the message lands in the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var evt aws.OrderCreatedEvent
	if err := json.Unmarshal([]byte(rec.Body), &evt); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] order created id=%s number=%s user=%s total=%.2f fit=%t",
		evt.OrderID, evt.OrderNumber, evt.UserID, evt.Total, evt.HasFitAdjustment)

	now := p.nowFunc()
	fit := "false"
	if evt.HasFitAdjustment {
		fit = "true"
	}
	dimensions := []cwtypes.Dimension{
		{Name: strPtr("FitAdjustment"), Value: &fit},
	}

	one := 1.0
	total := evt.Total
	_, err := p.cloudwatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: strPtr(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: strPtr("OrdersCreated"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      &one,
				Dimensions: dimensions,
			},
			{
				MetricName: strPtr("OrderValue"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitNone,
				Value:      &total,
				Dimensions: dimensions,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data for order %s: %w", evt.OrderID, err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
