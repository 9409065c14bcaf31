package aws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type mockSQS struct {
	inputs []*sqs.SendMessageInput
}

func (m *mockSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	m.inputs = append(m.inputs, in)
	return &sqs.SendMessageOutput{}, nil
}

func TestPublishOrderCreated(t *testing.T) {
	mock := &mockSQS{}
	p := NewPublisher(mock, "https://sqs.example/orders")

	evt := OrderCreatedEvent{
		OrderID:          "o1",
		OrderNumber:      "ORD123456",
		UserID:           "u1",
		Total:            264,
		HasFitAdjustment: true,
	}
	if err := p.PublishOrderCreated(context.Background(), evt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 send, got %d", len(mock.inputs))
	}
	in := mock.inputs[0]
	if *in.QueueUrl != "https://sqs.example/orders" {
		t.Fatalf("unexpected queue url %q", *in.QueueUrl)
	}

	var decoded OrderCreatedEvent
	if err := json.Unmarshal([]byte(*in.MessageBody), &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded != evt {
		t.Fatalf("event did not round-trip: %+v", decoded)
	}

	if *in.MessageAttributes["event_type"].StringValue != "order.created" {
		t.Fatal("missing event_type attribute")
	}
	if *in.MessageAttributes["order_id"].StringValue != "o1" {
		t.Fatal("missing order_id attribute")
	}
}
