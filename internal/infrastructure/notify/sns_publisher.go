package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/usecase/interfaces"
)

// SNSAPI is the part of *sns.Client the publisher uses.
type SNSAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ SNSAPI = (*sns.Client)(nil)

// SNSPublisher publishes outbox messages as JSON to one topic. Subscribers
// filter on the topic and type message attributes.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
	logger   *zap.Logger
}

var _ interfaces.IPublisher = (*SNSPublisher)(nil)

func NewSNSPublisher(client SNSAPI, topicARN string, logger *zap.Logger) *SNSPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SNSPublisher{client: client, topicARN: topicARN, logger: logger}
}

func (p *SNSPublisher) Publish(ctx context.Context, msg entities.OutboxMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode outbox message %s: %w", msg.ID, err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"topic":       stringAttribute(string(msg.Topic)),
			"type":        stringAttribute(msg.Type),
			"record_kind": stringAttribute(string(msg.RecordKind)),
			"message_id":  stringAttribute(msg.ID),
		},
	})
	if err != nil {
		return fmt.Errorf("publish outbox message %s: %w", msg.ID, err)
	}
	p.logger.Debug("outbox message published",
		zap.String("message_id", msg.ID),
		zap.String("type", msg.Type),
		zap.String("sns_message_id", aws.ToString(out.MessageId)))
	return nil
}

func stringAttribute(v string) types.MessageAttributeValue {
	return types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
}

// LogPublisher writes messages to the log. It is used when no topic is
// configured so that local runs still drain the outbox.
type LogPublisher struct {
	logger *zap.Logger
}

var _ interfaces.IPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, msg entities.OutboxMessage) error {
	p.logger.Info("outbox message",
		zap.String("message_id", msg.ID),
		zap.String("topic", string(msg.Topic)),
		zap.String("type", msg.Type),
		zap.String("record_kind", string(msg.RecordKind)),
		zap.String("record_id", msg.RecordID),
		zap.String("recipient", msg.Recipient),
		zap.Any("payload", msg.Payload))
	return nil
}

// NewSNSClient builds an SNS client; endpoint overrides the regional one
// for local emulators.
func NewSNSClient(awsCfg aws.Config, endpoint string) *sns.Client {
	return sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
