// Package sqs wraps the SQS client used to pass work between the pipeline
// Lambdas.
package sqs

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type Client struct {
	client   *sqs.Client
	queueURL string
}

// NewClient returns a client bound to the given queue URL.
func NewClient(ctx context.Context, queueURL string) (*Client, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("queue URL is not set")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &Client{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// SendMessage enqueues one message body.
func (c *Client) SendMessage(ctx context.Context, message string) error {
	_, err := c.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &c.queueURL,
		MessageBody: &message,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS queue, %w", err)
	}
	return nil
}
