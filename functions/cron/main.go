// The cron Lambda runs on an EventBridge schedule. It scans all tracked
// items and enqueues one check task per item.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"pricewatch/internal/clients/sqs"
	"pricewatch/internal/store"
)

func handler(ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	st, err := store.NewDynamoDBStore(ctx, os.Getenv("DYNAMODB_TABLE"))
	if err != nil {
		return errorResponse(err), nil
	}

	items, err := st.List(ctx)
	if err != nil {
		return errorResponse(err), nil
	}

	slog.Info("found items", slog.Int("count", len(items)))
	if len(items) == 0 {
		return textResponse(200, "No items to check"), nil
	}

	sqsClient, err := sqs.NewClient(ctx, os.Getenv("SQS_TASK_URL"))
	if err != nil {
		slog.Error("failed to create SQS client", slog.Any("error", err))
		return errorResponse(err), nil
	}

	successCount := 0
	for _, item := range items {
		itemJSON, err := json.Marshal(item)
		if err != nil {
			slog.Error("failed to marshal item", slog.Any("error", err))
			continue
		}
		if err := sqsClient.SendMessage(ctx, string(itemJSON)); err != nil {
			slog.Error("failed to enqueue item",
				slog.String("url", item.URL), slog.Any("error", err))
			continue
		}
		successCount++
	}

	return textResponse(200, fmt.Sprintf("Checking %d items", successCount)), nil
}

func textResponse(status int, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
	}
}

func errorResponse(err error) events.APIGatewayV2HTTPResponse {
	return textResponse(500, err.Error())
}

func main() {
	lambda.Start(handler)
}
