// The checker Lambda consumes check tasks from SQS, scrapes the item's
// current price, persists the updated state, and enqueues a notification for
// any detected changes.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"pricewatch/internal/clients/sqs"
	"pricewatch/internal/models"
	"pricewatch/internal/notify"
	"pricewatch/internal/scraper"
	"pricewatch/internal/store"
	"pricewatch/internal/watcher"
)

func handler(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	response := events.SQSEventResponse{}

	st, err := store.NewDynamoDBStore(ctx, os.Getenv("DYNAMODB_TABLE"))
	if err != nil {
		return response, err
	}

	notifyQueue, err := sqs.NewClient(ctx, os.Getenv("SQS_NOTIFY_URL"))
	if err != nil {
		return response, err
	}

	w := watcher.New(st, scraper.New())

	for _, record := range sqsEvent.Records {
		slog.Info("processing task", slog.String("messageId", record.MessageId))

		var item models.Item
		if err := json.Unmarshal([]byte(record.Body), &item); err != nil {
			slog.Error("failed to unmarshal SQS message", slog.Any("error", err))
			continue // skip bad message
		}

		changes := w.CheckItem(ctx, &item)

		if err := st.Put(ctx, item); err != nil {
			slog.Error("failed to persist item",
				slog.String("url", item.URL), slog.Any("error", err))
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
			continue
		}

		if len(changes) == 0 {
			continue
		}

		recipient := item.Email
		if recipient == "" {
			recipient = os.Getenv("ALERT_TO")
		}

		notification, err := notify.BuildNotification(recipient, changes)
		if err != nil {
			slog.Error("failed to render notification", slog.Any("error", err))
			continue
		}

		payload, err := json.Marshal(notification)
		if err != nil {
			slog.Error("failed to marshal notification", slog.Any("error", err))
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
			continue
		}
		if err := notifyQueue.SendMessage(ctx, string(payload)); err != nil {
			slog.Error("failed to enqueue notification", slog.Any("error", err))
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		}
	}

	return response, nil
}

func main() {
	lambda.Start(handler)
}
