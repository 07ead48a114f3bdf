// The mailer Lambda consumes rendered notifications from SQS and sends them
// through SES.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"pricewatch/internal/models"
	"pricewatch/internal/notify"
)

func handler(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	response := events.SQSEventResponse{}

	mailer, err := notify.NewSESMailer(ctx, os.Getenv("SES_FROM_EMAIL"))
	if err != nil {
		return response, err
	}

	for _, record := range sqsEvent.Records {
		slog.Info("processing notification", slog.String("messageId", record.MessageId))

		var notification models.Notification
		if err := json.Unmarshal([]byte(record.Body), &notification); err != nil {
			slog.Error("failed to unmarshal notification", slog.Any("error", err))
			continue // skip bad message
		}

		if err := mailer.Send(ctx, notification); err != nil {
			slog.Error("failed to send email",
				slog.String("to", notification.Email), slog.Any("error", err))
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
