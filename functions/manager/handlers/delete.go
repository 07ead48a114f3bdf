package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"pricewatch/internal/store"
)

type DeleteRequestBody struct {
	ID string `json:"id" validate:"required"`
}

// HandleDelete stops tracking an item by ID.
func HandleDelete(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var body DeleteRequestBody
	if err := json.Unmarshal([]byte(request.Body), &body); err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 400,
			Body:       "invalid JSON: " + err.Error(),
			Headers:    map[string]string{"Content-Type": "text/plain"},
		}, nil
	}

	if err := Validate.Struct(body); err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 400,
			Body:       "validation failed: " + err.Error(),
			Headers:    map[string]string{"Content-Type": "text/plain"},
		}, nil
	}

	st, err := newStore(ctx)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Body:       err.Error(),
			Headers:    map[string]string{"Content-Type": "text/plain"},
		}, nil
	}

	if err := st.Delete(ctx, body.ID); err != nil {
		status := 500
		if errors.Is(err, store.ErrNotFound) {
			status = 404
		}
		return events.APIGatewayV2HTTPResponse{
			StatusCode: status,
			Body:       err.Error(),
			Headers:    map[string]string{"Content-Type": "text/plain"},
		}, nil
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Body:       "deleted: " + body.ID,
		Headers:    map[string]string{"Content-Type": "text/plain"},
	}, nil
}
