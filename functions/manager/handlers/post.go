package handlers

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"

	"pricewatch/internal/watcher"
)

type PostRequestBody struct {
	URL   string `json:"url" validate:"required,url"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// HandlePost starts tracking a new item.
func HandlePost(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var body PostRequestBody
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

	// Adding an item never scrapes, so no fetcher is wired here.
	w := watcher.New(st, nil)
	item, err := w.Add(ctx, body.URL, body.Name, body.Email)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Body:       err.Error(),
			Headers:    map[string]string{"Content-Type": "text/plain"},
		}, nil
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 201,
		Body:       item.ID,
		Headers:    map[string]string{"Content-Type": "text/plain"},
	}, nil
}
