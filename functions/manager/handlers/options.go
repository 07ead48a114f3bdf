package handlers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// HandleOptions answers CORS preflight requests.
func HandleOptions(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET,POST,DELETE,OPTIONS",
			"Access-Control-Allow-Headers": "*",
		},
	}, nil
}
