package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gettickets/gettickets/internal/commands"
)

func lambdaHandler(ctx context.Context, request events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	app := &cli.App{
		Name:     "gettickets",
		Usage:    "A utility for scraping search results for movies playing in theaters, their showtimes, and ticket links",
		Commands: commands.Movies,
	}

	err := app.RunContext(ctx, []string{"gettickets", request.Body})
	if err != nil {
		return events.LambdaFunctionURLResponse{Body: "error"}, fmt.Errorf("failed to execute app: %v", err)
	}

	return events.LambdaFunctionURLResponse{Body: "success", StatusCode: 200}, nil
}

func main() {
	lambda.Start(lambdaHandler)
}
