// Package main powers the dashboard by listing the current user's pericias.
package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"github.com/acreis/pericias-portal/internal/authz"
	"github.com/acreis/pericias-portal/internal/awsutil"
	"github.com/acreis/pericias-portal/internal/config"
	"github.com/acreis/pericias-portal/internal/ddb"
	"github.com/acreis/pericias-portal/internal/httpx"
)

const listPageSize = 200

// App holds the application state, including configuration and AWS clients.
type App struct {
	env  config.Env
	repo *ddb.Repo
	log  *logrus.Logger
}

func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	sub, err := authz.UserID(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.Error(http.StatusUnauthorized, "missing user")
	}
	items, err := a.repo.ListByUser(ctx, sub, listPageSize)
	if err != nil {
		a.log.WithError(err).Error("list failed")
		return httpx.Error(http.StatusInternalServerError, "db error")
	}
	return httpx.JSON(http.StatusOK, items)
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	env := config.MustLoad()
	cfg, _, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}
	app := &App{
		env:  env,
		repo: &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table},
		log:  log,
	}
	lambda.Start(app.handler)
}
