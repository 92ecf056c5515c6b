// Package main serves the downloadable bulk-update template workbook.
package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/acreis/pericias-portal/internal/authz"
	"github.com/acreis/pericias-portal/internal/config"
	"github.com/acreis/pericias-portal/internal/httpx"
	"github.com/acreis/pericias-portal/internal/s3io"
	"github.com/acreis/pericias-portal/internal/sheet"
)

const templateFilename = "modelo_atualizacao_pericias.xlsx"

// App holds the application state.
type App struct {
	env config.Env
	log *logrus.Logger
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	app := &App{env: config.MustLoad(), log: log}
	lambda.Start(app.handler)
}

func (a *App) handler(_ context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if _, err := authz.UserID(req, a.env.DevBypassAuth); err != nil {
		return httpx.Error(http.StatusUnauthorized, "missing user")
	}

	data, err := sheet.BuildUpdateTemplate()
	if err != nil {
		a.log.WithError(err).Error("template build failed")
		return httpx.Error(http.StatusInternalServerError, "template error")
	}
	return httpx.Binary(http.StatusOK, s3io.ContentTypeXLSX, templateFilename, data)
}
