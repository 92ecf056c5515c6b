// Package main ingests a pericia spreadsheet and creates one case per row.
package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/acreis/pericias-portal/internal/authz"
	"github.com/acreis/pericias-portal/internal/awsutil"
	"github.com/acreis/pericias-portal/internal/config"
	"github.com/acreis/pericias-portal/internal/ddb"
	"github.com/acreis/pericias-portal/internal/httpx"
	"github.com/acreis/pericias-portal/internal/importer"
	"github.com/acreis/pericias-portal/internal/validate"
)

// App holds the application state, including configuration and AWS clients.
type App struct {
	env  config.Env
	repo *ddb.Repo
	log  *logrus.Logger
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

// handler authenticates the caller, pulls the uploaded file out of the
// multipart body and runs the import batch.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	sub, err := authz.UserID(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.Error(http.StatusUnauthorized, "missing user")
	}

	file, filename, err := httpx.FilePart(req, "file", a.env.MaxUploadBytes)
	if err != nil {
		return httpx.Error(http.StatusBadRequest, err.Error())
	}
	if filename != "" {
		if err := validate.FilenameSpreadsheet(filename); err != nil {
			return httpx.Error(http.StatusBadRequest, err.Error())
		}
	}

	entry := a.log.WithFields(logrus.Fields{
		"batch_id": uuid.NewString(),
		"user_id":  sub,
		"filename": filename,
	})
	opts := importer.Options{
		LegacyStatus: req.QueryStringParameters["legacy"] == "1",
		Perito:       a.env.DefaultPerito,
	}

	res, err := importer.New(a.repo, entry, opts).Import(ctx, file, sub)
	if err != nil {
		entry.WithError(err).Error("import aborted")
		return httpx.Error(http.StatusBadRequest, err.Error())
	}
	return httpx.JSON(http.StatusOK, res)
}
