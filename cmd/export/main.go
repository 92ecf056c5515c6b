// Package main exports the caller's pericias to a workbook and returns a
// presigned download link.
package main

import (
	"bytes"
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/acreis/pericias-portal/internal/api"
	"github.com/acreis/pericias-portal/internal/authz"
	"github.com/acreis/pericias-portal/internal/awsutil"
	"github.com/acreis/pericias-portal/internal/config"
	"github.com/acreis/pericias-portal/internal/ddb"
	"github.com/acreis/pericias-portal/internal/httpx"
	"github.com/acreis/pericias-portal/internal/s3io"
	"github.com/acreis/pericias-portal/internal/sheet"
)

const exportPageSize = 1000

// App holds the application state, including configuration and AWS clients.
type App struct {
	env  config.Env
	repo *ddb.Repo
	s3c  *s3.Client
	s3p  *s3.PresignClient
	log  *logrus.Logger
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	env := config.MustLoad()
	if env.Bucket == "" {
		log.Fatal("missing env S3_BUCKET")
	}
	cfg, endpoint, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}

	// S3 client: use path-style when hitting LocalStack
	s3c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
		}
	})

	app := &App{
		env:  env,
		repo: &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table},
		s3c:  s3c,
		s3p:  s3.NewPresignClient(s3c),
		log:  log,
	}
	lambda.Start(app.handler)
}

func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	sub, err := authz.UserID(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.Error(http.StatusUnauthorized, "missing user")
	}

	pericias, err := a.repo.ListByUser(ctx, sub, exportPageSize)
	if err != nil {
		a.log.WithError(err).Error("list failed")
		return httpx.Error(http.StatusInternalServerError, "db error")
	}

	data, err := sheet.BuildExport(pericias)
	if err != nil {
		a.log.WithError(err).Error("export build failed")
		return httpx.Error(http.StatusInternalServerError, "export error")
	}

	key := s3io.ExportKey(sub, ulid.Make().String())
	_, err = a.s3c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.env.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(s3io.ContentTypeXLSX),
	})
	if err != nil {
		a.log.WithError(err).Error("export upload failed")
		return httpx.Error(http.StatusInternalServerError, "storage error")
	}

	url, ttl, err := s3io.PresignGet(ctx, a.s3p, a.env.Bucket, key, a.env.PresignTTL)
	if err != nil {
		a.log.WithError(err).Error("presign failed")
		return httpx.Error(http.StatusInternalServerError, "presign error")
	}

	return httpx.JSON(http.StatusOK, api.ExportResponse{
		Key:       key,
		URL:       url,
		ExpiresIn: int(ttl.Seconds()),
		Count:     len(pericias),
	})
}
