package authz

import (
	"encoding/base64"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtWithSub(sub string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + sub + `"}`))
	return header + "." + payload + ".sig"
}

func TestUserIDFromAuthorizer(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			Authorizer: &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
				JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{
					Claims: map[string]string{"sub": "user-123"},
				},
			},
		},
	}
	sub, err := UserID(req, false)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestUserIDFromBearerToken(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{
		Headers: map[string]string{"authorization": "Bearer " + jwtWithSub("user-456")},
	}
	sub, err := UserID(req, false)
	require.NoError(t, err)
	assert.Equal(t, "user-456", sub)
}

func TestUserIDDevBypass(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{
		Headers: map[string]string{"X-User-Sub": "dev-user"},
	}

	sub, err := UserID(req, true)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", sub)

	// The bypass header is inert unless explicitly enabled.
	_, err = UserID(req, false)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserIDUnauthorized(t *testing.T) {
	for _, req := range []events.APIGatewayV2HTTPRequest{
		{},
		{Headers: map[string]string{"Authorization": "Bearer not.a.jwt"}},
		{Headers: map[string]string{"Authorization": "Bearer abc"}},
		{Headers: map[string]string{"x-user-sub": "  "}},
	} {
		_, err := UserID(req, true)
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
}
