//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// issueToken signs a token the way the identity provider would.
func (s *IntegrationTestSuite) issueToken(userID string) string {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Name:  "Lifter " + userID,
		Email: userID + "@liftlog.test",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(testIDPSecret))
	s.Require().NoError(err)
	return token
}

// do sends a request and decodes a JSON response into out, when out is not nil.
func (s *IntegrationTestSuite) do(method, path, token string, body any, out any) (int, string) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	if out != nil && resp.StatusCode < 300 {
		s.Require().NoError(json.Unmarshal(respBytes, out))
	}
	return resp.StatusCode, string(bytes.TrimSpace(respBytes))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
