//go:build integration_test || all_tests

package test

import (
	"net/http"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/bodyweight"
)

func (s *IntegrationTestSuite) TestAuth_MeAndLogout() {
	token := s.issueToken("lifter-9")

	status, _ := s.do(http.MethodGet, "/me", "", nil, nil)
	s.Equal(http.StatusUnauthorized, status)

	var me auth.User
	status, _ = s.do(http.MethodGet, "/me", token, nil, &me)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("lifter-9", me.ID)

	status, body := s.do(http.MethodPost, "/auth/logout", token, nil, nil)
	s.Require().Equal(http.StatusOK, status, body)

	// revoked for good
	status, _ = s.do(http.MethodGet, "/me", token, nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestBodyweight_CRUD() {
	token := s.issueToken("lifter-1")

	var entry bodyweight.EntryResponse
	status, body := s.do(http.MethodPost, "/bodyweight", token, map[string]any{
		"weightKg": "82.5",
		"loggedOn": "2025-01-02",
	}, &entry)
	s.Require().Equal(http.StatusCreated, status, body)
	s.Equal("82.50", entry.WeightKg)

	status, body = s.do(http.MethodPost, "/bodyweight", token, map[string]any{
		"weightKg": "1000",
		"loggedOn": "2025-01-02",
	}, nil)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("weight out of range", body)

	var list bodyweight.ListResponse
	status, _ = s.do(http.MethodGet, "/bodyweight", token, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(list.Entries, 1)

	status, _ = s.do(http.MethodDelete, "/bodyweight/"+itoa(entry.ID), s.issueToken("lifter-2"), nil, nil)
	s.Equal(http.StatusNotFound, status)
	status, _ = s.do(http.MethodDelete, "/bodyweight/"+itoa(entry.ID), token, nil, nil)
	s.Equal(http.StatusNoContent, status)
}
