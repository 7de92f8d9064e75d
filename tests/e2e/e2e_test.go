package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"quadra/internal/database"
	"quadra/internal/domain"
	"quadra/internal/middleware"
	"quadra/internal/modules/admin"
	"quadra/internal/modules/approval"
	"quadra/internal/modules/catalog"
	"quadra/internal/modules/live"
	"quadra/internal/modules/profile"
	"quadra/internal/modules/reservation"
	jwtsvc "quadra/internal/pkg/jwt"
	"quadra/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service

	userRepo  *repository.UserRepository
	towerRepo *repository.TowerRepository
	courtRepo *repository.CourtRepository

	towerA domain.Tower
	towerB domain.Tower
	court  domain.Court
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, repository.Migrate(db), "Failed to migrate")

	userRepo := repository.NewUserRepository(db)
	towerRepo := repository.NewTowerRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	blackoutRepo := repository.NewBlackoutRepository(db)
	eventRepo := repository.NewEventRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	changeRepo := repository.NewProfileChangeRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := live.NewHub()

	reservationService := reservation.NewService(reservationRepo, userRepo, courtRepo, eventRepo, hub)
	reservationHandler := reservation.NewHandler(reservationService)

	approvalService := approval.NewService(approvalRepo, userRepo, towerRepo)
	approvalHandler := approval.NewHandler(approvalService)

	profileService := profile.NewService(changeRepo, userRepo, towerRepo)
	profileHandler := profile.NewHandler(profileService)

	adminService := admin.NewService(userRepo, approvalRepo, reservationRepo, blackoutRepo)
	adminHandler := admin.NewHandler(adminService)

	catalogService := catalog.NewService(towerRepo, courtRepo, reservationRepo, blackoutRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)

		authed := v1.Group("")
		authed.Use(middleware.Auth(jwtService, userRepo))
		{
			approvalHandler.RegisterRoutes(authed)
			profileHandler.RegisterRoutes(authed)
			adminHandler.RegisterRoutes(authed)

			active := authed.Group("")
			active.Use(middleware.RequireActive())
			{
				reservationHandler.RegisterRoutes(active)
			}
		}
	}

	suite := &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		userRepo:   userRepo,
		towerRepo:  towerRepo,
		courtRepo:  courtRepo,
	}

	ctx := context.Background()

	suite.towerA = domain.Tower{Name: "Torre A"}
	require.NoError(t, towerRepo.Create(ctx, &suite.towerA))
	suite.towerB = domain.Tower{Name: "Torre B"}
	require.NoError(t, towerRepo.Create(ctx, &suite.towerB))

	suite.court = domain.Court{Name: "Quadra", IsActive: true}
	require.NoError(t, courtRepo.Create(ctx, &suite.court))

	return suite
}

func (s *E2ETestSuite) createUser(t *testing.T, email string, role domain.Role, status domain.UserStatus, towerID *uuid.UUID, age int) *domain.User {
	birth := time.Now().UTC().AddDate(-age, 0, -1)
	u := &domain.User{
		Email:     email,
		Name:      email,
		Role:      role,
		Status:    status,
		BirthDate: &birth,
		TowerID:   towerID,
	}
	require.NoError(t, s.userRepo.Create(context.Background(), u))
	return u
}

func (s *E2ETestSuite) token(t *testing.T, u *domain.User) string {
	token, err := s.jwtService.GenerateToken(u.ID, u.Email)
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func tomorrowAt(hour int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1).Add(time.Duration(hour) * time.Hour)
}

// =============================================================================
// Flow 1: Signup approval
// =============================================================================

func TestFlow_SignupApproval(t *testing.T) {
	suite := setupTestSuite(t)

	doorman := suite.createUser(t, "doorman.a@test.local", domain.RoleDoorman, domain.UserActive, &suite.towerA.ID, 35)
	applicant := suite.createUser(t, "applicant@test.local", domain.RoleResident, domain.UserPending, nil, 30)

	doormanToken := suite.token(t, doorman)
	applicantToken := suite.token(t, applicant)

	var requestID string

	t.Run("pending applicant submits a request", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/users/me/approval-request", map[string]interface{}{
			"tower_id":    suite.towerA.ID,
			"unit_number": "302",
		}, applicantToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)

		request := resp.Data["request"].(map[string]interface{})
		requestID = request["id"].(string)
		assert.Equal(t, "pending", request["status"])
	})

	t.Run("pending applicant cannot reserve", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(9).Format(time.RFC3339),
			"end_time":   tomorrowAt(10).Format(time.RFC3339),
		}, applicantToken)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("doorman of the same tower sees and approves", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/approvals/pending", nil, doormanToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		requests := resp.Data["requests"].([]interface{})
		require.Len(t, requests, 1)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/approvals/%s/approve", requestID), nil, doormanToken)
		assert.Equal(t, http.StatusOK, w.Code)

		// applicant is now active
		w = suite.makeRequest("GET", "/api/v1/users/me", nil, applicantToken)
		resp = parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "active", user["status"])
	})

	t.Run("decided request is terminal", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/approvals/%s/reject", requestID), nil, doormanToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "ALREADY_DECIDED", resp.Error.Code)
	})

	t.Run("approved applicant can reserve", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(9).Format(time.RFC3339),
			"end_time":   tomorrowAt(10).Format(time.RFC3339),
		}, applicantToken)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestFlow_ApprovalScopingAndAge(t *testing.T) {
	suite := setupTestSuite(t)

	doormanB := suite.createUser(t, "doorman.b@test.local", domain.RoleDoorman, domain.UserActive, &suite.towerB.ID, 40)
	gm := suite.createUser(t, "gm@test.local", domain.RoleGeneralManager, domain.UserActive, nil, 45)
	minor := suite.createUser(t, "minor@test.local", domain.RoleResident, domain.UserPending, nil, 16)

	minorToken := suite.token(t, minor)
	doormanBToken := suite.token(t, doormanB)
	gmToken := suite.token(t, gm)

	w := suite.makeRequest("POST", "/api/v1/users/me/approval-request", map[string]interface{}{
		"tower_id":    suite.towerA.ID,
		"unit_number": "101",
	}, minorToken)
	require.Equal(t, http.StatusOK, w.Code)
	requestID := parseResponse(t, w).Data["request"].(map[string]interface{})["id"].(string)

	t.Run("doorman of another tower sees nothing", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/approvals/pending", nil, doormanBToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["requests"])
	})

	t.Run("doorman of another tower cannot decide", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/approvals/%s/approve", requestID), nil, doormanBToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("underage applicant blocks approval even for managers", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/approvals/%s/approve", requestID), nil, gmToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "NOT_ELIGIBLE", resp.Error.Code)
	})

	t.Run("rejection leaves the applicant pending and able to re-submit", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/approvals/%s/reject", requestID), map[string]interface{}{
			"note": "come back when adult",
		}, gmToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", "/api/v1/users/me", nil, minorToken)
		user := parseResponse(t, w).Data["user"].(map[string]interface{})
		assert.Equal(t, "pending", user["status"])

		w = suite.makeRequest("POST", "/api/v1/users/me/approval-request", map[string]interface{}{
			"tower_id":    suite.towerA.ID,
			"unit_number": "101",
		}, minorToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// =============================================================================
// Flow 2: Reservation admission
// =============================================================================

func TestFlow_ReservationAdmission(t *testing.T) {
	suite := setupTestSuite(t)

	resident := suite.createUser(t, "resident1@test.local", domain.RoleResident, domain.UserActive, &suite.towerA.ID, 30)
	neighbour := suite.createUser(t, "resident2@test.local", domain.RoleResident, domain.UserActive, &suite.towerA.ID, 28)

	residentToken := suite.token(t, resident)
	neighbourToken := suite.token(t, neighbour)

	book := func(token string, startHour, endHour int) *httptest.ResponseRecorder {
		return suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(startHour).Format(time.RFC3339),
			"end_time":   tomorrowAt(endHour).Format(time.RFC3339),
		}, token)
	}

	var firstID string

	t.Run("two one-hour slots fit the daily allowance", func(t *testing.T) {
		w := book(residentToken, 9, 10)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]interface{})
		firstID = res["id"].(string)
		assert.Equal(t, "confirmed", res["status"])

		w = book(residentToken, 10, 11)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("third hour exceeds the daily allowance", func(t *testing.T) {
		w := book(residentToken, 11, 12)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "QUOTA_EXCEEDED", resp.Error.Code)
	})

	t.Run("overlapping slot conflicts", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(9).Add(30 * time.Minute).Format(time.RFC3339),
			"end_time":   tomorrowAt(10).Add(30 * time.Minute).Format(time.RFC3339),
		}, neighbourToken)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "RESERVATION_CONFLICT", resp.Error.Code)
	})

	t.Run("back-to-back slot does not conflict", func(t *testing.T) {
		w := book(neighbourToken, 11, 12)
		assert.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	})

	t.Run("slot longer than two hours is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(14).Format(time.RFC3339),
			"end_time":   tomorrowAt(16).Add(30 * time.Minute).Format(time.RFC3339),
		}, neighbourToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("resident cannot book on behalf of another", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":             suite.court.ID,
			"start_time":           tomorrowAt(15).Format(time.RFC3339),
			"end_time":             tomorrowAt(16).Format(time.RFC3339),
			"reserved_for_user_id": neighbour.ID,
		}, residentToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("day listing shows confirmed slots", func(t *testing.T) {
		date := tomorrowAt(0).Format("2006-01-02")
		w := suite.makeRequest("GET", "/api/v1/reservations?date="+date, nil, residentToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["reservations"], 3)
	})

	t.Run("cancel frees the allowance", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/reservations/%s/cancel", firstID), nil, residentToken)
		assert.Equal(t, http.StatusOK, w.Code)

		// cancelling again is a no-op
		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/reservations/%s/cancel", firstID), nil, residentToken)
		assert.Equal(t, http.StatusOK, w.Code)

		// the freed hour can be re-spent
		w = book(residentToken, 12, 13)
		assert.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reservations/mine", nil, neighbourToken)
		require.Equal(t, http.StatusOK, w.Code)
		mine := parseResponse(t, w).Data["reservations"].([]interface{})
		require.NotEmpty(t, mine)
		otherID := mine[0].(map[string]interface{})["id"].(string)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/reservations/%s/cancel", otherID), nil, residentToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow_BlackoutWindows(t *testing.T) {
	suite := setupTestSuite(t)

	gm := suite.createUser(t, "gm@test.local", domain.RoleGeneralManager, domain.UserActive, nil, 45)
	resident := suite.createUser(t, "resident@test.local", domain.RoleResident, domain.UserActive, &suite.towerA.ID, 30)

	gmToken := suite.token(t, gm)
	residentToken := suite.token(t, resident)

	var blackoutID string

	t.Run("manager reserves maintenance capacity", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/blackouts", map[string]interface{}{
			"start_time": tomorrowAt(14).Format(time.RFC3339),
			"end_time":   tomorrowAt(16).Format(time.RFC3339),
			"reason":     "resurfacing",
		}, gmToken)

		assert.Equal(t, http.StatusCreated, w.Code)
		blackoutID = parseResponse(t, w).Data["blackout"].(map[string]interface{})["id"].(string)
	})

	t.Run("reservation inside the window is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(14).Format(time.RFC3339),
			"end_time":   tomorrowAt(15).Format(time.RFC3339),
		}, residentToken)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "BLACKOUT", resp.Error.Code)
	})

	t.Run("deleting the window reopens the slot", func(t *testing.T) {
		w := suite.makeRequest("DELETE", "/api/v1/admin/blackouts/"+blackoutID, nil, gmToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(14).Format(time.RFC3339),
			"end_time":   tomorrowAt(15).Format(time.RFC3339),
		}, residentToken)
		assert.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	})
}

// =============================================================================
// Flow 3: Role assignment and admin
// =============================================================================

func TestFlow_RoleAssignment(t *testing.T) {
	suite := setupTestSuite(t)

	subManager := suite.createUser(t, "sub.a@test.local", domain.RoleSubManager, domain.UserActive, &suite.towerA.ID, 40)
	gm := suite.createUser(t, "gm@test.local", domain.RoleGeneralManager, domain.UserActive, nil, 50)
	resident := suite.createUser(t, "resident@test.local", domain.RoleResident, domain.UserActive, &suite.towerA.ID, 30)

	subToken := suite.token(t, subManager)
	gmToken := suite.token(t, gm)
	residentToken := suite.token(t, resident)

	t.Run("sub-manager grants doorman inside own tower", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/assign-role", map[string]interface{}{
			"user_id": resident.ID,
			"role":    "doorman",
		}, subToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "doorman", user["role"])
		assert.Equal(t, suite.towerA.ID.String(), user["tower_id"])
	})

	t.Run("sub-manager cannot grant manager roles", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/assign-role", map[string]interface{}{
			"user_id": resident.ID,
			"role":    "general_manager",
		}, subToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("general manager cannot mint superusers", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/assign-role", map[string]interface{}{
			"user_id": resident.ID,
			"role":    "superuser",
		}, gmToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("resident cannot reach the endpoint at all", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/assign-role", map[string]interface{}{
			"user_id": resident.ID,
			"role":    "doorman",
		}, residentToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("blocked users lose access", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/users/%s/block", resident.ID), nil, gmToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"court_id":   suite.court.ID,
			"start_time": tomorrowAt(9).Format(time.RFC3339),
			"end_time":   tomorrowAt(10).Format(time.RFC3339),
		}, residentToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/users/%s/unblock", resident.ID), nil, gmToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stats are manager-only", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/stats", nil, gmToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.NotNil(t, resp.Data["stats"])

		w = suite.makeRequest("GET", "/api/v1/admin/stats", nil, subToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// Flow 4: Profile and change requests
// =============================================================================

func TestFlow_ProfileChangeRequests(t *testing.T) {
	suite := setupTestSuite(t)

	resident := suite.createUser(t, "resident@test.local", domain.RoleResident, domain.UserActive, &suite.towerA.ID, 30)
	subManager := suite.createUser(t, "sub.a@test.local", domain.RoleSubManager, domain.UserActive, &suite.towerA.ID, 40)

	residentToken := suite.token(t, resident)
	subToken := suite.token(t, subManager)

	var requestID string

	t.Run("resident files a phone change", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/users/me/change-requests", map[string]interface{}{
			"field":     "phone",
			"new_value": "+55 11 99999-0000",
		}, residentToken)

		assert.Equal(t, http.StatusOK, w.Code)
		requestID = parseResponse(t, w).Data["request"].(map[string]interface{})["id"].(string)
	})

	t.Run("unknown fields are refused", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/users/me/change-requests", map[string]interface{}{
			"field":     "role",
			"new_value": "superuser",
		}, residentToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "UNKNOWN_FIELD", resp.Error.Code)
	})

	t.Run("sub-manager approves and the change applies", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/change-requests/pending", nil, subToken)
		assert.Equal(t, http.StatusOK, w.Code)
		requests := parseResponse(t, w).Data["requests"].([]interface{})
		require.Len(t, requests, 1)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/change-requests/%s/approve", requestID), nil, subToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", "/api/v1/users/me", nil, residentToken)
		user := parseResponse(t, w).Data["user"].(map[string]interface{})
		assert.Equal(t, "+55 11 99999-0000", user["phone"])
	})

	t.Run("direct profile update for bootstrap fields", func(t *testing.T) {
		w := suite.makeRequest("PATCH", "/api/v1/users/me/profile", map[string]interface{}{
			"unit_number": "404",
		}, residentToken)
		assert.Equal(t, http.StatusOK, w.Code)
		user := parseResponse(t, w).Data["user"].(map[string]interface{})
		assert.Equal(t, "404", user["unit_number"])
	})
}

// =============================================================================
// Flow 5: Public catalog
// =============================================================================

func TestFlow_Catalog(t *testing.T) {
	suite := setupTestSuite(t)

	resident := suite.createUser(t, "resident@test.local", domain.RoleResident, domain.UserActive, &suite.towerA.ID, 30)
	residentToken := suite.token(t, resident)

	w := suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
		"court_id":   suite.court.ID,
		"start_time": tomorrowAt(9).Format(time.RFC3339),
		"end_time":   tomorrowAt(10).Format(time.RFC3339),
	}, residentToken)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("towers and courts are public", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/towers", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w).Data["towers"], 2)

		w = suite.makeRequest("GET", "/api/v1/courts", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w).Data["courts"], 1)
	})

	t.Run("court day schedule shows occupied slots", func(t *testing.T) {
		date := tomorrowAt(0).Format("2006-01-02")
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/courts/%s/day?date=%s", suite.court.ID, date), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		schedule := parseResponse(t, w).Data["schedule"].(map[string]interface{})
		assert.Len(t, schedule["reservations"], 1)
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/courts/%s/day?date=not-a-date", suite.court.ID), nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
