package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crmboard/internal/database"
	"crmboard/internal/middleware"
	"crmboard/internal/modules/auth"
	"crmboard/internal/modules/board"
	"crmboard/internal/modules/campaign"
	"crmboard/internal/modules/chat"
	"crmboard/internal/modules/field"
	"crmboard/internal/modules/lead"
	"crmboard/internal/modules/pipeline"
	"crmboard/internal/modules/prefs"
	"crmboard/internal/modules/realtime"
	"crmboard/internal/modules/token"
	jwtsvc "crmboard/internal/pkg/jwt"
	"crmboard/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	sqlxDB, err := database.Sqlx(db)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	pipelineRepo := repository.NewPipelineRepository(db)
	stageRepo := repository.NewStageRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	fieldRepo := repository.NewCustomFieldRepository(db)
	tokenRepo := repository.NewApiTokenRepository(db)
	chatRepo := repository.NewChatRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	statsRepo := repository.NewStatsRepository(sqlxDB)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	hub := realtime.NewHub()
	t.Cleanup(hub.Close)

	boardService := board.NewService(stageRepo, leadRepo, statsRepo, hub)
	authService := auth.NewService(userRepo, companyRepo, jwtService)
	pipelineService := pipeline.NewService(pipelineRepo, stageRepo, leadRepo, boardService)
	leadService := lead.NewService(leadRepo, stageRepo, fieldRepo, boardService)
	fieldService := field.NewService(fieldRepo, pipelineRepo)
	tokenService := token.NewService(tokenRepo)
	chatService := chat.NewService(chatRepo, leadRepo, campaignRepo, nil, hub)
	campaignService := campaign.NewService(campaignRepo, stubSignaler{})
	prefsService := prefs.NewService(prefRepo)

	authHandler := auth.NewHandler(authService)
	boardHandler := board.NewHandler(boardService)
	pipelineHandler := pipeline.NewHandler(pipelineService)
	leadHandler := lead.NewHandler(leadService)
	fieldHandler := field.NewHandler(fieldService)
	tokenHandler := token.NewHandler(tokenService)
	chatHandler := chat.NewHandler(chatService)
	campaignHandler := campaign.NewHandler(campaignService)
	prefsHandler := prefs.NewHandler(prefsService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	ingress := v1.Group("/ingress")
	ingress.Use(middleware.ApiTokenAuth(tokenRepo))
	chatHandler.RegisterIngressRoutes(ingress)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		pipelineHandler.RegisterRoutes(protected)
		boardHandler.RegisterRoutes(protected)
		leadHandler.RegisterRoutes(protected)
		fieldHandler.RegisterRoutes(protected)
		chatHandler.RegisterRoutes(protected)
		campaignHandler.RegisterRoutes(protected)
		prefsHandler.RegisterRoutes(protected)

		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())
		{
			authHandler.RegisterAdminRoutes(admin)
			pipelineHandler.RegisterAdminRoutes(admin)
			fieldHandler.RegisterAdminRoutes(admin)
			tokenHandler.RegisterAdminRoutes(admin)
		}
	}

	return &E2ETestSuite{router: r, db: db}
}

type stubSignaler struct{}

func (stubSignaler) SignalCampaign(ctx context.Context, companyID, campaignID int64) error {
	return nil
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "raw body: %s", w.Body.String())
	return &resp
}

func decodeData(t *testing.T, resp *TestResponse, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// registerCompany registers a tenant and returns the admin JWT.
func (s *E2ETestSuite) registerCompany(t *testing.T, companyName, email string) string {
	t.Helper()

	w := s.makeRequest(t, "POST", "/api/v1/auth/register", map[string]any{
		"company_name": companyName,
		"name":         "Admin",
		"email":        email,
		"password":     "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, parseResponse(t, w), &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

// buildBoard creates a pipeline with stages and returns (pipelineID, stageIDs).
func (s *E2ETestSuite) buildBoard(t *testing.T, token string, stageNames ...string) (int64, []int64) {
	t.Helper()

	w := s.makeRequest(t, "POST", "/api/v1/pipelines", map[string]any{"name": "Sales"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, parseResponse(t, w), &created)

	stageIDs := make([]int64, 0, len(stageNames))
	for _, name := range stageNames {
		w := s.makeRequest(t, "POST", fmt.Sprintf("/api/v1/pipelines/%d/stages", created.ID),
			map[string]any{"name": name}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var stage struct {
			ID int64 `json:"id"`
		}
		decodeData(t, parseResponse(t, w), &stage)
		stageIDs = append(stageIDs, stage.ID)
	}
	return created.ID, stageIDs
}

func (s *E2ETestSuite) createLead(t *testing.T, token string, pipelineID, stageID int64, name string) int64 {
	t.Helper()

	w := s.makeRequest(t, "POST", "/api/v1/leads", map[string]any{
		"pipeline_id": pipelineID,
		"stage_id":    stageID,
		"name":        name,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, parseResponse(t, w), &created)
	return created.ID
}

func TestFlow_RegistrationAndLogin(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.registerCompany(t, "Acme Motors", "ana@acme.io")

	// /me works with the registration token
	w := suite.makeRequest(t, "GET", "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeData(t, parseResponse(t, w), &me)
	assert.Equal(t, "ana@acme.io", me.Email)
	assert.Equal(t, "admin", me.Role)

	// login with the same credentials
	w = suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    "ana@acme.io",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// wrong password is rejected without detail
	w = suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    "ana@acme.io",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestFlow_BoardReorderAndLeadMove(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerCompany(t, "Acme Motors", "ana@acme.io")
	pipelineID, stages := suite.buildBoard(t, token, "Prospecting", "Qualification", "Proposal")

	l1 := suite.createLead(t, token, pipelineID, stages[0], "Sedan deal")
	suite.createLead(t, token, pipelineID, stages[0], "SUV deal")
	suite.createLead(t, token, pipelineID, stages[1], "Fleet deal")

	boardPath := fmt.Sprintf("/api/v1/pipelines/%d/board", pipelineID)

	// initial board: 3 stages in creation order
	w := suite.makeRequest(t, "GET", boardPath, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snapshot struct {
		Stages []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"stages"`
		LeadsByStage map[string][]struct {
			ID       int64 `json:"id"`
			Position int   `json:"position"`
		} `json:"leads_by_stage"`
	}
	decodeData(t, parseResponse(t, w), &snapshot)
	require.Len(t, snapshot.Stages, 3)
	assert.Equal(t, "Prospecting", snapshot.Stages[0].Name)

	// drag Qualification to the front
	w = suite.makeRequest(t, "POST", boardPath+"/stages/reorder", map[string]any{
		"from_index": 1,
		"to_index":   0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	decodeData(t, parseResponse(t, w), &snapshot)
	assert.Equal(t, "Qualification", snapshot.Stages[0].Name)
	assert.Equal(t, "Prospecting", snapshot.Stages[1].Name)

	// persisted: a fresh board read shows the same order
	w = suite.makeRequest(t, "GET", boardPath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, parseResponse(t, w), &snapshot)
	assert.Equal(t, "Qualification", snapshot.Stages[0].Name)

	// move the sedan lead into Proposal at index 0
	w = suite.makeRequest(t, "POST", fmt.Sprintf("%s/leads/%d/move", boardPath, l1), map[string]any{
		"from_stage_id": stages[0],
		"to_stage_id":   stages[2],
		"to_index":      0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	decodeData(t, parseResponse(t, w), &snapshot)
	proposal := snapshot.LeadsByStage[fmt.Sprint(stages[2])]
	require.Len(t, proposal, 1)
	assert.Equal(t, l1, proposal[0].ID)
	assert.Len(t, snapshot.LeadsByStage[fmt.Sprint(stages[0])], 1)

	// out-of-range index is rejected before any write
	w = suite.makeRequest(t, "POST", boardPath+"/stages/reorder", map[string]any{
		"from_index": 7,
		"to_index":   0,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlow_TenantIsolation(t *testing.T) {
	suite := setupTestSuite(t)
	tokenA := suite.registerCompany(t, "Acme Motors", "ana@acme.io")
	tokenB := suite.registerCompany(t, "Beta Cars", "bo@beta.io")

	pipelineA, stagesA := suite.buildBoard(t, tokenA, "Prospecting", "Closing")
	leadA := suite.createLead(t, tokenA, pipelineA, stagesA[0], "Acme-only deal")

	// company B cannot read A's pipeline, board or lead
	w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/pipelines/%d", pipelineA), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/leads/%d", leadA), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlow_MemberCannotUseAdminRoutes(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.registerCompany(t, "Acme Motors", "ana@acme.io")

	// invite a member and log them in
	w := suite.makeRequest(t, "POST", "/api/v1/users", map[string]any{
		"name":     "Bo",
		"email":    "bo@acme.io",
		"password": "password123",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    "bo@acme.io",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, parseResponse(t, w), &login)

	w = suite.makeRequest(t, "POST", "/api/v1/pipelines", map[string]any{"name": "Forbidden"}, login.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFlow_CustomFieldsOnLeads(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerCompany(t, "Acme Motors", "ana@acme.io")
	pipelineID, stages := suite.buildBoard(t, token, "Prospecting")
	leadID := suite.createLead(t, token, pipelineID, stages[0], "Sedan deal")

	// select field requires options
	w := suite.makeRequest(t, "POST", "/api/v1/fields", map[string]any{
		"name": "Condition",
		"type": "select",
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = suite.makeRequest(t, "POST", "/api/v1/fields", map[string]any{
		"name":    "Condition",
		"type":    "select",
		"options": []string{"new", "used"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, parseResponse(t, w), &created)

	// a value outside the options is refused
	w = suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/leads/%d/values", leadID), map[string]any{
		"field_id": created.ID,
		"value":    "broken",
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/leads/%d/values", leadID), map[string]any{
		"field_id": created.ID,
		"value":    "used",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the value comes back with the lead
	w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/leads/%d", leadID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var leadOut struct {
		CustomValues []struct {
			FieldID int64  `json:"field_id"`
			Value   string `json:"value"`
		} `json:"custom_values"`
	}
	decodeData(t, parseResponse(t, w), &leadOut)
	require.Len(t, leadOut.CustomValues, 1)
	assert.Equal(t, "used", leadOut.CustomValues[0].Value)
}

func TestFlow_ApiTokenIngressWithGreeting(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerCompany(t, "Acme Motors", "ana@acme.io")
	pipelineID, stages := suite.buildBoard(t, token, "Prospecting")
	leadID := suite.createLead(t, token, pipelineID, stages[0], "WhatsApp lead")

	// greeting auto-reply on the word "price"
	w := suite.makeRequest(t, "POST", "/api/v1/greetings", map[string]any{
		"trigger": "price",
		"body":    "Thanks! Our price list is on the way.",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// issue a machine token; the secret is only in this response
	w = suite.makeRequest(t, "POST", "/api/v1/tokens", map[string]any{"name": "connector"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var issued struct {
		Secret string `json:"secret"`
	}
	decodeData(t, parseResponse(t, w), &issued)
	require.NotEmpty(t, issued.Secret)

	// inbound message through the ingress, authenticated by X-Api-Token
	body, _ := json.Marshal(map[string]any{
		"lead_id":    leadID,
		"channel_id": "wa-main",
		"body":       "what is the PRICE?",
	})
	req := httptest.NewRequest("POST", "/api/v1/ingress/messages/inbound", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Token", issued.Secret)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// the conversation now holds the inbound message plus the auto-reply
	w = suite.makeRequest(t, "GET", "/api/v1/conversations", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var convs []struct {
		ID int64 `json:"id"`
	}
	decodeData(t, parseResponse(t, w), &convs)
	require.Len(t, convs, 1)

	w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/conversations/%d/messages", convs[0].ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []struct {
		Direction string `json:"direction"`
	}
	decodeData(t, parseResponse(t, w), &msgs)
	require.Len(t, msgs, 2)

	// a revoked secret stops authenticating
	req = httptest.NewRequest("POST", "/api/v1/ingress/messages/inbound", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Token", "crm_not_a_real_secret")
	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFlow_CampaignLifecycleAndPrefs(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerCompany(t, "Acme Motors", "ana@acme.io")

	w := suite.makeRequest(t, "POST", "/api/v1/campaigns", map[string]any{
		"name":     "Spring promo",
		"template": "Hello {{name}}, spring deals are here!",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decodeData(t, parseResponse(t, w), &created)
	assert.Equal(t, "draft", created.Status)

	w = suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/campaigns/%d/start", created.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, parseResponse(t, w), &created)
	assert.Equal(t, "running", created.Status)

	// starting again is a status conflict
	w = suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/campaigns/%d/start", created.ID), nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// preferences persist per user
	w = suite.makeRequest(t, "PUT", "/api/v1/preferences", map[string]any{
		"key":   "stats_panel_collapsed",
		"value": "true",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.makeRequest(t, "GET", "/api/v1/preferences", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var prefsOut map[string]string
	decodeData(t, parseResponse(t, w), &prefsOut)
	assert.Equal(t, "true", prefsOut["stats_panel_collapsed"])
	assert.Equal(t, "kanban", prefsOut["board_view_mode"])
}
