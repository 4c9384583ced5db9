package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appidentity "github.com/garment/backend/internal/application/identity"
	appinventory "github.com/garment/backend/internal/application/inventory"
	appthirdparty "github.com/garment/backend/internal/application/thirdparty"
	apptrade "github.com/garment/backend/internal/application/trade"
	"github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/domain/inventory"
	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/garment/backend/internal/domain/trade"
	"github.com/garment/backend/internal/infrastructure/auth"
	"github.com/garment/backend/internal/infrastructure/config"
	"github.com/garment/backend/internal/infrastructure/persistence"
	"github.com/garment/backend/internal/infrastructure/ratelimit"
	"github.com/garment/backend/internal/interfaces/http/handler"
	"github.com/garment/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "garment123!"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newServer assembles the full API over an in-memory database, with
// the given budget for legal-status writes per entity per minute.
func newServer(t *testing.T, writeLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&thirdparty.ThirdParty{},
		&thirdparty.LegalStatusRecord{},
		&identity.Permission{},
		&identity.Role{},
		&identity.User{},
		&inventory.Item{},
		&inventory.Entry{},
		&inventory.Output{},
		&inventory.StockSnapshot{},
		&trade.Order{},
		&trade.OrderItem{},
	))
	seedAccounts(t, db)

	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "garment-test",
	})
	blacklist := auth.NewMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db)
	roleRepo := persistence.NewGormRoleRepository(db)
	partyRepo := persistence.NewGormThirdPartyRepository(db)
	ledgerRepo := persistence.NewGormLegalStatusRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)

	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, log)
	permService := appidentity.NewPermissionService(roleRepo)
	partyService := appthirdparty.NewPartyService(partyRepo)
	legalService := appthirdparty.NewLegalStatusService(partyRepo, ledgerRepo, log)
	stockService := appinventory.NewStockService(itemRepo, movementRepo, log)
	orderService := apptrade.NewOrderService(orderRepo, legalService, log)

	engine := gin.New()
	router.Setup(engine, router.Config{
		Logger:             log,
		JWTService:         jwtService,
		TokenBlacklist:     blacklist,
		CookieName:         "session",
		PermissionResolver: permService,
		Limiter:            ratelimit.NewLimiter(ratelimit.NewMemoryStore(), writeLimit, time.Minute),
		AuthHandler:        handler.NewAuthHandler(authService, config.CookieConfig{Name: "session", Path: "/"}),
		ThirdPartyHandler:  handler.NewThirdPartyHandler(partyService, legalService),
		InventoryHandler:   handler.NewInventoryHandler(stockService),
		OrderHandler:       handler.NewOrderHandler(orderService),
	})
	return engine
}

// seedAccounts creates the permission catalog, two roles, and one user
// per role. The sales advisor can manage orders but not suppliers.
func seedAccounts(t *testing.T, db *gorm.DB) {
	t.Helper()

	perms := make(map[string]identity.Permission)
	for _, name := range identity.AllPermissions() {
		p, err := identity.NewPermission(name, "")
		require.NoError(t, err)
		require.NoError(t, db.Create(p).Error)
		perms[name] = *p
	}

	var all []identity.Permission
	for _, name := range identity.AllPermissions() {
		all = append(all, perms[name])
	}
	admin, err := identity.NewRole(identity.RoleAdministrador, "", all)
	require.NoError(t, err)
	require.NoError(t, db.Create(admin).Error)

	asesor, err := identity.NewRole(identity.RoleAsesorComercial, "", []identity.Permission{
		perms[identity.PermVerCliente],
		perms[identity.PermVerPedido],
		perms[identity.PermEditarPedido],
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(asesor).Error)

	adminUser, err := identity.NewUser("admin", testPassword, "Administrador", admin.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(adminUser).Error)

	asesorUser, err := identity.NewUser("asesor", testPassword, "Asesor Comercial", asesor.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(asesorUser).Error)
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	env := decode(t, rec)
	require.True(t, env.Success, "expected success response, got %s", rec.Body.String())
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func login(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	rec := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createParty(t *testing.T, engine *gin.Engine, token, typeTag, name string) string {
	t.Helper()
	rec := doRequest(t, engine, http.MethodPost, "/api/v1/third-parties/"+typeTag, token, gin.H{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	return data["id"].(string)
}

func setLegalStatus(t *testing.T, engine *gin.Engine, token, typeTag, id, status string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, engine, http.MethodPost,
		"/api/v1/third-parties/"+typeTag+"/"+id+"/legal-status", token, gin.H{"status": status})
}

func TestAuthRequired(t *testing.T) {
	engine := newServer(t, 100)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/cliente", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_UNAUTHORIZED", env.Error.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newServer(t, 100)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentUserCarriesResolvedPermissions(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, "admin", data["username"])
	assert.Equal(t, identity.RoleAdministrador, data["role"])
	assert.Contains(t, data["permissions"], identity.PermEditarCliente)
}

func TestLogoutRevokesSession(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestThirdPartyLifecycle(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/third-parties/cliente", token, gin.H{
		"name":  "Confecciones Andinas",
		"email": "compras@andinas.co",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData(t, rec)
	assert.Equal(t, false, created["is_active"], "new parties start inactive")
	id := created["id"].(string)

	rec = doRequest(t, engine, http.MethodPut, "/api/v1/third-parties/cliente/"+id, token, gin.H{
		"phone": "3001234567",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData(t, rec)
	assert.Equal(t, "3001234567", updated["phone"])
	assert.Equal(t, "Confecciones Andinas", updated["name"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/cliente", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/proveedor/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "ID is scoped to its type")
}

func TestUnknownThirdPartyType(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/socio", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
}

func TestPermissionDeniedForRole(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "asesor")

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/third-parties/proveedor", token, gin.H{
		"name": "Textiles del Norte",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_FORBIDDEN", env.Error.Code)
	assert.Contains(t, env.Error.Message, identity.PermEditarProveedor)

	// The advisor may still read clients
	rec = doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/cliente", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLegalStatusFlow(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")
	id := createParty(t, engine, token, "cliente", "Moda Urbana SAS")

	// Before any record the entity cannot operate
	rec := doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/cliente/"+id+"/legal-status/check", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	op := decodeData(t, rec)
	assert.Equal(t, false, op["can_operate"])
	assert.Equal(t, thirdparty.ReasonNoStatus, op["reason"])

	// Unknown literals never reach the ledger
	rec = setLegalStatus(t, engine, token, "cliente", id, "SUSPENDIDO")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = setLegalStatus(t, engine, token, "cliente", id, "VIGENTE")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	set := decodeData(t, rec)
	assert.Equal(t, true, set["is_active_changed"])
	assert.Equal(t, true, set["is_active"])
	record := set["record"].(map[string]any)
	assert.Equal(t, "admin", record["reviewed_by"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/cliente/"+id+"/legal-status/check", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	op = decodeData(t, rec)
	assert.Equal(t, true, op["can_operate"])
	assert.Equal(t, "VIGENTE", *jsonString(op, "status"))

	rec = setLegalStatus(t, engine, token, "cliente", id, "EN_REVISION")
	require.Equal(t, http.StatusOK, rec.Code)
	set = decodeData(t, rec)
	assert.Equal(t, true, set["is_active_changed"])
	assert.Equal(t, false, set["is_active"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/third-parties/cliente/"+id+"/legal-status-history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]any
	env := decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "EN_REVISION", history[0]["status"], "newest first")
	assert.Equal(t, "VIGENTE", history[1]["status"])
}

func TestLegalStatusRateLimit(t *testing.T) {
	engine := newServer(t, 2)
	token := login(t, engine, "admin")
	first := createParty(t, engine, token, "cliente", "Cliente Uno")
	second := createParty(t, engine, token, "cliente", "Cliente Dos")

	rec := setLegalStatus(t, engine, token, "cliente", first, "VIGENTE")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = setLegalStatus(t, engine, token, "cliente", first, "EN_REVISION")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = setLegalStatus(t, engine, token, "cliente", first, "VIGENTE")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_RATE_LIMITED", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Budgets are per entity, not per caller
	rec = setLegalStatus(t, engine, token, "cliente", second, "VIGENTE")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInventoryStockEndpoint(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/inventory/items", token, gin.H{
		"code": "TELA-001",
		"name": "Tela algodón",
		"unit": "MT",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	itemID := decodeData(t, rec)["id"].(string)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/inventory/items/"+itemID+"/entries", token, gin.H{
		"quantity": "100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/inventory/items/"+itemID+"/outputs", token, gin.H{
		"quantity": "40.5",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	movement := decodeData(t, rec)
	assert.Equal(t, "59.5", movement["stock"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/inventory-stock?inventoryItemId="+itemID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stock := decodeData(t, rec)
	assert.Equal(t, itemID, stock["inventoryItemId"])
	assert.Equal(t, "59.5", stock["stock"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/inventory-stock", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/inventory-stock?inventoryItemId=not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/inventory/items/"+itemID+"/entries", token, gin.H{
		"quantity": "-3",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "negative quantities are rejected")
}

func TestOrderCreationGatedByLegalStatus(t *testing.T) {
	engine := newServer(t, 100)
	token := login(t, engine, "admin")
	clientID := createParty(t, engine, token, "cliente", "Exportadora Caribe")

	orderBody := gin.H{
		"code":      "PED-001",
		"client_id": clientID,
		"items": []gin.H{
			{"reference": "Camisa polo", "negotiation": "MUESTRA", "quantity": 10},
		},
	}

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/orders", token, orderBody)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "client without VIGENTE cannot order")

	rec = setLegalStatus(t, engine, token, "cliente", clientID, "VIGENTE")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/orders", token, orderBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeData(t, rec)
	assert.Equal(t, "CREADO", order["status"])

	wantDelivery := trade.FormatDate(time.Now().AddDate(0, 0, 28))
	assert.Equal(t, wantDelivery, *jsonString(order, "promised_delivery"))
	wantExpiry := trade.FormatDate(time.Now().AddDate(0, 0, 28+trade.QuoteValidityDays))
	assert.Equal(t, wantExpiry, *jsonString(order, "quote_expiry"))
}

func TestOrderStatusChangeByRole(t *testing.T) {
	engine := newServer(t, 100)
	admin := login(t, engine, "admin")
	asesor := login(t, engine, "asesor")
	clientID := createParty(t, engine, admin, "cliente", "Distribuidora Sur")

	rec := setLegalStatus(t, engine, admin, "cliente", clientID, "VIGENTE")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/orders", admin, gin.H{
		"code":      "PED-002",
		"client_id": clientID,
		"items":     []gin.H{{"reference": "Pantalón dril", "quantity": 50}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderID := decodeData(t, rec)["id"].(string)

	// The sales advisor's role is not authorized for the cutting stage
	rec = doRequest(t, engine, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", asesor, gin.H{
		"status": "CORTE",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, engine, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, gin.H{
		"status": "CORTE",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CORTE", decodeData(t, rec)["status"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/orders/allowed-statuses", asesor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	allowed := decodeData(t, rec)
	assert.NotContains(t, allowed["statuses"], "CANCELADO")
}

func TestOrderLookup(t *testing.T) {
	engine := newServer(t, 100)
	admin := login(t, engine, "admin")
	clientID := createParty(t, engine, admin, "cliente", "Almacenes del Norte")

	rec := setLegalStatus(t, engine, admin, "cliente", clientID, "VIGENTE")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/orders", admin, gin.H{
		"code":      "PED-010",
		"client_id": clientID,
		"items":     []gin.H{{"reference": "Blusa manga larga", "quantity": 20}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderID := decodeData(t, rec)["id"].(string)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/orders/"+orderID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "PED-010", decodeData(t, rec)["code"])

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/orders/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/orders/"+uuid.NewString(), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func jsonString(data map[string]any, key string) *string {
	if v, ok := data[key].(string); ok {
		return &v
	}
	return nil
}
