package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquametric/aquatrack/internal/clock"
	"github.com/aquametric/aquatrack/internal/config"
	"github.com/aquametric/aquatrack/internal/observability/metrics"
	"github.com/aquametric/aquatrack/internal/oracle"
	trackerservice "github.com/aquametric/aquatrack/internal/tracker/service"
	treasurydomain "github.com/aquametric/aquatrack/internal/treasury/domain"
	treasuryservice "github.com/aquametric/aquatrack/internal/treasury/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ownerAddr  = "ST1TEST"
	oracleAddr = "ST2TEST"
)

func setupServer(t *testing.T) (*gin.Engine, *clock.FakeClock) {
	t.Helper()

	cfg := config.Config{
		AppName:         "aquatrack",
		Environment:     "test",
		MaxFarms:        config.DefaultMaxFarms,
		LoggingFee:      config.DefaultLoggingFee,
		VerifiedOracles: []string{oracleAddr},
	}
	log := zap.NewNop()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&treasurydomain.Account{}, &treasurydomain.TransferRecord{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	treasurySvc := treasuryservice.NewService(treasuryservice.Params{DB: conn, Log: log, GenID: node})
	oracles := oracle.NewStaticRegistry(cfg)
	clk := clock.NewFakeClock(0)
	trackerSvc := trackerservice.NewService(trackerservice.Params{
		Log:      log,
		Cfg:      cfg,
		Clock:    clk,
		Treasury: treasurySvc,
		Oracles:  oracles,
	})

	registry := prometheus.NewRegistry()
	engine := NewEngine(log, registry)
	srv := NewServer(ServerParams{
		Cfg:         cfg,
		Log:         log,
		Engine:      engine,
		TrackerSvc:  trackerSvc,
		TreasurySvc: treasurySvc,
		Oracles:     oracles,
		Metrics:     metrics.New(cfg, registry),
	})
	srv.RegisterAPIRoutes()

	return engine, clk
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Error
}

func registerDefaultFarm(t *testing.T, engine *gin.Engine) {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/v1/oracle/contract", "", map[string]any{"oracle": oracleAddr})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/treasury/deposits", "", map[string]any{"principal": ownerAddr, "amount": 10000})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/farms", ownerAddr, map[string]any{
		"quota":           10000,
		"efficiency_rate": 80,
		"period":          30,
		"location":        "FarmLocation",
		"unit":            "liters",
		"min_usage":       100,
		"max_usage":       5000,
		"usage_type":      "irrigation",
		"grace_period":    7,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["farm_id"])
}

func TestRegisterLogAndRemainingQuota(t *testing.T) {
	engine, clk := setupServer(t)
	registerDefaultFarm(t, engine)

	// The fee settled owner -> oracle.
	w := doJSON(t, engine, http.MethodGet, "/v1/treasury/accounts/"+oracleAddr, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(500), decodeData(t, w)["balance"])

	w = doJSON(t, engine, http.MethodPost, "/v1/farms/0/usage", ownerAddr, map[string]any{
		"amount":    3000,
		"timestamp": clk.Now() + 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/farms/0/remaining-quota", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7000), decodeData(t, w)["remaining_quota"])

	w = doJSON(t, engine, http.MethodGet, "/v1/farms/0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(3000), data["total_usage"])
	assert.Equal(t, ownerAddr, data["owner"])
}

func TestRegisterFarmWithoutOracleContract(t *testing.T) {
	engine, _ := setupServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/treasury/deposits", "", map[string]any{"principal": ownerAddr, "amount": 10000})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/farms", ownerAddr, map[string]any{
		"quota":           10000,
		"efficiency_rate": 80,
		"period":          30,
		"location":        "FarmLocation",
		"unit":            "liters",
		"min_usage":       100,
		"max_usage":       5000,
		"usage_type":      "irrigation",
		"grace_period":    7,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	errPayload := decodeError(t, w)
	assert.Equal(t, float64(109), errPayload["code"])
	assert.Equal(t, "oracle_not_verified", errPayload["reason"])
}

func TestRegisterFarmInsufficientFunds(t *testing.T) {
	engine, _ := setupServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/oracle/contract", "", map[string]any{"oracle": oracleAddr})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/treasury/deposits", "", map[string]any{"principal": ownerAddr, "amount": 100})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/farms", ownerAddr, map[string]any{
		"quota":           10000,
		"efficiency_rate": 80,
		"period":          30,
		"location":        "FarmLocation",
		"unit":            "liters",
		"min_usage":       100,
		"max_usage":       5000,
		"usage_type":      "irrigation",
		"grace_period":    7,
	})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/farms/count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["count"])
}

func TestSetOracleContractTwice(t *testing.T) {
	engine, _ := setupServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/oracle/contract", "", map[string]any{"oracle": oracleAddr})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/oracle/contract", "", map[string]any{"oracle": "ST9OTHER"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, float64(100), decodeError(t, w)["code"])
}

func TestLogUsageByStrangerForbidden(t *testing.T) {
	engine, clk := setupServer(t)
	registerDefaultFarm(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/v1/farms/0/usage", "ST3FAKE", map[string]any{
		"amount":    500,
		"timestamp": clk.Now() + 1,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, float64(100), decodeError(t, w)["code"])

	w = doJSON(t, engine, http.MethodGet, "/v1/farms/0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["total_usage"])
}

func TestUpdateFarmByNonOwnerForbidden(t *testing.T) {
	engine, _ := setupServer(t)
	registerDefaultFarm(t, engine)

	w := doJSON(t, engine, http.MethodPatch, "/v1/farms/0", "ST3FAKE", map[string]any{
		"quota":           15000,
		"efficiency_rate": 85,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, float64(112), decodeError(t, w)["code"])
}

func TestUpdateFarmAndReadSlot(t *testing.T) {
	engine, _ := setupServer(t)
	registerDefaultFarm(t, engine)

	w := doJSON(t, engine, http.MethodPatch, "/v1/farms/0", ownerAddr, map[string]any{
		"quota":           15000,
		"efficiency_rate": 85,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/farms/0/last-update", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(15000), data["quota"])
	assert.Equal(t, float64(85), data["efficiency_rate"])
	assert.Equal(t, ownerAddr, data["updater"])
}

func TestGetFarmNotFound(t *testing.T) {
	engine, _ := setupServer(t)

	w := doJSON(t, engine, http.MethodGet, "/v1/farms/99", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(107), decodeError(t, w)["code"])
}

func TestCheckFarmExistence(t *testing.T) {
	engine, _ := setupServer(t)
	registerDefaultFarm(t, engine)

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/v1/owners/%s/farm", ownerAddr), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["exists"])

	w = doJSON(t, engine, http.MethodGet, "/v1/owners/STNON/farm", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["exists"])
}

func TestVerifyOracle(t *testing.T) {
	engine, _ := setupServer(t)

	w := doJSON(t, engine, http.MethodGet, "/v1/oracle/verify/"+oracleAddr, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["verified"])

	w = doJSON(t, engine, http.MethodGet, "/v1/oracle/verify/ST9OTHER", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["verified"])
}

func TestHealth(t *testing.T) {
	engine, _ := setupServer(t)

	w := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
