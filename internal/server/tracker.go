package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aquametric/aquatrack/internal/principal"
	trackerdomain "github.com/aquametric/aquatrack/internal/tracker/domain"
	"github.com/gin-gonic/gin"
)

type setOracleContractRequest struct {
	Oracle string `json:"oracle"`
}

func (s *Server) SetOracleContract(c *gin.Context) {
	var req setOracleContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	designee, err := principal.Parse(req.Oracle)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	err = s.trackersvc.SetOracleContract(c.Request.Context(), designee)
	s.record("set_oracle_contract", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"oracle_contract": designee.String()}})
}

func (s *Server) VerifyOracle(c *gin.Context) {
	p, err := principal.Parse(c.Param("principal"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"principal": p.String(),
		"verified":  s.oracles.IsVerified(p),
	}})
}

type setLoggingFeeRequest struct {
	Fee uint64 `json:"fee"`
}

func (s *Server) SetLoggingFee(c *gin.Context) {
	var req setLoggingFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.trackersvc.SetLoggingFee(c.Request.Context(), req.Fee)
	s.record("set_logging_fee", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"fee": req.Fee}})
}

func (s *Server) RegisterFarm(c *gin.Context) {
	var req trackerdomain.RegisterFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.Location = strings.TrimSpace(req.Location)

	id, err := s.trackersvc.RegisterFarm(c.Request.Context(), req)
	s.record("register_farm", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"farm_id": id}})
}

func (s *Server) GetFarm(c *gin.Context) {
	id, ok := farmID(c)
	if !ok {
		return
	}

	farm, err := s.trackersvc.GetFarm(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": farm})
}

func (s *Server) GetFarmUpdate(c *gin.Context) {
	id, ok := farmID(c)
	if !ok {
		return
	}

	update, err := s.trackersvc.GetFarmUpdate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": update})
}

func (s *Server) GetFarmCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": s.trackersvc.FarmCount(c.Request.Context())}})
}

func (s *Server) GetRemainingQuota(c *gin.Context) {
	id, ok := farmID(c)
	if !ok {
		return
	}

	remaining := s.trackersvc.RemainingQuota(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"farm_id":         id,
		"remaining_quota": remaining,
	}})
}

func (s *Server) CheckFarmExistence(c *gin.Context) {
	owner, err := principal.Parse(c.Param("principal"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"owner":  owner.String(),
		"exists": s.trackersvc.FarmExists(c.Request.Context(), owner),
	}})
}

type logUsageRequest struct {
	Amount    uint64 `json:"amount"`
	Timestamp uint64 `json:"timestamp"`
}

func (s *Server) LogUsage(c *gin.Context) {
	id, ok := farmID(c)
	if !ok {
		return
	}

	var req logUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.trackersvc.LogUsage(c.Request.Context(), id, req.Amount, req.Timestamp)
	s.record("log_usage", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged": true}})
}

type updateFarmRequest struct {
	Quota          uint64 `json:"quota"`
	EfficiencyRate uint64 `json:"efficiency_rate"`
}

func (s *Server) UpdateFarm(c *gin.Context) {
	id, ok := farmID(c)
	if !ok {
		return
	}

	var req updateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.trackersvc.UpdateFarm(c.Request.Context(), id, req.Quota, req.EfficiencyRate)
	s.record("update_farm", err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

func farmID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		AbortWithError(c, trackerdomain.ErrInvalidFarmID)
		return 0, false
	}
	return id, true
}

func (s *Server) record(op string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOperation(op, err)
}
