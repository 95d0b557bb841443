package server

import (
	"net/http"

	"github.com/aquametric/aquatrack/internal/principal"
	"github.com/gin-gonic/gin"
)

type depositRequest struct {
	Principal string `json:"principal"`
	Amount    uint64 `json:"amount"`
}

func (s *Server) Deposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	to, err := principal.Parse(req.Principal)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	account, err := s.treasurysvc.Deposit(c.Request.Context(), to, req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}

func (s *Server) GetAccount(c *gin.Context) {
	p, err := principal.Parse(c.Param("principal"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	account, err := s.treasurysvc.Balance(c.Request.Context(), p)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}
