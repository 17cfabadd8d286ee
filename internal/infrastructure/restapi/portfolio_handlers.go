package restapi

import (
	"net/http"
	"strings"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountBook is the set of accounts the API operates on.
type AccountBook interface {
	Put(account *entity.Account)
	Get(id string) (*entity.Account, bool)
	Remove(id string) bool
	Active() []*entity.Account
}

// SessionController manages the credential session lifecycle.
type SessionController interface {
	Init()
	Clear()
	Info() entity.SessionInfo
}

// PortfolioHandler обрабатывает HTTP запросы, связанные с портфелем.
type PortfolioHandler struct {
	portfolio    port.PortfolioService
	book         AccountBook
	session      SessionController
	baseCurrency string
	logger       *zap.Logger
}

// NewPortfolioHandler создает новый экземпляр PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, book AccountBook, session SessionController, baseCurrency string, logger *zap.Logger) *PortfolioHandler {
	if baseCurrency == "" {
		baseCurrency = "usd"
	}
	return &PortfolioHandler{
		portfolio:    ps,
		book:         book,
		session:      session,
		baseCurrency: baseCurrency,
		logger:       logger.Named("restapi"),
	}
}

// AccountView is the JSON shape of one account. It never includes secrets.
type AccountView struct {
	entity.AccountMetadata
	State    entity.AccountState `json:"state"`
	Holdings []entity.Holding    `json:"holdings"`
}

type addWalletRequest struct {
	Name    string `json:"name"`
	Chain   string `json:"chain" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type addExchangeRequest struct {
	Name      string `json:"name"`
	Exchange  string `json:"exchange" binding:"required"`
	APIKey    string `json:"apiKey" binding:"required"`
	APISecret string `json:"apiSecret" binding:"required"`
}

type refreshResultView struct {
	AccountID string `json:"accountId"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *PortfolioHandler) view(account *entity.Account) AccountView {
	return AccountView{
		AccountMetadata: account.Metadata(),
		State:           h.portfolio.State(account),
		Holdings:        account.Holdings(),
	}
}

// ListAccounts возвращает все активные аккаунты.
func (h *PortfolioHandler) ListAccounts(c *gin.Context) {
	accounts := h.book.Active()
	out := make([]AccountView, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, h.view(acc))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

// AddWallet добавляет кошелек по адресу.
func (h *PortfolioHandler) AddWallet(c *gin.Context) {
	var req addWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.InvalidInput("restapi.add_wallet", err))
		return
	}

	account, err := h.portfolio.AddWallet(c.Request.Context(), req.Name, entity.Chain(req.Chain), req.Address)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.track(c, account)
	c.JSON(http.StatusCreated, h.view(account))
}

// AddExchange добавляет аккаунт биржи. Ключи живут только в сессии.
func (h *PortfolioHandler) AddExchange(c *gin.Context) {
	var req addExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.InvalidInput("restapi.add_exchange", err))
		return
	}

	account, err := h.portfolio.AddExchange(c.Request.Context(), req.Name, entity.ExchangeID(req.Exchange), req.APIKey, req.APISecret)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.track(c, account)
	c.JSON(http.StatusCreated, h.view(account))
}

func (h *PortfolioHandler) track(c *gin.Context, account *entity.Account) {
	h.book.Put(account)
	if err := h.portfolio.SaveAccount(c.Request.Context(), account); err != nil {
		h.logger.Warn("Account not persisted", zap.String("account", account.ID), zap.Error(err))
	}
}

// RefreshAccount обновляет балансы одного аккаунта.
func (h *PortfolioHandler) RefreshAccount(c *gin.Context) {
	account, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.portfolio.Refresh(c.Request.Context(), account); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(account))
}

// RemoveAccount удаляет аккаунт и стирает его ключи.
func (h *PortfolioHandler) RemoveAccount(c *gin.Context) {
	account, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.portfolio.RemoveAccount(c.Request.Context(), account); err != nil && !apperr.Is(err, apperr.KindNotFound) {
		h.fail(c, err)
		return
	}
	h.book.Remove(account.ID)
	c.Status(http.StatusNoContent)
}

// RefreshAll обновляет все активные аккаунты. Ошибки возвращаются по каждому аккаунту.
func (h *PortfolioHandler) RefreshAll(c *gin.Context) {
	results := h.portfolio.RefreshAll(c.Request.Context(), h.book.Active())

	out := make([]refreshResultView, 0, len(results))
	for _, r := range results {
		v := refreshResultView{AccountID: r.AccountID, OK: r.Err == nil}
		if r.Err != nil {
			v.Error = r.Err.Error()
			v.Kind = apperr.KindOf(r.Err).String()
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "failed": len(entity.Failed(results))})
}

// GetPortfolio возвращает оценку портфеля в базовой валюте.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	currency := strings.ToLower(strings.TrimSpace(c.DefaultQuery("currency", h.baseCurrency)))
	portfolio := h.portfolio.PortfolioTotal(c.Request.Context(), h.book.Active(), currency)
	c.JSON(http.StatusOK, portfolio)
}

// GetSession возвращает состояние сессии без секретов.
func (h *PortfolioHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Info())
}

// StartSession открывает новую сессию; старые ключи стираются.
func (h *PortfolioHandler) StartSession(c *gin.Context) {
	h.session.Init()
	h.logger.Info("Session started via API")
	c.JSON(http.StatusCreated, h.session.Info())
}

// ClearSession стирает все ключи.
func (h *PortfolioHandler) ClearSession(c *gin.Context) {
	h.session.Clear()
	c.Status(http.StatusNoContent)
}

// ListExchanges возвращает поддерживаемые биржи.
func (h *PortfolioHandler) ListExchanges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exchanges": h.portfolio.SupportedExchanges()})
}

func (h *PortfolioHandler) lookup(c *gin.Context) (*entity.Account, bool) {
	id := c.Param("id")
	account, ok := h.book.Get(id)
	if !ok || !account.Active() {
		h.fail(c, apperr.Newf(apperr.KindNotFound, "restapi.lookup", "account %s not found", id))
		return nil, false
	}
	return account, true
}

func (h *PortfolioHandler) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), Kind: apperr.KindOf(err).String()})
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindSessionExpired:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// ServerTimeouts groups http.Server timeouts in seconds, as configured.
type ServerTimeouts struct {
	Read, Write, Idle int
}

// NewServer wraps the router in an http.Server with the configured timeouts.
func NewServer(addr string, handler http.Handler, t ServerTimeouts) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(t.Read) * time.Second,
		WriteTimeout: time.Duration(t.Write) * time.Second,
		IdleTimeout:  time.Duration(t.Idle) * time.Second,
	}
}
