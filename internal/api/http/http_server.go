package http

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/nkalinina/papertrade/internal/api/dto"
	"github.com/nkalinina/papertrade/internal/core"
	"github.com/nkalinina/papertrade/internal/domain"
	"github.com/nkalinina/papertrade/internal/feed"
	"github.com/nkalinina/papertrade/internal/middleware"
	"github.com/nkalinina/papertrade/internal/port"
)

type HTTPServer struct {
	Eng       *core.Engine
	Poller    *feed.Poller
	Cache     port.MarketCache
	Source    port.PriceSource
	Interval  string        // default candle interval
	RateLimit time.Duration // zero disables throttling
	Log       *logrus.Logger
}

func NewHTTPServer(eng *core.Engine, poller *feed.Poller, cache port.MarketCache, source port.PriceSource, interval string, log *logrus.Logger) *HTTPServer {
	return &HTTPServer{
		Eng:       eng,
		Poller:    poller,
		Cache:     cache,
		Source:    source,
		Interval:  interval,
		RateLimit: time.Millisecond * 100,
		Log:       log,
	}
}

func (s *HTTPServer) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *HTTPServer) Router() *gin.Engine {
	registerValidations()

	r := gin.Default()

	rl := middleware.NewRateLimiter(s.RateLimit)
	r.Use(rl.Middleware())

	r.POST("/orders", s.placeOrder)
	r.POST("/orders/cancel", s.cancelOrder)
	r.GET("/orders", s.getOrders)
	r.GET("/balance", s.getBalance)
	r.GET("/ticker", s.getTicker)
	r.GET("/candles", s.getCandles)
	r.GET("/ws", s.streamTicker)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// registerValidations teaches gin's validator to treat decimal.Decimal as a
// float and adds the "dgt" (decimal greater than zero) rule used by the DTOs.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("dgt", func(fl validator.FieldLevel) bool {
		f, ok := fl.Field().Interface().(float64)
		return ok && f > 0
	})
}

func (s *HTTPServer) placeOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.Eng.PlaceOrder(domain.Side(req.Side), domain.OrderType(req.Type), req.Quantity, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, core.ErrPriceUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, core.ErrInvalidOrderParams):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PlaceOrderResponse{Order: convertOrder(o)})
}

func (s *HTTPServer) cancelOrder(c *gin.Context) {
	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// unknown or non-open ids are a no-op, never an error
	cancelled := s.Eng.CancelOrder(req.OrderID)
	c.JSON(http.StatusOK, dto.CancelOrderResponse{
		OrderID:   req.OrderID,
		Cancelled: cancelled,
	})
}

func (s *HTTPServer) getOrders(c *gin.Context) {
	status := c.Query("status")
	orders := s.Eng.Orders()

	res := make([]dto.Order, 0, len(orders))
	for i := range orders {
		if status != "" && string(orders[i].Status) != status {
			continue
		}
		res = append(res, convertOrder(&orders[i]))
	}
	c.JSON(http.StatusOK, dto.GetOrdersResponse{Orders: res})
}

func (s *HTTPServer) getBalance(c *gin.Context) {
	b := s.Eng.Balance()
	c.JSON(http.StatusOK, dto.GetBalanceResponse{
		Quote: b.Quote,
		Base:  b.Base,
	})
}

func (s *HTTPServer) getTicker(c *gin.Context) {
	if s.Cache != nil {
		if t, err := s.Cache.GetTicker(c.Request.Context(), s.Eng.Pair()); err == nil && t != nil {
			c.JSON(http.StatusOK, dto.Ticker{Pair: t.Pair, Price: t.Price, Time: t.Time})
			return
		}
	}
	price, ok := s.Eng.LastPrice()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price received yet"})
		return
	}
	c.JSON(http.StatusOK, dto.Ticker{Pair: s.Eng.Pair(), Price: price, Time: time.Now()})
}

func (s *HTTPServer) getCandles(c *gin.Context) {
	interval := c.DefaultQuery("interval", s.Interval)
	pair := s.Eng.Pair()

	if s.Cache != nil {
		if candles, err := s.Cache.GetCandles(c.Request.Context(), pair, interval); err == nil && candles != nil {
			c.JSON(http.StatusOK, dto.GetCandlesResponse{Pair: pair, Interval: interval, Candles: convertCandles(candles)})
			return
		}
	}

	candles, err := s.Source.Candles(c.Request.Context(), pair, interval, 100)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if s.Cache != nil {
		_ = s.Cache.SetCandles(c.Request.Context(), pair, interval, candles)
	}
	c.JSON(http.StatusOK, dto.GetCandlesResponse{Pair: pair, Interval: interval, Candles: convertCandles(candles)})
}

func convertOrder(o *domain.Order) dto.Order {
	filled := "0.00%"
	if o.Status == domain.Filled {
		filled = "100.00%"
	}
	return dto.Order{
		ID:        o.ID,
		Pair:      o.Pair,
		Side:      dto.Side(o.Side),
		Type:      dto.OrderType(o.Type),
		Price:     o.Price,
		Quantity:  o.Quantity,
		Notional:  o.Notional,
		Filled:    filled,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func convertCandles(candles []domain.Candle) []dto.Candle {
	res := make([]dto.Candle, len(candles))
	for i, c := range candles {
		res[i] = dto.Candle{
			OpenTime: c.OpenTime,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
		}
	}
	return res
}
