package http

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPartialRater struct {
	rate       float64
	lastWindow int
}

func (s *stubPartialRater) PartialRate(ctx context.Context, windowHours int) (float64, error) {
	s.lastWindow = windowHours
	return s.rate, nil
}

func partialRateRouter(partials PartialRater) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterMembershipRoutes(r, NewMembershipHandler(nil, nil, partials))
	return r
}

func TestGetPartialRate_ReportsRateFromAuditSink(t *testing.T) {
	rater := &stubPartialRater{rate: 0.25}
	r := partialRateRouter(rater)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ops/toggles/partial-rate?window_hours=48", nil))

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 48, rater.lastWindow)
	assert.JSONEq(t, `{"window_hours": 48, "partial_rate": 0.25}`, w.Body.String())
}

func TestGetPartialRate_DefaultWindow(t *testing.T) {
	rater := &stubPartialRater{}
	r := partialRateRouter(rater)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ops/toggles/partial-rate", nil))

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 24, rater.lastWindow)
}

func TestGetPartialRate_InvalidWindow(t *testing.T) {
	r := partialRateRouter(&stubPartialRater{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ops/toggles/partial-rate?window_hours=zero", nil))

	assert.Equal(t, 400, w.Code)
}

func TestGetPartialRate_AuditDisabled(t *testing.T) {
	r := partialRateRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ops/toggles/partial-rate", nil))

	assert.Equal(t, 404, w.Code)
}