package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSoldOut = stderrors.New("sold out")

func serve(t *testing.T, responder *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/things/:id", func(c *gin.Context) { responder.RespondError(c, err) })
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/4", nil))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_FirstMatchingMapperWins(t *testing.T) {
	responder := NewResponder(nil,
		func(err error) (ProblemDetail, bool) {
			if stderrors.Is(err, errSoldOut) {
				return ErrOutOfStock.WithDetail(err.Error()), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return ErrConflict, true },
	)

	rec, problem := serve(t, responder, fmt.Errorf("add item: %w", errSoldOut))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeOutOfStock, problem.Type)
	assert.Equal(t, "/api/things/4", problem.Instance)
}

func TestResponder_UnknownErrorHidesDetail(t *testing.T) {
	rec, problem := serve(t, NewResponder(nil), stderrors.New("dial tcp 10.0.0.3: refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, problem.Detail)
}

func TestResponder_PassesProblemThrough(t *testing.T) {
	rec, problem := serve(t, NewResponder(nil), NewNotFoundProblem("product", 4))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product", problem.Extensions["resourceType"])
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, FromStatus(422, "bad").Status)
	assert.Equal(t, TypeUnauthorized, FromStatus(401, "").Type)
	assert.Equal(t, http.StatusBadGateway, FromStatus(503, "down").Status)
	assert.Equal(t, http.StatusTooManyRequests, FromStatus(429, "slow").Status)
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	_ = ErrValidation.WithExtension("fields", map[string]string{"name": "required"})
	assert.Nil(t, ErrValidation.Extensions)
}
