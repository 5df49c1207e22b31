package responses

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handler(c)
	return w
}

func TestSuccess(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"id": 1}, "Correspondence created successfully")
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"success","message":"Correspondence created successfully","data":{"id":1}}`, w.Body.String())
}

func TestFail(t *testing.T) {
	w := record(func(c *gin.Context) {
		Fail(c, http.StatusConflict, errors.New("uniqueness violation"), "Failed to create correspondence")
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Failed to create correspondence","error":"uniqueness violation"}`, w.Body.String())
}

func TestFail_WithoutDetail(t *testing.T) {
	w := record(func(c *gin.Context) {
		Fail(c, http.StatusInternalServerError, nil, "Failed to count rows")
	})

	assert.JSONEq(t, `{"status":"error","message":"Failed to count rows"}`, w.Body.String())
}
