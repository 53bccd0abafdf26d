package test_utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/git-webzoom/assistente-x-hub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// CreateTestDb opens a private in-memory database, migrates the given models
// and installs it as the process-wide storage handle.
func CreateTestDb(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models...))

	storage.SetDb(db)

	return db
}

func MakeRequest(
	router *gin.Engine,
	method, path, authHeader string,
	body any,
) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func MakeRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	method, path, authHeader string,
	body any,
	expectedStatus int,
	response any,
) {
	t.Helper()

	w := MakeRequest(router, method, path, authHeader, body)
	require.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	if response != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), response))
	}
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
	response any,
) {
	t.Helper()
	MakeRequestAndUnmarshal(t, router, "POST", path, authHeader, body, expectedStatus, response)
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	expectedStatus int,
	response any,
) {
	t.Helper()
	MakeRequestAndUnmarshal(t, router, "GET", path, authHeader, nil, expectedStatus, response)
}
