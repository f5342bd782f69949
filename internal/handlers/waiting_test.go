package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomescape/internal/auth"
	"roomescape/internal/queue"
	"roomescape/internal/response"
	"roomescape/internal/storage/memory"
)

const (
	scheduleID int64 = 5
	ivanID     int64 = 1
	petrID     int64 = 2
)

// AuthMiddlewareTest подставляет member id из X-Test-MemberID вместо JWT.
func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-Test-MemberID"), 10, 64)
		if err != nil {
			id = ivanID
		}
		c.Set(auth.MemberIDKey, id)
		c.Next()
	}
}

func setupTestServer(t *testing.T, opts ...queue.Option) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := memory.NewDirectory()
	dir.PutSlot(queue.SlotSummary{ID: scheduleID, ThemeName: "Тестовая тема", Price: 20000, Date: "2026-10-20", Time: "13:00"})
	dir.PutMember(queue.MemberSummary{ID: ivanID, Username: "ivan", Name: "Иван"})
	dir.PutMember(queue.MemberSummary{ID: petrID, Username: "petr", Name: "Петр"})

	opts = append([]queue.Option{queue.WithLogger(logger)}, opts...)
	manager := queue.NewManager(memory.NewStore(dir), dir, dir, opts...)

	ts := httptest.NewServer(NewRouter(NewWaitingHandler(manager), AuthMiddlewareTest(), logger))
	t.Cleanup(ts.Close)
	return ts
}

func request(t *testing.T, method, url string, memberID int64, body interface{}) *http.Response {
	t.Helper()
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-MemberID", strconv.FormatInt(memberID, 10))

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode(t *testing.T, res *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}

func join(t *testing.T, ts *httptest.Server, memberID int64) response.JoinResponse {
	t.Helper()
	res := request(t, http.MethodPost, ts.URL+"/api/waitings", memberID, JoinRequest{ScheduleID: scheduleID})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var joined response.JoinResponse
	decode(t, res, &joined)
	assert.Equal(t, fmt.Sprintf("/api/waitings/%d", joined.ID), res.Header.Get("Location"))
	return joined
}

func TestWaitingFlow(t *testing.T) {
	ts := setupTestServer(t)

	// пустая очередь отдаёт пустой список, а не ошибку
	res := request(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d/waitings", ts.URL, scheduleID), ivanID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var queueList []queue.EntrySummary
	decode(t, res, &queueList)
	assert.Empty(t, queueList)

	ivan := join(t, ts, ivanID)
	assert.Equal(t, 1, ivan.Position)
	petr := join(t, ts, petrID)
	assert.Equal(t, 2, petr.Position)

	res = request(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d/waitings/head", ts.URL, scheduleID), petrID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var head queue.EntrySummary
	decode(t, res, &head)
	assert.Equal(t, ivan.ID, head.ID)
	assert.Equal(t, "Иван", head.Member.Name)
	assert.Equal(t, "Тестовая тема", head.Slot.ThemeName)

	res = request(t, http.MethodDelete, fmt.Sprintf("%s/api/waitings/%d", ts.URL, ivan.ID), ivanID, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res = request(t, http.MethodGet, fmt.Sprintf("%s/api/waitings/%d/position", ts.URL, petr.ID), petrID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var pos response.PositionResponse
	decode(t, res, &pos)
	assert.Equal(t, 1, pos.Position)

	res = request(t, http.MethodGet, fmt.Sprintf("%s/api/waitings/%d/position", ts.URL, ivan.ID), ivanID, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	var notFound response.ErrorResponse
	decode(t, res, &notFound)
	assert.Equal(t, "WAITING_NOT_FOUND", notFound.Code)

	res = request(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d/waitings", ts.URL, scheduleID), ivanID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &queueList)
	require.Len(t, queueList, 1)
	assert.Equal(t, petr.ID, queueList[0].ID)
	assert.Equal(t, 1, queueList[0].Position)
}

func TestListMine(t *testing.T) {
	ts := setupTestServer(t)

	join(t, ts, petrID)
	mine := join(t, ts, ivanID)

	res := request(t, http.MethodGet, ts.URL+"/api/waitings/mine", ivanID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var list []queue.EntrySummary
	decode(t, res, &list)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
	assert.Equal(t, 2, list[0].Position)
	assert.Equal(t, "13:00", list[0].Slot.Time)
}

func TestLeaveForeignEntryIsForbidden(t *testing.T) {
	ts := setupTestServer(t)
	ivan := join(t, ts, ivanID)

	res := request(t, http.MethodDelete, fmt.Sprintf("%s/api/waitings/%d", ts.URL, ivan.ID), petrID, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = request(t, http.MethodDelete, fmt.Sprintf("%s/api/waitings/%d", ts.URL, ivan.ID+100), ivanID, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestJoinErrors(t *testing.T) {
	ts := setupTestServer(t, queue.WithRejectDuplicates(true))

	cases := []struct {
		name   string
		body   interface{}
		member int64
		status int
		code   string
	}{
		{"missing schedule", map[string]interface{}{}, ivanID, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative schedule", JoinRequest{ScheduleID: -1}, ivanID, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown schedule", JoinRequest{ScheduleID: 404}, ivanID, http.StatusNotFound, "SCHEDULE_NOT_FOUND"},
		{"unknown member", JoinRequest{ScheduleID: scheduleID}, 404, http.StatusNotFound, "MEMBER_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := request(t, http.MethodPost, ts.URL+"/api/waitings", tc.member, tc.body)
			assert.Equal(t, tc.status, res.StatusCode)
			var body response.ErrorResponse
			decode(t, res, &body)
			assert.Equal(t, tc.code, body.Code)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		join(t, ts, petrID)
		res := request(t, http.MethodPost, ts.URL+"/api/waitings", petrID, JoinRequest{ScheduleID: scheduleID})
		assert.Equal(t, http.StatusConflict, res.StatusCode)
	})
}

func TestPeekHeadOnEmptyQueue(t *testing.T) {
	ts := setupTestServer(t)

	res := request(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d/waitings/head", ts.URL, scheduleID), ivanID, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	var body response.ErrorResponse
	decode(t, res, &body)
	assert.Equal(t, "QUEUE_EMPTY", body.Code)
}

func TestInvalidPathIDs(t *testing.T) {
	ts := setupTestServer(t)

	res := request(t, http.MethodGet, ts.URL+"/api/waitings/abc/position", ivanID, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = request(t, http.MethodGet, ts.URL+"/api/schedules/0/waitings", ivanID, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRouterWithJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	secret := []byte("secret")
	dir := memory.NewDirectory()
	dir.PutSlot(queue.SlotSummary{ID: scheduleID})
	dir.PutMember(queue.MemberSummary{ID: ivanID})
	manager := queue.NewManager(memory.NewStore(dir), dir, dir, queue.WithLogger(logger))
	router := NewRouter(NewWaitingHandler(manager), auth.Middleware(secret), logger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/waitings/mine", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.Sign(secret, ivanID, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/waitings/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(requestIDHeader, "req-1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
	assert.JSONEq(t, `[]`, w.Body.String())
}

type countFailingStore struct {
	*memory.Store
}

func (countFailingStore) CountAhead(context.Context, int64, int64) (int64, error) {
	return 0, &queue.StoreError{Op: "count ahead", Err: errors.New("connection reset")}
}

func TestJoinAnswersCreatedWhenPositionUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := memory.NewDirectory()
	dir.PutSlot(queue.SlotSummary{ID: scheduleID})
	dir.PutMember(queue.MemberSummary{ID: ivanID})
	store := memory.NewStore(dir)
	manager := queue.NewManager(countFailingStore{store}, dir, dir, queue.WithLogger(logger))
	ts := httptest.NewServer(NewRouter(NewWaitingHandler(manager), AuthMiddlewareTest(), logger))
	t.Cleanup(ts.Close)

	res := request(t, http.MethodPost, ts.URL+"/api/waitings", ivanID, JoinRequest{ScheduleID: scheduleID})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var body map[string]interface{}
	decode(t, res, &body)
	assert.NotContains(t, body, "position")
	id, ok := body["id"].(float64)
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("/api/waitings/%d", int64(id)), res.Header.Get("Location"))

	// клиент может отменить запись по полученному id
	res = request(t, http.MethodDelete, fmt.Sprintf("%s/api/waitings/%d", ts.URL, int64(id)), ivanID, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}
