package api

import (
	"errors"
	"net/http"

	"BoatraceAPI/internal/interfaces"
	"BoatraceAPI/internal/normalizer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误种类，对应响应体中的 error 字段
const (
	ErrKindInvalidInput    = "invalid_input"
	ErrKindNotFound        = "not_found"
	ErrKindMalformedRecord = "malformed_record"
	ErrKindUpstream        = "upstream_failure"
	ErrKindInternal        = "internal_error"
)

// RaceData 单场数据的响应包装
type RaceData struct {
	RaceDate      string `json:"race_date"`
	StadiumNumber int    `json:"stadium_number"`
	RaceNumber    int    `json:"race_number"`
	Data          any    `json:"data"`
}

// StadiumData 当日开催场一览的响应包装
type StadiumData struct {
	RaceDate string `json:"race_date"`
	Data     any    `json:"data"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// classifyError 把服务层错误映射为状态码与错误种类
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, normalizer.ErrNotFound):
		return http.StatusNotFound, ErrKindNotFound
	case errors.Is(err, normalizer.ErrMalformedRecord):
		return http.StatusInternalServerError, ErrKindMalformedRecord
	case errors.Is(err, interfaces.ErrUpstream):
		return http.StatusInternalServerError, ErrKindUpstream
	}
	return http.StatusInternalServerError, ErrKindInternal
}

// respondError 记录并返回服务层错误
func respondError(c *gin.Context, logger *logrus.Logger, what string, err error) {
	status, kind := classifyError(err)
	entry := logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.Request.URL.Path,
		"kind":       kind,
	})
	if status >= http.StatusInternalServerError {
		entry.Error(what + "失败")
	} else {
		entry.Info(what + "失败")
	}
	writeError(c, status, kind, what+"失败: "+err.Error())
}
