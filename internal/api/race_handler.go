package api

import (
	"net/http"

	"BoatraceAPI/internal/interfaces"
	"BoatraceAPI/internal/model"
	"BoatraceAPI/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RaceHandler 比赛数据查询接口
type RaceHandler struct {
	raceService *service.RaceService
	logger      *logrus.Logger
}

// NewRaceHandler 创建 RaceHandler；recorder 可为 nil
func NewRaceHandler(source interfaces.RaceDataSource, recorder interfaces.AccessRecorder, logger *logrus.Logger) *RaceHandler {
	return &RaceHandler{
		raceService: service.NewRaceService(source, recorder, logger),
		logger:      logger,
	}
}

// GetPrograms 出走表
// GET /api/programs/:race_date/:stadium_number/:race_number
func (h *RaceHandler) GetPrograms(c *gin.Context) {
	h.passthrough(c, model.KindPrograms, "获取出走表")
}

// GetOdds 赔率
// GET /api/odds/:race_date/:stadium_number/:race_number
func (h *RaceHandler) GetOdds(c *gin.Context) {
	h.passthrough(c, model.KindOdds, "获取赔率")
}

// GetPreviews 直前情报
// GET /api/previews/:race_date/:stadium_number/:race_number
func (h *RaceHandler) GetPreviews(c *gin.Context) {
	h.passthrough(c, model.KindPreviews, "获取直前情报")
}

func (h *RaceHandler) passthrough(c *gin.Context, kind model.RaceDataKind, what string) {
	q, err := parseRaceParams(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, ErrKindInvalidInput, err.Error())
		return
	}

	data, err := h.raceService.GetRaceData(c.Request.Context(), kind, q)
	if err != nil {
		respondError(c, h.logger, what, err)
		return
	}

	c.JSON(http.StatusOK, RaceData{
		RaceDate:      q.Date.String(),
		StadiumNumber: q.StadiumID,
		RaceNumber:    q.RaceNumber,
		Data:          data,
	})
}

// GetResults 规范化后的比赛结果
// GET /api/results/:race_date/:stadium_number/:race_number
func (h *RaceHandler) GetResults(c *gin.Context) {
	q, err := parseRaceParams(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, ErrKindInvalidInput, err.Error())
		return
	}

	record, err := h.raceService.GetResult(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "获取比赛结果", err)
		return
	}

	c.JSON(http.StatusOK, RaceData{
		RaceDate:      q.Date.String(),
		StadiumNumber: q.StadiumID,
		RaceNumber:    q.RaceNumber,
		Data:          record,
	})
}

// GetStadiums 当日开催场一览
// GET /api/stadiums/:race_date
func (h *RaceHandler) GetStadiums(c *gin.Context) {
	date, err := parseRaceDate(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, ErrKindInvalidInput, err.Error())
		return
	}

	data, err := h.raceService.GetStadiums(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, "获取开催场一览", err)
		return
	}

	c.JSON(http.StatusOK, StadiumData{RaceDate: date.String(), Data: data})
}

// ListStadiumCatalog 全国 24 场目录，供前端选择场地
// GET /api/stadiums
func (h *RaceHandler) ListStadiumCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stadiums": model.Stadiums})
}
