package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"BoatraceAPI/internal/interfaces"
	"BoatraceAPI/internal/model"
	"BoatraceAPI/internal/normalizer"
	"BoatraceAPI/internal/utils/reqctx"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// RaceService 比赛数据查询：从数据源取数，结果数据经规范化后返回
type RaceService struct {
	source   interfaces.RaceDataSource
	recorder interfaces.AccessRecorder
	logger   *logrus.Logger
}

// NewRaceService 创建 RaceService；recorder 为 nil 时不记录访问日志
func NewRaceService(source interfaces.RaceDataSource, recorder interfaces.AccessRecorder, logger *logrus.Logger) *RaceService {
	return &RaceService{
		source:   source,
		recorder: recorder,
		logger:   logger,
	}
}

// GetResult 取得单场结果并规范化
func (s *RaceService) GetResult(ctx context.Context, q model.RaceQuery) (*model.RaceResultRecord, error) {
	start := time.Now()

	raw, err := s.source.FetchResults(ctx, q.Date, q.StadiumID, q.RaceNumber)
	if err == nil {
		var record *model.RaceResultRecord
		record, err = normalizer.Normalize(raw, q.StadiumID, q.RaceNumber, q.Date)
		if err == nil {
			s.record(ctx, model.KindResults, q, nil, start)
			return record, nil
		}
	}

	s.record(ctx, model.KindResults, q, err, start)
	return nil, err
}

// GetRaceData 出走表/赔率/直前情报原样透传
func (s *RaceService) GetRaceData(ctx context.Context, kind model.RaceDataKind, q model.RaceQuery) (json.RawMessage, error) {
	start := time.Now()
	data, err := s.source.FetchRaceData(ctx, kind, q.Date, q.StadiumID, q.RaceNumber)
	s.record(ctx, kind, q, err, start)
	return data, err
}

// GetStadiums 当日开催场一览原样透传
func (s *RaceService) GetStadiums(ctx context.Context, date model.Date) (json.RawMessage, error) {
	start := time.Now()
	data, err := s.source.FetchStadiums(ctx, date)
	s.record(ctx, model.KindStadiums, model.RaceQuery{Date: date}, err, start)
	return data, err
}

// Outcome 把错误归类为访问记录的结果分类
func Outcome(err error) string {
	switch {
	case err == nil:
		return model.OutcomeOK
	case errors.Is(err, normalizer.ErrNotFound):
		return model.OutcomeNotFound
	case errors.Is(err, normalizer.ErrMalformedRecord):
		return model.OutcomeMalformed
	case errors.Is(err, interfaces.ErrUpstream):
		return model.OutcomeUpstream
	}
	return model.OutcomeInternal
}

// record 写访问记录，失败只告警不影响响应
func (s *RaceService) record(ctx context.Context, kind model.RaceDataKind, q model.RaceQuery, err error, start time.Time) {
	outcome := Outcome(err)
	fields := logrus.Fields{
		"kind":    kind,
		"date":    q.Date.String(),
		"stadium": q.StadiumID,
		"race":    q.RaceNumber,
		"outcome": outcome,
	}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("比赛数据查询失败")
	} else {
		s.logger.WithFields(fields).Debug("比赛数据查询成功")
	}

	if s.recorder == nil {
		return
	}

	entry := &model.AccessLog{
		RequestID:     reqctx.RequestID(ctx),
		DataKind:      string(kind),
		RaceDate:      q.Date.Time,
		StadiumNumber: q.StadiumID,
		RaceNumber:    q.RaceNumber,
		Outcome:       outcome,
		DurationMs:    time.Since(start).Milliseconds(),
	}
	if err != nil {
		detail, _ := json.Marshal(map[string]string{"error": err.Error()})
		entry.Detail = datatypes.JSON(detail)
	}
	// 客户端断开不应丢失访问记录
	if recErr := s.recorder.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		s.logger.WithError(recErr).WithFields(fields).Warn("写入访问记录失败")
	}
}
