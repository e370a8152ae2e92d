package api

import (
	"fmt"
	"strconv"

	"BoatraceAPI/internal/model"

	"github.com/gin-gonic/gin"
)

// parseRaceDate 解析路径中的 :race_date（YYYY-MM-DD）
func parseRaceDate(c *gin.Context) (model.Date, error) {
	raw := c.Param("race_date")
	date, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, fmt.Errorf("日期格式不正确: %q（应为 YYYY-MM-DD）", raw)
	}
	return date, nil
}

// parseRaceParams 解析并校验 :race_date / :stadium_number / :race_number
func parseRaceParams(c *gin.Context) (model.RaceQuery, error) {
	date, err := parseRaceDate(c)
	if err != nil {
		return model.RaceQuery{}, err
	}
	stadium, err := parseIntParam(c, "stadium_number", model.MinStadiumNumber, model.MaxStadiumNumber)
	if err != nil {
		return model.RaceQuery{}, err
	}
	race, err := parseIntParam(c, "race_number", model.MinRaceNumber, model.MaxRaceNumber)
	if err != nil {
		return model.RaceQuery{}, err
	}
	return model.RaceQuery{Date: date, StadiumID: stadium, RaceNumber: race}, nil
}

func parseIntParam(c *gin.Context, name string, lo, hi int) (int, error) {
	raw := c.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s 必须是整数: %q", name, raw)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s 超出范围 %d-%d: %d", name, lo, hi, n)
	}
	return n, nil
}
