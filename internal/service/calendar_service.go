package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
)

// repairEventDuration 维修日程在日历中占用的时长
const repairEventDuration = 2 * time.Hour

// CalendarService 客户日历订阅
type CalendarService interface {
	// ClientCalendar 生成客户的 iCalendar 日程：临时施工起止时间与已排期的维修
	ClientCalendar(ctx context.Context, caller Caller) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) ClientCalendar(ctx context.Context, caller Caller) (string, error) {
	works, _, err := s.repo.TempWork.List(ctx, repository.TempWorkFilter{ClientID: caller.ID})
	if err != nil {
		s.logger.Error("查询临时施工失败", zap.String("client_id", caller.ID), zap.Error(err))
		return "", err
	}
	repairs, _, err := s.repo.Repair.List(ctx, repository.RepairFilter{ClientID: caller.ID, Scheduled: true})
	if err != nil {
		s.logger.Error("查询维修排期失败", zap.String("client_id", caller.ID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//xbang//client calendar//CN")
	cal.SetXWRCalName("施工与维修日程")

	dtStamp := time.Now().UTC()
	for i := range works {
		tw := &works[i]
		if tw.Status == model.TempWorkRejected {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("tempwork-%s@xbang", tw.TempWorkID))
		evt.SetDtStampTime(dtStamp)
		evt.SetModifiedAt(tw.UpdatedAt)
		evt.SetStartAt(tw.StartDate)
		evt.SetEndAt(tw.EndDate)
		evt.SetSummary(fmt.Sprintf("临时施工：%s", tw.WorkType))
		evt.SetLocation(tw.Location)
		evt.SetDescription(tw.Description)
		if tw.Status == model.TempWorkPendingReview {
			evt.SetStatus(ics.ObjectStatusTentative)
		} else {
			evt.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	for i := range repairs {
		r := &repairs[i]
		if r.Status == model.RepairCancelled || r.ScheduledDate == nil {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("repair-%s@xbang", r.RepairID))
		evt.SetDtStampTime(dtStamp)
		evt.SetModifiedAt(r.UpdatedAt)
		evt.SetStartAt(*r.ScheduledDate)
		evt.SetEndAt(r.ScheduledDate.Add(repairEventDuration))
		evt.SetSummary(fmt.Sprintf("维修：%s", r.Title))
		evt.SetLocation(r.Location)
		evt.SetDescription(r.Description)
		evt.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.Serialize(), nil
}
