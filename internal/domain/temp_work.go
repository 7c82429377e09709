package domain

import (
	"time"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// tempWorkTransitions 已拒绝与已完成为终态
var tempWorkTransitions = map[model.TempWorkStatus][]model.TempWorkStatus{
	model.TempWorkPendingReview: {model.TempWorkApproved, model.TempWorkRejected},
	model.TempWorkApproved:      {model.TempWorkInProgress},
	model.TempWorkInProgress:    {model.TempWorkCompleted},
}

// CanTransitionTempWork 临时施工状态是否允许从 from 变更为 to
func CanTransitionTempWork(from, to model.TempWorkStatus) bool {
	for _, s := range tempWorkTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTempWorkDates 结束时间必须严格晚于开始时间
func ValidateTempWorkDates(start, end time.Time) error {
	if !end.After(start) {
		return pkgerrors.Validation("endDate", "结束日期必须晚于开始日期")
	}
	return nil
}

// ApplyTempWorkStatus 变更临时施工状态
// 审批（批准或拒绝）时记录审批人与审批意见；同状态写入为空操作
func ApplyTempWorkStatus(tw *model.TempWork, to model.TempWorkStatus, approverID, comments string) error {
	if !to.Valid() {
		return pkgerrors.Validation("status", "无效的施工状态")
	}
	if to == tw.Status {
		return nil
	}
	if !CanTransitionTempWork(tw.Status, to) {
		return pkgerrors.StateConflict(pkgerrors.CodeInvalidTransition,
			"施工状态不能从 "+string(tw.Status)+" 变更为 "+string(to))
	}

	if tw.Status == model.TempWorkPendingReview {
		tw.ApprovedBy = &approverID
		if comments != "" {
			tw.ApprovalComments = comments
		}
	}
	tw.Status = to
	return nil
}
