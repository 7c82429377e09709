package domain

import (
	"time"

	"gorm.io/datatypes"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// repairTransitions completed 与 cancelled 为终态
var repairTransitions = map[model.RepairStatus][]model.RepairStatus{
	model.RepairPending:    {model.RepairInProgress, model.RepairCompleted, model.RepairCancelled},
	model.RepairInProgress: {model.RepairCompleted, model.RepairCancelled},
}

// CanTransitionRepair 维修状态是否允许从 from 变更为 to
func CanTransitionRepair(from, to model.RepairStatus) bool {
	for _, s := range repairTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NewRepairDefaults 填充新建维修申请的默认值
func NewRepairDefaults(r *model.Repair, now time.Time) error {
	r.Status = model.RepairPending
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
	if !r.Priority.Valid() {
		return pkgerrors.Validation("priority", "无效的优先级")
	}
	if r.Date.IsZero() {
		r.Date = now
	}
	return nil
}

// ApplyRepairStatus 变更维修状态
// 同状态写入为空操作；首次进入 completed 时记录 completedDate，之后不再覆盖
func ApplyRepairStatus(r *model.Repair, to model.RepairStatus, now time.Time) error {
	if !to.Valid() {
		return pkgerrors.Validation("status", "无效的维修状态")
	}
	if to != r.Status {
		if !CanTransitionRepair(r.Status, to) {
			return pkgerrors.StateConflict(pkgerrors.CodeInvalidTransition,
				"维修状态不能从 "+string(r.Status)+" 变更为 "+string(to))
		}
		r.Status = to
	}

	if r.Status == model.RepairCompleted && r.CompletedDate == nil {
		completed := now
		r.CompletedDate = &completed
	}
	return nil
}

// ApplyRepairAssignment 指派维修人员，未提供计划日期时默认为当前时间
// 重新指派同样适用，不沿用上一次的计划日期
func ApplyRepairAssignment(r *model.Repair, assignedTo string, scheduled *time.Time, now time.Time) {
	r.AssignedTo = &assignedTo
	if scheduled != nil {
		r.ScheduledDate = scheduled
		return
	}
	at := now
	r.ScheduledDate = &at
}

// ApplyRepairFeedback 完工后提交评价
func ApplyRepairFeedback(r *model.Repair, rating int, comment string, now time.Time) error {
	if r.Status != model.RepairCompleted {
		return pkgerrors.StateConflict(pkgerrors.CodeInvalidTransition, "维修完成后才能评价")
	}
	if rating < 1 || rating > 5 {
		return pkgerrors.Validation("rating", "评分必须在1到5之间")
	}
	r.Feedback = datatypes.NewJSONType(&model.RepairFeedback{Rating: rating, Comment: comment, Date: now})
	return nil
}
