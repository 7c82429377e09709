package domain

import (
	"testing"
	"time"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

func TestNewRepairDefaults(t *testing.T) {
	now := time.Now()
	r := &model.Repair{Title: "漏水", Status: model.RepairCompleted}

	if err := NewRepairDefaults(r, now); err != nil {
		t.Fatalf("NewRepairDefaults 失败: %v", err)
	}
	if r.Status != model.RepairPending {
		t.Errorf("期望 status=pending，实际=%s", r.Status)
	}
	if r.Priority != model.PriorityMedium {
		t.Errorf("期望 priority=medium，实际=%s", r.Priority)
	}
	if !r.Date.Equal(now) {
		t.Errorf("期望 date 默认为当前时间")
	}
}

func TestNewRepairDefaults_InvalidPriority(t *testing.T) {
	r := &model.Repair{Priority: "critical"}
	if err := NewRepairDefaults(r, time.Now()); err == nil {
		t.Error("无效优先级应校验失败")
	}
}

func TestApplyRepairStatus_CompletedDateOnce(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)
	r := &model.Repair{Status: model.RepairInProgress}

	if err := ApplyRepairStatus(r, model.RepairCompleted, first); err != nil {
		t.Fatalf("in_progress→completed 失败: %v", err)
	}
	if r.CompletedDate == nil || !r.CompletedDate.Equal(first) {
		t.Fatalf("期望 completedDate=%v，实际=%v", first, r.CompletedDate)
	}

	if err := ApplyRepairStatus(r, model.RepairCompleted, later); err != nil {
		t.Fatalf("重复写入 completed 应为空操作: %v", err)
	}
	if !r.CompletedDate.Equal(first) {
		t.Errorf("completedDate 不应被覆盖，实际=%v", r.CompletedDate)
	}
}

func TestApplyRepairStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to model.RepairStatus
		ok       bool
	}{
		{model.RepairPending, model.RepairInProgress, true},
		{model.RepairPending, model.RepairCompleted, true},
		{model.RepairPending, model.RepairCancelled, true},
		{model.RepairInProgress, model.RepairCancelled, true},
		{model.RepairInProgress, model.RepairPending, false},
		{model.RepairCompleted, model.RepairInProgress, false},
		{model.RepairCancelled, model.RepairPending, false},
		{model.RepairCancelled, model.RepairCancelled, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			r := &model.Repair{Status: tc.from}
			err := ApplyRepairStatus(r, tc.to, time.Now())
			if tc.ok && err != nil {
				t.Fatalf("期望允许，实际: %v", err)
			}
			if !tc.ok {
				appErr, isApp := pkgerrors.As(err)
				if !isApp || appErr.Code != pkgerrors.CodeInvalidTransition {
					t.Fatalf("期望 INVALID_TRANSITION，实际: %v", err)
				}
				if r.Status != tc.from {
					t.Error("失败时状态不应改变")
				}
			}
		})
	}
}

func TestApplyRepairAssignment(t *testing.T) {
	now := time.Now()

	r := &model.Repair{}
	ApplyRepairAssignment(r, "worker-1", nil, now)
	if r.AssignedTo == nil || *r.AssignedTo != "worker-1" {
		t.Fatal("assignedTo 未设置")
	}
	if r.ScheduledDate == nil || !r.ScheduledDate.Equal(now) {
		t.Errorf("未提供计划日期时应默认为当前时间")
	}

	explicit := now.Add(72 * time.Hour)
	r2 := &model.Repair{}
	ApplyRepairAssignment(r2, "worker-1", &explicit, now)
	if !r2.ScheduledDate.Equal(explicit) {
		t.Errorf("应使用显式计划日期")
	}
}

func TestApplyRepairAssignment_ReassignResetsSchedule(t *testing.T) {
	now := time.Now()
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	r := &model.Repair{}
	ApplyRepairAssignment(r, "worker-1", &old, now)
	ApplyRepairAssignment(r, "worker-2", nil, now)

	if r.AssignedTo == nil || *r.AssignedTo != "worker-2" {
		t.Fatal("期望改派给 worker-2")
	}
	if r.ScheduledDate == nil || !r.ScheduledDate.Equal(now) {
		t.Errorf("改派未提供计划日期时应重置为当前时间，实际 %v", r.ScheduledDate)
	}
}

func TestApplyRepairFeedback(t *testing.T) {
	now := time.Now()

	pending := &model.Repair{Status: model.RepairPending}
	if err := ApplyRepairFeedback(pending, 5, "好", now); err == nil {
		t.Error("未完成的维修不能评价")
	}

	done := &model.Repair{Status: model.RepairCompleted}
	if err := ApplyRepairFeedback(done, 6, "", now); err == nil {
		t.Error("评分超过5应校验失败")
	}
	if err := ApplyRepairFeedback(done, 4, "及时", now); err != nil {
		t.Fatalf("评价失败: %v", err)
	}
	fb := done.Feedback.Data()
	if fb == nil || fb.Rating != 4 || fb.Comment != "及时" {
		t.Errorf("评价内容不正确: %+v", fb)
	}
}
