// Package health 检查 MySQL、Redis 等依赖组件是否可用
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Check 一个被检查的组件
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// ComponentStatus 单个组件的检查结果
type ComponentStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report 健康检查结果
type Report struct {
	Status     string            `json:"status"`
	Components []ComponentStatus `json:"components"`
}

// Healthy 所有组件都可用
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Service 健康检查实现
type Service struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthService 创建健康检查服务
func NewHealthService(checks ...Check) *Service {
	return &Service{checks: checks, timeout: 2 * time.Second}
}

// Check 依次检查所有组件，任一失败则整体为 degraded
func (s *Service) Check(ctx context.Context) Report {
	report := Report{Status: StatusHealthy, Components: make([]ComponentStatus, 0, len(s.checks))}
	for _, c := range s.checks {
		pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := c.Ping(pingCtx)
		cancel()

		status := ComponentStatus{Name: c.Name, Status: StatusHealthy}
		if err != nil {
			zap.L().Warn("health check failed", zap.String("component", c.Name), zap.Error(err))
			status.Status = StatusDegraded
			status.Error = err.Error()
			report.Status = StatusDegraded
		}
		report.Components = append(report.Components, status)
	}
	return report
}
