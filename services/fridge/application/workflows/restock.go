// Package workflows holds the Temporal workflows of the fridge context.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/smartfridge/pkg/logger"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
)

const (
	// RestockReportWorkflowName is the registered workflow type.
	RestockReportWorkflowName = "fridge.restock_report"

	// RestockReportWorkflowID is the fixed id of the cron run.
	RestockReportWorkflowID = "fridge-restock-report"
)

// RestockReportInput configures one report run.
type RestockReportInput struct {
	Threshold float64 `json:"threshold"`
}

// RestockLine summarises the low items of one type.
type RestockLine struct {
	TypeID           int64   `json:"type_id"`
	Items            int     `json:"items"`
	LowestFillFactor float64 `json:"lowest_fill_factor"`
}

// RestockReport lists, by type id, what is at or below the threshold.
type RestockReport struct {
	Threshold   float64       `json:"threshold"`
	GeneratedAt time.Time     `json:"generated_at"`
	Lines       []RestockLine `json:"lines"`
}

// Activities are the side-effecting steps of the restock report.
type Activities struct {
	Inventory *appsvcs.InventoryManager
	Log       logger.Logger
}

// ListLowItems returns the items at or below threshold, one bucket per type.
func (a *Activities) ListLowItems(ctx context.Context, threshold float64) ([]models.Bucket, error) {
	return a.Inventory.ItemsBelowFillFactor(ctx, &threshold)
}

// PublishReport writes the report to the log.
func (a *Activities) PublishReport(ctx context.Context, report RestockReport) error {
	if len(report.Lines) == 0 {
		a.Log.InfoContext(ctx, "restock report: nothing to restock", "threshold", report.Threshold)
		return nil
	}
	for _, line := range report.Lines {
		a.Log.InfoContext(ctx, "restock report",
			"threshold", report.Threshold,
			"type_id", line.TypeID,
			"items", line.Items,
			"lowest_fill_factor", line.LowestFillFactor,
		)
	}
	return nil
}

// RestockReportWorkflow lists the low items and publishes a per-type summary.
func RestockReportWorkflow(ctx workflow.Context, in RestockReportInput) (RestockReport, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})

	var a *Activities
	var buckets []models.Bucket
	if err := workflow.ExecuteActivity(ctx, a.ListLowItems, in.Threshold).Get(ctx, &buckets); err != nil {
		return RestockReport{}, err
	}

	report := BuildRestockReport(in.Threshold, workflow.Now(ctx), buckets)
	if err := workflow.ExecuteActivity(ctx, a.PublishReport, report).Get(ctx, nil); err != nil {
		return RestockReport{}, err
	}
	return report, nil
}

// BuildRestockReport folds buckets into one line per type, keeping bucket order.
func BuildRestockReport(threshold float64, now time.Time, buckets []models.Bucket) RestockReport {
	report := RestockReport{
		Threshold:   threshold,
		GeneratedAt: now.UTC(),
		Lines:       make([]RestockLine, 0, len(buckets)),
	}
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		line := RestockLine{TypeID: b.TypeID(), Items: len(b), LowestFillFactor: b[0].FillFactor}
		for _, r := range b[1:] {
			if r.FillFactor < line.LowestFillFactor {
				line.LowestFillFactor = r.FillFactor
			}
		}
		report.Lines = append(report.Lines, line)
	}
	return report
}

// Register adds the restock workflow and its activities to w.
func Register(w worker.Registry, acts *Activities) {
	w.RegisterWorkflowWithOptions(RestockReportWorkflow, workflow.RegisterOptions{Name: RestockReportWorkflowName})
	w.RegisterActivity(acts)
}
