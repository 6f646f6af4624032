package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matiasrojas/guarani/internal/models"
)

// RenderExpenseChart renders a PNG bar chart of expenses by category.
// Returns raw PNG bytes.
func (s *Service) RenderExpenseChart(ctx context.Context) ([]byte, error) {
	breakdown, err := s.CategoryBreakdown(ctx, models.CategoryExpense)
	if err != nil {
		return nil, err
	}
	if len(breakdown) == 0 {
		return nil, models.NewValidationError("no expense transactions to chart")
	}

	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)

	bars := make([]chart.Value, 0, len(names))
	for _, name := range names {
		bars = append(bars, chart.Value{
			Label: name,
			Value: breakdown[name],
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("ef4444"), // red-500
				StrokeColor: drawing.ColorFromHex("ef4444"),
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Gastos por Categoría",
		Width:    900,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("₲%.0fk", f/1000)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderMonthlyChart renders a PNG line chart of monthly income and expense
// totals for the last six months. Income is green solid, expenses red dashed.
func (s *Service) RenderMonthlyChart(ctx context.Context) ([]byte, error) {
	totals, err := s.MonthlyTotals(ctx, 6)
	if err != nil {
		return nil, err
	}
	if len(totals) < 2 {
		return nil, fmt.Errorf("need at least 2 months, got %d", len(totals))
	}

	xValues := make([]time.Time, len(totals))
	incomeY := make([]float64, len(totals))
	expenseY := make([]float64, len(totals))

	for i, m := range totals {
		xValues[i] = m.Month
		incomeY[i] = m.Income
		expenseY[i] = m.Expenses
	}

	incomeSeries := chart.TimeSeries{
		Name: "Ingresos",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("10b981"), // emerald-500
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: incomeY,
	}

	expenseSeries := chart.TimeSeries{
		Name: "Egresos",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("ef4444"), // red-500
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: expenseY,
	}

	graph := chart.Chart{
		Title:  "Ingresos vs Egresos",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("₲%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			incomeSeries,
			expenseSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
