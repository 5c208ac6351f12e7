// Package report accumulates classified joint readings over a session and
// exports them as an interactive HTML chart page (go-echarts) or a static
// PNG plot (gonum/plot).
package report
