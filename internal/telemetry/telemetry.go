// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package telemetry records pipeline-run metrics (process and segment counts,
// capability counts, page-table node totals) as Prometheus gauges and snapshots them to
// a text file at the end of a run, using the same client_golang gauge-vec
// registration pattern the rest of this stack uses for live metrics —
// adapted here for a batch tool with no server to scrape it.
package telemetry

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"rmegen/internal/model"
)

const metricPrefix = "rmegen_"

// Recorder accumulates one run's worth of gauges in a private registry, so
// repeated runs in the same process (tests) never collide with a global one.
type Recorder struct {
	registry *prometheus.Registry

	processCount   prometheus.Gauge
	segmentCount   *prometheus.GaugeVec
	captblSize     *prometheus.GaugeVec
	globalObjects  prometheus.Gauge
	pageTableNodes prometheus.Gauge
}

// New creates a Recorder with all gauges registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		processCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "process_count",
			Help: "Number of processes declared by the project",
		}),
		segmentCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: metricPrefix + "segment_count",
			Help: "Number of memory segments, by kind",
		}, []string{"kind"}),
		captblSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: metricPrefix + "captbl_frontier",
			Help: "Dense local capability count per process",
		}, []string{"process"}),
		globalObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "global_objects",
			Help: "Total first-class kernel objects assigned a global ID",
		}),
		pageTableNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "pagetable_nodes",
			Help: "Total MPU page-table nodes synthesized across all processes",
		}),
	}
	reg.MustRegister(r.processCount, r.segmentCount, r.captblSize, r.globalObjects, r.pageTableNodes)
	return r
}

// ObserveProject records per-process and per-project gauges from the final
// domain model after placement and capability assignment have both run.
func (r *Recorder) ObserveProject(proj *model.Project) {
	r.processCount.Set(float64(len(proj.Processes)))
	var code, data, device, globalObjects int
	for _, p := range proj.Processes {
		code += len(p.CodeSegments)
		data += len(p.DataSegments)
		device += len(p.DeviceSegments)
		r.captblSize.WithLabelValues(p.Name).Set(float64(p.CaptblFrontier))
		globalObjects += len(p.Threads) + len(p.Invocations) + len(p.Receives) + 2 // +captbl, +process
	}
	r.segmentCount.WithLabelValues("code").Set(float64(code))
	r.segmentCount.WithLabelValues("data").Set(float64(data))
	r.segmentCount.WithLabelValues("device").Set(float64(device))
	r.globalObjects.Set(float64(globalObjects))
}

// ObservePageTableNodes records the total synthesized MPU page-table node
// count across every process.
func (r *Recorder) ObservePageTableNodes(count int) {
	r.pageTableNodes.Set(float64(count))
}

// WriteSnapshot renders the registry in Prometheus text exposition format to
// path, the same format promhttp.Handler would serve over /metrics.
func (r *Recorder) WriteSnapshot(path string) error {
	mfs, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics snapshot: %w", err)
	}
	defer f.Close()
	for _, mf := range mfs {
		if _, err := fmt.Fprintf(f, "# HELP %s %s\n# TYPE %s %s\n", mf.GetName(), mf.GetHelp(), mf.GetName(), strings.ToLower(mf.GetType().String())); err != nil {
			return err
		}
		for _, m := range mf.GetMetric() {
			if err := writeMetricLine(f, mf.GetName(), m); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMetricLine(f *os.File, name string, m *dto.Metric) error {
	labels := ""
	for _, lp := range m.GetLabel() {
		if labels != "" {
			labels += ","
		}
		labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	if labels != "" {
		_, err := fmt.Fprintf(f, "%s{%s} %v\n", name, labels, m.GetGauge().GetValue())
		return err
	}
	_, err := fmt.Fprintf(f, "%s %v\n", name, m.GetGauge().GetValue())
	return err
}

