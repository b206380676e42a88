package replay

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pavanmanishd/slotvec/internal/command/helper"
	"github.com/pavanmanishd/slotvec/internal/script"
)

type ReplayResult struct {
	File string `json:"file"`
	*script.Report
}

func (r *ReplayResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[REPLAY]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Script|%s", r.File),
		fmt.Sprintf("Steps|%d", len(r.Steps)),
		fmt.Sprintf("Failed steps|%d", r.Failed),
	}))
	buffer.WriteString("\n")

	if len(r.Steps) > 0 {
		rows := make([]string, 0, len(r.Steps)+1)
		rows = append(rows, "#|Op|Values|Size|Capacity|Max Used Index|Error")

		for i, s := range r.Steps {
			rows = append(rows, fmt.Sprintf("%d|%s|%s|%d|%d|%d|%s",
				i, s.Op, formatValues(s.Values), s.Size, s.Capacity, s.MaxUsedIndex, s.Error))
		}

		buffer.WriteString("\n[STEPS]\n")
		buffer.WriteString(helper.FormatList(rows))
		buffer.WriteString("\n")
	}

	m := r.Metrics

	buffer.WriteString("\n[METRICS]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Size|%d", m.Size),
		fmt.Sprintf("Capacity|%d", m.Capacity),
		fmt.Sprintf("Max used index|%d", m.MaxUsedIndex),
		fmt.Sprintf("Free slots|%d", m.FreeSlots),
		fmt.Sprintf("Fragmentation|%.2f", m.Fragmentation),
		fmt.Sprintf("Utilization|%.2f", m.Utilization),
		fmt.Sprintf("Grows|%d", m.Grows),
		fmt.Sprintf("Compactions|%d", m.Compactions),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}

func formatValues(values []int32) string {
	if len(values) == 0 {
		return ""
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}

	return strings.Join(parts, ",")
}
